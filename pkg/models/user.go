package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID           int             `json:"id" db:"id"`
	Username     string          `json:"username" db:"username"`
	Fullname     string          `json:"fullname" db:"fullname"`
	PasswordHash string          `json:"-" db:"password_hash"`
	Role         string          `json:"role" db:"role"`
	Balance      decimal.Decimal `json:"balance" db:"balance"`
	Debt         decimal.Decimal `json:"debt" db:"debt"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
}

type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Fullname string `json:"fullname"`
	Role     string `json:"role" binding:"required"`
}

type UpdateUserRequest struct {
	Password *string `json:"password"`
	Fullname *string `json:"fullname"`
	Role     *string `json:"role"`
}

// UserChanges holds only the columns a PATCH actually touches.
type UserChanges struct {
	PasswordHash *string
	Fullname     *string
	Role         *string
}

func (c *UserChanges) HasChanges() bool {
	return c.PasswordHash != nil || c.Fullname != nil || c.Role != nil
}

type BalanceAdjustmentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Type   string          `json:"type" binding:"required"`
	Note   string          `json:"note"`
}

// BalanceSnapshot is the {balance, debt} pair returned after an
// admin balance adjustment.
type BalanceSnapshot struct {
	Balance decimal.Decimal `json:"balance" db:"balance"`
	Debt    decimal.Decimal `json:"debt" db:"debt"`
}

const (
	AdjustmentCredit = "credit"
	AdjustmentDebit  = "debit"
)
