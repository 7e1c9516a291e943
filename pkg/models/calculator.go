package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CalculatorEntry is a shared shipping price reference row used by the
// import cost calculator.
type CalculatorEntry struct {
	ID        int             `json:"id" db:"id"`
	Auction   string          `json:"auction" db:"auction"`
	City      string          `json:"city" db:"city"`
	Port      string          `json:"port" db:"port"`
	Price     decimal.Decimal `json:"price" db:"price"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

type CalculatorEntryRequest struct {
	Auction string           `json:"auction" binding:"required"`
	City    string           `json:"city" binding:"required"`
	Port    string           `json:"port" binding:"required"`
	Price   *decimal.Decimal `json:"price"`
}

type UpdateCalculatorEntryRequest struct {
	Auction *string          `json:"auction"`
	City    *string          `json:"city"`
	Port    *string          `json:"port"`
	Price   *decimal.Decimal `json:"price"`
}
