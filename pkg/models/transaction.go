package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PaymentTypeCarAmount = "car_amount"
	PaymentTypeShipping  = "shipping"
	PaymentTypeCustoms   = "customs"
	PaymentTypeBalance   = "balance"
)

func IsValidPaymentType(t string) bool {
	switch t {
	case PaymentTypeCarAmount, PaymentTypeShipping, PaymentTypeCustoms, PaymentTypeBalance:
		return true
	default:
		return false
	}
}

// IsVehiclePayment reports whether the payment type carries ledger
// effects against a vehicle (as opposed to a pure balance movement).
func IsVehiclePayment(t string) bool {
	switch t {
	case PaymentTypeCarAmount, PaymentTypeShipping, PaymentTypeCustoms:
		return true
	default:
		return false
	}
}

type Transaction struct {
	ID                 int              `json:"id" db:"id"`
	Payer              *string          `json:"payer,omitempty" db:"payer"`
	Vin                *string          `json:"vin,omitempty" db:"vin"`
	Mark               *string          `json:"mark,omitempty" db:"mark"`
	Model              *string          `json:"model,omitempty" db:"model"`
	Year               *int             `json:"year,omitempty" db:"year"`
	Buyer              *string          `json:"buyer,omitempty" db:"buyer"`
	PersonalNumber     *string          `json:"personal_number,omitempty" db:"personal_number"`
	PaidAmount         decimal.Decimal  `json:"paid_amount" db:"paid_amount"`
	PaymentType        string           `json:"payment_type" db:"payment_type"`
	AddToBalanceAmount *decimal.Decimal `json:"addToBalanceAmount,omitempty" db:"add_to_balance_amount"`
	Note               *string          `json:"note,omitempty" db:"note"`
	CreateDate         time.Time        `json:"create_date" db:"create_date"`
}

type TransactionRequest struct {
	Payer              *string          `json:"payer"`
	Vin                *string          `json:"vin"`
	Mark               *string          `json:"mark"`
	Model              *string          `json:"model"`
	Year               *int             `json:"year"`
	Buyer              *string          `json:"buyer"`
	PersonalNumber     *string          `json:"personal_number"`
	PaidAmount         *decimal.Decimal `json:"paid_amount"`
	PaymentType        string           `json:"payment_type" binding:"required"`
	AddToBalanceAmount *decimal.Decimal `json:"addToBalanceAmount"`
}

// UpdateTransactionRequest corrects the recorded row only. Edits never
// re-run or reverse ledger effects already applied at creation time.
type UpdateTransactionRequest struct {
	Payer          *string          `json:"payer"`
	Vin            *string          `json:"vin"`
	Mark           *string          `json:"mark"`
	Model          *string          `json:"model"`
	Year           *int             `json:"year"`
	Buyer          *string          `json:"buyer"`
	PersonalNumber *string          `json:"personal_number"`
	PaidAmount     *decimal.Decimal `json:"paid_amount"`
	PaymentType    *string          `json:"payment_type"`
}
