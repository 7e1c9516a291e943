package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Vehicle struct {
	ID              int             `json:"id" db:"id"`
	Vin             string          `json:"vin" db:"vin"`
	Mark            string          `json:"mark" db:"mark"`
	Model           string          `json:"model" db:"model"`
	Year            int             `json:"year" db:"year"`
	DealerID        *int            `json:"dealer_id,omitempty" db:"dealer_id"`
	TotalPrice      decimal.Decimal `json:"total_price" db:"total_price"`
	DebtAmount      decimal.Decimal `json:"debt_amount" db:"debt_amount"`
	PayedAmount     decimal.Decimal `json:"payed_amount" db:"payed_amount"`
	IsFullyPaid     bool            `json:"is_fully_paid" db:"is_fully_paid"`
	IsPartiallyPaid bool            `json:"is_partially_paid" db:"is_partially_paid"`
	ImagePath       *string         `json:"image_path,omitempty" db:"image_path"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
}

type VehicleRequest struct {
	Vin        string           `json:"vin" binding:"required"`
	Mark       string           `json:"mark"`
	Model      string           `json:"model"`
	Year       int              `json:"year"`
	DealerID   *int             `json:"dealer_id"`
	TotalPrice *decimal.Decimal `json:"total_price"`
	ImagePath  *string          `json:"image_path"`
}

type UpdateVehicleRequest struct {
	Vin        *string          `json:"vin"`
	Mark       *string          `json:"mark"`
	Model      *string          `json:"model"`
	Year       *int             `json:"year"`
	DealerID   *int             `json:"dealer_id"`
	TotalPrice *decimal.Decimal `json:"total_price"`
	ImagePath  *string          `json:"image_path"`
}
