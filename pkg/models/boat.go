package models

import "time"

type Boat struct {
	ID            int        `json:"id" db:"id"`
	Name          string     `json:"name" db:"name"`
	DepartureDate *time.Time `json:"departure_date,omitempty" db:"departure_date"`
	ArrivalDate   *time.Time `json:"arrival_date,omitempty" db:"arrival_date"`
	Status        string     `json:"status" db:"status"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
}

type BoatRequest struct {
	Name          string     `json:"name" binding:"required"`
	DepartureDate *time.Time `json:"departure_date"`
	ArrivalDate   *time.Time `json:"arrival_date"`
	Status        string     `json:"status"`
}

type UpdateBoatRequest struct {
	Name          *string    `json:"name"`
	DepartureDate *time.Time `json:"departure_date"`
	ArrivalDate   *time.Time `json:"arrival_date"`
	Status        *string    `json:"status"`
}
