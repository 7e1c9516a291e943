package models

import "time"

type Container struct {
	ID              int        `json:"id" db:"id"`
	ContainerNumber string     `json:"container_number" db:"container_number"`
	BoatID          *int       `json:"boat_id,omitempty" db:"boat_id"`
	DealerID        *int       `json:"dealer_id,omitempty" db:"dealer_id"`
	LoadingDate     *time.Time `json:"loading_date,omitempty" db:"loading_date"`
	Status          string     `json:"status" db:"status"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
}

type ContainerRequest struct {
	ContainerNumber string     `json:"container_number" binding:"required"`
	BoatID          *int       `json:"boat_id"`
	DealerID        *int       `json:"dealer_id"`
	LoadingDate     *time.Time `json:"loading_date"`
	Status          string     `json:"status"`
}

type UpdateContainerRequest struct {
	ContainerNumber *string    `json:"container_number"`
	BoatID          *int       `json:"boat_id"`
	DealerID        *int       `json:"dealer_id"`
	LoadingDate     *time.Time `json:"loading_date"`
	Status          *string    `json:"status"`
}
