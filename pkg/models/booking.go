package models

import "time"

type Booking struct {
	ID              int        `json:"id" db:"id"`
	DealerID        *int       `json:"dealer_id,omitempty" db:"dealer_id"`
	Vin             *string    `json:"vin,omitempty" db:"vin"`
	ContainerID     *int       `json:"container_id,omitempty" db:"container_id"`
	OriginPort      string     `json:"origin_port" db:"origin_port"`
	DestinationPort string     `json:"destination_port" db:"destination_port"`
	Status          string     `json:"status" db:"status"`
	BookingDate     *time.Time `json:"booking_date,omitempty" db:"booking_date"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
}

type BookingRequest struct {
	DealerID        *int       `json:"dealer_id"`
	Vin             *string    `json:"vin"`
	ContainerID     *int       `json:"container_id"`
	OriginPort      string     `json:"origin_port" binding:"required"`
	DestinationPort string     `json:"destination_port" binding:"required"`
	Status          string     `json:"status"`
	BookingDate     *time.Time `json:"booking_date"`
}

type UpdateBookingRequest struct {
	DealerID        *int       `json:"dealer_id"`
	Vin             *string    `json:"vin"`
	ContainerID     *int       `json:"container_id"`
	OriginPort      *string    `json:"origin_port"`
	DestinationPort *string    `json:"destination_port"`
	Status          *string    `json:"status"`
	BookingDate     *time.Time `json:"booking_date"`
}
