package models

import (
	"errors"
	"time"
)

// Validation errors for booking payloads.
var (
	ErrBookingTourRequired  = errors.New("booking must reference a tour")
	ErrBookingUserRequired  = errors.New("booking must reference a user")
	ErrBookingPriceRequired = errors.New("booking must have a positive price")
)

// Booking records that a user reserved a spot on a tour. Payment session
// creation happens outside this system; only the resulting paid flag is
// tracked here.
type Booking struct {
	ID        int64     `json:"id"`
	TourID    int64     `json:"tour_id"`
	UserID    int64     `json:"user_id"`
	Price     float64   `json:"price"`
	Paid      bool      `json:"paid"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Booking model.
func (b Booking) TableName() string {
	return "bookings"
}

// Validate checks the invariants of a booking payload.
func (b *Booking) Validate() error {
	if b.TourID == 0 {
		return ErrBookingTourRequired
	}
	if b.UserID == 0 {
		return ErrBookingUserRequired
	}
	if b.Price <= 0 {
		return ErrBookingPriceRequired
	}

	return nil
}
