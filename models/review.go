package models

import (
	"errors"
	"strings"
	"time"
)

// Validation errors for review payloads.
var (
	ErrReviewTextRequired = errors.New("review cannot be empty")
	ErrReviewBadRating    = errors.New("review rating must be between 1 and 5")
	ErrReviewTourRequired = errors.New("review must belong to a tour")
	ErrReviewUserRequired = errors.New("review must belong to a user")
)

// Review is a user's rating of a tour.
type Review struct {
	ID        int64     `json:"id"`
	Review    string    `json:"review"`
	Rating    int       `json:"rating"`
	TourID    int64     `json:"tour_id"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Review model.
func (r Review) TableName() string {
	return "reviews"
}

// Validate checks the invariants of a review payload.
func (r *Review) Validate() error {
	if strings.TrimSpace(r.Review) == "" {
		return ErrReviewTextRequired
	}
	if r.Rating < 1 || r.Rating > 5 {
		return ErrReviewBadRating
	}
	if r.TourID == 0 {
		return ErrReviewTourRequired
	}
	if r.UserID == 0 {
		return ErrReviewUserRequired
	}

	return nil
}
