package models

import (
	"errors"
	"strings"
	"time"
)

// Tour difficulties accepted by [Tour.Validate].
const (
	DifficultyEasy      = "easy"
	DifficultyMedium    = "medium"
	DifficultyDifficult = "difficult"
)

// Validation errors for tour payloads. They are operational: safe to show
// to the caller verbatim.
var (
	ErrTourNameRequired      = errors.New("tour must have a name")
	ErrTourDurationRequired  = errors.New("tour must have a positive duration")
	ErrTourGroupSizeRequired = errors.New("tour must have a positive group size")
	ErrTourPriceRequired     = errors.New("tour must have a positive price")
	ErrTourBadDifficulty     = errors.New("tour difficulty must be easy, medium or difficult")
	ErrTourBadDiscount       = errors.New("tour discount must be below the regular price")
)

// Tour is the bookable catalog resource.
type Tour struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	Slug            string     `json:"slug"`
	Duration        int        `json:"duration"`
	MaxGroupSize    int        `json:"max_group_size"`
	Difficulty      string     `json:"difficulty"`
	RatingsAverage  float64    `json:"ratings_average"`
	RatingsQuantity int        `json:"ratings_quantity"`
	Price           float64    `json:"price"`
	PriceDiscount   *float64   `json:"price_discount,omitempty"`
	Summary         string     `json:"summary"`
	Description     string     `json:"description,omitempty"`
	ImageCover      string     `json:"image_cover,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Tour model.
func (t Tour) TableName() string {
	return "tours"
}

// Validate checks the invariants of a tour payload before insert or after a
// partial update has been applied.
func (t *Tour) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return ErrTourNameRequired
	}
	if t.Duration <= 0 {
		return ErrTourDurationRequired
	}
	if t.MaxGroupSize <= 0 {
		return ErrTourGroupSizeRequired
	}
	if t.Price <= 0 {
		return ErrTourPriceRequired
	}
	switch t.Difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyDifficult:
	default:
		return ErrTourBadDifficulty
	}
	if t.PriceDiscount != nil && *t.PriceDiscount >= t.Price {
		return ErrTourBadDiscount
	}

	return nil
}

// Slugify derives the URL slug from the tour name. Called before insert so
// the slug always tracks the name.
func (t *Tour) Slugify() {
	t.Slug = strings.ToLower(strings.Join(strings.Fields(t.Name), "-"))
}
