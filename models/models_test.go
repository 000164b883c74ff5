package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRole_Valid(t *testing.T) {
	for _, r := range []Role{RoleUser, RoleGuide, RoleLeadGuide, RoleAdmin} {
		assert.True(t, r.Valid(), "role %q", r)
	}

	assert.False(t, Role("superadmin").Valid())
	assert.False(t, Role("").Valid())
}

func TestUser_SensitiveFieldsNotSerialized(t *testing.T) {
	hash := "reset-hash"
	now := time.Now()
	u := User{
		ID:                     1,
		Name:                   "A",
		Email:                  "a@x.com",
		PasswordHash:           "$2a$10$abcdef",
		Role:                   RoleUser,
		PasswordChangedAt:      &now,
		PasswordResetTokenHash: &hash,
		PasswordResetExpiresAt: &now,
		Active:                 true,
	}

	raw, err := json.Marshal(u)
	require.NoError(t, err)

	assert.NotContains(t, string(raw), "$2a$10$abcdef")
	assert.NotContains(t, string(raw), "reset-hash")
	assert.NotContains(t, string(raw), "active")
}

func TestUser_CanUseTokenIssuedAt(t *testing.T) {
	changed := time.Now()

	u := User{}
	assert.True(t, u.CanUseTokenIssuedAt(changed.Add(-time.Hour)), "no password change recorded")

	u.PasswordChangedAt = &changed
	assert.False(t, u.CanUseTokenIssuedAt(changed.Add(-time.Hour)), "token older than password change")
	assert.True(t, u.CanUseTokenIssuedAt(changed.Add(time.Hour)), "token newer than password change")
}

func TestUser_CanUseTokenIssuedAt_SameSecondAsChange(t *testing.T) {
	// password_changed_at carries sub-second precision while the token's
	// iat claim is truncated to whole seconds: a session issued right
	// after the change parses back with an iat in the same second and
	// must remain usable.
	changed := time.Date(2026, time.August, 31, 21, 7, 5, 201_843_619, time.UTC)
	u := User{PasswordChangedAt: &changed}

	parsedIssuedAt := changed.Add(20 * time.Millisecond).Truncate(time.Second)
	assert.True(t, u.CanUseTokenIssuedAt(parsedIssuedAt), "token issued in the change second")

	assert.False(t, u.CanUseTokenIssuedAt(parsedIssuedAt.Add(-time.Second)), "token from the previous second is stale")
}

func validTour() Tour {
	return Tour{
		Name:         "The Forest Hiker",
		Duration:     5,
		MaxGroupSize: 25,
		Difficulty:   DifficultyEasy,
		Price:        397,
		Summary:      "Breathtaking hike through the Canadian Banff National Park",
	}
}

func TestTour_Validate(t *testing.T) {
	tour := validTour()
	require.NoError(t, tour.Validate())

	tests := []struct {
		name    string
		mutate  func(*Tour)
		wantErr error
	}{
		{"empty name", func(tr *Tour) { tr.Name = "  " }, ErrTourNameRequired},
		{"zero duration", func(tr *Tour) { tr.Duration = 0 }, ErrTourDurationRequired},
		{"zero group size", func(tr *Tour) { tr.MaxGroupSize = 0 }, ErrTourGroupSizeRequired},
		{"zero price", func(tr *Tour) { tr.Price = 0 }, ErrTourPriceRequired},
		{"unknown difficulty", func(tr *Tour) { tr.Difficulty = "impossible" }, ErrTourBadDifficulty},
		{"discount above price", func(tr *Tour) { d := 500.0; tr.PriceDiscount = &d }, ErrTourBadDiscount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tour := validTour()
			tt.mutate(&tour)
			assert.ErrorIs(t, tour.Validate(), tt.wantErr)
		})
	}
}

func TestTour_Slugify(t *testing.T) {
	tour := Tour{Name: "The Forest  Hiker"}
	tour.Slugify()
	assert.Equal(t, "the-forest-hiker", tour.Slug)
}

func TestReview_Validate(t *testing.T) {
	review := Review{Review: "Loved it", Rating: 5, TourID: 1, UserID: 2}
	require.NoError(t, review.Validate())

	tests := []struct {
		name    string
		mutate  func(*Review)
		wantErr error
	}{
		{"empty text", func(r *Review) { r.Review = "" }, ErrReviewTextRequired},
		{"rating too low", func(r *Review) { r.Rating = 0 }, ErrReviewBadRating},
		{"rating too high", func(r *Review) { r.Rating = 6 }, ErrReviewBadRating},
		{"missing tour", func(r *Review) { r.TourID = 0 }, ErrReviewTourRequired},
		{"missing user", func(r *Review) { r.UserID = 0 }, ErrReviewUserRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Review{Review: "Loved it", Rating: 5, TourID: 1, UserID: 2}
			tt.mutate(&r)
			assert.ErrorIs(t, r.Validate(), tt.wantErr)
		})
	}
}

func TestBooking_Validate(t *testing.T) {
	booking := Booking{TourID: 1, UserID: 2, Price: 397}
	require.NoError(t, booking.Validate())

	assert.ErrorIs(t, (&Booking{UserID: 2, Price: 1}).Validate(), ErrBookingTourRequired)
	assert.ErrorIs(t, (&Booking{TourID: 1, Price: 1}).Validate(), ErrBookingUserRequired)
	assert.ErrorIs(t, (&Booking{TourID: 1, UserID: 2}).Validate(), ErrBookingPriceRequired)
}
