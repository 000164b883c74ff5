package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trailhead-app/trailhead/internal/query"
	"github.com/trailhead-app/trailhead/internal/store"
	"github.com/trailhead-app/trailhead/models"
)

func TestMyBookings_PinsOwnerFilter(t *testing.T) {
	var seenSpec query.Spec
	repo := &resourceRepoMock[models.Booking]{
		schema: store.BookingResource(100, 500).Schema,
		findAllFunc: func(ctx context.Context, spec query.Spec) ([]models.Booking, error) {
			seenSpec = spec
			return []models.Booking{{ID: 1, TourID: 3, UserID: 42, Price: 397}}, nil
		},
		countFunc: func(ctx context.Context, spec query.Spec) (int64, error) {
			return 1, nil
		},
	}
	h := newTestHandler(nil, &store.Storages{BookingRepository: repo}, "development")

	r := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/my", nil)
	r = withCtxUser(injectNopLogger(r), &models.User{ID: 42, Role: models.RoleUser})
	w := httptest.NewRecorder()

	h.myBookings(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"results":1`)

	require.Len(t, seenSpec.Predicates(), 1)
	assert.Equal(t, "user_id", seenSpec.Predicates()[0].Column)
	assert.Equal(t, "42", seenSpec.Predicates()[0].Value)
}

func TestMyBookings_FailsClosedWithoutAuthContext(t *testing.T) {
	h := newTestHandler(nil, &store.Storages{BookingRepository: &resourceRepoMock[models.Booking]{}}, "production")

	r := injectNopLogger(httptest.NewRequest(http.MethodGet, "/api/v1/bookings/my", nil))
	w := httptest.NewRecorder()

	h.myBookings(w, r)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
