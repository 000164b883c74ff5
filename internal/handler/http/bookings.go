package http

import (
	"net/http"
	"strconv"

	"github.com/trailhead-app/trailhead/internal/query"
	"github.com/trailhead-app/trailhead/internal/utils"
	"github.com/trailhead-app/trailhead/models"
)

func (h *Handler) bookingHandlers() resourceHandlers[models.Booking] {
	return resourceHandlers[models.Booking]{
		handler:     h,
		repo:        h.storages.BookingRepository,
		validate:    func(b *models.Booking) error { return b.Validate() },
		patchFields: []string{"price", "paid"},
	}
}

// myBookings lists the caller's own bookings. The usual list parameters
// still apply on top of the pinned owner filter.
func (h *Handler) myBookings(w http.ResponseWriter, r *http.Request) {
	rh := h.bookingHandlers()
	rh.scope = func(r *http.Request) ([]query.Predicate, error) {
		user, ok := utils.GetUserFromContext(r.Context())
		if !ok {
			return nil, errMissingAuthContext
		}

		return []query.Predicate{{
			Column: "user_id",
			Op:     query.OpEq,
			Value:  strconv.FormatInt(user.ID, 10),
		}}, nil
	}

	rh.getAll(w, r)
}
