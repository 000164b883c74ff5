package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/trailhead-app/trailhead/internal/query"
	"github.com/trailhead-app/trailhead/internal/utils"
	"github.com/trailhead-app/trailhead/models"
)

func (h *Handler) reviewHandlers() resourceHandlers[models.Review] {
	return resourceHandlers[models.Review]{
		handler:  h,
		repo:     h.storages.ReviewRepository,
		validate: func(rv *models.Review) error { return rv.Validate() },

		// Reviews are always written as oneself; the author comes from the
		// session, never from the body. On the nested route the tour comes
		// from the URL the same way.
		beforeInsert: func(r *http.Request, doc *models.Review) error {
			if raw := chi.URLParam(r, "tourId"); raw != "" {
				tourID, err := strconv.ParseInt(raw, 10, 64)
				if err != nil || tourID < 1 {
					return fmt.Errorf("%w: %q", ErrInvalidResourceID, raw)
				}
				doc.TourID = tourID
			}

			user, ok := utils.GetUserFromContext(r.Context())
			if !ok {
				return errMissingAuthContext
			}
			doc.UserID = user.ID

			return nil
		},

		patchFields: []string{"review", "rating"},

		scope: func(r *http.Request) ([]query.Predicate, error) {
			raw := chi.URLParam(r, "tourId")
			if raw == "" {
				return nil, nil
			}
			if _, err := strconv.ParseInt(raw, 10, 64); err != nil {
				return nil, fmt.Errorf("%w: %q", ErrInvalidResourceID, raw)
			}

			return []query.Predicate{{Column: "tour_id", Op: query.OpEq, Value: raw}}, nil
		},
	}
}
