package http

import (
	"net/http"

	"github.com/trailhead-app/trailhead/models"
)

func (h *Handler) tourHandlers() resourceHandlers[models.Tour] {
	return resourceHandlers[models.Tour]{
		handler:  h,
		repo:     h.storages.TourRepository,
		validate: func(t *models.Tour) error { return t.Validate() },
		prepare:  func(t *models.Tour) { t.Slugify() },
		patchFields: []string{
			"name", "duration", "max_group_size", "difficulty", "price",
			"price_discount", "summary", "description", "image_cover",
		},
		idParam: "tourId",
	}
}

// aliasTopTours pre-fills the query string of the top-5-cheap alias route:
// the five best-rated tours, cheapest first among equals, trimmed to the
// card fields. The request then flows through the ordinary list handler.
func (h *Handler) aliasTopTours(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		q.Set("limit", "5")
		q.Set("sort", "-ratings_average,price")
		q.Set("fields", "name,price,ratings_average,summary,difficulty")
		r.URL.RawQuery = q.Encode()

		next(w, r)
	}
}
