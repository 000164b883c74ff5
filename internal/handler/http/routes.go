package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/trailhead-app/trailhead/internal/utils"
	"github.com/trailhead-app/trailhead/models"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(cors.New(cors.Options{
		AllowedOrigins:   h.cfg.Server.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", traceIDHeader},
		AllowCredentials: true,
	}).Handler)
	if h.cfg.Server.RequestTimeout > 0 {
		router.Use(middleware.Timeout(h.cfg.Server.RequestTimeout))
	}

	tours := h.tourHandlers()
	reviews := h.reviewHandlers()
	bookings := h.bookingHandlers()
	accounts := h.accountHandlers()

	router.Route("/api/v1", func(api chi.Router) {
		api.Route("/auth", func(r chi.Router) {
			r.Post("/signup", h.signup)
			r.Post("/login", h.login)
			r.Post("/logout", h.logout)
			r.Post("/forgot-password", h.forgotPassword)
			r.Patch("/reset-password/{token}", h.resetPassword)

			r.Group(func(r chi.Router) {
				r.Use(h.protect)
				r.Patch("/update-password", h.updatePassword)
			})
		})

		api.Route("/tours", func(r chi.Router) {
			// public catalog reads
			r.Group(func(r chi.Router) {
				r.Use(h.maybeAuth)
				r.Get("/", tours.getAll)
				r.Get("/top-5-cheap", h.aliasTopTours(tours.getAll))
				r.Get("/{tourId}", tours.getOne)
				r.Get("/{tourId}/reviews", reviews.getAll)
			})

			r.Group(func(r chi.Router) {
				r.Use(h.protect)

				staff := r.With(h.restrictTo(models.RoleAdmin, models.RoleLeadGuide))
				staff.Post("/", tours.createOne)
				staff.Patch("/{tourId}", tours.updateOne)
				staff.Delete("/{tourId}", tours.deleteOne)

				r.With(h.restrictTo(models.RoleUser)).Post("/{tourId}/reviews", reviews.createOne)
			})
		})

		api.Route("/reviews", func(r chi.Router) {
			r.Use(h.protect)

			r.Get("/", reviews.getAll)
			r.Get("/{id}", reviews.getOne)
			r.With(h.restrictTo(models.RoleUser)).Post("/", reviews.createOne)

			moderators := r.With(h.restrictTo(models.RoleUser, models.RoleAdmin))
			moderators.Patch("/{id}", reviews.updateOne)
			moderators.Delete("/{id}", reviews.deleteOne)
		})

		api.Route("/users", func(r chi.Router) {
			r.Use(h.protect)

			r.Get("/me", h.getMe)
			r.Patch("/me", h.updateMe)
			r.Delete("/me", h.deleteMe)

			admins := r.With(h.restrictTo(models.RoleAdmin))
			admins.Get("/", accounts.getAll)
			admins.Post("/", h.createAccountNotSupported)
			admins.Get("/{id}", accounts.getOne)
			admins.Patch("/{id}", accounts.updateOne)
			admins.Delete("/{id}", accounts.deleteOne)
		})

		api.Route("/bookings", func(r chi.Router) {
			r.Use(h.protect)

			r.Get("/my", h.myBookings)

			staff := r.With(h.restrictTo(models.RoleAdmin, models.RoleLeadGuide))
			staff.Get("/", bookings.getAll)
			staff.Post("/", bookings.createOne)
			staff.Get("/{id}", bookings.getOne)
			staff.Patch("/{id}", bookings.updateOne)
			staff.Delete("/{id}", bookings.deleteOne)
		})
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSON(w, models.ErrorResponse{
			Status:  models.StatusFail,
			Message: fmt.Sprintf("can't find %s on this server", r.URL.Path),
		}, http.StatusNotFound)
	})

	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSON(w, models.ErrorResponse{
			Status:  models.StatusFail,
			Message: fmt.Sprintf("method %s is not allowed on %s", r.Method, r.URL.Path),
		}, http.StatusMethodNotAllowed)
	})

	return router
}
