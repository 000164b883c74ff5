package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/trailhead-app/trailhead/internal/logger"
	"github.com/trailhead-app/trailhead/internal/utils"
	"github.com/trailhead-app/trailhead/models"
)

// accountHandlers returns the generic CRUD set for the administrative
// accounts collection. Account creation does not go through it: new accounts
// only come from signup.
func (h *Handler) accountHandlers() resourceHandlers[models.User] {
	return resourceHandlers[models.User]{
		handler: h,
		repo:    h.storages.AccountRepository,
		validate: func(u *models.User) error {
			if !u.Role.Valid() {
				return models.ErrUnknownRole
			}
			return nil
		},
		patchFields: []string{"name", "email", "role"},
	}
}

// createAccountNotSupported keeps POST /users from silently creating
// credential-less accounts.
func (h *Handler) createAccountNotSupported(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, models.MessageResponse{
		Status:  models.StatusFail,
		Message: "this route cannot create accounts; use /api/v1/auth/signup",
	}, http.StatusBadRequest)
}

// getMe returns the authenticated user's own record.
func (h *Handler) getMe(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		h.writeError(w, r, errMissingAuthContext)
		return
	}

	utils.WriteJSON(w, models.DataResponse{Status: models.StatusSuccess, Data: user}, http.StatusOK)
}

// updateMe changes the caller's name and email. Password fields are rejected
// outright so nobody bypasses the current-password check on
// /auth/update-password.
func (h *Handler) updateMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		h.writeError(w, r, errMissingAuthContext)
		return
	}

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		h.writeError(w, r, ErrInvalidJSON)
		return
	}

	for field := range raw {
		switch field {
		case "name", "email":
		case "password", "password_confirm", "current_password", "new_password":
			h.writeError(w, r, ErrPasswordUpdateNotAllowed)
			return
		default:
			h.writeError(w, r, fmt.Errorf("%w: %q", ErrUnknownUpdateField, field))
			return
		}
	}

	req := models.UpdateMeRequest{Name: user.Name, Email: user.Email}
	merged, err := json.Marshal(raw)
	if err != nil {
		h.writeError(w, r, ErrInvalidJSON)
		return
	}
	if err := json.Unmarshal(merged, &req); err != nil {
		h.writeError(w, r, ErrInvalidJSON)
		return
	}

	updated, err := h.storages.UserRepository.UpdateProfile(ctx, user.ID, req.Name, req.Email)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.DataResponse{Status: models.StatusSuccess, Data: updated}, http.StatusOK)
}

// deleteMe soft-deletes the caller's account. The record is retained but
// stops being visible anywhere, including to future logins.
func (h *Handler) deleteMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		h.writeError(w, r, errMissingAuthContext)
		return
	}

	if err := h.storages.UserRepository.Deactivate(ctx, user.ID); err != nil {
		h.writeError(w, r, err)
		return
	}

	log.Info().Int64("id", user.ID).Msg("account deactivated")

	w.WriteHeader(http.StatusNoContent)
}
