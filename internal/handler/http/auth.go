package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/trailhead-app/trailhead/internal/logger"
	"github.com/trailhead-app/trailhead/internal/utils"
	"github.com/trailhead-app/trailhead/models"
)

// sendSession issues a session JWT for user, sets it as an http-only cookie
// for browser clients, and writes the success envelope. API clients read the
// token from the body and send it back as a bearer header.
func (h *Handler) sendSession(w http.ResponseWriter, r *http.Request, user models.User, statusCode int) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	token, err := h.services.AuthService.CreateToken(ctx, user)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		h.writeError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token.SignedString,
		Path:     "/",
		Expires:  time.Now().Add(h.cfg.App.TokenDuration),
		HttpOnly: true,
		Secure:   h.cfg.App.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})

	utils.WriteJSON(w, models.DataResponse{
		Status: models.StatusSuccess,
		Token:  token.SignedString,
		Data:   user,
	}, statusCode)
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		h.writeError(w, r, ErrInvalidJSON)
		return
	}

	registeredUser, err := h.services.AuthService.Signup(ctx, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	log.Info().Int64("id", registeredUser.ID).Msg("user signed up")

	h.sendSession(w, r, registeredUser, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		h.writeError(w, r, ErrInvalidJSON)
		return
	}

	foundUser, err := h.services.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	log.Debug().Int64("id", foundUser.ID).Msg("user successfully logged in")

	h.sendSession(w, r, foundUser, http.StatusOK)
}

// logout overwrites the session cookie with a short-lived placeholder.
// Bearer clients simply drop the token on their side.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "loggedout",
		Path:     "/",
		Expires:  time.Now().Add(10 * time.Second),
		HttpOnly: true,
		Secure:   h.cfg.App.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})

	utils.WriteJSON(w, models.MessageResponse{
		Status:  models.StatusSuccess,
		Message: "logged out",
	}, http.StatusOK)
}

// forgotPassword acknowledges with the same message whether or not the email
// has an account, so the endpoint cannot be used to enumerate addresses.
func (h *Handler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		h.writeError(w, r, ErrInvalidJSON)
		return
	}

	if err := h.services.AuthService.ForgotPassword(ctx, req.Email); err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{
		Status:  models.StatusSuccess,
		Message: "if the email has an account, a reset token has been sent",
	}, http.StatusOK)
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		h.writeError(w, r, ErrInvalidJSON)
		return
	}

	user, err := h.services.AuthService.ResetPassword(ctx, chi.URLParam(r, "token"), req.Password, req.PasswordConfirm)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	log.Info().Int64("id", user.ID).Msg("password reset completed")

	h.sendSession(w, r, user, http.StatusOK)
}

func (h *Handler) updatePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		h.writeError(w, r, errMissingAuthContext)
		return
	}

	var req models.UpdatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		h.writeError(w, r, ErrInvalidJSON)
		return
	}

	updated, err := h.services.AuthService.UpdatePassword(ctx, user.ID, req.CurrentPassword, req.NewPassword, req.PasswordConfirm)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	log.Info().Int64("id", updated.ID).Msg("password updated")

	// the old token is now stale; hand the client a fresh one
	h.sendSession(w, r, updated, http.StatusOK)
}
