// Package http implements the HTTP transport layer of the application.
// It provides middleware, route handlers, and request/response utilities
// for the REST API. Authentication, authorization, logging, and tracing
// concerns are all handled at this layer before requests are forwarded to
// the service layer.
package http

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/trailhead-app/trailhead/internal/logger"
	"github.com/trailhead-app/trailhead/internal/store"
	"github.com/trailhead-app/trailhead/internal/utils"
	"github.com/trailhead-app/trailhead/models"
)

// sessionCookieName is the cookie carrying the session JWT for browser
// clients. API clients send the same token as a bearer header instead.
const sessionCookieName = "jwt"

// protect is an HTTP middleware that enforces JWT-based authentication.
//
// It extracts the session token (bearer header first, session cookie as
// fallback), validates it via [service.AuthService.ParseToken], loads the
// still-active account it refers to, and checks that the token postdates the
// user's last password change. On success the full user record is stored in
// the request context under [utils.UserCtxKey] before delegating to the next
// handler.
//
// The middleware rejects requests with HTTP 401 Unauthorized when:
//   - no token is present at all ([ErrNotLoggedIn]);
//   - the bearer header is malformed ([ErrInvalidAuthorizationHeader],
//     [ErrEmptyToken]);
//   - the token is expired or otherwise invalid;
//   - the account no longer exists or was deactivated
//     ([ErrUserNoLongerExists]);
//   - the token predates the last password change ([ErrStaleToken]).
func (h *Handler) protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		tokenString, err := tokenFromRequest(r)
		if err != nil {
			log.Err(err).Send()
			h.writeError(w, r, err)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			log.Err(err).Msg("error occurred during parsing token")
			h.writeError(w, r, err)
			return
		}

		user, err := h.storages.UserRepository.FindActiveUserByID(ctx, token.UserID)
		if err != nil {
			if errors.Is(err, store.ErrNoUserWasFound) {
				log.Warn().Int64("id", token.UserID).Msg("token refers to a missing user")
				h.writeError(w, r, ErrUserNoLongerExists)
				return
			}

			log.Err(err).Int64("id", token.UserID).Msg("user lookup failed")
			h.writeError(w, r, err)
			return
		}

		if !user.CanUseTokenIssuedAt(token.IssuedAt) {
			log.Warn().Int64("id", user.ID).Msg("token predates last password change")
			h.writeError(w, r, ErrStaleToken)
			return
		}

		// Store the authenticated user in the context so that downstream
		// handlers can retrieve it without re-parsing the token.
		ctx = context.WithValue(ctx, utils.UserCtxKey, &user)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// restrictTo guards a route group behind a role allow-list. It must run
// after protect; if no authenticated user is present in the context the
// guard fails closed with HTTP 500 rather than letting the request through.
func (h *Handler) restrictTo(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := logger.FromRequest(r)

			user, ok := utils.GetUserFromContext(r.Context())
			if !ok {
				log.Error().Msg("role guard reached without an authenticated user")
				h.writeError(w, r, errMissingAuthContext)
				return
			}

			if !slices.Contains(roles, user.Role) {
				log.Warn().Int64("id", user.ID).Str("role", string(user.Role)).Msg("role not permitted")
				h.writeError(w, r, ErrForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// maybeAuth attaches the user to the context when a valid token is present
// and silently proceeds anonymously otherwise. Public routes use it to
// personalise responses without requiring login.
func (h *Handler) maybeAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, err := tokenFromRequest(r)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		user, err := h.storages.UserRepository.FindActiveUserByID(ctx, token.UserID)
		if err != nil || !user.CanUseTokenIssuedAt(token.IssuedAt) {
			next.ServeHTTP(w, r)
			return
		}

		ctx = context.WithValue(ctx, utils.UserCtxKey, &user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// tokenFromRequest extracts the session token string from a request.
//
// The "Authorization" header takes precedence and is expected to follow the
// standard format:
//
//	Authorization: Bearer <token>
//
// When the header is absent the session cookie is consulted. A request with
// neither yields [ErrNotLoggedIn].
func tokenFromRequest(r *http.Request) (string, error) {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		return getTokenFromAuthHeader(authHeader)
	}

	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	return "", ErrNotLoggedIn
}

// getTokenFromAuthHeader extracts the bearer token string from a raw
// "Authorization" HTTP header value.
//
// It returns the following sentinel errors:
//   - [ErrInvalidAuthorizationHeader] — if the header contains fewer than
//     two space-separated parts (i.e. the token is missing entirely).
//   - [ErrEmptyToken] — if the second part exists but is an empty string.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	parts := strings.Split(authHeader, " ")
	if len(parts) < 2 {
		return "", ErrInvalidAuthorizationHeader
	}

	tokenString := parts[1]
	if tokenString == "" {
		return "", ErrEmptyToken
	}

	return tokenString, nil
}
