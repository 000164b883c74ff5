package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trailhead-app/trailhead/internal/service"
	"github.com/trailhead-app/trailhead/models"
)

// sessionCookie digs the session cookie out of a recorded response.
func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, c := range w.Result().Cookies() {
		if c.Name == sessionCookieName {
			return c
		}
	}

	t.Fatalf("no %q cookie in response", sessionCookieName)
	return nil
}

func TestSignup_Success(t *testing.T) {
	authSvc := &authServiceMock{
		signupFunc: func(ctx context.Context, req models.SignupRequest) (models.User, error) {
			assert.Equal(t, "amelie@example.com", req.Email)
			return models.User{ID: 1, Name: req.Name, Email: req.Email, Role: models.RoleUser, Active: true}, nil
		},
		createTokenFunc: func(ctx context.Context, user models.User) (models.Token, error) {
			return models.Token{UserID: user.ID, IssuedAt: time.Now(), SignedString: "fresh.jwt"}, nil
		},
	}
	h := newTestHandler(&service.Services{AuthService: authSvc}, nil, "development")

	body := `{"name":"Amelie","email":"amelie@example.com","password":"correct-horse","password_confirm":"correct-horse"}`
	r := injectNopLogger(httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup", strings.NewReader(body)))
	w := httptest.NewRecorder()

	h.signup(w, r)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"success"`)
	assert.Contains(t, w.Body.String(), `"token":"fresh.jwt"`)

	cookie := sessionCookie(t, w)
	assert.Equal(t, "fresh.jwt", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.False(t, cookie.Secure, "cookie is only Secure in production mode")
}

func TestSignup_PasswordPolicyFailure(t *testing.T) {
	authSvc := &authServiceMock{
		signupFunc: func(ctx context.Context, req models.SignupRequest) (models.User, error) {
			return models.User{}, service.ErrPasswordTooShort
		},
	}
	h := newTestHandler(&service.Services{AuthService: authSvc}, nil, "development")

	body := `{"name":"Amelie","email":"amelie@example.com","password":"short","password_confirm":"short"}`
	r := injectNopLogger(httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup", strings.NewReader(body)))
	w := httptest.NewRecorder()

	h.signup(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), service.ErrPasswordTooShort.Error())
}

func TestLogin_Success(t *testing.T) {
	authSvc := &authServiceMock{
		loginFunc: func(ctx context.Context, email, password string) (models.User, error) {
			assert.Equal(t, "amelie@example.com", email)
			assert.Equal(t, "correct-horse", password)
			return models.User{ID: 1, Email: email, Role: models.RoleUser, Active: true}, nil
		},
	}
	h := newTestHandler(&service.Services{AuthService: authSvc}, nil, "production")

	body := `{"email":"amelie@example.com","password":"correct-horse"}`
	r := injectNopLogger(httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body)))
	w := httptest.NewRecorder()

	h.login(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"token":"test-token"`)

	cookie := sessionCookie(t, w)
	assert.True(t, cookie.Secure)
}

func TestLogin_WrongCredentials(t *testing.T) {
	authSvc := &authServiceMock{
		loginFunc: func(ctx context.Context, email, password string) (models.User, error) {
			return models.User{}, service.ErrWrongCredentials
		},
	}
	h := newTestHandler(&service.Services{AuthService: authSvc}, nil, "development")

	body := `{"email":"amelie@example.com","password":"wrong"}`
	r := injectNopLogger(httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body)))
	w := httptest.NewRecorder()

	h.login(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"status":"fail","message":"incorrect email or password"}`, w.Body.String())
}

func TestLogin_InvalidJSON(t *testing.T) {
	h := newTestHandler(&service.Services{AuthService: &authServiceMock{}}, nil, "development")

	r := injectNopLogger(httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader("{")))
	w := httptest.NewRecorder()

	h.login(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), ErrInvalidJSON.Error())
}

func TestLogout_OverwritesSessionCookie(t *testing.T) {
	h := newTestHandler(nil, nil, "development")

	r := injectNopLogger(httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil))
	w := httptest.NewRecorder()

	h.logout(w, r)

	assert.Equal(t, http.StatusOK, w.Code)

	cookie := sessionCookie(t, w)
	assert.Equal(t, "loggedout", cookie.Value)
	assert.WithinDuration(t, time.Now().Add(10*time.Second), cookie.Expires, time.Minute)
}

func TestForgotPassword_UniformAcknowledgement(t *testing.T) {
	var asked string
	authSvc := &authServiceMock{
		forgotPasswordFunc: func(ctx context.Context, email string) error {
			asked = email
			return nil
		},
	}
	h := newTestHandler(&service.Services{AuthService: authSvc}, nil, "development")

	body := `{"email":"nobody@example.com"}`
	r := injectNopLogger(httptest.NewRequest(http.MethodPost, "/api/v1/auth/forgot-password", strings.NewReader(body)))
	w := httptest.NewRecorder()

	h.forgotPassword(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "nobody@example.com", asked)
	assert.JSONEq(t, `{"status":"success","message":"if the email has an account, a reset token has been sent"}`, w.Body.String())
}

func TestResetPassword_TokenFromRoute(t *testing.T) {
	authSvc := &authServiceMock{
		resetPasswordFunc: func(ctx context.Context, token, password, passwordConfirm string) (models.User, error) {
			assert.Equal(t, "deadbeef", token)
			assert.Equal(t, "new-password", password)
			return models.User{ID: 1, Role: models.RoleUser, Active: true}, nil
		},
	}
	h := newTestHandler(&service.Services{AuthService: authSvc}, nil, "development")

	body := `{"password":"new-password","password_confirm":"new-password"}`
	r := httptest.NewRequest(http.MethodPatch, "/api/v1/auth/reset-password/deadbeef", strings.NewReader(body))
	r = withChiParam(injectNopLogger(r), "token", "deadbeef")
	w := httptest.NewRecorder()

	h.resetPassword(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"token":"test-token"`)
}

func TestResetPassword_UnknownToken(t *testing.T) {
	authSvc := &authServiceMock{
		resetPasswordFunc: func(ctx context.Context, token, password, passwordConfirm string) (models.User, error) {
			return models.User{}, service.ErrInvalidOrExpiredResetToken
		},
	}
	h := newTestHandler(&service.Services{AuthService: authSvc}, nil, "development")

	body := `{"password":"new-password","password_confirm":"new-password"}`
	r := httptest.NewRequest(http.MethodPatch, "/api/v1/auth/reset-password/bogus", strings.NewReader(body))
	r = withChiParam(injectNopLogger(r), "token", "bogus")
	w := httptest.NewRecorder()

	h.resetPassword(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), service.ErrInvalidOrExpiredResetToken.Error())
}

func TestUpdatePassword_ReissuesSession(t *testing.T) {
	authSvc := &authServiceMock{
		updatePasswordFunc: func(ctx context.Context, userID int64, currentPassword, newPassword, passwordConfirm string) (models.User, error) {
			assert.Equal(t, int64(42), userID)
			assert.Equal(t, "old-password", currentPassword)
			return models.User{ID: 42, Role: models.RoleUser, Active: true}, nil
		},
	}
	h := newTestHandler(&service.Services{AuthService: authSvc}, nil, "development")

	body := `{"current_password":"old-password","new_password":"new-password","password_confirm":"new-password"}`
	r := httptest.NewRequest(http.MethodPatch, "/api/v1/auth/update-password", strings.NewReader(body))
	r = withCtxUser(injectNopLogger(r), &models.User{ID: 42, Role: models.RoleUser})
	w := httptest.NewRecorder()

	h.updatePassword(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"token":"test-token"`)
	assert.Equal(t, "test-token", sessionCookie(t, w).Value)
}

func TestUpdatePassword_WrongCurrentPassword(t *testing.T) {
	authSvc := &authServiceMock{
		updatePasswordFunc: func(ctx context.Context, userID int64, currentPassword, newPassword, passwordConfirm string) (models.User, error) {
			return models.User{}, service.ErrWrongCredentials
		},
	}
	h := newTestHandler(&service.Services{AuthService: authSvc}, nil, "development")

	body := `{"current_password":"wrong","new_password":"new-password","password_confirm":"new-password"}`
	r := httptest.NewRequest(http.MethodPatch, "/api/v1/auth/update-password", strings.NewReader(body))
	r = withCtxUser(injectNopLogger(r), &models.User{ID: 42, Role: models.RoleUser})
	w := httptest.NewRecorder()

	h.updatePassword(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
