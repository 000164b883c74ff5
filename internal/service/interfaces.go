package service

import (
	"context"

	"github.com/trailhead-app/trailhead/models"
)

// AuthService covers the account lifecycle: registration, credential
// verification, session token issuance and parsing, and the password-reset
// flow.
type AuthService interface {
	Signup(ctx context.Context, req models.SignupRequest) (models.User, error)
	Login(ctx context.Context, email, password string) (models.User, error)

	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)

	// ForgotPassword issues a single-use reset token and mails it to the
	// account owner. An unknown email is not an error: the outcome is
	// indistinguishable from the known-email case so the endpoint cannot
	// be used to probe which addresses have accounts.
	ForgotPassword(ctx context.Context, email string) error

	// ResetPassword consumes an outstanding reset token and installs the
	// new password. The token is single-use: a successful reset clears it.
	ResetPassword(ctx context.Context, token, password, passwordConfirm string) (models.User, error)

	// UpdatePassword changes the password of an authenticated user after
	// re-verifying the current one.
	UpdatePassword(ctx context.Context, userID int64, currentPassword, newPassword, passwordConfirm string) (models.User, error)
}

// Mailer delivers the password-reset token to the account owner. The
// plaintext token travels only through this port; storage keeps a digest.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, token string) error
}
