package models

import (
	"errors"
	"time"
)

// Role is the closed set of authorization roles a user can hold.
// Unknown role values are rejected at user creation and update time, not at
// authorization time.
type Role string

const (
	RoleUser      Role = "user"
	RoleGuide     Role = "guide"
	RoleLeadGuide Role = "lead-guide"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is one of the declared roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleGuide, RoleLeadGuide, RoleAdmin:
		return true
	}
	return false
}

// ErrUnknownRole is returned when a user record carries a role outside the
// closed enumeration.
var ErrUnknownRole = errors.New("unknown role value")

// User represents an account entity used for authentication and authorization.
// It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// ID is the internal unique identifier of the user.
	ID int64 `json:"id"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// Email is the unique address the user authenticates with.
	Email string `json:"email"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// It is never serialized into API responses.
	PasswordHash string `json:"-"`

	// Role determines which guarded routes the user may call.
	Role Role `json:"role"`

	// PasswordChangedAt records the last password change. Session tokens
	// issued before this moment are rejected by the auth middleware.
	PasswordChangedAt *time.Time `json:"-"`

	// PasswordResetTokenHash is the SHA-256 digest of the outstanding
	// password-reset token, if any. The plaintext is never stored.
	PasswordResetTokenHash *string `json:"-"`

	// PasswordResetExpiresAt bounds the lifetime of the outstanding
	// password-reset token.
	PasswordResetExpiresAt *time.Time `json:"-"`

	// Active is the soft-delete flag. Deactivated accounts are treated as
	// non-existent for authentication purposes; the record is retained.
	Active bool `json:"-"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// CanUseTokenIssuedAt reports whether a session token issued at the given
// moment is still fresh for this user: tokens minted before the last
// password change are stale and must be rejected.
//
// The "iat" claim carries second precision, while password_changed_at is
// stamped with full precision by the database. The change timestamp is
// truncated to seconds before comparing so that a token issued in the same
// second as the change (e.g. the session returned by the reset endpoint
// itself) stays valid.
func (u User) CanUseTokenIssuedAt(issuedAt time.Time) bool {
	if u.PasswordChangedAt == nil {
		return true
	}
	return !issuedAt.Before(u.PasswordChangedAt.Truncate(time.Second))
}
