package models

import "time"

// Token is a stateless session credential. It is not persisted anywhere;
// verification recomputes the signature instead of looking the token up.
type Token struct {
	// UserID is the subject the token was issued for.
	UserID int64 `json:"-"`

	// IssuedAt is the token's issuance time, taken from the "iat" claim.
	// The auth middleware compares it against the user's
	// PasswordChangedAt to reject tokens minted before a password change.
	IssuedAt time.Time `json:"-"`

	// SignedString is the compact serialized JWT handed to the client.
	SignedString string `json:"token"`
}
