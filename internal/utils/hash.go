package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// resetTokenBytes is the entropy of a password-reset token.
// 32 random bytes encode to 64 hex characters.
const resetTokenBytes = 32

// HashPassword produces a salted bcrypt hash of the given plaintext
// password using the provided cost factor.
//
// The cost factor is tuned in configuration so that a single verification
// takes on the order of 100ms on commodity hardware. bcrypt embeds the salt
// in the returned hash, so no separate salt storage is needed.
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	return string(hash), nil
}

// CheckPassword reports whether the plaintext password matches the stored
// bcrypt hash. bcrypt's comparison does not leak the mismatch position
// through timing.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateResetToken creates a cryptographically random password-reset
// token and its storable digest.
//
// The plaintext token is returned to the caller exactly once for
// out-of-band delivery; only the digest may be persisted.
func GenerateResetToken() (token, digest string, err error) {
	buf := make([]byte, resetTokenBytes)
	if _, err = rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("error generating reset token: %w", err)
	}

	token = hex.EncodeToString(buf)
	return token, HashResetToken(token), nil
}

// HashResetToken computes the hex-encoded SHA-256 digest of a reset token.
// Reset tokens are already high-entropy random values, so a fast one-way
// hash is sufficient; the expensive bcrypt treatment is reserved for
// user-chosen passwords.
func HashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ResetTokenDigestEqual compares two reset-token digests in constant time.
func ResetTokenDigestEqual(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
