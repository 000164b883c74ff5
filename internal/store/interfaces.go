package store

import (
	"context"
	"time"

	"github.com/trailhead-app/trailhead/internal/query"
	"github.com/trailhead-app/trailhead/models"
)

// UserRepository is the credential-aware data-access layer for accounts.
// All lookups see only active users; deactivated accounts behave as if they
// do not exist.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindActiveUserByID(ctx context.Context, id int64) (models.User, error)
	UpdateProfile(ctx context.Context, id int64, name, email string) (models.User, error)

	// UpdatePassword stores a new password hash, stamps
	// password_changed_at, and clears any outstanding reset token in the
	// same statement.
	UpdatePassword(ctx context.Context, id int64, passwordHash string) (models.User, error)

	// SetResetToken persists the digest and expiry of a freshly issued
	// password-reset token.
	SetResetToken(ctx context.Context, id int64, tokenDigest string, expiresAt time.Time) error

	// FindUserByResetTokenDigest returns the user holding an unexpired
	// reset token with the given digest. Expired and unknown digests are
	// indistinguishable: both yield ErrNoUserWasFound.
	FindUserByResetTokenDigest(ctx context.Context, tokenDigest string) (models.User, error)

	// Deactivate soft-deletes the account; the record is retained.
	Deactivate(ctx context.Context, id int64) error

	// PurgeExpiredResetTokens clears reset tokens whose expiry has passed
	// and reports how many rows were touched. Expired tokens are already
	// unusable; the purge just keeps stale digests out of the table.
	PurgeExpiredResetTokens(ctx context.Context) (int64, error)
}

// ResourceRepository is the generic document-resource data-access layer the
// handler factory is parametrized over.
type ResourceRepository[T any] interface {
	// Schema exposes the resource's query schema so transport code can
	// parse list parameters against the same column allow-list the
	// repository executes with.
	Schema() query.Schema

	Insert(ctx context.Context, doc T) (T, error)
	FindByID(ctx context.Context, id int64) (T, error)
	UpdateByID(ctx context.Context, id int64, doc T) (T, error)
	DeleteByID(ctx context.Context, id int64) error
	FindAll(ctx context.Context, spec query.Spec) ([]T, error)
	Count(ctx context.Context, spec query.Spec) (int64, error)
}
