package store

import "errors"

// Sentinel errors surfaced by the persistence layer. Handlers map them to
// the client-visible error taxonomy; nothing below this package inspects
// driver errors directly.
var (
	// ErrEmailAlreadyExists is returned when an insert or update violates
	// the unique constraint on users.email.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrDuplicateValue is returned when an insert or update violates any
	// other unique constraint (e.g. a duplicate tour name).
	ErrDuplicateValue = errors.New("duplicate field value")

	// ErrNoUserWasFound is returned when a user lookup matches no active
	// account.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrNotFound is returned when a lookup by id or filter yields no
	// document.
	ErrNotFound = errors.New("no document was found")

	// ErrInvalidValue is returned when Postgres rejects a bound parameter
	// for a column (invalid text representation), i.e. a type mismatch on
	// a field supplied by the client.
	ErrInvalidValue = errors.New("invalid value for field")

	// Low-level failure classes. All map to HTTP 500.
	ErrBuildingSQLQuery = errors.New("error building SQL query")
	ErrExecutingQuery   = errors.New("error executing query")
	ErrScanningRow      = errors.New("error scanning row")
	ErrScanningRows     = errors.New("error scanning rows")
)
