package http

import "errors"

// Sentinel errors used by the authentication middleware when extracting the
// session token from a request. Callers can match against them with
// [errors.Is].
var (
	// ErrNotLoggedIn is returned when a request to a protected route
	// carries no session token at all, neither as a bearer header nor as
	// the session cookie.
	ErrNotLoggedIn = errors.New("you are not logged in; please log in to get access")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is present but cannot be split into at least two
	// space-separated parts (i.e. the token value is missing entirely).
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrEmptyToken is returned when the "Authorization" header contains
	// the expected scheme prefix but the token value itself is an empty
	// string.
	ErrEmptyToken = errors.New("empty token in `Authorization` header")

	// ErrUserNoLongerExists is returned when a syntactically valid token
	// refers to an account that has been deleted or deactivated since the
	// token was issued.
	ErrUserNoLongerExists = errors.New("the user belonging to this token no longer exists")

	// ErrStaleToken is returned when the token predates the user's most
	// recent password change.
	ErrStaleToken = errors.New("password was changed recently; please log in again")

	// ErrForbidden is returned by the role guard when the authenticated
	// user's role is not in the route's allow-list.
	ErrForbidden = errors.New("you do not have permission to perform this action")
)

// errMissingAuthContext signals a route wiring bug: restrictTo ran without
// protect in front of it. Deliberately absent from the error table so it
// renders as a masked HTTP 500.
var errMissingAuthContext = errors.New("no authenticated user in request context")

// Sentinel errors for malformed request payloads.
var (
	ErrInvalidJSON        = errors.New("invalid JSON was passed")
	ErrInvalidResourceID  = errors.New("invalid resource id")
	ErrUnknownUpdateField = errors.New("unknown field in update payload")

	// ErrPasswordUpdateNotAllowed rejects attempts to change the password
	// through the profile endpoint.
	ErrPasswordUpdateNotAllowed = errors.New("this route is not for password updates; use /auth/update-password")
)
