package auth

import "errors"

// Error kinds surfaced by the authentication core. Handlers and middleware
// map these to HTTP status codes; anything not listed here is treated as an
// internal failure and never as "unauthenticated".
var (
	// ErrDuplicateUsername is returned by registration when the username is taken.
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrInvalidCredentials covers both unknown username and wrong password,
	// so responses cannot be used for username enumeration.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// Token verification failures.
	ErrMalformedToken = errors.New("malformed token")
	ErrTokenExpired   = errors.New("token expired")
	ErrBadSignature   = errors.New("invalid token signature")

	// ErrUnknownSubject is returned when a valid token names a user that no
	// longer exists in the credential store.
	ErrUnknownSubject = errors.New("token subject not found")

	// ErrNoCredential means no token was presented at all (403), as opposed
	// to ErrUnauthenticated, a presented-but-invalid token (401).
	ErrNoCredential    = errors.New("no token provided")
	ErrUnauthenticated = errors.New("you are not authenticated")

	// ErrForbidden gates admin-only operations.
	ErrForbidden = errors.New("you are not authorized to perform this operation")
)
