package common

import "errors"

// Sentinel errors shared by the API gateway, the auth lifecycle manager and
// the leave service. Callers should match them with errors.Is.
var (
	// ErrUnauthorized reports an authorization failure that survived the
	// single refresh-and-retry attempt, or invalid credentials on login.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrSessionExpired is terminal for the current session: the refresh
	// token was rejected (or missing) and all stored credentials have been
	// cleared. The UI reacts by redirecting to the login view.
	ErrSessionExpired = errors.New("session expired")

	// ErrUnavailable reports a transport-level failure before any backend
	// response was received.
	ErrUnavailable = errors.New("server unavailable")

	// ErrNotPermitted reports a role-gated operation invoked by the wrong
	// role (e.g. an employee approving a leave request).
	ErrNotPermitted = errors.New("operation not permitted for this role")

	// ErrNotFound reports a missing resource.
	ErrNotFound = errors.New("not found")
)
