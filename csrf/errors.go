package csrf

import "errors"

// Every error below rejects the request with 403 Forbidden. They differ only
// in the reason string written to the client.
var (
	// ErrNoSession means no session was attached to the request. The session
	// middleware has to run before Protect.
	ErrNoSession = errors.New("csrf: no session")

	// ErrNoToken means the extractor found no candidate token.
	ErrNoToken = errors.New("csrf: token not found")

	// ErrMalformedToken means the token is not of the form salt-digest.
	ErrMalformedToken = errors.New("csrf: malformed token")

	// ErrInvalidToken means the digest does not match the session secret.
	ErrInvalidToken = errors.New("csrf: invalid token")

	// ErrBadOrigin is returned by the optional Origin/Referer check.
	ErrBadOrigin = errors.New("csrf: bad origin")
)

// Reason returns the human readable message written in a 403 response for err.
// It never includes the token or the secret.
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrNoSession):
		return "Session required."
	case errors.Is(err, ErrNoToken):
		return "Missing CSRF token."
	case errors.Is(err, ErrMalformedToken):
		return "Malformed CSRF token."
	case errors.Is(err, ErrBadOrigin):
		return "Invalid request origin."
	default:
		return "Invalid CSRF token."
	}
}
