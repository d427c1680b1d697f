package session

import "errors"

var (
	// ErrInvalidID is returned by stores for an empty session id.
	ErrInvalidID = errors.New("session: invalid id")

	// ErrDecode means the stored payload could not be decoded.
	ErrDecode = errors.New("session: decode failed")
)
