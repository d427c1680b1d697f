package session

import (
	"context"
	"time"
)

// Store defines the interface for session storage backends.
// A Store persists and retrieves encoded session data by session id.
type Store interface {
	// Get retrieves the data stored under id. found is false when there is
	// no such session or it has expired.
	Get(ctx context.Context, id string) (data []byte, found bool, err error)

	// Set stores data under id until expiresAt, overwriting any previous value.
	Set(ctx context.Context, id string, data []byte, expiresAt time.Time) error

	// Delete removes id. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error
}
