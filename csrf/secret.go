package csrf

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// SecretKey is the session key the per-session secret is stored under.
const SecretKey = "CSRFSecret"

const secretBytes = 16

// Session is the slice of a session store the package needs: a string
// key-value map scoped to the current request. Synchronization is the store's
// business.
type Session interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

// secretFor returns the session secret, creating and storing one on first use.
// An existing secret is never replaced.
func secretFor(sess Session) (secret string, created bool, err error) {
	if sess == nil {
		return "", false, ErrNoSession
	}
	if s, ok := sess.Get(SecretKey); ok && s != "" {
		return s, false, nil
	}

	secret, err = randomHex(secretBytes)
	if err != nil {
		return "", false, fmt.Errorf("csrf: generating secret: %w", err)
	}
	sess.Set(SecretKey, secret)
	return secret, true, nil
}

func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
