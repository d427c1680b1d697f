package csrf

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"
)

const saltBytes = 8

// issueToken mints a new salt-digest token for secret.
func issueToken(secret string) (string, error) {
	salt, err := randomHex(saltBytes)
	if err != nil {
		return "", fmt.Errorf("csrf: generating salt: %w", err)
	}
	return issueTokenWithSalt(secret, salt), nil
}

func issueTokenWithSalt(secret, salt string) string {
	return salt + "-" + digest(secret, salt)
}

// digest is HMAC-SHA256 keyed by the secret over salt-secret, hex encoded.
func digest(secret, salt string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(salt))
	mac.Write([]byte{'-'})
	mac.Write([]byte(secret))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify reports whether token was issued for secret. It returns
// ErrMalformedToken when the token has no salt component and ErrInvalidToken
// when the digest does not match.
func Verify(token, secret string) error {
	salt, presented, ok := strings.Cut(token, "-")
	if !ok || salt == "" || presented == "" {
		return ErrMalformedToken
	}
	expected := digest(secret, salt)
	if subtle.ConstantTimeCompare([]byte(expected), []byte(presented)) != 1 {
		return ErrInvalidToken
	}
	return nil
}
