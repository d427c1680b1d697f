package csrf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueTokenShape(t *testing.T) {
	tok, err := issueToken("0123456789abcdef0123456789abcdef")
	require.NoError(t, err)

	salt, dig, ok := strings.Cut(tok, "-")
	require.True(t, ok)
	assert.Len(t, salt, 2*saltBytes)
	assert.Len(t, dig, 64)
}

func TestVerifyRoundTrip(t *testing.T) {
	secrets := []string{"s", "0123456789abcdef0123456789abcdef", "with-dashes-in-it"}
	salts := []string{"a1b2c3d4e5f60718", "0000000000000000", "x"}

	for _, secret := range secrets {
		for _, salt := range salts {
			tok := issueTokenWithSalt(secret, salt)
			assert.NoError(t, Verify(tok, secret), "secret=%q salt=%q", secret, salt)
		}
	}

	for range 20 {
		secret, err := randomHex(secretBytes)
		require.NoError(t, err)
		tok, err := issueToken(secret)
		require.NoError(t, err)
		assert.NoError(t, Verify(tok, secret))
	}
}

func TestVerifyTamperedDigest(t *testing.T) {
	secret := "0123456789abcdef0123456789abcdef"
	tok := issueTokenWithSalt(secret, "a1b2c3d4e5f60718")
	dash := strings.IndexByte(tok, '-')

	for i := dash + 1; i < len(tok); i++ {
		b := []byte(tok)
		if b[i] == 'a' {
			b[i] = 'b'
		} else {
			b[i] = 'a'
		}
		assert.ErrorIs(t, Verify(string(b), secret), ErrInvalidToken, "position %d", i)
	}
}

func TestVerifyTamperedSalt(t *testing.T) {
	secret := "0123456789abcdef0123456789abcdef"
	tok := issueTokenWithSalt(secret, "a1b2c3d4e5f60718")
	assert.ErrorIs(t, Verify("f"+tok[1:], secret), ErrInvalidToken)
}

func TestVerifySecretIsolation(t *testing.T) {
	tok, err := issueToken("secret-one")
	require.NoError(t, err)

	assert.NoError(t, Verify(tok, "secret-one"))
	assert.ErrorIs(t, Verify(tok, "secret-two"), ErrInvalidToken)
}

func TestVerifyMalformed(t *testing.T) {
	for _, tok := range []string{"", "invalidToken", "-abcdef", "abcdef-"} {
		assert.ErrorIs(t, Verify(tok, "secret"), ErrMalformedToken, "token %q", tok)
	}
}

func TestVerifyExtraDashesBelongToDigest(t *testing.T) {
	// only the first dash separates the salt
	err := Verify("salt-dig-est", "secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
