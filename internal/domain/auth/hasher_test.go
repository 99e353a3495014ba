package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_RoundTrip(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	for _, secret := range []string{"", "a", "correct horse battery staple", "пароль-ünïcode", "with\x00null"} {
		hash, err := h.Hash(secret)
		require.NoError(t, err)
		assert.True(t, h.Compare(secret, hash), "secret %q", secret)
		assert.False(t, h.Compare(secret+"x", hash), "secret %q", secret)
	}
}

func TestBcryptHasher_DifferentSecrets(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("other-secret")
	require.NoError(t, err)
	assert.False(t, h.Compare("secret", hash))
}

func TestBcryptHasher_MalformedHashNeverMatches(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	for _, hash := range []string{"", "plain", "$2a$04$short", "$2a$99$invalidcostinvalidcostinvalidcostinvalidcostinvalidco"} {
		assert.False(t, h.Compare("secret", hash), hash)
	}
}

func TestNewBcryptHasher_CostFallback(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(100).cost)
	assert.Equal(t, 12, NewBcryptHasher(12).cost)
}

func TestBcryptHasher_TooLongSecret(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	_, err := h.Hash(string(make([]byte, 73)))
	assert.Error(t, err)
}
