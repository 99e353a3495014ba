package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher turns secrets into one-way hashes and checks them.
type Hasher interface {
	Hash(secret string) (string, error)

	// Compare reports whether secret matches hash. It never fails:
	// a malformed hash simply does not match.
	Compare(secret, hash string) bool
}

// BcryptHasher implements Hasher with bcrypt.
type BcryptHasher struct {
	cost int
}

var _ Hasher = (*BcryptHasher)(nil)

// NewBcryptHasher creates a hasher with the given cost.
// Out-of-range costs fall back to bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash returns the bcrypt hash of secret.
func (h *BcryptHasher) Hash(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash secret: %w", err)
	}
	return string(hash), nil
}

// Compare reports whether secret matches hash.
func (h *BcryptHasher) Compare(secret, hash string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}
