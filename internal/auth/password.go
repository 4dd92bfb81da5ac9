package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher produces and verifies one-way password digests. Implementations must
// embed a random salt so hashing the same input twice yields different output.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// BcryptHasher hashes passwords with bcrypt, which is deliberately slow and
// adaptive via its cost parameter.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a Hasher with the given cost. A cost outside
// bcrypt's valid range falls back to the library default.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether password matches hash. Malformed hashes simply fail
// verification; no error escapes.
func (h *BcryptHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
