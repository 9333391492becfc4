package password

import (
	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost keeps a single verification in the tens of milliseconds
	DefaultCost = 11
)

// Hasher hashes and verifies passwords using bcrypt
type Hasher struct {
	cost int
}

// NewHasher creates a bcrypt hasher. Costs outside bcrypt's range fall back to DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash hashes a password using bcrypt
func (h *Hasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify compares a password with a hash
func (h *Hasher) Verify(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// Cost returns the bcrypt work factor in use
func (h *Hasher) Cost() int {
	return h.cost
}
