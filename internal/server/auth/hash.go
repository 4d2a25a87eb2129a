package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is the work factor for new account hashes.
const DefaultBcryptCost = 10

// Hasher hashes and verifies account secrets with bcrypt.
type Hasher struct {
	cost int
	// dummy is compared against when the account does not exist, so a miss
	// costs the same as a wrong secret.
	dummy []byte
}

func NewHasher(cost int) (*Hasher, error) {
	if cost == 0 {
		cost = DefaultBcryptCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}

	dummy, err := bcrypt.GenerateFromPassword([]byte("dummy-secret-for-timing"), cost)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare dummy hash: %w", err)
	}

	return &Hasher{cost: cost, dummy: dummy}, nil
}

// Hash returns the bcrypt hash of secret.
func (h *Hasher) Hash(secret string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(secret), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash secret: %w", err)
	}
	return string(b), nil
}

// Verify reports whether secret matches hash. Malformed hashes are treated as
// a mismatch.
func (h *Hasher) Verify(secret, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret))
	return err == nil
}

// VerifyMissing burns the same CPU as Verify and always reports false.
func (h *Hasher) VerifyMissing(secret string) bool {
	_ = bcrypt.CompareHashAndPassword(h.dummy, []byte(secret))
	return false
}

// IsTooLong reports whether err came from a secret longer than bcrypt accepts.
func IsTooLong(err error) bool {
	return errors.Is(err, bcrypt.ErrPasswordTooLong)
}
