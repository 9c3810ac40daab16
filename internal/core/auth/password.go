package auth

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/crypto/bcrypt"

	"github.com/pictobox/pictobox-api/internal/core/domain"
	"github.com/pictobox/pictobox-api/internal/metrics"
)

// maxPasswordBytes is bcrypt's input limit. It counts bytes, not characters.
const maxPasswordBytes = 72

// PasswordHasher hashes and verifies passwords with bcrypt. Every call to Hash
// draws a fresh salt, so equal inputs never produce equal hashes.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher returns a hasher using cost, falling back to
// bcrypt.DefaultCost when cost is outside bcrypt's accepted range.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash returns the bcrypt hash of raw. Passwords over 72 bytes are rejected
// as invalid input.
func (h *PasswordHasher) Hash(raw string) (string, error) {
	if len(raw) > maxPasswordBytes {
		return "", fmt.Errorf("%w: password must be at most %d bytes", domain.ErrInvalidInput, maxPasswordBytes)
	}

	timer := prometheus.NewTimer(metrics.PasswordHashDuration.WithLabelValues("hash"))
	defer timer.ObserveDuration()

	hash, err := bcrypt.GenerateFromPassword([]byte(raw), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether raw matches hash. A malformed hash is a mismatch.
func (h *PasswordHasher) Verify(raw, hash string) bool {
	timer := prometheus.NewTimer(metrics.PasswordHashDuration.WithLabelValues("verify"))
	defer timer.ObserveDuration()

	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw)) == nil
}
