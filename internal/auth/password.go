package auth

import (
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// legacySalt is the fixed suffix the browser build appended before encoding.
const legacySalt = "costs_salt"

// Ensure BcryptHasher implements PasswordHasher
var _ PasswordHasher = (*BcryptHasher)(nil)

// BcryptHasher implements PasswordHasher using bcrypt. It also accepts the
// reversible encoding written by the browser build, flagging such matches
// for rehash.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a hasher with the given bcrypt cost.
// Out-of-range costs fall back to bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash returns a bcrypt hash of password.
func (h *BcryptHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify checks password against a bcrypt hash or a legacy encoding.
func (h *BcryptHasher) Verify(password, stored string) (bool, bool) {
	if isBcrypt(stored) {
		if err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)); err != nil {
			return false, false
		}
		cost, err := bcrypt.Cost([]byte(stored))
		return true, err != nil || cost < h.cost
	}

	legacy := LegacyObscure(password)
	if subtle.ConstantTimeCompare([]byte(legacy), []byte(stored)) == 1 {
		return true, true
	}
	return false, false
}

// LegacyObscure reproduces the browser build's password transform:
// base64(password + "costs_salt"). It is reversible and only kept so
// imported accounts can still log in once.
func LegacyObscure(password string) string {
	return base64.StdEncoding.EncodeToString([]byte(password + legacySalt))
}

func isBcrypt(stored string) bool {
	return strings.HasPrefix(stored, "$2a$") ||
		strings.HasPrefix(stored, "$2b$") ||
		strings.HasPrefix(stored, "$2y$")
}
