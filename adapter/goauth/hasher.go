package goauth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/macromate/go-macromate/pkg/types"
)

// BcryptHasher implements types.PasswordHasher with bcrypt hashes, the
// format go-auth verifies at login.
type BcryptHasher struct {
	Cost int
}

var _ types.PasswordHasher = BcryptHasher{}

// Hash returns the bcrypt hash of password.
func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Compare returns nil when password matches hash.
func (BcryptHasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
