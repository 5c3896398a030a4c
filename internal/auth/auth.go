// Package auth holds the authorization predicate, credential hashing and
// the token issuer.
package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"storefront/internal/models"
)

// IsAdmin reports whether role grants administrative capability. It is
// recomputed from the stored role on every check.
func IsAdmin(role *models.Role) bool {
	return role != nil && role.IsAdministrator()
}

// PasswordHasher is the credential hashing boundary.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) (bool, error)
}

type BcryptHasher struct {
	Cost int
}

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

// Compare returns false with a nil error when password does not match.
func (BcryptHasher) Compare(hash, password string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
