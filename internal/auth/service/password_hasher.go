package service

//go:generate mockgen -destination=../../mocks/mock_password_hasher.go -package=mocks github.com/egarc258/ecommerce-app/internal/auth/service PasswordHasher

import (
	"errors"
	"fmt"

	autherror "github.com/egarc258/ecommerce-app/internal/errors"
	"golang.org/x/crypto/bcrypt"
)

// maxPasswordBytes is bcrypt's input limit. It counts bytes, so a short multibyte
// password can still exceed it.
const maxPasswordBytes = 72

var errEmptyPassword = errors.New("password must not be empty")

type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// BcryptHasher produces modular-crypt bcrypt strings ($2a$<cost>$<salt><digest>),
// so hashes written by other bcrypt implementations ($2a$, $2b$, $2y$) verify as well.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", errEmptyPassword
	}
	if len(plaintext) > maxPasswordBytes {
		return "", fmt.Errorf("%w: password longer than %d bytes", autherror.ErrValidation, maxPasswordBytes)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches hash. A malformed hash is a plain mismatch.
func (h *BcryptHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

func (h *BcryptHasher) Cost() int {
	return h.cost
}
