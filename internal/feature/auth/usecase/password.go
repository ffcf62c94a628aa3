package usecase

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordComparer checks a plaintext password against a stored hash.
type PasswordComparer interface {
	// Compare returns nil on match and ErrPasswordMismatch on mismatch.
	Compare(hash, password string) error
}

// BcryptComparer compares passwords with bcrypt, which runs in constant time
// with respect to where the mismatch occurs.
type BcryptComparer struct{}

// Compare implements PasswordComparer.
func (BcryptComparer) Compare(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrPasswordMismatch
	}
	return fmt.Errorf("compare password hash: %w", err)
}
