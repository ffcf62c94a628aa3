package usecase

import "errors"

var (
	// ErrUserNotFound is returned by UserDirectory implementations when no
	// user matches the identifier. The verifier turns it into a rejection.
	ErrUserNotFound = errors.New("user not found")

	// ErrPasswordMismatch is returned by PasswordComparer when the password does not match.
	ErrPasswordMismatch = errors.New("password does not match")
)
