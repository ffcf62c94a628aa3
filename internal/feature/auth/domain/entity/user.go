// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered account as stored in the user directory.
// The auth core only reads it; registration and verification flows own its writes.
type User struct {
	// ID is the opaque, stable identifier for the user.
	ID string

	// Username is the public handle. It must be unique across all users.
	Username string

	// Email is the user's email address. It must be unique across all users.
	Email string

	// PasswordHash is the bcrypt hash of the user's password.
	// This should never store plaintext passwords.
	PasswordHash string `json:"-"`

	// IsVerified reports whether the account passed email verification.
	// Login is refused until it is true.
	IsVerified bool

	// IsAcceptingMessages is the user's inbox setting.
	IsAcceptingMessages bool

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}
