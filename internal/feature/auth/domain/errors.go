// Package domain defines domain-level errors for the auth feature.
package domain

import "errors"

// Kind classifies why a login attempt was rejected.
type Kind int

const (
	// KindUnknown is reported for errors that did not originate in the credential check.
	KindUnknown Kind = iota
	// KindMalformedRequest means the identifier or password was missing.
	KindMalformedRequest
	// KindUserNotFound means no account matched the identifier.
	KindUserNotFound
	// KindAccountNotVerified means the account exists but has not completed verification.
	KindAccountNotVerified
	// KindInvalidPassword means the password did not match the stored hash.
	KindInvalidPassword
	// KindDirectoryUnavailable means the user directory could not be queried.
	KindDirectoryUnavailable
)

var kindNames = map[Kind]string{
	KindUnknown:              "unknown",
	KindMalformedRequest:     "malformed request",
	KindUserNotFound:         "user not found",
	KindAccountNotVerified:   "account not verified",
	KindInvalidPassword:      "invalid password",
	KindDirectoryUnavailable: "directory unavailable",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[KindUnknown]
}

// IsCredentialRejection reports whether the kind should be shown to clients
// as the generic "invalid credentials" failure.
func (k Kind) IsCredentialRejection() bool {
	return k == KindMalformedRequest || k == KindUserNotFound || k == KindInvalidPassword
}

// AuthError is the rejection returned by the credential check.
// Err optionally carries the underlying cause for logging.
type AuthError struct {
	Kind Kind
	Err  error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return e.Kind.String() + ": " + e.Err.Error()
	}
	return e.Kind.String()
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// Is matches any AuthError of the same kind, so callers can compare against
// the sentinels below regardless of the wrapped cause.
func (e *AuthError) Is(target error) bool {
	var t *AuthError
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Domain errors for authentication operations.
var (
	ErrMalformedRequest     = &AuthError{Kind: KindMalformedRequest}
	ErrUserNotFound         = &AuthError{Kind: KindUserNotFound}
	ErrAccountNotVerified   = &AuthError{Kind: KindAccountNotVerified}
	ErrInvalidPassword      = &AuthError{Kind: KindInvalidPassword}
	ErrDirectoryUnavailable = &AuthError{Kind: KindDirectoryUnavailable}
)

// Reject builds an AuthError of the given kind wrapping cause.
func Reject(kind Kind, cause error) *AuthError {
	return &AuthError{Kind: kind, Err: cause}
}

// KindOf returns the rejection kind carried by err, or KindUnknown.
func KindOf(err error) Kind {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUnknown
}
