package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"message_backend/internal/feature/auth/domain"
	"message_backend/internal/feature/auth/domain/entity"
)

// UserDirectory looks up user records by identifier.
// Interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserDirectory interface {
	// FindByIdentifier returns the user whose username or email equals identifier.
	// It returns ErrUserNotFound when no such user exists.
	FindByIdentifier(ctx context.Context, identifier string) (*entity.User, error)
}

// CredentialVerifier decides whether an identifier/password pair authenticates a user.
type CredentialVerifier struct {
	directory     UserDirectory
	comparer      PasswordComparer
	lookupTimeout time.Duration
}

// NewCredentialVerifier creates a verifier. A zero lookupTimeout leaves the
// directory call bounded only by the caller's context.
func NewCredentialVerifier(directory UserDirectory, comparer PasswordComparer, lookupTimeout time.Duration) *CredentialVerifier {
	if comparer == nil {
		comparer = BcryptComparer{}
	}
	return &CredentialVerifier{
		directory:     directory,
		comparer:      comparer,
		lookupTimeout: lookupTimeout,
	}
}

// Verify authenticates identifier and password. Every failure is a
// *domain.AuthError; storage errors never escape unwrapped.
//
// The verification gate runs before the password comparison, so an
// unverified account's password is never checked.
func (v *CredentialVerifier) Verify(ctx context.Context, identifier, password string) (entity.AuthenticatedIdentity, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return entity.AuthenticatedIdentity{}, domain.Reject(domain.KindMalformedRequest, nil)
	}

	user, err := v.lookup(ctx, identifier)
	if err != nil {
		return entity.AuthenticatedIdentity{}, err
	}

	if !user.IsVerified {
		return entity.AuthenticatedIdentity{}, domain.Reject(domain.KindAccountNotVerified, nil)
	}

	if err := v.comparer.Compare(user.PasswordHash, password); err != nil {
		return entity.AuthenticatedIdentity{}, domain.Reject(domain.KindInvalidPassword, err)
	}

	return entity.AuthenticatedIdentity{
		ID:                  user.ID,
		Username:            user.Username,
		IsVerified:          user.IsVerified,
		IsAcceptingMessages: user.IsAcceptingMessages,
	}, nil
}

func (v *CredentialVerifier) lookup(ctx context.Context, identifier string) (*entity.User, error) {
	if v.lookupTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, v.lookupTimeout)
		defer cancel()
	}

	user, err := v.directory.FindByIdentifier(ctx, identifier)
	switch {
	case err == nil && user != nil:
		return user, nil
	case errors.Is(err, ErrUserNotFound):
		return nil, domain.Reject(domain.KindUserNotFound, nil)
	case err == nil:
		return nil, domain.Reject(domain.KindDirectoryUnavailable, errors.New("directory returned no user and no error"))
	default:
		return nil, domain.Reject(domain.KindDirectoryUnavailable, err)
	}
}
