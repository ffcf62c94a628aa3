package jwtmw

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"message_backend/internal/feature/auth/domain/entity"
)

var (
	// ErrMissingSecret is returned when a Manager is built without a signing secret.
	ErrMissingSecret = errors.New("jwt signing secret is not set")

	// ErrInvalidToken is returned for tokens that fail signature, expiry or shape checks.
	ErrInvalidToken = errors.New("invalid token")
)

// Config holds the token settings supplied at process start.
type Config struct {
	Secret     string        `env:"SECRET,required,notEmpty"`
	Issuer     string        `env:"ISSUER" envDefault:"message_backend"`
	Expiration time.Duration `env:"EXPIRATION" envDefault:"24h"`
}

// tokenClaims is the signed payload: the identity claim set plus the
// registered iat/exp/iss fields owned by this package.
type tokenClaims struct {
	entity.ClaimSet
	jwt.RegisteredClaims
}

// Manager issues and parses HS256 session tokens.
type Manager struct {
	secret     []byte
	issuer     string
	expiration time.Duration
	now        func() time.Time
}

// NewManager creates a Manager from cfg. The secret is mandatory.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.Secret == "" {
		return nil, ErrMissingSecret
	}
	if cfg.Expiration <= 0 {
		return nil, fmt.Errorf("jwt expiration must be positive, got %v", cfg.Expiration)
	}
	return &Manager{
		secret:     []byte(cfg.Secret),
		issuer:     cfg.Issuer,
		expiration: cfg.Expiration,
		now:        time.Now,
	}, nil
}

// Issue signs claims and returns the token with its expiry time.
func (m *Manager) Issue(claims entity.ClaimSet) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.expiration)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		ClaimSet: claims,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// Parse verifies tokenStr and returns the embedded claim set.
func (m *Manager) Parse(tokenStr string) (entity.ClaimSet, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}

	var claims tokenClaims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, opts...)
	if err != nil {
		return entity.ClaimSet{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid {
		return entity.ClaimSet{}, ErrInvalidToken
	}
	if claims.ClaimSet.ID == "" {
		return entity.ClaimSet{}, fmt.Errorf("%w: missing id claim", ErrInvalidToken)
	}

	return claims.ClaimSet, nil
}
