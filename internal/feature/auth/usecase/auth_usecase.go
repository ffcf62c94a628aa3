// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"time"

	"message_backend/internal/feature/auth/domain/entity"
)

// TokenIssuer は署名済みセッショントークン発行のインターフェースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（platform/jwt）ではなくコンシューマー（usecase）が定義します。
type TokenIssuer interface {
	// Issue は指定されたクレームを埋め込んだ署名済みトークンと有効期限を返します。
	Issue(claims entity.ClaimSet) (string, time.Time, error)
}

// LoginResult はログイン成功時に返される値です。
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Session   entity.SessionView
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	verifier *CredentialVerifier
	issuer   TokenIssuer
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(verifier *CredentialVerifier, issuer TokenIssuer) *authUsecase {
	return &authUsecase{
		verifier: verifier,
		issuer:   issuer,
	}
}

// Login はユーザーを認証し、成功時に署名済みトークンとセッションビューを返します。
// 認証失敗時は *domain.AuthError を返します。
func (u *authUsecase) Login(ctx context.Context, identifier, password string) (LoginResult, error) {
	identity, err := u.verifier.Verify(ctx, identifier, password)
	if err != nil {
		return LoginResult{}, err
	}

	claims := AssembleClaims(identity)
	return u.issue(claims)
}

// Refresh は既存トークンのクレームをそのまま引き継いだ新しいトークンを発行します。
// ディレクトリへの再問い合わせは行いません。
func (u *authUsecase) Refresh(_ context.Context, prev entity.ClaimSet) (LoginResult, error) {
	return u.issue(RefreshClaims(prev, nil))
}

func (u *authUsecase) issue(claims entity.ClaimSet) (LoginResult, error) {
	token, expiresAt, err := u.issuer.Issue(claims)
	if err != nil {
		return LoginResult{}, fmt.Errorf("failed to generate token: %w", err)
	}

	return LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		Session:   MaterializeSession(claims),
	}, nil
}
