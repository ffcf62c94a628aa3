// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"message_backend/internal/feature/auth/domain"
	"message_backend/internal/feature/auth/domain/entity"
	"message_backend/internal/feature/auth/transport/http/dto"
	"message_backend/internal/feature/auth/usecase"
	"message_backend/internal/platform/http/middleware"
	jwtmw "message_backend/internal/platform/jwt"
)

// retryAfterSeconds はDirectoryUnavailable時にRetry-Afterで返す秒数です。
const retryAfterSeconds = "5"

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Login はユーザーを認証し、成功時に署名済みトークンを返します。
	Login(ctx context.Context, identifier, password string) (usecase.LoginResult, error)
	// Refresh は既存のクレームを引き継いだトークンを再発行します。
	Refresh(ctx context.Context, claims entity.ClaimSet) (usecase.LoginResult, error)
}

// AttemptLimiter はログイン失敗回数の制限を定義します。
type AttemptLimiter interface {
	// Blocked は失敗回数が上限に達しているかを返します。試行としては数えません。
	Blocked(ctx context.Context, key string) (bool, error)
	// Fail は失敗を1回記録します。
	Fail(ctx context.Context, key string) error
	// Reset はカウントを消去します。
	Reset(ctx context.Context, key string) error
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth    AuthUsecase
	limiter AttemptLimiter
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
// limiterがnilの場合、試行回数の制限は行いません。
func NewAuthHandler(auth AuthUsecase, limiter AttemptLimiter) *AuthHandler {
	return &AuthHandler{auth: auth, limiter: limiter}
}

// Login はユーザーログインAPIエンドポイントを処理します。
// - JSONとして解釈できない場合は400を返却
// - 入力欠落・ユーザー不在・パスワード不一致は区別せず401を返却
// - 未認証アカウントは403を返却
// - ユーザーディレクトリ障害時は503を返却
// - 同じidentifierとIPの組で失敗が上限に達している場合は429を返却
// - 成功時はトークンとセッションビュー付きで200を返却
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login request malformed", "error", err, "remote_addr", c.ClientIP(), "request_id", c.GetString(middleware.ContextRequestID))
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: dto.MsgInvalidRequest})
		return
	}

	ctx := c.Request.Context()
	key := limiterKey(req.Identifier, c.ClientIP())
	if h.blocked(ctx, key) {
		slog.Warn("login rate limited", "identifier", req.Identifier, "remote_addr", c.ClientIP())
		c.JSON(http.StatusTooManyRequests, dto.ErrorRes{Error: dto.MsgTooManyAttempts})
		return
	}

	res, err := h.auth.Login(ctx, req.Identifier, req.Password)
	if err != nil {
		if h.limiter != nil && domain.KindOf(err).IsCredentialRejection() {
			if ferr := h.limiter.Fail(ctx, key); ferr != nil {
				slog.Warn("login limiter record failed", "error", ferr)
			}
		}
		h.writeLoginError(c, req.Identifier, err)
		return
	}

	if h.limiter != nil {
		if err := h.limiter.Reset(ctx, key); err != nil {
			slog.Warn("login limiter reset failed", "error", err)
		}
	}

	slog.Info("user login successful", "user_id", res.Session.ID, "remote_addr", c.ClientIP(), "request_id", c.GetString(middleware.ContextRequestID))
	c.JSON(http.StatusOK, dto.TokenRes{Token: res.Token, ExpiresAt: res.ExpiresAt, Session: res.Session})
}

// Refresh は認証済みリクエストのクレームをそのまま引き継いだトークンを再発行します。
// jwtmw.AuthRequired の後段で使用します。
func (h *AuthHandler) Refresh(c *gin.Context) {
	claims, ok := jwtmw.ClaimsFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorRes{Error: dto.MsgUnauthorized})
		return
	}

	res, err := h.auth.Refresh(c.Request.Context(), claims)
	if err != nil {
		slog.Error("token refresh failed", "error", err, "user_id", claims.ID)
		c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: dto.MsgInternal})
		return
	}

	c.JSON(http.StatusOK, dto.TokenRes{Token: res.Token, ExpiresAt: res.ExpiresAt, Session: res.Session})
}

// Session は現在のトークンから復元したセッションビューを返します。
func (h *AuthHandler) Session(c *gin.Context) {
	view, ok := CurrentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorRes{Error: dto.MsgUnauthorized})
		return
	}
	c.JSON(http.StatusOK, view)
}

// CurrentSession はjwtmw.AuthRequiredが格納したクレームからセッションビューを組み立てます。
func CurrentSession(c *gin.Context) (entity.SessionView, bool) {
	claims, ok := jwtmw.ClaimsFromContext(c)
	if !ok {
		return entity.SessionView{}, false
	}
	return usecase.MaterializeSession(claims), true
}

func (h *AuthHandler) blocked(ctx context.Context, key string) bool {
	if h.limiter == nil {
		return false
	}
	blocked, err := h.limiter.Blocked(ctx, key)
	if err != nil {
		// Redis障害時はログインを止めない
		slog.Warn("login limiter unavailable", "error", err)
		return false
	}
	return blocked
}

// writeLoginError はエラー種別をHTTPレスポンスに変換します。
// ユーザー列挙を防ぐため、資格情報系の失敗は同一のメッセージにまとめます。
func (h *AuthHandler) writeLoginError(c *gin.Context, identifier string, err error) {
	kind := domain.KindOf(err)
	attrs := []any{"kind", kind.String(), "identifier", identifier, "remote_addr", c.ClientIP(), "request_id", c.GetString(middleware.ContextRequestID)}

	switch {
	case kind.IsCredentialRejection():
		slog.Warn("login failed", attrs...)
		c.JSON(http.StatusUnauthorized, dto.ErrorRes{Error: dto.MsgInvalidCredentials})
	case kind == domain.KindAccountNotVerified:
		slog.Info("login refused for unverified account", attrs...)
		c.JSON(http.StatusForbidden, dto.ErrorRes{Error: dto.MsgNotVerified})
	case kind == domain.KindDirectoryUnavailable:
		slog.Error("user directory unavailable", append(attrs, "error", err)...)
		c.Header("Retry-After", retryAfterSeconds)
		c.JSON(http.StatusServiceUnavailable, dto.ErrorRes{Error: dto.MsgUnavailable})
	default:
		slog.Error("login failed unexpectedly", append(attrs, "error", err)...)
		c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: dto.MsgInternal})
	}
}

// limiterKey はログイン失敗回数のカウントキーを返します。
// identifierとクライアントIPの組で数えるため、他のIPからの失敗で本人がロックされることはありません。
func limiterKey(identifier, clientIP string) string {
	id := strings.ToLower(strings.TrimSpace(identifier))
	return "ip:" + clientIP + ":id:" + id
}
