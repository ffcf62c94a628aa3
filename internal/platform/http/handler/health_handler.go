// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger は依存先への疎通確認を表します。
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc は関数をPingerとして扱うためのアダプターです。
type PingFunc func(ctx context.Context) error

// Ping はPingerを実装します。
func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// Health はサービスの生存確認用 /healthz エンドポイントを処理します。
// 依存先には問い合わせず、プロセスが応答できることだけを示します。
func Health(c *gin.Context) {
	// 明示的にキャッシュを防止
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
	default:
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// ReadinessHandler は依存先（ユーザーディレクトリ、Redis）の疎通を確認します。
type ReadinessHandler struct {
	checks  map[string]Pinger
	timeout time.Duration
}

// NewReadinessHandler はReadinessHandlerを生成します。nilのPingerは無視されます。
func NewReadinessHandler(checks map[string]Pinger, timeout time.Duration) *ReadinessHandler {
	filtered := make(map[string]Pinger, len(checks))
	for name, p := range checks {
		if p != nil {
			filtered[name] = p
		}
	}
	return &ReadinessHandler{checks: filtered, timeout: timeout}
}

// Ready は /readyz エンドポイントを処理します。
// いずれかの依存先が応答しない場合は503を返します。
func (h *ReadinessHandler) Ready(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	status := http.StatusOK
	results := make(gin.H, len(h.checks))
	for name, p := range h.checks {
		if err := p.Ping(ctx); err != nil {
			status = http.StatusServiceUnavailable
			results[name] = "unavailable"
			continue
		}
		results[name] = "ok"
	}

	overall := "ok"
	if status != http.StatusOK {
		overall = "unavailable"
	}
	c.JSON(status, gin.H{"status": overall, "checks": results})
}
