package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authhandler "message_backend/internal/feature/auth/transport/handler"
	"message_backend/internal/platform/http/handler"
	"message_backend/internal/platform/http/middleware"
	jwtmw "message_backend/internal/platform/jwt"
)

// NewRouter wires the public and bearer-protected routes.
func NewRouter(authHandler *authhandler.AuthHandler, ready *handler.ReadinessHandler,
	parser jwtmw.Parser, signInPath string) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.RequestID())

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	r.GET("/readyz", ready.Ready)
	// ログイン（JWT 発行）
	r.POST("/login", authHandler.Login)

	// 認証必須のルート
	// → リクエストヘッダーに Bearer トークンが必要になる
	auth := r.Group("/")
	auth.Use(jwtmw.AuthRequired(parser, signInPath))
	{
		auth.POST("/token/refresh", authHandler.Refresh)
		auth.GET("/session", authHandler.Session)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	return r
}
