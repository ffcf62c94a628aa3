package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"message_backend/internal/app/di"
	"message_backend/internal/app/router"
	"message_backend/internal/config"
	authhandler "message_backend/internal/feature/auth/transport/handler"
	authusecase "message_backend/internal/feature/auth/usecase"
	"message_backend/internal/platform/http/handler"
	jwtmw "message_backend/internal/platform/jwt"
	"message_backend/internal/platform/logging"
)

// readinessTimeout bounds the dependency pings behind /readyz.
const readinessTimeout = 2 * time.Second

func main() {
	// .envを読み込む
	if err := godotenv.Load(".env"); err != nil {
		fmt.Fprintln(os.Stderr, "[INFO] .env not found; using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("server exited cleanly")
}

func run(cfg config.Config, logger *slog.Logger) error {
	ctx := context.Background()

	// トークン
	tokens, err := jwtmw.NewManager(cfg.JWT)
	if err != nil {
		return fmt.Errorf("build token manager: %w", err)
	}

	// ユーザーディレクトリ
	directory, closeDirectory, err := di.NewUserDirectory(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open %s directory: %w", cfg.DirectoryBackend, err)
	}
	defer func() {
		if err := closeDirectory(); err != nil {
			logger.Warn("close directory", "error", err)
		}
	}()

	// Redis（任意）
	limiter, rdb := di.NewLoginLimiter(ctx, cfg)
	checks := map[string]handler.Pinger{"directory": directory}
	if rdb != nil {
		defer func() {
			if err := rdb.Close(); err != nil {
				logger.Warn("close redis", "error", err)
			}
		}()
		checks["redis"] = handler.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
	}

	// Usecase
	verifier := authusecase.NewCredentialVerifier(directory, nil, cfg.DirectoryTimeout)
	authUC := authusecase.NewAuthUsecase(verifier, tokens)

	// Handler
	authH := authhandler.NewAuthHandler(authUC, limiter)
	readyH := handler.NewReadinessHandler(checks, readinessTimeout)

	// ルータ生成
	r := router.NewRouter(authH, readyH, tokens, cfg.SignInPath)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	srvErrCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", cfg.HTTPAddr, "directory", cfg.DirectoryBackend)
		srvErrCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutdown signal received", "signal", sig.String())
	case err := <-srvErrCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
