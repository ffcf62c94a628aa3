package dto

import (
	"time"

	"message_backend/internal/feature/auth/domain/entity"
)

// TokenRes is returned by /login and /token/refresh.
type TokenRes struct {
	Token     string             `json:"token"`
	ExpiresAt time.Time          `json:"expires_at"`
	Session   entity.SessionView `json:"session"`
}

// ErrorRes is the error body for all auth endpoints.
type ErrorRes struct {
	Error string `json:"error"`
}

// Client-facing error messages.
const (
	MsgInvalidRequest     = "invalid request"
	MsgInvalidCredentials = "invalid credentials"
	MsgNotVerified        = "please verify your account before login"
	MsgTooManyAttempts    = "too many login attempts, try again later"
	MsgUnavailable        = "service temporarily unavailable"
	MsgInternal           = "internal server error"
	MsgUnauthorized       = "unauthorized"
)
