package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"message_backend/internal/feature/auth/domain/entity"
	authhandler "message_backend/internal/feature/auth/transport/handler"
	"message_backend/internal/feature/auth/usecase"
	"message_backend/internal/platform/http/handler"
	jwtmw "message_backend/internal/platform/jwt"
)

type stubDirectory struct {
	users []*entity.User
}

func (d *stubDirectory) FindByIdentifier(_ context.Context, identifier string) (*entity.User, error) {
	for _, u := range d.users {
		if u.Username == identifier || u.Email == identifier {
			return u, nil
		}
	}
	return nil, usecase.ErrUserNotFound
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := bcrypt.GenerateFromPassword([]byte("pw1"), bcrypt.MinCost)
	require.NoError(t, err)
	dir := &stubDirectory{users: []*entity.User{{
		ID: "u1", Username: "alice", Email: "a@x.com", PasswordHash: string(hash),
		IsVerified: true, IsAcceptingMessages: true,
	}}}

	manager, err := jwtmw.NewManager(jwtmw.Config{Secret: "test-secret", Issuer: "test", Expiration: time.Hour})
	require.NoError(t, err)

	verifier := usecase.NewCredentialVerifier(dir, nil, time.Second)
	authH := authhandler.NewAuthHandler(usecase.NewAuthUsecase(verifier, manager), nil)
	ready := handler.NewReadinessHandler(map[string]handler.Pinger{
		"directory": handler.PingFunc(func(context.Context) error { return nil }),
	}, time.Second)

	return NewRouter(authH, ready, manager, "/signin")
}

func do(r *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_LoginThenSession(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, http.MethodPost, "/login", `{"identifier":"a@x.com","password":"pw1"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	require.NotEmpty(t, login.Token)

	w = do(r, http.MethodGet, "/session", "", login.Token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"u1","username":"alice","isVerified":true,"isAcceptingMessages":true}`, w.Body.String())

	w = do(r, http.MethodPost, "/token/refresh", "", login.Token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	r := newTestRouter(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/session"},
		{http.MethodPost, "/token/refresh"},
	} {
		t.Run(tc.path, func(t *testing.T) {
			w := do(r, tc.method, tc.path, "", "")
			assert.Equal(t, http.StatusUnauthorized, w.Code)

			var body gin.H
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "/signin", body["sign_in"])
		})
	}
}

func TestRouter_HealthAndReadiness(t *testing.T) {
	r := newTestRouter(t)

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/healthz", "", "").Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/readyz", "", "").Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/signup", "", "").Code)
}
