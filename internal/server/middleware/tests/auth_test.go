package tests

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-users-service/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-users-service/internal/server/middleware"
)

const testKey = "supersecretkeysupersecretkey123456"

func testJWT() crypto.JWTConfig {
	return crypto.JWTConfig{
		Issuer:     "issuer",
		Audience:   "aud",
		SigningKey: testKey,
		AccessTTL:  time.Hour,
	}
}

// Вспомогательная функция для JWT
func makeToken(t *testing.T, cfg crypto.JWTConfig, userID string) string {
	t.Helper()

	token, err := crypto.NewAccessToken(userID, cfg)
	require.NoError(t, err)
	return token
}

func mustNotCall(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be called")
	})
}

func serve(h http.Handler, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

// Успех
func TestAuthMiddleware_OK(t *testing.T) {
	v := middleware.NewJWTVerifier(testJWT())

	userID := uuid.New().String()
	token := makeToken(t, testJWT(), userID)

	called := false
	handler := v.AuthMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true

		uid, ok := middleware.UserIDFromContext(r.Context())
		require.True(t, ok, "user id not found in context")
		require.Equal(t, userID, uid)

		w.WriteHeader(http.StatusOK)
	}))

	rr := serve(handler, "Bearer "+token)

	require.Equal(t, http.StatusOK, rr.Code)
	require.True(t, called)
}

// Нет токена
func TestAuthMiddleware_MissingToken(t *testing.T) {
	v := middleware.NewJWTVerifier(testJWT())

	rr := serve(v.AuthMiddleware()(mustNotCall(t)), "")

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	require.JSONEq(t, `{"error":"missing bearer token"}`, rr.Body.String())
}

// Токен истёк
func TestAuthMiddleware_Expired(t *testing.T) {
	cfg := testJWT()
	cfg.Now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token := makeToken(t, cfg, "user")

	v := middleware.NewJWTVerifier(testJWT())
	rr := serve(v.AuthMiddleware()(mustNotCall(t)), "Bearer "+token)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.JSONEq(t, `{"error":"token expired"}`, rr.Body.String())
}

// Чужой ключ подписи
func TestAuthMiddleware_WrongKey(t *testing.T) {
	cfg := testJWT()
	cfg.SigningKey = "another-key-another-key-another-key"
	token := makeToken(t, cfg, "user")

	v := middleware.NewJWTVerifier(testJWT())
	rr := serve(v.AuthMiddleware()(mustNotCall(t)), "Bearer "+token)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.JSONEq(t, `{"error":"invalid token"}`, rr.Body.String())
}

// Токен без userId (например, выпущен другим сервисом с sub)
func TestAuthMiddleware_NoUserIDClaim(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   "user",
		Issuer:    "issuer",
		Audience:  []string{"aud"},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testKey))
	require.NoError(t, err)

	v := middleware.NewJWTVerifier(testJWT())
	rr := serve(v.AuthMiddleware()(mustNotCall(t)), "Bearer "+token)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestUserIDFromContext_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := middleware.UserIDFromContext(req.Context())
	require.False(t, ok)

	_, ok = middleware.UserIDFromContext(middleware.WithUserID(req.Context(), ""))
	require.False(t, ok)
}

// Проверка форматов принимаемого токена
func TestExtractBearer(t *testing.T) {
	tests := []struct {
		hdr  string
		want string
	}{
		{"Bearer token", "token"},
		{"bearer token", "token"},
		{"Bearer    token", "token"},
		{"Token token", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := middleware.ExtractBearer(tt.hdr); got != tt.want {
			t.Errorf("ExtractBearer(%q) = %q, want %q", tt.hdr, got, tt.want)
		}
	}
}
