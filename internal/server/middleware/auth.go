// Package middleware содержит HTTP middleware сервера.
package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/IvanChernomyrdin/go-users-service/internal/server/crypto"
	shared "github.com/IvanChernomyrdin/go-users-service/internal/shared/models"
)

// ctxKey используется как тип ключа для хранения значений в context.Context.
// Отдельный тип предотвращает коллизии ключей между пакетами.
type ctxKey string

// userIDKey — ключ контекста, под которым хранится ID аутентифицированного пользователя.
const userIDKey ctxKey = "user_id"

// JWTVerifier инкапсулирует параметры проверки JWT access-токенов.
//
// Используется в HTTP middleware для:
//   - проверки подписи и срока действия токена
//   - валидации issuer и audience (если заданы)
//   - извлечения userID из claim userId
type JWTVerifier struct {
	cfg crypto.JWTConfig
}

// NewJWTVerifier создаёт JWTVerifier с теми же параметрами, что использует выпуск токенов.
func NewJWTVerifier(cfg crypto.JWTConfig) *JWTVerifier {
	return &JWTVerifier{cfg: cfg}
}

// WithUserID кладёт userID в контекст. Нужен тестам обработчиков.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext извлекает userID аутентифицированного пользователя из контекста.
//
// Возвращает:
//   - userID
//   - false, если пользователь не аутентифицирован
func UserIDFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(userIDKey)
	s, ok := v.(string)
	return s, ok && s != ""
}

// AuthMiddleware возвращает HTTP middleware для проверки JWT access-токенов.
//
// Middleware:
//   - ожидает заголовок Authorization: Bearer <token>
//   - валидирует подпись и claims токена
//   - сохраняет userID в context.Context
//
// В случае ошибки возвращает HTTP 401 с телом {"error": "..."}.
func (v *JWTVerifier) AuthMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := ExtractBearer(r.Header.Get("Authorization"))
			if tokenStr == "" {
				unauthorized(w, "missing bearer token")
				return
			}

			claims, err := crypto.ParseAccessToken(tokenStr, v.cfg)
			if err != nil {
				if errors.Is(err, crypto.ErrTokenExpired) {
					unauthorized(w, "token expired")
					return
				}
				unauthorized(w, "invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), claims.UserID)))
		})
	}
}

// ExtractBearer извлекает JWT из заголовка Authorization.
//
// Ожидаемый формат:
//
//	Authorization: Bearer <token>
//
// Возвращает пустую строку, если формат некорректен.
func ExtractBearer(h string) string {
	h = strings.TrimSpace(h)
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(shared.ErrorResponse{Error: msg})
}
