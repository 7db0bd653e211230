// Package crypto содержит криптографические примитивы сервера.
//
// В частности, пакет отвечает за:
//   - хэширование и проверку паролей (bcrypt, argon2id);
//   - генерацию, подпись и разбор JWT-токенов;
//   - соблюдение требований безопасности (HS256, срок жизни).
package crypto

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")
)

// JWTConfig описывает параметры генерации и проверки JWT-токена.
type JWTConfig struct {
	// Issuer — значение поля iss (кто выдал токен). Пустое — не пишем и не проверяем.
	Issuer string
	// Audience — значение поля aud (для кого предназначен токен). Пустое — не пишем и не проверяем.
	Audience string
	// SigningKey — секретный ключ для подписи токена (HS256).
	// Должен быть достаточно длинным и случайным.
	SigningKey string
	// AccessTTL — срок жизни токена.
	AccessTTL time.Duration
	// Now — источник времени, nil означает time.Now.
	Now func() time.Time
}

func (c JWTConfig) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// Claims — содержимое токена: {userId, exp, iat[, iss, aud]}.
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// NewAccessToken создаёт и подписывает JWT для пользователя.
//
// Используется алгоритм подписи HS256.
// В случае ошибки подписи возвращается непустая ошибка.
func NewAccessToken(userID string, cfg JWTConfig) (string, error) {
	now := cfg.now()

	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.AccessTTL)),
		},
	}
	if cfg.Audience != "" {
		claims.Audience = jwt.ClaimStrings{cfg.Audience}
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(cfg.SigningKey))
}

// ParseAccessToken проверяет подпись, срок жизни, iss/aud и возвращает claims.
//
// Ошибки:
//   - ErrTokenExpired, если exp в прошлом
//   - ErrTokenInvalid во всех остальных случаях (подпись, формат, iss/aud, пустой userId)
func ParseAccessToken(tokenStr string, cfg JWTConfig) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(cfg.now),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}

	claims := &Claims{}
	_, err := jwt.NewParser(opts...).ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return []byte(cfg.SigningKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims.UserID = strings.TrimSpace(claims.UserID)
	if claims.UserID == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
