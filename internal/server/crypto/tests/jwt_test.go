package tests

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	crypt "github.com/IvanChernomyrdin/go-users-service/internal/server/crypto"
)

const testKey = "supersecretkeysupersecretkey123456"

func TestNewAccessToken_Success(t *testing.T) {
	t.Parallel()
	cfg := crypt.JWTConfig{
		Issuer:     "users-service",
		Audience:   "usersctl",
		SigningKey: testKey,
		AccessTTL:  5 * time.Minute,
	}

	userID := "user-123"

	tokenStr, err := crypt.NewAccessToken(userID, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Парсим токен напрямую через jwt, чтобы проверить формат claims
	parsed, err := jwt.ParseWithClaims(
		tokenStr,
		&crypt.Claims{},
		func(token *jwt.Token) (any, error) {
			if token.Method != jwt.SigningMethodHS256 {
				t.Fatalf("unexpected signing method: %v", token.Method)
			}
			return []byte(cfg.SigningKey), nil
		},
	)
	if err != nil {
		t.Fatalf("failed to parse token: %v", err)
	}

	claims, ok := parsed.Claims.(*crypt.Claims)
	if !ok {
		t.Fatal("claims type assertion failed")
	}

	if claims.UserID != userID {
		t.Fatalf("expected userId %q, got %q", userID, claims.UserID)
	}
	if claims.Issuer != cfg.Issuer {
		t.Fatalf("expected issuer %q, got %q", cfg.Issuer, claims.Issuer)
	}
	if len(claims.Audience) != 1 || claims.Audience[0] != cfg.Audience {
		t.Fatalf("expected audience %q, got %v", cfg.Audience, claims.Audience)
	}
	if claims.ExpiresAt == nil {
		t.Fatal("ExpiresAt is nil")
	}
}

// Токен живёт ровно AccessTTL: до истечения валиден, после — нет
func TestAccessToken_ValidForOneHour(t *testing.T) {
	t.Parallel()

	issued := time.Date(2026, 1, 16, 12, 0, 0, 0, time.UTC)
	cfg := crypt.JWTConfig{
		SigningKey: testKey,
		AccessTTL:  time.Hour,
		Now:        func() time.Time { return issued },
	}

	tokenStr, err := crypt.NewAccessToken("u1", cfg)
	require.NoError(t, err)

	cfg.Now = func() time.Time { return issued.Add(59 * time.Minute) }
	claims, err := crypt.ParseAccessToken(tokenStr, cfg)
	require.NoError(t, err)
	require.Equal(t, "u1", claims.UserID)
	require.Equal(t, issued.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())

	cfg.Now = func() time.Time { return issued.Add(61 * time.Minute) }
	_, err = crypt.ParseAccessToken(tokenStr, cfg)
	require.ErrorIs(t, err, crypt.ErrTokenExpired)
}

func TestParseAccessToken_WrongKey(t *testing.T) {
	t.Parallel()

	cfg := crypt.JWTConfig{SigningKey: testKey, AccessTTL: time.Minute}
	tokenStr, err := crypt.NewAccessToken("u1", cfg)
	require.NoError(t, err)

	cfg.SigningKey = "another-key-another-key-another-key"
	_, err = crypt.ParseAccessToken(tokenStr, cfg)
	require.ErrorIs(t, err, crypt.ErrTokenInvalid)
}

func TestParseAccessToken_IssuerAndAudienceChecked(t *testing.T) {
	t.Parallel()

	cfg := crypt.JWTConfig{SigningKey: testKey, AccessTTL: time.Minute, Issuer: "a", Audience: "b"}
	tokenStr, err := crypt.NewAccessToken("u1", cfg)
	require.NoError(t, err)

	wrongIss := cfg
	wrongIss.Issuer = "other"
	_, err = crypt.ParseAccessToken(tokenStr, wrongIss)
	require.ErrorIs(t, err, crypt.ErrTokenInvalid)

	wrongAud := cfg
	wrongAud.Audience = "other"
	_, err = crypt.ParseAccessToken(tokenStr, wrongAud)
	require.ErrorIs(t, err, crypt.ErrTokenInvalid)

	_, err = crypt.ParseAccessToken(tokenStr, cfg)
	require.NoError(t, err)
}

// Токен без userId не принимаем
func TestParseAccessToken_EmptyUserID(t *testing.T) {
	t.Parallel()

	cfg := crypt.JWTConfig{SigningKey: testKey, AccessTTL: time.Minute}
	tokenStr, err := crypt.NewAccessToken("  ", cfg)
	require.NoError(t, err)

	_, err = crypt.ParseAccessToken(tokenStr, cfg)
	require.ErrorIs(t, err, crypt.ErrTokenInvalid)
}

// alg=none и прочие методы отклоняются
func TestParseAccessToken_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	claims := crypt.Claims{
		UserID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	tokenStr, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = crypt.ParseAccessToken(tokenStr, crypt.JWTConfig{SigningKey: testKey})
	require.ErrorIs(t, err, crypt.ErrTokenInvalid)
}

func TestParseAccessToken_Garbage(t *testing.T) {
	t.Parallel()

	_, err := crypt.ParseAccessToken("not.a.jwt", crypt.JWTConfig{SigningKey: testKey})
	require.ErrorIs(t, err, crypt.ErrTokenInvalid)
}
