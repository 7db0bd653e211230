package tests

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	crypt "github.com/IvanChernomyrdin/go-users-service/internal/server/crypto"
)

func defaultParams() crypt.Argon2Params {
	return crypt.Argon2Params{
		Time:      1,
		MemoryKiB: 32 * 1024,
		Threads:   1,
		KeyLen:    32,
		SaltLen:   16,
	}
}

// Хэширование и успешная проверка
func TestHashAndVerifyPassword_OK(t *testing.T) {
	params := defaultParams()
	password := "super-secret-password"

	hash, err := crypt.HashPassword(password, params)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	ok, err := crypt.VerifyPassword(password, hash)
	if err != nil {
		t.Fatalf("VerifyPassword error: %v", err)
	}

	if !ok {
		t.Fatal("expected password to be valid")
	}
}

// Неверный пароль
func TestVerifyPassword_InvalidPassword(t *testing.T) {
	hash, err := crypt.HashPassword("correct-password", defaultParams())
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	ok, err := crypt.VerifyPassword("wrong-password", hash)
	if err != nil {
		t.Fatalf("VerifyPassword error: %v", err)
	}

	if ok {
		t.Fatal("expected password to be invalid")
	}
}

// Пустой пароль
func TestHashPassword_EmptyPassword(t *testing.T) {
	_, err := crypt.HashPassword("", defaultParams())
	require.ErrorIs(t, err, crypt.ErrEmptyPassword)

	_, err = crypt.HashPasswordBcrypt("   ", bcrypt.MinCost)
	require.ErrorIs(t, err, crypt.ErrEmptyPassword)
}

// Битый формат хэша
func TestVerifyPassword_InvalidFormat(t *testing.T) {
	_, err := crypt.VerifyPassword("password", "not-a-valid-hash")
	require.ErrorIs(t, err, crypt.ErrInvalidHashFormat)

	_, err = crypt.VerifyPassword("password", "argon2id$v=19$broken")
	require.Error(t, err)
}

// Проверка: соль разная (хэши разные)
func TestHashPassword_DifferentSalt(t *testing.T) {
	params := defaultParams()
	password := "same-password"

	h1, _ := crypt.HashPassword(password, params)
	h2, _ := crypt.HashPassword(password, params)

	if h1 == h2 {
		t.Fatal("expected different hashes for same password")
	}
}

func TestHashPasswordBcrypt_VerifyAndSalt(t *testing.T) {
	h1, err := crypt.HashPasswordBcrypt("same-password", bcrypt.MinCost)
	require.NoError(t, err)
	h2, err := crypt.HashPasswordBcrypt("same-password", bcrypt.MinCost)
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(h1, "$2a$"))
	require.NotEqual(t, h1, h2)

	ok, err := crypt.VerifyPassword("same-password", h1)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = crypt.VerifyPassword("other-password", h1)
	require.NoError(t, err)
	require.False(t, ok)
}

// PasswordHasher выбирает алгоритм, а VerifyPassword узнаёт его по хэшу
func TestPasswordHasher_Algorithms(t *testing.T) {
	tests := []struct {
		name   string
		hasher crypt.PasswordHasher
		prefix string
	}{
		{"bcrypt", crypt.PasswordHasher{Algorithm: crypt.AlgBcrypt, BcryptCost: bcrypt.MinCost}, "$2a$"},
		{"default is bcrypt", crypt.PasswordHasher{BcryptCost: bcrypt.MinCost}, "$2a$"},
		{"argon2id", crypt.PasswordHasher{Algorithm: crypt.AlgArgon2id, Argon2: defaultParams()}, "argon2id$"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := tt.hasher.Hash("pass-123")
			require.NoError(t, err)
			require.True(t, strings.HasPrefix(hash, tt.prefix), hash)

			ok, err := crypt.VerifyPassword("pass-123", hash)
			require.NoError(t, err)
			require.True(t, ok)
		})
	}
}

func TestPasswordHasher_UnknownAlgorithm(t *testing.T) {
	_, err := crypt.PasswordHasher{Algorithm: "md5"}.Hash("pass")
	require.Error(t, err)
}

// bcrypt не падает на паролях длиннее 72 байт, проверка идёт по тому же префиксу
func TestHashPasswordBcrypt_LongPassword(t *testing.T) {
	password := strings.Repeat("p", 80)

	hash, err := crypt.HashPasswordBcrypt(password, bcrypt.MinCost)
	require.NoError(t, err)

	ok, err := crypt.VerifyPassword(password, hash)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = crypt.VerifyPassword(strings.Repeat("p", 71), hash)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestPasswordHasher_LongPasswordBothAlgorithms(t *testing.T) {
	password := strings.Repeat("x", crypt.BcryptMaxPasswordBytes+28)

	for _, h := range []crypt.PasswordHasher{
		{Algorithm: crypt.AlgBcrypt, BcryptCost: bcrypt.MinCost},
		{Algorithm: crypt.AlgArgon2id, Argon2: defaultParams()},
	} {
		t.Run(h.Algorithm, func(t *testing.T) {
			hash, err := h.Hash(password)
			require.NoError(t, err)

			ok, err := crypt.VerifyPassword(password, hash)
			require.NoError(t, err)
			require.True(t, ok)
		})
	}
}
