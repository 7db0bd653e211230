// Хэширование паролей
package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// Алгоритмы, которые понимает PasswordHasher.
const (
	AlgBcrypt   = "bcrypt"
	AlgArgon2id = "argon2id"
)

// BcryptMaxPasswordBytes — bcrypt учитывает только первые 72 байта пароля.
const BcryptMaxPasswordBytes = 72

var (
	ErrEmptyPassword     = errors.New("empty password")
	ErrInvalidHashFormat = errors.New("invalid hash format")
)

type Argon2Params struct {
	Time      uint32
	MemoryKiB uint32
	Threads   uint8
	KeyLen    uint32
	SaltLen   uint32
}

// PasswordHasher хэширует новые пароли выбранным алгоритмом.
//
// Проверка (VerifyPassword) не зависит от настроек: алгоритм и параметры
// читаются из самого хэша, поэтому смена алгоритма в конфиге не ломает
// уже сохранённые пароли.
type PasswordHasher struct {
	Algorithm  string
	Argon2     Argon2Params
	BcryptCost int
}

// Hash возвращает хэш пароля со свежей случайной солью.
func (h PasswordHasher) Hash(password string) (string, error) {
	switch strings.ToLower(h.Algorithm) {
	case AlgArgon2id:
		return HashPassword(password, h.Argon2)
	case AlgBcrypt, "":
		return HashPasswordBcrypt(password, h.BcryptCost)
	default:
		return "", fmt.Errorf("unknown password hasher %q", h.Algorithm)
	}
}

// HashPassword возвращает строку формата:
// argon2id$v=19$m=65536,t=3,p=2$<salt_b64>$<hash_b64>
func HashPassword(password string, p Argon2Params) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", ErrEmptyPassword
	}

	salt := make([]byte, p.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("read salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, p.Time, p.MemoryKiB, p.Threads, p.KeyLen)

	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Hash := base64.RawStdEncoding.EncodeToString(hash)

	encoded := fmt.Sprintf(
		"argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		p.MemoryKiB, p.Time, p.Threads,
		b64Salt, b64Hash,
	)
	return encoded, nil
}

// HashPasswordBcrypt возвращает bcrypt-хэш ($2a$<cost>$...), соль генерирует сам bcrypt.
//
// Длина пароля не ограничивается: хэшируются первые BcryptMaxPasswordBytes байт.
func HashPasswordBcrypt(password string, cost int) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", ErrEmptyPassword
	}
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	hash, err := bcrypt.GenerateFromPassword(bcryptInput(password), cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword сравнивает пароль с хэшем любого поддерживаемого формата.
//
// Несовпадение пароля — это (false, nil); ошибка только для битого хэша.
func VerifyPassword(password, encoded string) (bool, error) {
	switch {
	case strings.HasPrefix(encoded, AlgArgon2id+"$"):
		return verifyArgon2(password, encoded)
	case strings.HasPrefix(encoded, "$2a$"), strings.HasPrefix(encoded, "$2b$"), strings.HasPrefix(encoded, "$2y$"):
		return verifyBcrypt(password, encoded)
	default:
		return false, ErrInvalidHashFormat
	}
}

func verifyBcrypt(password, encoded string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(encoded), bcryptInput(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("%w: %v", ErrInvalidHashFormat, err)
}

// bcryptInput обрезает пароль до лимита bcrypt, иначе GenerateFromPassword
// отвечает ErrPasswordTooLong.
func bcryptInput(password string) []byte {
	b := []byte(password)
	if len(b) > BcryptMaxPasswordBytes {
		b = b[:BcryptMaxPasswordBytes]
	}
	return b
}

func verifyArgon2(password, encoded string) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 5 {
		return false, ErrInvalidHashFormat
	}

	// parts[0] = argon2id
	// parts[1] = v=19
	// parts[2] = m=...,t=...,p=...
	// parts[3] = salt
	// parts[4] = hash

	var memory uint32
	var time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[2], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false, errors.New("invalid params format")
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[3])
	if err != nil {
		return false, errors.New("invalid salt")
	}

	wantHash, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, errors.New("invalid hash")
	}

	got := argon2.IDKey([]byte(password), salt, time, memory, threads, uint32(len(wantHash)))
	return subtle.ConstantTimeCompare(got, wantHash) == 1, nil
}
