package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/IvanChernomyrdin/go-users-service/internal/server/config"
	"github.com/IvanChernomyrdin/go-users-service/internal/server/crypto"
	serr "github.com/IvanChernomyrdin/go-users-service/internal/shared/errors"
	shared "github.com/IvanChernomyrdin/go-users-service/internal/shared/models"
	"github.com/IvanChernomyrdin/go-users-service/internal/shared/utils"
)

// UsersService реализует бизнес-логику учётных записей.
//
// Ответственность:
//   - регистрация пользователей
//   - аутентификация (логин) и выпуск токена
//   - чтение и обновление профиля
//   - смена пароля (отдельно от профиля, всегда с перехэшированием)
type UsersService struct {
	users UsersRepo

	hasher crypto.PasswordHasher
	jwt    crypto.JWTConfig
}

// NewUsersService создаёт UsersService с зависимостями и настройками из конфига.
func NewUsersService(users UsersRepo, cfg *config.Config) *UsersService {
	return &UsersService{
		users: users,

		hasher: crypto.PasswordHasher{
			Algorithm:  cfg.Password.Hasher,
			BcryptCost: cfg.Password.Bcrypt.Cost,
			Argon2: crypto.Argon2Params{
				Time:      cfg.Password.Argon2.Time,
				MemoryKiB: cfg.Password.Argon2.MemoryKiB,
				Threads:   cfg.Password.Argon2.Threads,
				KeyLen:    cfg.Password.Argon2.KeyLen,
				SaltLen:   cfg.Password.Argon2.SaltLen,
			},
		},
		jwt: JWTConfigFrom(cfg),
	}
}

// JWTConfigFrom собирает параметры токенов из конфига.
// Используется и сервисом (выпуск), и middleware (проверка).
func JWTConfigFrom(cfg *config.Config) crypto.JWTConfig {
	return crypto.JWTConfig{
		Issuer:     cfg.Auth.Issuer,
		Audience:   cfg.Auth.Audience,
		SigningKey: cfg.Auth.JWT.SigningKey,
		AccessTTL:  cfg.Auth.AccessTTL,
	}
}

// Register регистрирует нового пользователя.
//
// Формат и длина полей не проверяются, обязательны только email и пароль.
// Проверка существования email делается заранее, но окончательное решение
// принимает уникальный индекс хранилища (гонка двух регистраций даст ErrAlreadyExists
// из repository).
//
// Возвращает:
//   - id пользователя
//   - ErrInvalidInput при пустых email/пароле или ErrAlreadyExists если email уже зарегистрирован
func (s *UsersService) Register(ctx context.Context, username, email, password string) (string, error) {
	username = strings.TrimSpace(username)
	email = utils.NormalizeEmail(email)

	if email == "" || strings.TrimSpace(password) == "" {
		return "", serr.ErrInvalidInput
	}

	_, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return "", serr.ErrAlreadyExists
	case !errors.Is(err, serr.ErrNotFound):
		return "", err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return "", fmt.Errorf("%w: hash password: %v", serr.ErrInternal, err)
	}
	return s.users.Create(ctx, username, email, hash)
}

// Login проверяет учётные данные и выдаёт подписанный токен.
//
// Неизвестный email и неверный пароль неразличимы: оба дают ErrInvalidCredentials.
func (s *UsersService) Login(ctx context.Context, email, password string) (string, error) {
	email = utils.NormalizeEmail(email)
	if email == "" {
		return "", serr.ErrInvalidInput
	}
	// пустой пароль ни с чем не совпадает
	if password == "" {
		return "", serr.ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		// не палим существование email
		if errors.Is(err, serr.ErrNotFound) {
			return "", serr.ErrInvalidCredentials
		}
		return "", err
	}

	ok, err := crypto.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return "", fmt.Errorf("%w: verify password: %v", serr.ErrInternal, err)
	}
	if !ok {
		return "", serr.ErrInvalidCredentials
	}

	token, err := crypto.NewAccessToken(user.ID, s.jwt)
	if err != nil {
		return "", fmt.Errorf("%w: sign token: %v", serr.ErrInternal, err)
	}
	return token, nil
}

// Profile возвращает профиль пользователя без хэша пароля.
func (s *UsersService) Profile(ctx context.Context, userID string) (shared.Profile, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return shared.Profile{}, err
	}
	return user.Profile(), nil
}

// UpdateProfile перезаписывает username и email. Пароль не трогается.
//
// Ошибки:
//   - ErrNotFound, если пользователя нет
//   - ErrAlreadyExists, если новый email занят другим пользователем
func (s *UsersService) UpdateProfile(ctx context.Context, userID, username, email string) error {
	return s.users.UpdateProfile(ctx, userID, strings.TrimSpace(username), utils.NormalizeEmail(email))
}

// ChangePassword меняет пароль после проверки текущего.
//
// Новый пароль всегда хэшируется с новой солью.
func (s *UsersService) ChangePassword(ctx context.Context, userID, current, next string) error {
	if strings.TrimSpace(next) == "" {
		return serr.ErrInvalidInput
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	ok, err := crypto.VerifyPassword(current, user.PasswordHash)
	if err != nil {
		return fmt.Errorf("%w: verify password: %v", serr.ErrInternal, err)
	}
	if !ok {
		return serr.ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(next)
	if err != nil {
		return fmt.Errorf("%w: hash password: %v", serr.ErrInternal, err)
	}
	return s.users.UpdatePassword(ctx, userID, hash)
}

// Health проверяет доступность хранилища.
func (s *UsersService) Health(ctx context.Context) error {
	return s.users.Ping(ctx)
}
