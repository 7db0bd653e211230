// Package service содержит бизнес-логику сервиса пользователей.
// Это прослойка между HTTP-обработчиками (api) и хранилищем данных (repository).
package service

import (
	"context"

	"github.com/IvanChernomyrdin/go-users-service/internal/server/config"
	"github.com/IvanChernomyrdin/go-users-service/internal/server/models"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_service.go -package=mocks

// Repositories — набор интерфейсов, которые сервисный слой ожидает от слоя repository.
type Repositories struct {
	Users UsersRepo
}

// Services — агрегатор всех сервисов приложения.
type Services struct {
	Users *UsersService
}

// NewServices собирает все сервисы приложения.
// cfg нужен UsersService (параметры хеширования пароля и токенов).
func NewServices(repos Repositories, cfg *config.Config) *Services {
	return &Services{
		Users: NewUsersService(repos.Users, cfg),
	}
}

// HealthRepo — минимально нужное для health-check.
type HealthRepo interface {
	Ping(ctx context.Context) error
}

// UsersRepo — хранилище пользователей.
//
// Реализации обязаны:
//   - держать уникальность email на своей стороне и отдавать ErrAlreadyExists при нарушении;
//   - отдавать ErrNotFound, если записи нет (в т.ч. для id неверного формата);
//   - все прочие ошибки оборачивать в ErrInternal.
type UsersRepo interface {
	HealthRepo
	Create(ctx context.Context, username, email, passwordHash string) (string, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, id, username, email string) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}
