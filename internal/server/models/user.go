// Серверная модель пользователя
package models

import (
	"time"

	shared "github.com/IvanChernomyrdin/go-users-service/internal/shared/models"
)

// User — запись пользователя в хранилище.
//
// ID назначает хранилище: hex ObjectID в mongo, UUID в postgres.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile возвращает разрешённые для клиента поля, без хэша пароля.
func (u *User) Profile() shared.Profile {
	return shared.Profile{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
