package models

import "time"

// RegisterRequest — тело запроса регистрации.
//
// Используется в:
//
//	POST /users/register
//
// Формат полей не проверяется, обязательны только email и password.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest — тело запроса входа.
//
// Используется в:
//
//	POST /users/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse — подписанный токен с ограниченным сроком жизни.
type LoginResponse struct {
	Token string `json:"token"`
}

// UpdateProfileRequest — новые username и email.
//
// Используется в:
//
//	PUT /users/profile
//
// Пароль через этот запрос не меняется.
type UpdateProfileRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// ChangePasswordRequest — смена пароля, отдельная от обновления профиля.
//
// Используется в:
//
//	PUT /users/password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// Profile — то, что клиент видит о пользователе.
//
// Хэш пароля сюда не попадает никогда.
type Profile struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// ProfileResponse — ответ GET /users/profile: {"user": {...}}.
type ProfileResponse struct {
	User Profile `json:"user"`
}

// MessageResponse — успешный ответ без данных: {"message": "..."}.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse — любой ошибочный ответ: {"error": "..."}.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse — ответ GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}
