// Методы клиента для эндпоинтов /users/*.
package api

import (
	"github.com/IvanChernomyrdin/go-users-service/internal/shared/models"
)

// Register регистрирует пользователя. Возвращает сообщение сервера.
func (c *Client) Register(username, email, password string) (string, error) {
	var resp models.MessageResponse
	err := c.PostJSON("/users/register", models.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	}, &resp, "")
	return resp.Message, err
}

// Login выполняет вход и возвращает токен.
func (c *Client) Login(email, password string) (string, error) {
	var resp models.LoginResponse
	err := c.PostJSON("/users/login", models.LoginRequest{Email: email, Password: password}, &resp, "")
	return resp.Token, err
}

// Profile запрашивает профиль владельца токена.
func (c *Client) Profile(token string) (models.Profile, error) {
	var resp models.ProfileResponse
	err := c.GetJSON("/users/profile", &resp, token)
	return resp.User, err
}

// UpdateProfile перезаписывает username и email.
func (c *Client) UpdateProfile(token, username, email string) (string, error) {
	var resp models.MessageResponse
	err := c.PutJSON("/users/profile", models.UpdateProfileRequest{Username: username, Email: email}, &resp, token)
	return resp.Message, err
}

// ChangePassword меняет пароль.
func (c *Client) ChangePassword(token, current, next string) (string, error) {
	var resp models.MessageResponse
	err := c.PutJSON("/users/password", models.ChangePasswordRequest{
		CurrentPassword: current,
		NewPassword:     next,
	}, &resp, token)
	return resp.Message, err
}
