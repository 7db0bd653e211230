// HTTP-хендлеры регистрации, логина, профиля и смены пароля
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/IvanChernomyrdin/go-users-service/internal/server/middleware"
	serr "github.com/IvanChernomyrdin/go-users-service/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-users-service/internal/shared/models"
)

// Register обрабатывает регистрацию пользователя.
//
// @Summary      Register user
// @Description  Creates a user account. Email must be unique, password is stored as a hash.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body models.RegisterRequest true "Register request"
// @Success      201 {object} models.MessageResponse
// @Failure      400 {object} models.ErrorResponse "User already exists, bad JSON or missing fields"
// @Failure      500 {object} models.ErrorResponse "An error occurred"
// @Router       /users/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, serr.ErrBadJSON.Error())
		return
	}

	_, err := h.Svc.Users.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrInvalidInput):
			WriteError(w, http.StatusBadRequest, serr.ErrInvalidInput.Error())
		case errors.Is(err, serr.ErrAlreadyExists):
			WriteError(w, http.StatusBadRequest, serr.MsgUserExists)
		default:
			h.internalError(w, r, "register", err)
		}
		return
	}

	WriteJSON(w, http.StatusCreated, models.MessageResponse{Message: serr.MsgRegistered})
}

// Login проверяет учётные данные и выдаёт токен на 1 час.
//
// @Summary      Login
// @Description  Checks credentials and returns a signed token. Unknown email and wrong password are indistinguishable.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body models.LoginRequest true "Login request"
// @Success      200 {object} models.LoginResponse
// @Failure      400 {object} models.ErrorResponse "Bad JSON or missing fields"
// @Failure      401 {object} models.ErrorResponse "Invalid credentials"
// @Failure      500 {object} models.ErrorResponse "An error occurred"
// @Router       /users/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, serr.ErrBadJSON.Error())
		return
	}

	token, err := h.Svc.Users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrInvalidInput):
			WriteError(w, http.StatusBadRequest, serr.ErrInvalidInput.Error())
		case errors.Is(err, serr.ErrInvalidCredentials):
			WriteError(w, http.StatusUnauthorized, serr.MsgInvalidCredentials)
		default:
			h.internalError(w, r, "login", err)
		}
		return
	}

	WriteJSON(w, http.StatusOK, models.LoginResponse{Token: token})
}

// GetProfile возвращает профиль текущего пользователя.
//
// @Summary      Get profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} models.ProfileResponse
// @Failure      401 {object} models.ErrorResponse "Unauthorized"
// @Failure      404 {object} models.ErrorResponse "User not found"
// @Failure      500 {object} models.ErrorResponse "An error occurred"
// @Router       /users/profile [get]
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized.Error())
		return
	}

	profile, err := h.Svc.Users.Profile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			WriteError(w, http.StatusNotFound, serr.MsgUserNotFound)
			return
		}
		h.internalError(w, r, "get profile", err)
		return
	}

	WriteJSON(w, http.StatusOK, models.ProfileResponse{User: profile})
}

// UpdateProfile перезаписывает username и email текущего пользователя.
//
// @Summary      Update profile
// @Description  Overwrites username and email. Password is never touched here.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body models.UpdateProfileRequest true "Profile fields"
// @Success      200 {object} models.MessageResponse
// @Failure      400 {object} models.ErrorResponse "Bad JSON or email taken"
// @Failure      401 {object} models.ErrorResponse "Unauthorized"
// @Failure      404 {object} models.ErrorResponse "User not found"
// @Failure      500 {object} models.ErrorResponse "An error occurred"
// @Router       /users/profile [put]
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized.Error())
		return
	}

	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, serr.ErrBadJSON.Error())
		return
	}

	err := h.Svc.Users.UpdateProfile(r.Context(), userID, req.Username, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrNotFound):
			WriteError(w, http.StatusNotFound, serr.MsgUserNotFound)
		case errors.Is(err, serr.ErrAlreadyExists):
			WriteError(w, http.StatusBadRequest, serr.MsgUserExists)
		default:
			h.internalError(w, r, "update profile", err)
		}
		return
	}

	WriteJSON(w, http.StatusOK, models.MessageResponse{Message: serr.MsgProfileUpdated})
}

// ChangePassword меняет пароль после проверки текущего.
//
// @Summary      Change password
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body models.ChangePasswordRequest true "Current and new password"
// @Success      200 {object} models.MessageResponse
// @Failure      400 {object} models.ErrorResponse "Bad JSON or empty new password"
// @Failure      401 {object} models.ErrorResponse "Unauthorized or wrong current password"
// @Failure      404 {object} models.ErrorResponse "User not found"
// @Failure      500 {object} models.ErrorResponse "An error occurred"
// @Router       /users/password [put]
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized.Error())
		return
	}

	var req models.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, serr.ErrBadJSON.Error())
		return
	}

	err := h.Svc.Users.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrInvalidInput):
			WriteError(w, http.StatusBadRequest, serr.ErrInvalidInput.Error())
		case errors.Is(err, serr.ErrInvalidCredentials):
			WriteError(w, http.StatusUnauthorized, serr.MsgInvalidCredentials)
		case errors.Is(err, serr.ErrNotFound):
			WriteError(w, http.StatusNotFound, serr.MsgUserNotFound)
		default:
			h.internalError(w, r, "change password", err)
		}
		return
	}

	WriteJSON(w, http.StatusOK, models.MessageResponse{Message: serr.MsgPasswordUpdated})
}

// Health проверяет доступность хранилища.
//
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200 {object} models.HealthResponse
// @Failure      503 {object} models.ErrorResponse "Storage unavailable"
// @Router       /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Users.Health(r.Context()); err != nil {
		h.Log.Warn("health check failed", zap.Error(err))
		WriteError(w, http.StatusServiceUnavailable, serr.MsgStorageUnavailable)
		return
	}
	WriteJSON(w, http.StatusOK, models.HealthResponse{Status: "ok"})
}
