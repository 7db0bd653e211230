// Package errors содержит общие доменные ошибки приложения.
//
// Эти ошибки используются в service и repository слоях
// и маппятся на HTTP-статусы в api слое. Клиент CLI использует их
// для сообщений об ожидаемых/неожиданных результатах.
package errors

import "errors"

var (
	// Входные данные невалидны (пустые обязательные поля)
	ErrInvalidInput = errors.New("invalid input")
	// Неверные учётные данные (нет такого email или пароль не совпал)
	ErrInvalidCredentials = errors.New("invalid credentials")
	// Получена непредвиденная ошибка
	ErrInternal = errors.New("internal error")
	// Полученные JSON данные с ошибками
	ErrBadJSON = errors.New("bad json")
	// Неавторизован
	ErrUnauthorized = errors.New("unauthorized")
	// Пользователь с таким email уже существует
	ErrAlreadyExists = errors.New("already exists")
	// Пользователь не найден
	ErrNotFound = errors.New("not found")
	// ожидаемая ошибка
	ErrExpectedError = errors.New("expected error")
	// неожидаемая ошибка
	ErrUnexpectedError = errors.New("unexpected error")
)

// Сообщения, которые отдаются клиенту в поле error/message.
const (
	MsgUserExists         = "User already exists"
	MsgInvalidCredentials = "Invalid credentials"
	MsgUserNotFound       = "User not found"
	MsgInternal           = "An error occurred"
	MsgStorageUnavailable = "storage unavailable"

	MsgRegistered      = "User registered successfully"
	MsgProfileUpdated  = "User profile updated successfully"
	MsgPasswordUpdated = "Password updated successfully"
)
