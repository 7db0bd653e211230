// Package config содержит функции для работы с локальной конфигурацией CLI-клиента.
//
// Конфигурация хранит токен, полученный при логине, и размещается
// в домашней директории пользователя в файле:
//
//	~/.usersctl/credentials.json
//
// Путь можно переопределить переменной окружения USERSCTL_CREDENTIALS.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// EnvCredentialsPath — переменная окружения с путём к файлу учётных данных.
const EnvCredentialsPath = "USERSCTL_CREDENTIALS"

// Credentials содержит учётные данные, используемые CLI-клиентом.
//
// Token применяется для авторизации запросов к защищённым эндпоинтам.
// Server запоминает, каким сервером выдан токен.
type Credentials struct {
	Token  string `json:"token"`
	Server string `json:"server,omitempty"`
}

// DefaultPath возвращает путь к файлу учётных данных.
//
// Формат пути:
//
//	<home>/.usersctl/credentials.json
func DefaultPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvCredentialsPath)); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".usersctl", "credentials.json"), nil
}

// Load загружает конфигурацию из указанного файла.
//
// Если файл не существует, возвращает пустую конфигурацию без ошибки.
// Если файл существует, но содержит некорректный JSON, возвращает ошибку.
func Load(path string) (*Credentials, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// дефолтный конфиг, если файла нет
			return &Credentials{}, nil
		}
		return nil, err
	}
	var c Credentials
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Save сохраняет конфигурацию в указанный файл в JSON формате.
//
// При необходимости создаёт директорию назначения с правами 0700.
// Файл конфигурации записывается с правами 0600.
func Save(path string, c *Credentials) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}
