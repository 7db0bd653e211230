// Package cli реализует командный интерфейс (CLI) клиента сервиса пользователей.
//
// Пакет отвечает за:
//   - определение root-команды и набора подкоманд;
//   - разбор аргументов и флагов командной строки;
//   - загрузку локальных учётных данных (токена) из файла;
//   - выполнение команд и вывод результата пользователю.
//
// Точка входа пакета — функция Execute.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-users-service/internal/agent/config"
)

// DefaultServerURL — адрес сервера, если не задан --server или USERSCTL_SERVER.
const DefaultServerURL = "http://127.0.0.1:8080"

// ErrNotLoggedIn — локально нет сохранённого токена.
var ErrNotLoggedIn = errors.New("not logged in, run: usersctl login")

// App содержит состояние CLI-приложения, разделяемое между командами.
//
// В структуре хранятся параметры подключения к серверу и загруженные учётные данные.
// Экземпляр App создаётся при построении root-команды и передаётся в подкоманды.
type App struct {
	// ServerURL — базовый URL сервера (например, "http://127.0.0.1:8080").
	ServerURL string
	// Insecure — не проверять TLS-сертификат сервера (только для dev).
	Insecure bool

	// CredsPath — путь к файлу с сохранённым токеном.
	CredsPath string
	// Creds — загруженные учётные данные из файла конфигурации.
	// Может быть nil, если загрузка не выполнялась или завершилась ошибкой.
	Creds *config.Credentials
}

// token возвращает сохранённый токен или ErrNotLoggedIn.
func (a *App) token() (string, error) {
	if a.Creds == nil || a.Creds.Token == "" {
		return "", ErrNotLoggedIn
	}
	return a.Creds.Token, nil
}

// NewRootCmd создаёт root-команду CLI и регистрирует подкоманды.
//
// buildVersion и buildDate используются для вывода информации о сборке (команда version).
// В PersistentPreRunE определяется путь к файлу учётных данных и загружается токен.
func NewRootCmd(buildVersion, buildDate string) *cobra.Command {
	app := &App{}

	serverDefault := DefaultServerURL
	if v := os.Getenv("USERSCTL_SERVER"); v != "" {
		serverDefault = v
	}

	cmd := &cobra.Command{
		Use:   "usersctl",
		Short: "usersctl — клиент сервиса пользователей",
		Long: `usersctl — клиент сервиса пользователей.

Команды:
  register        Регистрация нового пользователя
  login           Логин (получить и сохранить токен)
  profile         Показать профиль
  profile update  Изменить username/email
  password        Сменить пароль
  version         Версия и дата сборки

Примеры:

Регистрация:
  usersctl register --username alice --email test@example.com --password StrongPass123

Логин:
  usersctl login --email test@example.com
  (пароль спрашивается в терминале, токен сохраняется в ~/.usersctl/credentials.json)

Профиль:
  usersctl profile
  usersctl profile update --username bob --email bob@example.com
`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			p, err := config.DefaultPath()
			if err != nil {
				return err
			}
			app.CredsPath = p

			creds, err := config.Load(app.CredsPath)
			if err != nil {
				return fmt.Errorf("load credentials %s: %w", app.CredsPath, err)
			}
			app.Creds = creds
			return nil
		},
	}

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.PersistentFlags().StringVar(&app.ServerURL, "server", serverDefault, "server base URL")
	cmd.PersistentFlags().BoolVar(&app.Insecure, "insecure", false, "skip TLS certificate verification (dev only)")

	cmd.AddCommand(NewRegisterCmd(app))
	cmd.AddCommand(NewLoginCmd(app))
	cmd.AddCommand(NewProfileCmd(app))
	cmd.AddCommand(NewPasswordCmd(app))
	cmd.AddCommand(NewVersionCmd(buildVersion, buildDate))

	return cmd
}

// Execute запускает обработку CLI-команд.
//
// При ошибке выполнения команды сообщение выводится в stderr, после чего процесс
// завершается с кодом 1 (os.Exit(1)).
func Execute(buildVersion, buildDate string) {
	if err := NewRootCmd(buildVersion, buildDate).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
