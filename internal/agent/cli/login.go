package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-users-service/internal/agent/config"
)

// NewLoginCmd создаёт CLI-команду для входа пользователя.
//
// Команда получает токен у сервера и сохраняет его в локальный файл учётных данных.
//
// Пример использования:
//
//	usersctl login --email test@example.com --password StrongPass123
func NewLoginCmd(app *App) *cobra.Command {
	var (
		email, password string
		passwordStdin   bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Логин пользователя (получить токен)",
		Long: `Логин пользователя.

Пример:
  usersctl login --email test@example.com --password StrongPass123
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				pw, err := ReadPassword(cmd, "Password: ", passwordStdin)
				if err != nil {
					return err
				}
				password = pw
			}

			// выполняем логин пользователя
			token, err := app.client().Login(email, password)
			if err != nil {
				return err
			}

			if app.Creds == nil {
				app.Creds = &config.Credentials{}
			}
			app.Creds.Token = token
			app.Creds.Server = app.ServerURL

			// сохраняем токен в локальный файл
			if err := config.Save(app.CredsPath, app.Creds); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "login ok (token saved)")
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email for login")
	cmd.Flags().StringVar(&password, "password", "", "password for login (prompted if empty)")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read password from stdin")
	cmd.MarkFlagRequired("email")

	return cmd
}
