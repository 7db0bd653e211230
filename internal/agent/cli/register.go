package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRegisterCmd создаёт CLI-команду для регистрации нового пользователя.
//
// Обязателен --email. Если --password не задан, пароль спрашивается в терминале
// (или читается из stdin при --password-stdin).
//
// Пример использования:
//
//	usersctl register --username alice --email test@example.com --password StrongPass123
func NewRegisterCmd(app *App) *cobra.Command {
	var (
		username, email, password string
		passwordStdin             bool
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Регистрация нового пользователя",
		Long: `Регистрация нового пользователя на сервере.

Пример:
  usersctl register --username alice --email test@example.com --password StrongPass123
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				pw, err := ReadPassword(cmd, "Password: ", passwordStdin)
				if err != nil {
					return err
				}
				password = pw
			}

			msg, err := app.client().Register(username, email, password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "email for registration")
	cmd.Flags().StringVar(&password, "password", "", "password for registration (prompted if empty)")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read password from stdin")
	cmd.MarkFlagRequired("email")

	return cmd
}
