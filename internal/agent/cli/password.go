package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewPasswordCmd создаёт команду смены пароля.
//
// Незаданные --current/--new спрашиваются в терминале.
//
// Пример:
//
//	usersctl password --current OldPass --new NewPass
func NewPasswordCmd(app *App) *cobra.Command {
	var current, next string

	cmd := &cobra.Command{
		Use:   "password",
		Short: "Сменить пароль",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.token()
			if err != nil {
				return err
			}

			if current == "" {
				if current, err = ReadPassword(cmd, "Current password: ", false); err != nil {
					return err
				}
			}
			if next == "" {
				if next, err = ReadPassword(cmd, "New password: ", false); err != nil {
					return err
				}
			}

			msg, err := app.client().ChangePassword(token, current, next)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}

	cmd.Flags().StringVar(&current, "current", "", "current password (prompted if empty)")
	cmd.Flags().StringVar(&next, "new", "", "new password (prompted if empty)")

	return cmd
}
