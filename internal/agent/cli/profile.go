package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// NewProfileCmd создаёт команду просмотра профиля и подкоманду update.
//
// Пример:
//
//	usersctl profile
//	usersctl profile update --username bob --email bob@example.com
func NewProfileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Показать профиль текущего пользователя",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.token()
			if err != nil {
				return err
			}

			p, err := app.client().Profile(token)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "id:         %s\n", p.ID)
			fmt.Fprintf(out, "username:   %s\n", p.Username)
			fmt.Fprintf(out, "email:      %s\n", p.Email)
			fmt.Fprintf(out, "created_at: %s\n", p.CreatedAt.Format(time.RFC3339))
			return nil
		},
	}

	cmd.AddCommand(newProfileUpdateCmd(app))
	return cmd
}

// newProfileUpdateCmd перезаписывает username и email.
// Сервер меняет оба поля, поэтому незаданный флаг берётся из текущего профиля.
func newProfileUpdateCmd(app *App) *cobra.Command {
	var username, email string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Изменить username и/или email",
		RunE: func(cmd *cobra.Command, args []string) error {
			usernameSet := cmd.Flags().Changed("username")
			emailSet := cmd.Flags().Changed("email")
			if !usernameSet && !emailSet {
				return errors.New("nothing to update: set --username and/or --email")
			}

			token, err := app.token()
			if err != nil {
				return err
			}
			c := app.client()

			if !usernameSet || !emailSet {
				cur, err := c.Profile(token)
				if err != nil {
					return err
				}
				if !usernameSet {
					username = cur.Username
				}
				if !emailSet {
					email = cur.Email
				}
			}

			msg, err := c.UpdateProfile(token, username, email)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "new username")
	cmd.Flags().StringVar(&email, "email", "", "new email")

	return cmd
}
