package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/IvanChernomyrdin/go-users-service/internal/agent/api"
)

// для тестов
var (
	NewAPIClient = api.NewClient
	ReadPassword = func(cmd *cobra.Command, prompt string, fromStdin bool) (string, error) {
		return readPassword(cmd, prompt, fromStdin)
	}
)

func (a *App) client() *api.Client {
	return NewAPIClient(a.ServerURL, a.Insecure)
}

// readPassword читает пароль из stdin (--password-stdin) или из терминала без эха.
func readPassword(cmd *cobra.Command, prompt string, fromStdin bool) (string, error) {
	if fromStdin {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read password from stdin: %w", err)
		}
		pw := bytes.TrimRight(b, "\r\n")
		if len(pw) == 0 {
			return "", errors.New("empty password on stdin")
		}
		return string(pw), nil
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("stdin is not a terminal; use --password or --password-stdin")
	}

	fmt.Fprint(cmd.ErrOrStderr(), prompt)
	pwBytes, err := term.ReadPassword(fd)
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	pw := strings.TrimSpace(string(pwBytes))
	if pw == "" {
		return "", errors.New("empty password")
	}
	return pw, nil
}
