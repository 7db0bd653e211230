package tests

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-users-service/internal/agent/cli"
)

// run выполняет команду с аргументами и возвращает вывод
func run(cmd *cobra.Command, args ...string) (string, error) {
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// stubPassword подменяет чтение пароля из терминала
func stubPassword(t *testing.T, answers ...string) *[]string {
	t.Helper()

	prompts := &[]string{}
	orig := cli.ReadPassword
	cli.ReadPassword = func(_ *cobra.Command, prompt string, _ bool) (string, error) {
		*prompts = append(*prompts, prompt)
		if len(answers) == 0 {
			t.Fatalf("unexpected password prompt %q", prompt)
		}
		a := answers[0]
		answers = answers[1:]
		return a, nil
	}
	t.Cleanup(func() { cli.ReadPassword = orig })
	return prompts
}
