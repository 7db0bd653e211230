package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// notAvailable подставляется, если версия или дата не переданы через -ldflags.
const notAvailable = "N/A"

// NewVersionCmd создаёт команду version.
//
//	usersctl version
//	usersctl version=1.2.3
//	build_date=2026-01-16
func NewVersionCmd(buildVersion, buildDate string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Показать версию и дату сборки usersctl",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "usersctl version=%s\nbuild_date=%s\n",
				orNotAvailable(buildVersion), orNotAvailable(buildDate))
			return err
		},
	}
}

func orNotAvailable(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}
