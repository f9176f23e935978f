package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vanderheijden86/guildview/pkg/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the gv version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "gv %s\n", version.Version)
		},
	}
}
