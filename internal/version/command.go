package version

import (
	"fmt"

	"github.com/spf13/cobra"
)

// AttachCobraVersionCommand adds a `version` subcommand to root.
// When details is not nil its result is printed on a second line.
func AttachCobraVersionCommand(root *cobra.Command, details func() string) {
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information.",
		Long:  "Print build metadata injected at build time: semantic version, commit hash, build timestamp and the ntdll binding strategy.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), Full())

			if details != nil {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), details())
			}
		},
	})
}
