package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/nt-version/internal/service/inspect"
)

// inspectCmd prints a saved report.
var inspectCmd = &cobra.Command{
	Use:          "inspect [report-file]",
	Short:        "Print a report saved with --save.",
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		var path string
		if len(args) > 0 {
			path = args[0]
		}

		return inspect.Run(cmd.Context(), &inspect.Options{
			ConfigPath: configPath,
			ReportFile: path,
			Output:     output,
			Out:        cmd.OutOrStdout(),
		})
	},
}
