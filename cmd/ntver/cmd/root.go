package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/nt-version/internal/config"
	"github.com/oshokin/nt-version/internal/service/local"
	"github.com/oshokin/nt-version/internal/service/query"
	"github.com/oshokin/nt-version/internal/version"
)

var (
	// configPath stores the path to the configuration YAML file.
	configPath string
	// output overrides the configured output format.
	output string
	// logLevel overrides the configured log level.
	logLevel string
	// requirement is a version constraint the kernel must satisfy.
	requirement string
	// save writes the report to disk.
	save bool
	// reportFile overrides the configured report location.
	reportFile string

	// rootCmd queries the kernel version locally or from a remote server.
	rootCmd = &cobra.Command{
		Use:   "ntver [server-address]",
		Short: "Print the Windows NT kernel version.",
		Long: `Print the major, minor and build numbers of the running Windows NT kernel
as reported by the ntdll.dll export RtlGetNtVersionNumbers.

With a server address (argument or server_addr in the configuration file) the
version of the remote host running "ntver serve" is printed instead.

--require fails with a non-zero exit code when the version does not satisfy
a constraint such as ">= 10.0.17763"; the version is printed either way.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			var serverAddress string
			if len(args) > 0 {
				serverAddress = args[0]
			}

			return query.Run(ctx, &query.Options{
				ConfigPath:    configPath,
				ServerAddress: serverAddress,
				Output:        output,
				LogLevel:      logLevel,
				Require:       requirement,
				Save:          save,
				ReportFile:    reportFile,
				Source:        local.NewSource(),
				Out:           cmd.OutOrStdout(),
			})
		},
	}
)

// Execute runs the ntver CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd, func() string {
		return "ntdll binding: " + local.Strategy()
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	flags.StringVarP(&output, "output", "o", "", "output format: text, json or yaml")
	flags.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")

	rootCmd.Flags().StringVar(&requirement, "require", "", `version constraint the kernel must satisfy, e.g. ">= 10.0.17763"`)
	rootCmd.Flags().BoolVar(&save, "save", false, "save the report to the report file")
	rootCmd.Flags().StringVar(&reportFile, "report-file", "", "report file used by --save")

	rootCmd.AddCommand(serveCmd, inspectCmd)
}
