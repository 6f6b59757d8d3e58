package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/nt-version/internal/service/local"
	"github.com/oshokin/nt-version/internal/service/server"
)

var (
	// listenAddress overrides the configured gRPC listen address.
	listenAddress string
	// metricsAddress overrides the configured /metrics listen address.
	metricsAddress string

	// serveCmd answers kernel version queries over gRPC.
	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve the kernel version over gRPC.",
		Long: `Serve the kernel version of this host over gRPC (ntversion.v1.KernelService)
for inventory tools, together with grpc.health.v1.

When a metrics address is configured, Prometheus metrics are served on /metrics.
The server stops gracefully on SIGINT or SIGTERM.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			return server.Run(ctx, &server.Options{
				ConfigPath:     configPath,
				ListenAddress:  listenAddress,
				MetricsAddress: metricsAddress,
				LogLevel:       logLevel,
				Source:         local.NewSource(),
			})
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	serveCmd.Flags().StringVarP(&listenAddress, "listen", "l", "", "gRPC listen address, e.g. :50551")
	serveCmd.Flags().StringVar(&metricsAddress, "metrics", "", "Prometheus /metrics listen address, e.g. :9551")
}
