package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/oshokin/nt-version/internal/api/grpc/kernel"
	"github.com/oshokin/nt-version/internal/config"
	"github.com/oshokin/nt-version/internal/logger"
	"github.com/oshokin/nt-version/internal/metrics"
)

// Options controls the ntver server process and configuration.
type Options struct {
	// ConfigPath specifies the settings YAML file; a missing file means defaults.
	ConfigPath string
	// ListenAddress overrides the configured gRPC listen address.
	ListenAddress string
	// MetricsAddress overrides the configured /metrics listen address.
	MetricsAddress string
	// LogLevel overrides the configured log level.
	LogLevel string
	// Source reads the local kernel version.
	Source kernel.Service
}

const (
	// metricsReadHeaderTimeout bounds slow clients on the metrics listener.
	metricsReadHeaderTimeout = 5 * time.Second
	// metricsShutdownTimeout bounds the metrics listener shutdown.
	metricsShutdownTimeout = 5 * time.Second
)

// errNoSource is returned when Options.Source is not set.
var errNoSource = errors.New("kernel version source is not set")

// Run starts the gRPC server and blocks until ctx is canceled or serving fails.
// The kernel is queried once before listening so a broken binding fails fast.
//
//nolint:funlen // Startup and shutdown read best side by side.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "ntver-server")

	if opts.Source == nil {
		return errNoSource
	}

	cfg, err := config.LoadOrDefault(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	if err = applyOverrides(cfg, opts); err != nil {
		return err
	}

	collector := metrics.NewCollector()
	svc := newService(opts.Source, collector)

	snapshot, err := opts.Source.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("initial kernel version query: %w", err)
	}

	collector.Observe(snapshot)
	collector.QueryServed(metrics.TransportLocal)

	lc := net.ListenConfig{}

	lis, err := lc.Listen(ctx, "tcp", cfg.ListenAddress)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.ListenAddress, err)
	}

	grpcServer := grpc.NewServer()
	kernel.RegisterKernelServiceServer(grpcServer, kernel.NewServer(svc))

	healthServer := health.NewServer()
	healthServer.SetServingStatus(kernel.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	stopMetrics, err := startMetrics(ctx, cfg.MetricsAddress, collector)
	if err != nil {
		_ = lis.Close()

		return err
	}

	logger.InfoKV(
		ctx,
		"ntver server listening",
		"listen_address", lis.Addr().String(),
		"metrics_address", cfg.MetricsAddress,
		"kernel_version", snapshot.Version(),
		"strategy", snapshot.Strategy,
	)

	return serve(ctx, grpcServer, healthServer, lis, stopMetrics)
}

// serve runs grpcServer on lis until ctx is canceled or Serve fails.
// Either way the health server, gRPC server and metrics listener are stopped
// before it returns.
func serve(
	ctx context.Context,
	grpcServer *grpc.Server,
	healthServer *health.Server,
	lis net.Listener,
	stopMetrics func(),
) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Done channel is closed after GracefulStop finishes to ensure we block
	// until the server fully stops before returning.
	done := make(chan struct{})

	go func() {
		<-runCtx.Done()
		logger.Info(ctx, "Shutting down gRPC server")
		healthServer.Shutdown()
		grpcServer.GracefulStop()
		stopMetrics()
		close(done)
	}()

	serveErr := grpcServer.Serve(lis)

	cancel()
	<-done

	if serveErr != nil && !errors.Is(serveErr, grpc.ErrServerStopped) {
		return fmt.Errorf("serve gRPC: %w", serveErr)
	}

	logger.Info(ctx, "gRPC server stopped")

	return nil
}

// applyOverrides merges command-line overrides into cfg and applies the log level.
func applyOverrides(cfg *config.Config, opts *Options) error {
	if opts.ListenAddress != "" {
		cfg.ListenAddress = opts.ListenAddress
	}

	if opts.MetricsAddress != "" {
		cfg.MetricsAddress = opts.MetricsAddress
	}

	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("validate options: %w", err)
	}

	level, _ := logger.ParseLogLevel(cfg.LogLevel)
	logger.SetLevel(level)

	return nil
}

// startMetrics serves /metrics on address when it is set and returns the
// function that stops it.
func startMetrics(ctx context.Context, address string, collector *metrics.Collector) (func(), error) {
	if address == "" {
		return func() {}, nil
	}

	lc := net.ListenConfig{}

	lis, err := lc.Listen(ctx, "tcp", address)
	if err != nil {
		return nil, fmt.Errorf("listen metrics on %s: %w", address, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.NewHandler(collector))

	httpServer := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: metricsReadHeaderTimeout,
	}

	go func() {
		if err := httpServer.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorKV(ctx, "Metrics listener failed", "error", err)
		}
	}()

	logger.InfoKV(ctx, "Metrics listening", "metrics_address", lis.Addr().String())

	return func() {
		// ctx is already canceled here.
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), metricsShutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.ErrorKV(ctx, "Metrics listener shutdown failed", "error", err)
		}
	}, nil
}
