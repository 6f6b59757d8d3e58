package integration

import (
	"context"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/oshokin/nt-version/internal/api/grpc/kernel"
	"github.com/oshokin/nt-version/internal/domain/host"
	"github.com/oshokin/nt-version/internal/service/server"
)

// fakeSource returns a fixed snapshot or error.
type fakeSource struct {
	snapshot *host.Snapshot
	err      error
}

// Snapshot implements kernel.Service.
func (f *fakeSource) Snapshot(context.Context) (*host.Snapshot, error) {
	if f.err != nil {
		return nil, f.err
	}

	return f.snapshot.Clone(), nil
}

// reservePort returns a free loopback address.
func reservePort(t *testing.T) string {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	addr := l.Addr().String()
	_ = l.Close()

	return addr
}

// startServer runs server.Run in the background and waits until the health
// check reports SERVING. The returned function stops the server and waits for Run.
func startServer(t *testing.T, opts *server.Options) (stop func()) {
	t.Helper()

	if opts.ConfigPath == "" {
		opts.ConfigPath = filepath.Join(t.TempDir(), "missing.yaml")
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- server.Run(ctx, opts)
	}()

	conn, err := grpc.NewClient(opts.ListenAddress, grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)

	defer func() {
		_ = conn.Close()
	}()

	health := healthpb.NewHealthClient(conn)

	require.Eventually(t, func() bool {
		checkCtx, checkCancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
		defer checkCancel()

		resp, err := health.Check(checkCtx, &healthpb.HealthCheckRequest{Service: kernel.ServiceName})

		return err == nil && resp.GetStatus() == healthpb.HealthCheckResponse_SERVING
	}, 5*time.Second, 50*time.Millisecond)

	return func() {
		cancel()
		require.NoError(t, <-done)
	}
}

// testSnapshot returns a Windows Server 2022 reading.
func testSnapshot() *host.Snapshot {
	return &host.Snapshot{
		Timestamp: time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC),
		Reporter: &host.Actor{
			Hostname:   "win-srv-01",
			Username:   "SYSTEM",
			Executable: "ntver.exe",
		},
		Strategy: "dynamic",
		Major:    10,
		Minor:    0,
		Build:    20348,
	}
}
