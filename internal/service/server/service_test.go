package server

import (
	"context"
	"errors"
	"net"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"

	"github.com/oshokin/nt-version/internal/domain/host"
	"github.com/oshokin/nt-version/internal/metrics"
)

// fakeSource returns a fixed snapshot or error.
type fakeSource struct {
	snapshot *host.Snapshot
	err      error
}

// Snapshot implements kernel.Service.
func (f *fakeSource) Snapshot(context.Context) (*host.Snapshot, error) {
	return f.snapshot.Clone(), f.err
}

// TestService_Snapshot records served snapshots in the collector.
func TestService_Snapshot(t *testing.T) {
	t.Parallel()

	collector := metrics.NewCollector()
	svc := newService(&fakeSource{snapshot: &host.Snapshot{Major: 10, Build: 20348, Strategy: "static"}}, collector)

	for range 3 {
		snapshot, err := svc.Snapshot(context.Background())
		require.NoError(t, err)
		require.Equal(t, "10.0.20348", snapshot.Version())
	}

	require.Equal(t, 1, testutil.CollectAndCount(collector, "ntversion_kernel_info"))
	require.Equal(t, 1, testutil.CollectAndCount(collector, "ntversion_queries_total"))
}

// TestService_SnapshotError passes source failures through without touching metrics.
func TestService_SnapshotError(t *testing.T) {
	t.Parallel()

	sourceErr := errors.New("ntdll export not resolved")
	collector := metrics.NewCollector()
	svc := newService(&fakeSource{err: sourceErr}, collector)

	_, err := svc.Snapshot(context.Background())
	require.ErrorIs(t, err, sourceErr)
	require.Equal(t, 0, testutil.CollectAndCount(collector))
}

// TestRun_RequiresSource rejects options without a source.
func TestRun_RequiresSource(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, Run(context.Background(), new(Options)), errNoSource)
}

// TestRun_FailsFastOnBrokenSource does not start listening when the first query fails.
func TestRun_FailsFastOnBrokenSource(t *testing.T) {
	t.Parallel()

	sourceErr := errors.New("ntdll export not resolved")

	err := Run(context.Background(), &Options{
		ConfigPath:    filepath.Join(t.TempDir(), "missing.yaml"),
		ListenAddress: "127.0.0.1:0",
		Source:        &fakeSource{err: sourceErr},
	})
	require.ErrorIs(t, err, sourceErr)
}

// TestRun_InvalidListenAddress reports malformed overrides.
func TestRun_InvalidListenAddress(t *testing.T) {
	t.Parallel()

	err := Run(context.Background(), &Options{
		ConfigPath:    filepath.Join(t.TempDir(), "missing.yaml"),
		ListenAddress: "no-port",
		Source:        &fakeSource{snapshot: &host.Snapshot{Major: 10}},
	})
	require.Error(t, err)
}

// TestServe_StopsMetricsWhenServeFails shuts everything down when the listener breaks
// before the context is canceled.
func TestServe_StopsMetricsWhenServeFails(t *testing.T) {
	t.Parallel()

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	require.NoError(t, lis.Close())

	var metricsStopped atomic.Bool

	err = serve(
		context.Background(),
		grpc.NewServer(),
		health.NewServer(),
		lis,
		func() { metricsStopped.Store(true) },
	)
	require.ErrorIs(t, err, net.ErrClosed)
	require.True(t, metricsStopped.Load())
}

// TestServe_StopsOnCancel returns nil and stops metrics once the context is canceled.
func TestServe_StopsOnCancel(t *testing.T) {
	t.Parallel()

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var metricsStopped atomic.Bool

	err = serve(ctx, grpc.NewServer(), health.NewServer(), lis, func() { metricsStopped.Store(true) })
	require.NoError(t, err)
	require.True(t, metricsStopped.Load())
}
