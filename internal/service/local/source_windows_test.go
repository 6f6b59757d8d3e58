package local

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sys/windows"

	"github.com/oshokin/nt-version/internal/domain/host"
)

// TestSource_Snapshot compares the snapshot with RtlGetVersion and checks the stamps.
func TestSource_Snapshot(t *testing.T) {
	t.Parallel()

	source := NewSource()

	snapshot, err := source.Snapshot(context.Background())
	require.NoError(t, err)

	oracle := windows.RtlGetVersion()
	require.Equal(t, oracle.MajorVersion, snapshot.Major)
	require.Equal(t, oracle.MinorVersion, snapshot.Minor)
	require.Equal(t, oracle.BuildNumber, snapshot.Build)
	require.Equal(t, Strategy(), snapshot.Strategy)
	require.False(t, snapshot.Timestamp.IsZero())
	require.NotNil(t, snapshot.Reporter)
	require.NotEmpty(t, snapshot.Reporter.Hostname)
}

// TestSource_ReporterNotShared ensures callers cannot mutate the cached reporter.
func TestSource_ReporterNotShared(t *testing.T) {
	t.Parallel()

	source := NewSource()

	first, err := source.Snapshot(context.Background())
	require.NoError(t, err)

	first.Reporter.Hostname = "changed"

	second, err := source.Snapshot(context.Background())
	require.NoError(t, err)
	require.NotEqual(t, "changed", second.Reporter.Hostname)
}

// TestSource_ActorDetectedOnSnapshot defers identity detection to the first snapshot.
func TestSource_ActorDetectedOnSnapshot(t *testing.T) {
	t.Parallel()

	var (
		calls     int
		detectErr = errors.New("current user lookup failed")
	)

	source := &Source{reporter: func() (*host.Actor, error) {
		calls++

		return nil, detectErr
	}}
	require.Zero(t, calls)

	_, err := source.Snapshot(context.Background())
	require.ErrorIs(t, err, detectErr)
	require.Equal(t, 1, calls)
}
