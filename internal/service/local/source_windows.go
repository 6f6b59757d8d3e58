package local

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/oshokin/nt-version/internal/domain/host"
	"github.com/oshokin/nt-version/internal/logger"
	"github.com/oshokin/nt-version/internal/service/common"
	"github.com/oshokin/nt-version/ntversion"
)

// Source produces snapshots of the local kernel version.
type Source struct {
	// reporter detects the process identity on the first snapshot and caches
	// the result; remote-only callers never pay for it.
	reporter func() (*host.Actor, error)
}

// NewSource returns a Source that detects the reporting process on first use.
func NewSource() *Source {
	return &Source{reporter: sync.OnceValues(common.DetectActor)}
}

// Snapshot queries the kernel and stamps the reading with time, strategy and reporter.
func (s *Source) Snapshot(ctx context.Context) (*host.Snapshot, error) {
	v, err := ntversion.Get()
	if err != nil {
		return nil, fmt.Errorf("query kernel version: %w", err)
	}

	reporter, err := s.reporter()
	if err != nil {
		return nil, fmt.Errorf("detect actor: %w", err)
	}

	logger.DebugKV(ctx, "Kernel version queried", "version", v.String(), "strategy", Strategy())

	return &host.Snapshot{
		Timestamp: time.Now().UTC(),
		Reporter:  reporter.Clone(),
		Strategy:  Strategy(),
		Major:     v.Major,
		Minor:     v.Minor,
		Build:     v.Build,
	}, nil
}

// Strategy names the ntdll binding compiled into this binary.
func Strategy() string {
	return string(ntversion.ActiveStrategy())
}
