package server

import (
	"context"

	"github.com/oshokin/nt-version/internal/api/grpc/kernel"
	"github.com/oshokin/nt-version/internal/domain/host"
	"github.com/oshokin/nt-version/internal/logger"
	"github.com/oshokin/nt-version/internal/metrics"
)

// service records every snapshot it serves in the metrics collector.
// It is unexported to keep the transport decoupled from the implementation.
type service struct {
	// source reads the kernel version.
	source kernel.Service
	// collector receives served snapshots and query counts.
	collector *metrics.Collector
}

// newService wraps source with metrics bookkeeping.
func newService(source kernel.Service, collector *metrics.Collector) *service {
	return &service{
		source:    source,
		collector: collector,
	}
}

// Snapshot reads the kernel version and updates the metrics.
func (s *service) Snapshot(ctx context.Context) (*host.Snapshot, error) {
	snapshot, err := s.source.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	s.collector.Observe(snapshot)
	s.collector.QueryServed(metrics.TransportGRPC)

	logger.DebugKV(ctx, "Kernel version served", "version", snapshot.Version(), "strategy", snapshot.Strategy)

	return snapshot, nil
}
