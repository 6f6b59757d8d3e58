package metrics

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/oshokin/nt-version/internal/domain/host"
)

// Transport label values for ntversion_queries_total.
const (
	TransportGRPC  = "grpc"
	TransportLocal = "local"
)

//nolint:gochecknoglobals // Descriptors are immutable.
var kernelInfoDesc = prometheus.NewDesc(
	"ntversion_kernel_info",
	"Kernel version of the host serving ntver; the value is always 1.",
	[]string{"major", "minor", "build", "strategy"},
	nil,
)

// Collector reports the last observed snapshot and counts served queries.
type Collector struct {
	mu       sync.RWMutex
	snapshot *host.Snapshot

	queries *prometheus.CounterVec
}

// NewCollector returns a collector with no snapshot observed yet.
func NewCollector() *Collector {
	return &Collector{
		queries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ntversion_queries_total",
				Help: "Total number of kernel version queries served.",
			},
			[]string{"transport"},
		),
	}
}

// Observe records snapshot as the one reported by ntversion_kernel_info.
func (c *Collector) Observe(snapshot *host.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.snapshot = snapshot.Clone()
}

// QueryServed increments the query counter for transport.
func (c *Collector) QueryServed(transport string) {
	c.queries.WithLabelValues(transport).Inc()
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- kernelInfoDesc

	c.queries.Describe(ch)
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.mu.RLock()
	snapshot := c.snapshot
	c.mu.RUnlock()

	if snapshot != nil {
		ch <- prometheus.MustNewConstMetric(
			kernelInfoDesc,
			prometheus.GaugeValue,
			1,
			strconv.FormatUint(uint64(snapshot.Major), 10),
			strconv.FormatUint(uint64(snapshot.Minor), 10),
			strconv.FormatUint(uint64(snapshot.Build), 10),
			snapshot.Strategy,
		)
	}

	c.queries.Collect(ch)
}

// NewHandler serves c together with the Go runtime and process collectors
// from a private registry.
func NewHandler(c *Collector) http.Handler {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		c,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
