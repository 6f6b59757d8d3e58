// Package metrics exposes the served kernel version and query counts in the
// Prometheus text format.
package metrics
