// Package server runs `ntver serve`: a gRPC endpoint answering kernel
// version queries for remote inventory tools, with grpc.health.v1 and an
// optional Prometheus /metrics listener.
package server
