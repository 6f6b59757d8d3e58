// Package common holds helpers shared by several services.
//
// It provides the gRPC client for a remote ntver server and detects the
// identity of the current process for reports.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
