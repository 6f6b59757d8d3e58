// Package version exposes build metadata for ntver.
//
// Version, Commit and BuildTime are injected with -ldflags "-X ..." and keep
// their defaults for local builds.
package version
