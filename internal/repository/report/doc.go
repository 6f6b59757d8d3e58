// Package report persists kernel version snapshots for inventory export.
//
// The FileRepository stores a single snapshot as protobuf JSON, using the
// same Struct layout the gRPC service puts on the wire.
package report
