// Package host contains the platform-neutral domain types shared by the
// transport, storage and output layers.
//
// A Snapshot is one kernel version reading taken on a host; an Actor
// identifies the process that took it.
package host
