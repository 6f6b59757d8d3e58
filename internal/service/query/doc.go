// Package query implements the default ntver command: read the kernel
// version locally or from a remote ntver server, optionally enforce a
// version constraint and save the report, then print it.
package query
