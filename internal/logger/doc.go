// Package logger wraps zap with a process-wide sugared logger that writes
// human-readable lines to stderr, leaving stdout to command output.
//
// Services carry the logger in their context (ToContext/FromContext/WithName/WithKV)
// and log through the leveled helpers (Infof, InfoKV, ErrorKV, ...).
package logger
