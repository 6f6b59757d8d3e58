package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// TestParseLogLevel verifies mapping from strings to zapcore.Level and handling of unknown values.
func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
		" WARN ":  zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"fatal":   zapcore.FatalLevel,
	}
	for s, lvl := range cases {
		got, ok := ParseLogLevel(s)
		require.True(t, ok, s)
		require.Equal(t, lvl, got)
	}

	_, ok := ParseLogLevel("verbose")
	require.False(t, ok)
}

// TestFromContext_FallsBackToGlobal ensures a bare context yields the global logger.
func TestFromContext_FallsBackToGlobal(t *testing.T) {
	t.Parallel()

	require.Same(t, Logger(), FromContext(context.Background()))
}

// TestContextHelpers checks that names and fields attached to a context reach the log entries.
func TestContextHelpers(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	ctx := ToContext(context.Background(), zap.New(core).Sugar())

	ctx = WithName(ctx, "ntver")
	ctx = WithKV(ctx, "strategy", "static")
	ctx = WithFields(ctx, "host", "build-agent")

	InfoKV(ctx, "Kernel version queried", "version", "10.0.22631")

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "ntver", entries[0].LoggerName)
	require.Equal(t, "Kernel version queried", entries[0].Message)

	fields := entries[0].ContextMap()
	require.Equal(t, "static", fields["strategy"])
	require.Equal(t, "build-agent", fields["host"])
	require.Equal(t, "10.0.22631", fields["version"])
}

// TestWithLevel verifies the option filters entries below the pinned level.
func TestWithLevel(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	ctx := ToContext(context.Background(), zap.New(core, WithLevel(zapcore.WarnLevel)).Sugar())

	Debugf(ctx, "dropped %d", 1)
	Info(ctx, "dropped")
	WarnKV(ctx, "kept")
	Errorf(ctx, "kept %s", "too")

	require.Equal(t, 2, logs.Len())
}
