package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// levelCore overrides the level of the wrapped core, so a child logger can
// be quieter or chattier than the global one.
type levelCore struct {
	zapcore.Core

	level zapcore.Level
}

// Enabled reports whether l passes the overriding level.
func (c *levelCore) Enabled(l zapcore.Level) bool {
	return c.level.Enabled(l)
}

// Check adds the core to ce when the entry level is enabled.
//
//nolint:gocritic // AddCore requires ent to be passed by value.
func (c *levelCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if !c.Enabled(ent.Level) {
		return ce
	}

	return ce.AddCore(ent, c)
}

// With keeps the overriding level on derived cores.
//
//nolint:ireturn // zapcore.Core is the interface zap expects.
func (c *levelCore) With(fields []zapcore.Field) zapcore.Core {
	return &levelCore{Core: c.Core.With(fields), level: c.level}
}

// WithLevel returns an option that pins the logger to lvl regardless of the
// level of the core it wraps.
//
//nolint:ireturn // zap.Option is the interface zap expects.
func WithLevel(lvl zapcore.Level) zap.Option {
	return zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return &levelCore{Core: core, level: lvl}
	})
}
