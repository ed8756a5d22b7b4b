// Package rqlog centralizes the driver's zap field/logger conventions, the
// Go equivalent of antflydb-antfly-go/libaf/logging's configurable logger
// factory: a small Style/Level switch producing a no-op logger or a real
// zap.NewDevelopmentConfig()- or zap.NewProductionConfig()-based one, plus a handful of named field
// constructors so every package logs the same keys for the same concepts
// instead of inventing its own ad hoc strings.
package rqlog

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Style selects the logger's output shape, mirroring libaf/logging's
// Style switch (Nop/Development/Production).
type Style int

const (
	StyleNop Style = iota
	StyleDevelopment
	StyleProduction
)

// Config configures New the way antflydb's logging.Config configures
// NewLogger: a style plus a minimum level.
type Config struct {
	Style Style
	Level zapcore.Level
}

// New builds a *zap.Logger per cfg.Style, defaulting to a no-op logger so
// the driver never forces log output on a caller that didn't ask for it.
func New(cfg Config) *zap.Logger {
	switch cfg.Style {
	case StyleDevelopment:
		zc := zap.NewDevelopmentConfig()
		zc.Level = zap.NewAtomicLevelAt(cfg.Level)
		logger, err := zc.Build()
		if err != nil {
			return zap.NewNop()
		}
		return logger
	case StyleProduction:
		zc := zap.NewProductionConfig()
		zc.Level = zap.NewAtomicLevelAt(cfg.Level)
		logger, err := zc.Build()
		if err != nil {
			return zap.NewNop()
		}
		return logger
	default:
		return zap.NewNop()
	}
}

// Address names the remote endpoint a connection-level log line refers to.
func Address(addr string) zap.Field { return zap.String("address", addr) }

// Token names the request token a wire/cursor-level log line refers to.
func Token(token uint64) zap.Field { return zap.Uint64("token", token) }

// ConnectionID names the demultiplexer connection identity a log line
// refers to, distinct from Token since many tokens share one connection.
func ConnectionID(id uint64) zap.Field { return zap.Uint64("connection_id", id) }

// Generation names a connection's reset generation, the counter that
// invalidates stale cursors after Connection.Reset.
func Generation(gen uint64) zap.Field { return zap.Uint64("generation", gen) }
