// Package config reads driver-wide defaults from the environment, the
// same env-var idiom sqldef's util/logutil.go uses for its own LOG_LEVEL
// setting (InitSlog/os.LookupEnv+strings.ToLower). Nothing about a single
// query or connection's behavior is configured this way - per SPEC_FULL's
// Non-goals, wire/query construction takes no env vars or files - only
// the ambient concerns (log verbosity, pool sizing, default read mode)
// that a process wires up once at startup.
package config

import (
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rethinkdb-go/rethinkdriver/reql"
	"github.com/rethinkdb-go/rethinkdriver/reql/rqlog"
	"github.com/rethinkdb-go/rethinkdriver/reql/rqpool"
)

// Config bundles the settings a process typically wants to source from
// its environment rather than hardcode.
type Config struct {
	Endpoints    []string
	PoolMaxSize  int
	PoolMinIdle  int
	DefaultRead  reql.ReadMode
	Logger       *zap.Logger
}

// FromEnv reads RETHINKDRIVER_ENDPOINTS (comma separated),
// RETHINKDRIVER_POOL_MAX_SIZE, RETHINKDRIVER_POOL_MIN_IDLE,
// RETHINKDRIVER_READ_MODE, and RETHINKDRIVER_LOG_LEVEL, falling back to
// rqpool.DefaultOptions()'s sizing and a Nop logger when unset.
func FromEnv() Config {
	defaults := rqpool.DefaultOptions()
	c := Config{
		PoolMaxSize: defaults.MaxSize,
		PoolMinIdle: defaults.MinIdle,
		DefaultRead: reql.ReadModeUnset,
	}

	if v, ok := os.LookupEnv("RETHINKDRIVER_ENDPOINTS"); ok && v != "" {
		for _, e := range strings.Split(v, ",") {
			if e = strings.TrimSpace(e); e != "" {
				c.Endpoints = append(c.Endpoints, e)
			}
		}
	}
	if v, ok := os.LookupEnv("RETHINKDRIVER_POOL_MAX_SIZE"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			c.PoolMaxSize = n
		}
	}
	if v, ok := os.LookupEnv("RETHINKDRIVER_POOL_MIN_IDLE"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			c.PoolMinIdle = n
		}
	}
	if v, ok := os.LookupEnv("RETHINKDRIVER_READ_MODE"); ok {
		c.DefaultRead = reql.ReadMode(v)
	}

	c.Logger = loggerFromEnv()
	return c
}

func loggerFromEnv() *zap.Logger {
	level, ok := os.LookupEnv("RETHINKDRIVER_LOG_LEVEL")
	if !ok {
		return rqlog.New(rqlog.Config{Style: rqlog.StyleNop})
	}
	var zl zapcore.Level
	if err := zl.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		return rqlog.New(rqlog.Config{Style: rqlog.StyleNop})
	}
	return rqlog.New(rqlog.Config{Style: rqlog.StyleProduction, Level: zl})
}

// PoolOptions adapts Config into rqpool.Options.
func (c Config) PoolOptions() rqpool.Options {
	return rqpool.Options{
		MaxSize: c.PoolMaxSize,
		MinIdle: c.PoolMinIdle,
		Logger:  c.Logger,
	}
}
