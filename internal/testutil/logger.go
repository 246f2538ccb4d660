// Package testutil holds helpers shared by package tests.
package testutil

import (
	"github.com/rs/zerolog"
	"os"
	"testing"
)

// Logger writes console output for the running test at warn level so that only
// degraded paths show up in test logs.
func Logger(t testing.TB) zerolog.Logger {
	t.Helper()
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true}).
		Level(zerolog.WarnLevel).
		With().
		Timestamp().
		Str("service", "msdata").
		Str("env", "test").
		Str("test", t.Name()).
		Logger()
}
