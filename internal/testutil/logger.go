package testutil

import "log/slog"

// NopLogger returns a logger for tests that must stay silent
func NopLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
