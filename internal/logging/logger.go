// Package logging defines the structured-logging contract the rest of the
// server codes against. The concrete implementation wraps slog, but nothing
// outside this package depends on that.
package logging

import "context"

// Logger is a context-aware, structured logger. Variadic args are
// alternating keys and values:
//
//	log.Info(ctx, "starting server", "addr", addr)
type Logger interface {
	// Info logs routine operational events.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs unusual but non-fatal conditions.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs failures.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given pairs.
	With(args ...any) Logger
}
