// Package logger configures the process-wide structured logger used
// across ALICE-Search's ambient stack.
package logger

import (
	"context"
	"log/slog"
	"os"
)

type contextKey struct{}

// Setup installs a slog default logger at the given level ("debug", "info",
// "warn", "error") and format ("json" or anything else for text).
func Setup(level string, format string) {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, opts)
	default:
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// WithQueryID attaches a query identifier to ctx for later retrieval via
// FromContext, letting a single search request's log lines be grepped
// together.
func WithQueryID(ctx context.Context, queryID string) context.Context {
	return context.WithValue(ctx, contextKey{}, queryID)
}

// FromContext returns a logger annotated with the query ID stored in ctx,
// if any.
func FromContext(ctx context.Context) *slog.Logger {
	l := slog.Default()
	if queryID, ok := ctx.Value(contextKey{}).(string); ok {
		l = l.With("query_id", queryID)
	}
	return l
}

// WithComponent returns a logger annotated with the named subsystem, e.g.
// "bwt", "querycache", "ingest".
func WithComponent(component string) *slog.Logger {
	return slog.Default().With("component", component)
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
