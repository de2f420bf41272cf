// Package logger configures the process-wide structured logger.
package logger

import (
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"skill-insight/internal/config"
)

// Setup builds the application logger from configuration and installs it as
// the slog default. Unknown levels fall back to info.
func Setup(cfg config.LogConfig) *slog.Logger {
	return New(os.Stdout, cfg)
}

func New(w io.Writer, cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	l := slog.New(handler)
	slog.SetDefault(l)
	return l
}

func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

// StdLogger adapts l for components that expect a *log.Logger. Lines are
// emitted at info level under the given component attribute.
func StdLogger(l *slog.Logger, component string) *log.Logger {
	if l == nil {
		l = slog.Default()
	}
	return slog.NewLogLogger(l.With("component", component).Handler(), slog.LevelInfo)
}
