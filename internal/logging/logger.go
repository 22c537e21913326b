package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/m-mizutani/clog"
	"github.com/m-mizutani/goerr/v2"
)

var defaultLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Default returns the process-wide logger. Until Configure runs it
// discards everything: stdout belongs to the TUI.
func Default() *slog.Logger {
	return defaultLogger
}

// DefaultPath is where logs go when no output is given: a state file,
// never the terminal the browser is drawing on.
func DefaultPath() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "repodeck", "repodeck.log")
}

// Configure replaces the default logger with the given format, level,
// and output ("discard", "stderr", or a file path).
func Configure(logFormat, logLevel, logOutput string) error {
	levelMap := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	level, ok := levelMap[logLevel]
	if !ok {
		return goerr.New("invalid log level", goerr.V("value", logLevel))
	}

	var w io.Writer
	switch logOutput {
	case "discard":
		w = io.Discard
	case "stderr":
		w = os.Stderr
	default:
		if logOutput == "" {
			logOutput = DefaultPath()
		}
		if err := os.MkdirAll(filepath.Dir(logOutput), 0o755); err != nil {
			return goerr.Wrap(err, "failed to create log directory", goerr.V("path", logOutput))
		}
		fd, err := os.OpenFile(filepath.Clean(logOutput), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return goerr.Wrap(err, "failed to open log file", goerr.V("path", logOutput))
		}
		w = fd
	}

	var handler slog.Handler
	switch logFormat {
	case "text":
		handler = clog.New(
			clog.WithWriter(w),
			clog.WithLevel(level),
			clog.WithSource(true),
			clog.WithColorMap(&clog.ColorMap{
				Level: map[slog.Level]*color.Color{
					slog.LevelDebug: color.New(color.FgGreen, color.Bold),
					slog.LevelInfo:  color.New(color.FgCyan, color.Bold),
					slog.LevelWarn:  color.New(color.FgYellow, color.Bold),
					slog.LevelError: color.New(color.FgRed, color.Bold),
				},
				LevelDefault: color.New(color.FgBlue, color.Bold),
				Time:         color.New(color.FgWhite),
				Message:      color.New(color.FgHiWhite),
				AttrKey:      color.New(color.FgHiCyan),
				AttrValue:    color.New(color.FgHiWhite),
			}),
		)
	case "json":
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			AddSource: true,
			Level:     level,
		})
	default:
		return goerr.New("invalid log format, should be 'json' or 'text'", goerr.V("value", logFormat))
	}

	defaultLogger = slog.New(handler)
	return nil
}
