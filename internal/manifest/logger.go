package manifest

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/tdewolff/parse/v2"
)

// Logger is a wrapper around zerolog.Logger
type Logger struct {
	zerolog.Logger
}

// LoggerOptions contains options for creating a logger
type LoggerOptions struct {
	Output  io.Writer
	Format  string // "pretty" or "json"
	Verbose bool
	NoColor bool
}

// NewLogger creates a new logger with the given options. Diagnostics are
// emitted at debug level and only show up when Verbose is set.
func NewLogger(opts LoggerOptions) *Logger {
	var output io.Writer = os.Stderr
	if opts.Output != nil {
		output = opts.Output
	}

	if opts.Format != "json" {
		output = zerolog.ConsoleWriter{
			Out:        output,
			NoColor:    opts.NoColor,
			TimeFormat: time.Kitchen,
		}
	}

	level := zerolog.WarnLevel
	if opts.Verbose {
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Str("plugin", PluginName).
		Logger()

	return &Logger{Logger: logger}
}

// NopLogger returns a logger that discards everything.
func NopLogger() *Logger {
	return &Logger{Logger: zerolog.Nop()}
}

// WithFile returns a logger with a file field
func (l *Logger) WithFile(path string) *Logger {
	return &Logger{Logger: l.Logger.With().Str("file", path).Logger()}
}

// skip logs why a reference was ignored.
func (l *Logger) skip(m Match, src string, reason SkipReason) *zerolog.Event {
	ev := l.Debug()
	if !ev.Enabled() {
		return ev
	}
	line, col, _ := parse.Position(strings.NewReader(src), m.Offset)
	return ev.
		Str("url", abbreviate(m.URL, 30)).
		Int("line", line).
		Int("col", col).
		Str("reason", string(reason))
}

// abbreviate shortens long tokens such as data URIs for log output.
func abbreviate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
