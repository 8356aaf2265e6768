// Package logging adapts zerolog to the application logging.Logger interface.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/infrastructure/config"
)

// ZerologLogger implements logging.Logger over a zerolog.Logger
type ZerologLogger struct {
	logger zerolog.Logger
	closer io.Closer
}

// NewZerologLogger wraps an existing zerolog logger
func NewZerologLogger(logger zerolog.Logger) *ZerologLogger {
	return &ZerologLogger{logger: logger}
}

// NewFromConfig builds a logger writing to the configured output in the configured format
func NewFromConfig(cfg *config.LoggingConfig) (*ZerologLogger, error) {
	var out io.Writer
	var closer io.Closer

	switch cfg.Output {
	case "stdout":
		out = os.Stdout
	case "file":
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out, closer = f, f
	default:
		out = os.Stderr
	}

	if cfg.Format == "text" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05", NoColor: cfg.Output == "file"}
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	ctx := zerolog.New(out).Level(level).With().Timestamp()
	if cfg.IncludeCaller {
		// Log adds one frame on top of zerolog's own
		ctx = ctx.CallerWithSkipFrameCount(zerolog.CallerSkipFrameCount + 1)
	}

	return &ZerologLogger{logger: ctx.Logger(), closer: closer}, nil
}

// Log writes one event. Unknown levels are logged at info.
func (l *ZerologLogger) Log(level, message string, metadata map[string]interface{}) {
	event := l.logger.WithLevel(parseLevel(level))
	if len(metadata) > 0 {
		event = event.Fields(metadata)
	}
	event.Msg(message)
}

// Zerolog returns the underlying zerolog logger
func (l *ZerologLogger) Zerolog() *zerolog.Logger {
	return &l.logger
}

// Close closes the log file, if any
func (l *ZerologLogger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return zerolog.DebugLevel
	case "WARNING", "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
