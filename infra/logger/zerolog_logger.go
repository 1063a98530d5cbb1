package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options tune a ZerologLogger. Zero values select info level, the format
// implied by APP_ENV and stderr.
type Options struct {
	Level  string
	Format string
	Output io.Writer
}

// ZerologLogger implements Logger using rs/zerolog.
type ZerologLogger struct {
	log zerolog.Logger
}

var (
	defaultsMu sync.RWMutex
	defaults   Options
)

// Configure sets the options used by New and NewZerologLogger. An unknown
// level is rejected and the previous defaults stay in place.
func Configure(opts Options) error {
	if _, err := NewWithOptions("", opts); err != nil {
		return err
	}
	defaultsMu.Lock()
	defaults = opts
	defaultsMu.Unlock()
	return nil
}

// NewZerologLogger creates a ZerologLogger from the configured defaults.
// Without Configure the APP_ENV environment variable determines the output
// format. All logs include the provided component field.
func NewZerologLogger(component string) Logger {
	defaultsMu.RLock()
	opts := defaults
	defaultsMu.RUnlock()
	l, _ := NewWithOptions(component, opts)
	return l
}

// NewWithOptions builds a logger from explicit options. An unknown level is
// reported and info is used instead.
func NewWithOptions(component string, opts Options) (Logger, error) {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	format := strings.ToLower(opts.Format)
	if format == "" && strings.ToLower(os.Getenv("APP_ENV")) == "dev" {
		format = "console"
	}
	if format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	var err error
	level := zerolog.InfoLevel
	if opts.Level != "" {
		parsed, perr := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if perr != nil || parsed == zerolog.NoLevel {
			err = fmt.Errorf("unknown log level %q", opts.Level)
		} else {
			level = parsed
		}
	}
	z := zerolog.New(out).Level(level).With().Timestamp().Str("component", component).Logger()
	return &ZerologLogger{log: z}, err
}

func (l *ZerologLogger) Debugf(format string, args ...any) {
	l.log.Debug().Msgf(format, args...)
}

func (l *ZerologLogger) Debugw(msg string, fields map[string]any) {
	l.log.Debug().Fields(fields).Msg(msg)
}

func (l *ZerologLogger) Infof(format string, args ...any) {
	l.log.Info().Msgf(format, args...)
}

func (l *ZerologLogger) Infow(msg string, fields map[string]any) {
	l.log.Info().Fields(fields).Msg(msg)
}

func (l *ZerologLogger) Warnf(format string, args ...any) {
	l.log.Warn().Msgf(format, args...)
}

func (l *ZerologLogger) Errorf(format string, args ...any) {
	l.log.Error().Msgf(format, args...)
}
