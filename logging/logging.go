package logging

import (
	"errors"
	"fmt"
	"golang.org/x/term"
	"io"
	"log/slog"
	"os"
	"strings"
)

var (
	ErrInvalidFormat = errors.New("invalid log format")
	ErrInvalidLevel  = errors.New("invalid log level")
)

const (
	FormatAuto = "auto" // FormatAuto uses text output for a terminal, and JSON otherwise.
	FormatText = "text"
	FormatJSON = "json"
)

// Config controls how [New] builds a logger.
type Config struct {
	Level     string `yaml:"level"`
	Format    string `yaml:"format"`
	AddSource bool   `yaml:"add_source"`
}

// DefaultConfig logs at info level, with the format chosen by the output.
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: FormatAuto,
	}
}

// ParseLevel accepts the same level names as [slog.Level.UnmarshalText], such as "debug" or "warn+2".
func ParseLevel(level string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return lvl, fmt.Errorf("%w: '%s'", ErrInvalidLevel, level)
	}
	return lvl, nil
}

// Validate checks that the level and format are recognized.
func (c Config) Validate() error {
	var errs []error
	if _, err := ParseLevel(c.Level); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.Format) {
	case "", FormatAuto, FormatText, FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("%w: '%s'", ErrInvalidFormat, c.Format))
	}
	return errors.Join(errs...)
}

// New creates a logger that writes to out.
// Repeated attribute keys from [slog.Logger.With] are collapsed to the latest value.
// Any extra handlers will also receive every record, for example to capture logs in a test or send them to a file.
func New(conf Config, out io.Writer, extra ...slog.Handler) (*slog.Logger, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	level, _ := ParseLevel(conf.Level)
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: conf.AddSource,
	}
	var handler slog.Handler
	if useText(conf.Format, out) {
		handler = slog.NewTextHandler(out, opts)
	} else {
		handler = slog.NewJSONHandler(out, opts)
	}
	if len(extra) > 0 {
		handler = MergeHandlers(handler, extra[0], extra[1:]...)
	}
	return slog.New(NewDedupeHandler(handler)), nil
}

// Init is like [New], but writes to stderr and also sets the result as the [slog.Default] logger.
func Init(conf Config) (*slog.Logger, error) {
	logger, err := New(conf, os.Stderr)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)
	return logger, nil
}

func useText(format string, out io.Writer) bool {
	switch strings.ToLower(format) {
	case FormatText:
		return true
	case FormatJSON:
		return false
	}
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
