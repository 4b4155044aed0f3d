// Package clilog wires a slog.Logger into the mdvalidate CLI the way
// MacroPower-x/log wires its own: a small Config struct, a RegisterFlags
// method that attaches to a *pflag.FlagSet, and a New constructor that
// builds the handler once flags are parsed.
package clilog

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
)

// Config holds the logging flags the validate/watch subcommands share.
type Config struct {
	Level string
	JSON  bool
}

// RegisterFlags attaches --log-level and --log-json to fs.
func (c *Config) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.Level, "log-level", "info", "log level: debug, info, warn, error")
	fs.BoolVar(&c.JSON, "log-json", false, "emit logs as JSON instead of text")
}

// New builds a logger writing to out per the parsed Config.
func New(out io.Writer, c Config) *slog.Logger {
	if out == nil {
		out = os.Stderr
	}
	var level slog.Level
	switch c.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if c.JSON {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}
	return slog.New(handler)
}
