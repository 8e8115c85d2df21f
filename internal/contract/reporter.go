package contract

import (
	"fmt"
	"io"
	"os"
)

// ConsoleReporter prints analysis diagnostics to the console. Info lines go
// to stdout so they read in sequence with tables; warnings go to stderr so
// piped output stays clean.
type ConsoleReporter struct {
	UseEmojis bool

	Out    io.Writer
	ErrOut io.Writer
}

// NewConsoleReporter builds a reporter honoring the emoji preference.
func NewConsoleReporter(cfg *Config) *ConsoleReporter {
	return &ConsoleReporter{
		UseEmojis: cfg.UseEmojis,
		Out:       os.Stdout,
		ErrOut:    os.Stderr,
	}
}

// Infof prints an informational line, prefixed with the emoji when enabled.
func (r *ConsoleReporter) Infof(emoji, format string, args ...any) {
	r.printf(r.Out, emoji, format, args...)
}

// Warnf prints a warning line to stderr, prefixed with the emoji when enabled.
func (r *ConsoleReporter) Warnf(emoji, format string, args ...any) {
	r.printf(r.ErrOut, emoji, format, args...)
}

func (r *ConsoleReporter) printf(w io.Writer, emoji, format string, args ...any) {
	if r.UseEmojis && emoji != "" {
		_, _ = fmt.Fprintf(w, emoji+" "+format+"\n", args...)
		return
	}
	_, _ = fmt.Fprintf(w, format+"\n", args...)
}
