package observability

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger returns a zerolog Logger writing to stdout.
// APP_ENV=dev (or development) uses a human-friendly console writer.
func NewLogger(env string) zerolog.Logger {
	return newLogger(os.Stdout, env)
}

// NewCLILogger logs to stderr so stdout stays free for command output.
func NewCLILogger(env string, verbose bool) zerolog.Logger {
	l := newLogger(os.Stderr, env)
	if !verbose {
		l = l.Level(zerolog.InfoLevel)
	}
	return l
}

func newLogger(w io.Writer, env string) zerolog.Logger {
	if env == "dev" || env == "development" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).With().Timestamp().Logger()
}
