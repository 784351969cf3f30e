package observability

import (
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LoggerOptions selects the output encoding of the process logger.
type LoggerOptions struct {
	JSON      bool
	Timestamp bool
	NoColor   bool
}

// InitLogger builds the process logger and installs it as the zerolog global.
func InitLogger(app string, out io.Writer, opts LoggerOptions) zerolog.Logger {
	var w io.Writer = out
	if !opts.JSON {
		console := zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
			NoColor:    opts.NoColor,
		}
		if !opts.Timestamp {
			console.PartsExclude = []string{zerolog.TimestampFieldName}
		}
		w = console
	}

	ctx := zerolog.New(w).With().Str("app", app)
	if opts.Timestamp {
		ctx = ctx.Timestamp()
	}
	logger := ctx.Logger()
	log.Logger = logger
	return logger
}
