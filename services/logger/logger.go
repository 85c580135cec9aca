// Package logsvc implements core.Logger on zerolog with a console writer,
// which is the right shape for operator-facing CLIs.
package logsvc

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/tvqdev/deanboard/core"
)

type zeroLogger struct {
	log zerolog.Logger
}

var _ core.Logger = (*zeroLogger)(nil)

// New returns a console logger writing to w (os.Stderr when nil). Debug output
// is gated on the app's debug flag.
func New(w io.Writer, debug bool) core.Logger {
	if w == nil {
		w = os.Stderr
	}
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	return &zeroLogger{
		log: zerolog.New(out).Level(level).With().Timestamp().Logger(),
	}
}

// args are alternating key/value pairs; a trailing odd value and error values
// are handled by zerolog's Fields.
func fields(args []interface{}) map[string]interface{} {
	if len(args) == 0 {
		return nil
	}
	m := make(map[string]interface{}, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			key = "arg"
		}
		m[key] = args[i+1]
	}
	if len(args)%2 != 0 {
		if err, ok := args[len(args)-1].(error); ok {
			m["error"] = err
		} else {
			m["value"] = args[len(args)-1]
		}
	}
	return m
}

func (l *zeroLogger) Debug(msg string, args ...interface{}) {
	l.log.Debug().Fields(fields(args)).Msg(msg)
}

func (l *zeroLogger) Info(msg string, args ...interface{}) {
	l.log.Info().Fields(fields(args)).Msg(msg)
}

func (l *zeroLogger) Warn(msg string, args ...interface{}) {
	l.log.Warn().Fields(fields(args)).Msg(msg)
}

func (l *zeroLogger) Error(msg string, args ...interface{}) {
	l.log.Error().Fields(fields(args)).Msg(msg)
}
