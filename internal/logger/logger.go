// Package logger configures the global zerolog logger.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup sets the global level and output. Outside production logs go to a
// human-readable console writer; production keeps JSON lines on stdout.
func Setup(level string, production bool) {
	Configure(os.Stdout, level, production)
}

func Configure(w io.Writer, level string, production bool) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = time.RFC3339

	if !production {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: true}
	}
	log.Logger = zerolog.New(w).With().Timestamp().Str("service", "ledger-admin").Logger()
	// zerolog.Ctx falls back to the global logger outside requests.
	zerolog.DefaultContextLogger = &log.Logger
}
