package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// New creates a zerolog logger tagged with the service name. The logger is
// meant to be passed into constructors explicitly rather than accessed as a
// process-wide singleton.
func New(service string) zerolog.Logger {
	return zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", service).
		Logger()
}
