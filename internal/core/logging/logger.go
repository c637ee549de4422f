// Package logging provides component loggers and context fields.
package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Component creates a logger from the global logger with a component
// identifier under the "cmp" key.
func Component(name string) zerolog.Logger {
	return For(log.Logger, name)
}

// For tags base with a component identifier.
func For(base zerolog.Logger, name string) zerolog.Logger {
	return base.With().Str("cmp", name).Logger()
}
