// Package config builds the runtime setup of the printer binary.
package config

import (
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates the logger honoring the debug and quiet flags, debug
// wins if both are set.
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
