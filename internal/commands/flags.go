// Package commands wires the CLI commands for revdiff.
package commands

import (
	"github.com/talldan/revdiff/internal/core/config"
)

// Flags holds the global CLI flags shared by all commands.
type Flags struct {
	LogLevel     string
	LogFile      string
	ConfigPath   string
	RevisionsDir string
	Theme        string

	// Config is loaded in the Before hook and available to all commands.
	Config *config.Config
}
