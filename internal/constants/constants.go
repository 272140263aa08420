// Package constants provides shared constants used across the application
// to avoid circular dependencies between packages.
package constants

import "time"

// Timeout constants used across the application
const (
	// DefaultAPITimeout is the timeout for Gemini API requests
	DefaultAPITimeout = 60 * time.Second
	// DefaultCommandTimeout is the timeout for shell command execution
	DefaultCommandTimeout = 5 * time.Minute
)

// Application defaults
const (
	// AppName is used for config and data directory names
	AppName = "oneq"

	// DefaultModel is the Gemini model used for command generation
	DefaultModel = "gemini-2.0-flash"

	// DefaultOutputStyle is used when neither flag nor config selects a style
	DefaultOutputStyle = "auto"

	// MaxHistoryEntries caps the history file size
	MaxHistoryEntries = 100
)

// Version is the application version string
const Version = "1.0.0"
