// Package config handles application configuration with the precedence
// flags > environment variables > config file > defaults.
package config

import (
	"errors"
	"os"
	"strings"

	"github.com/oneq-sh/oneq/internal/constants"
)

// Environment variable names
const (
	// EnvAPIKey is the preferred API key variable
	EnvAPIKey = "ONEQ_API_KEY"
	// EnvGeminiAPIKey is honored for compatibility with other Gemini tools
	EnvGeminiAPIKey = "GEMINI_API_KEY"
	// EnvModel overrides the generation model
	EnvModel = "ONEQ_MODEL"
	// EnvOutputStyle overrides the output style
	EnvOutputStyle = "ONEQ_OUTPUT_STYLE"
)

// Errors
var (
	ErrAPIKeyNotFound    = errors.New("Gemini API key not found. Set ONEQ_API_KEY or run 1q to store one in the config file")
	ErrInvalidStyle      = errors.New("invalid output style. Use 'auto', 'tui', or 'inline'")
	ErrInvalidConfigFile = errors.New("config file is invalid")
)

// OutputStyles are the accepted values for the style setting
var OutputStyles = []string{"auto", "tui", "inline"}

// Config holds the application configuration
type Config struct {
	// APIKey authenticates against the Gemini API
	APIKey string

	// Model is the Gemini model name
	Model string

	// OutputStyle is "auto", "tui", or "inline"
	OutputStyle string

	// Flags
	Execute       bool // execute the confirmed command (inline style)
	Copy          bool // copy the generated command to the clipboard
	IgnoreDefault bool // skip the config file entirely
	Debug         bool // verbose logging
}

// NewConfig creates a new Config with defaults
func NewConfig() *Config {
	return &Config{}
}

// Validate resolves the configuration from environment and config file.
// It returns ErrAPIKeyNotFound when no key is available from any source;
// callers may then run the first-time key setup.
func (c *Config) Validate() error {
	if !c.IgnoreDefault {
		if fileConfig, err := LoadConfigFile(); err == nil {
			c.ApplyFileConfig(fileConfig)
		}
		// A broken config file is not fatal here; env vars and flags still work.
	}

	if c.APIKey == "" {
		c.APIKey = strings.TrimSpace(os.Getenv(EnvAPIKey))
	}
	if c.APIKey == "" {
		c.APIKey = strings.TrimSpace(os.Getenv(EnvGeminiAPIKey))
	}

	if c.Model == "" {
		c.Model = strings.TrimSpace(os.Getenv(EnvModel))
	}
	if c.Model == "" {
		c.Model = constants.DefaultModel
	}

	if c.OutputStyle == "" || c.OutputStyle == "auto" {
		if env := strings.TrimSpace(os.Getenv(EnvOutputStyle)); env != "" {
			c.OutputStyle = env
		}
	}
	if c.OutputStyle == "" {
		c.OutputStyle = constants.DefaultOutputStyle
	}
	if !ValidStyle(c.OutputStyle) {
		return ErrInvalidStyle
	}

	if c.APIKey == "" {
		return ErrAPIKeyNotFound
	}

	return nil
}

// ValidStyle reports whether s is an accepted output style
func ValidStyle(s string) bool {
	for _, style := range OutputStyles {
		if s == style {
			return true
		}
	}
	return false
}
