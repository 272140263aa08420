package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/oneq-sh/oneq/internal/constants"
)

// ConfigFileName is the name of the config file
const ConfigFileName = "config.yaml"

// FileConfig represents the configuration file structure
type FileConfig struct {
	// APIKey for the Gemini API
	APIKey string `yaml:"api_key,omitempty"`

	// Model overrides the default generation model
	Model string `yaml:"model,omitempty"`

	// OutputStyle is the default output style: "auto", "tui", or "inline"
	OutputStyle string `yaml:"output_style,omitempty"`
}

// GetConfigPaths returns the paths to check for config files (in order of priority)
func GetConfigPaths() []string {
	var paths []string

	// 1. Current directory
	paths = append(paths, filepath.Join(".", "."+constants.AppName, ConfigFileName))

	// 2. User config directory
	if configDir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(configDir, constants.AppName, ConfigFileName))
	}

	// 3. Home directory
	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(homeDir, ".config", constants.AppName, ConfigFileName))
	}

	return paths
}

// DefaultConfigPath returns the path used when writing the config file
func DefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		homeDir, herr := os.UserHomeDir()
		if herr != nil {
			return "", fmt.Errorf("could not determine config directory: %w", herr)
		}
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, constants.AppName, ConfigFileName), nil
}

// ExistingConfigPath returns the first config file that exists, or "" if none
func ExistingConfigPath() string {
	for _, path := range GetConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// LoadConfigFile attempts to load configuration from a file
func LoadConfigFile() (*FileConfig, error) {
	path := ExistingConfigPath()
	if path == "" {
		// No config file found, return empty config
		return &FileConfig{}, nil
	}
	return loadConfigFromPath(path)
}

// loadConfigFromPath loads config from a specific path
func loadConfigFromPath(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfigFile, path, err)
	}

	return &fc, nil
}

// ApplyFileConfig applies file configuration to the main Config.
// File config has lower priority than environment variables and CLI flags.
func (c *Config) ApplyFileConfig(fc *FileConfig) {
	if fc == nil {
		return
	}
	if c.APIKey == "" && fc.APIKey != "" {
		c.APIKey = fc.APIKey
	}
	if c.Model == "" && fc.Model != "" {
		c.Model = fc.Model
	}
	if (c.OutputStyle == "" || c.OutputStyle == "auto") && fc.OutputStyle != "" {
		c.OutputStyle = fc.OutputStyle
	}
}

// SaveFileConfig writes the config file, merging with any existing content
func SaveFileConfig(update func(*FileConfig)) (string, error) {
	path := ExistingConfigPath()
	var fc *FileConfig
	if path != "" {
		loaded, err := loadConfigFromPath(path)
		if err != nil {
			return "", err
		}
		fc = loaded
	} else {
		var err error
		path, err = DefaultConfigPath()
		if err != nil {
			return "", err
		}
		fc = &FileConfig{}
	}

	update(fc)

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(fc)
	if err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}
	// 0600: the file may contain the API key
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return path, nil
}

// SaveAPIKey stores the API key in the config file
func SaveAPIKey(key string) (string, error) {
	return SaveFileConfig(func(fc *FileConfig) { fc.APIKey = key })
}

// SaveOutputStyle stores the default output style in the config file
func SaveOutputStyle(style string) (string, error) {
	if !ValidStyle(style) {
		return "", ErrInvalidStyle
	}
	return SaveFileConfig(func(fc *FileConfig) { fc.OutputStyle = style })
}

// ClearConfigFile removes the config file. Removing a file that does not
// exist is not an error.
func ClearConfigFile() error {
	path := ExistingConfigPath()
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to remove config file %s: %w", path, err)
	}
	return nil
}
