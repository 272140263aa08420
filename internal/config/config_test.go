package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// isolate redirects every config lookup path into a temp directory and
// clears the relevant environment variables
func isolate(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()

	oldWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working dir: %v", err)
	}
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("failed to change to temp dir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(oldWd) })

	t.Setenv("HOME", tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, ".config"))
	t.Setenv(EnvAPIKey, "")
	t.Setenv(EnvGeminiAPIKey, "")
	t.Setenv(EnvModel, "")
	t.Setenv(EnvOutputStyle, "")

	return tmpDir
}

func TestValidate_NoKeyAnywhere(t *testing.T) {
	isolate(t)

	cfg := NewConfig()
	err := cfg.Validate()
	if !errors.Is(err, ErrAPIKeyNotFound) {
		t.Errorf("Validate() = %v, want ErrAPIKeyNotFound", err)
	}
}

func TestValidate_KeyFromPreferredEnv(t *testing.T) {
	isolate(t)
	t.Setenv(EnvAPIKey, "env-key")

	cfg := NewConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if cfg.APIKey != "env-key" {
		t.Errorf("APIKey = %q, want env-key", cfg.APIKey)
	}
}

func TestValidate_GeminiEnvFallback(t *testing.T) {
	isolate(t)
	t.Setenv(EnvGeminiAPIKey, "gemini-key")

	cfg := NewConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if cfg.APIKey != "gemini-key" {
		t.Errorf("APIKey = %q, want gemini-key", cfg.APIKey)
	}
}

func TestValidate_PreferredEnvWinsOverGemini(t *testing.T) {
	isolate(t)
	t.Setenv(EnvAPIKey, "preferred")
	t.Setenv(EnvGeminiAPIKey, "fallback")

	cfg := NewConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if cfg.APIKey != "preferred" {
		t.Errorf("APIKey = %q, want preferred", cfg.APIKey)
	}
}

func TestValidate_FlagWinsOverEnv(t *testing.T) {
	isolate(t)
	t.Setenv(EnvAPIKey, "env-key")
	t.Setenv(EnvModel, "env-model")

	cfg := NewConfig()
	cfg.APIKey = "flag-key"
	cfg.Model = "flag-model"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if cfg.APIKey != "flag-key" {
		t.Errorf("APIKey = %q, want flag-key", cfg.APIKey)
	}
	if cfg.Model != "flag-model" {
		t.Errorf("Model = %q, want flag-model", cfg.Model)
	}
}

func TestValidate_Defaults(t *testing.T) {
	isolate(t)
	t.Setenv(EnvAPIKey, "k")

	cfg := NewConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if cfg.Model != "gemini-2.0-flash" {
		t.Errorf("Model = %q, want the default model", cfg.Model)
	}
	if cfg.OutputStyle != "auto" {
		t.Errorf("OutputStyle = %q, want auto", cfg.OutputStyle)
	}
}

func TestValidate_StyleFromEnv(t *testing.T) {
	isolate(t)
	t.Setenv(EnvAPIKey, "k")
	t.Setenv(EnvOutputStyle, "inline")

	cfg := NewConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if cfg.OutputStyle != "inline" {
		t.Errorf("OutputStyle = %q, want inline", cfg.OutputStyle)
	}
}

func TestValidate_StyleFlagWinsOverEnv(t *testing.T) {
	isolate(t)
	t.Setenv(EnvAPIKey, "k")
	t.Setenv(EnvOutputStyle, "inline")

	cfg := NewConfig()
	cfg.OutputStyle = "tui"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if cfg.OutputStyle != "tui" {
		t.Errorf("OutputStyle = %q, want tui", cfg.OutputStyle)
	}
}

func TestValidate_InvalidStyle(t *testing.T) {
	isolate(t)
	t.Setenv(EnvAPIKey, "k")

	cfg := NewConfig()
	cfg.OutputStyle = "fancy"
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidStyle) {
		t.Errorf("Validate() = %v, want ErrInvalidStyle", err)
	}
}

func TestValidate_KeyFromConfigFile(t *testing.T) {
	tmpDir := isolate(t)

	dir := filepath.Join(tmpDir, ".config", "oneq")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	content := "api_key: file-key\nmodel: file-model\n"
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg := NewConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if cfg.APIKey != "file-key" {
		t.Errorf("APIKey = %q, want file-key", cfg.APIKey)
	}
	if cfg.Model != "file-model" {
		t.Errorf("Model = %q, want file-model", cfg.Model)
	}
}

func TestValidate_EnvWinsOverConfigFile(t *testing.T) {
	tmpDir := isolate(t)
	t.Setenv(EnvAPIKey, "env-key")

	dir := filepath.Join(tmpDir, ".config", "oneq")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("api_key: file-key\n"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg := NewConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if cfg.APIKey != "env-key" {
		t.Errorf("APIKey = %q, want env-key", cfg.APIKey)
	}
}

func TestValidate_IgnoreDefaultSkipsConfigFile(t *testing.T) {
	tmpDir := isolate(t)

	dir := filepath.Join(tmpDir, ".config", "oneq")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("api_key: file-key\n"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg := NewConfig()
	cfg.IgnoreDefault = true
	if err := cfg.Validate(); !errors.Is(err, ErrAPIKeyNotFound) {
		t.Errorf("Validate() = %v, want ErrAPIKeyNotFound with --ignore-default", err)
	}
}

func TestValidStyle(t *testing.T) {
	tests := []struct {
		style string
		want  bool
	}{
		{"auto", true},
		{"tui", true},
		{"inline", true},
		{"", false},
		{"TUI", false},
		{"fancy", false},
	}
	for _, tt := range tests {
		if got := ValidStyle(tt.style); got != tt.want {
			t.Errorf("ValidStyle(%q) = %v, want %v", tt.style, got, tt.want)
		}
	}
}
