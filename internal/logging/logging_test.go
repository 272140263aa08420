package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"none", LevelNone},
		{"off", LevelNone},
		{"garbage", LevelNone},
		{"", LevelNone},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelWarn, Output: &buf})

	logger.Debug("debug message")
	logger.Info("info message")
	if buf.Len() != 0 {
		t.Errorf("below-level messages were written: %q", buf.String())
	}

	logger.Warn("warn message")
	logger.Error("error message", errors.New("boom"))

	out := buf.String()
	if !strings.Contains(out, "warn message") {
		t.Errorf("warn message missing from output: %q", out)
	}
	if !strings.Contains(out, "error message") {
		t.Errorf("error message missing from output: %q", out)
	}
	if !strings.Contains(out, `error="boom"`) {
		t.Errorf("error detail missing from output: %q", out)
	}
}

func TestLogger_NoneSilencesEverything(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelNone, Output: &buf})

	logger.Debug("a")
	logger.Info("b")
	logger.Warn("c")
	logger.Error("d", errors.New("e"))

	if buf.Len() != 0 {
		t.Errorf("LevelNone produced output: %q", buf.String())
	}
}

func TestLogger_TextFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelDebug, Output: &buf})

	logger.Debug("session start", Fields{"query": "list files", "style": "tui"})

	out := buf.String()
	if !strings.Contains(out, "query=list files") {
		t.Errorf("field missing from output: %q", out)
	}
	if !strings.Contains(out, "style=tui") {
		t.Errorf("field missing from output: %q", out)
	}
	if !strings.Contains(out, "DEBUG") {
		t.Errorf("level missing from output: %q", out)
	}
}

func TestLogger_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelInfo, JSON: true, Output: &buf})

	logger.Info("request sent", Fields{"status": 200})

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%q", err, buf.String())
	}
	if decoded["level"] != "INFO" {
		t.Errorf("level = %v, want INFO", decoded["level"])
	}
	if decoded["message"] != "request sent" {
		t.Errorf("message = %v", decoded["message"])
	}
	fields, ok := decoded["fields"].(map[string]any)
	if !ok || fields["status"] != float64(200) {
		t.Errorf("fields = %v", decoded["fields"])
	}
}

func TestLogger_MergesFieldMaps(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelDebug, Output: &buf})

	logger.Debug("m", Fields{"a": 1}, Fields{"b": 2})

	out := buf.String()
	if !strings.Contains(out, "a=1") || !strings.Contains(out, "b=2") {
		t.Errorf("merged fields missing: %q", out)
	}
}

func TestLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelNone, Output: &buf})

	logger.Debug("hidden")
	logger.SetLevel(LevelDebug)
	logger.Debug("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("message logged before SetLevel: %q", out)
	}
	if !strings.Contains(out, "visible") {
		t.Errorf("message missing after SetLevel: %q", out)
	}
}
