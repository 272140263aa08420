package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/google/uuid"

	"github.com/oneq-sh/oneq/internal/constants"
	"github.com/oneq-sh/oneq/internal/logging"
)

// HistoryFileName is the name of the history file
const HistoryFileName = "history.json"

// Entry is one confirmed (query, command) pair
type Entry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Query     string    `json:"query"`
	Command   string    `json:"command"`
}

// History stores entries in a JSON file
type History struct {
	path    string
	entries []Entry
}

// DefaultPath returns the platform-specific history file location
func DefaultPath() (string, error) {
	if runtime.GOOS == "linux" {
		dataDir := os.Getenv("XDG_DATA_HOME")
		if dataDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("could not determine data directory: %w", err)
			}
			dataDir = filepath.Join(home, ".local", "share")
		}
		return filepath.Join(dataDir, constants.AppName, HistoryFileName), nil
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not determine data directory: %w", err)
	}
	return filepath.Join(configDir, constants.AppName, HistoryFileName), nil
}

// New creates a History backed by the given file path
func New(path string) *History {
	return &History{path: path}
}

// Load reads the history file. A missing file yields empty history.
// A corrupt file is logged and treated as empty rather than blocking
// the session.
func (h *History) Load() error {
	data, err := os.ReadFile(h.path)
	if err != nil {
		if os.IsNotExist(err) {
			h.entries = nil
			return nil
		}
		return fmt.Errorf("failed to read history file %s: %w", h.path, err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		logging.Warn("history file is corrupt, starting fresh", logging.Fields{"path": h.path})
		h.entries = nil
		return nil
	}
	h.entries = entries
	return nil
}

// Save writes the history file, creating the directory if needed
func (h *History) Save() error {
	if err := os.MkdirAll(filepath.Dir(h.path), 0750); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	data, err := json.MarshalIndent(h.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	if err := os.WriteFile(h.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write history file %s: %w", h.path, err)
	}
	return nil
}

// Add appends a confirmed pair, dropping the oldest entries past the cap
func (h *History) Add(query, command string) {
	h.entries = append(h.entries, Entry{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		Query:     query,
		Command:   command,
	})
	if len(h.entries) > constants.MaxHistoryEntries {
		h.entries = h.entries[len(h.entries)-constants.MaxHistoryEntries:]
	}
}

// Entries returns all records, oldest first
func (h *History) Entries() []Entry {
	return h.entries
}

// Clear removes all history
func (h *History) Clear() {
	h.entries = nil
}
