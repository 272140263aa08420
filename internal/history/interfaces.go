// Package history persists past (query, command) pairs as an append-only
// record capped at a fixed number of entries.
package history

// Manager defines the interface for managing query history.
// This interface enables dependency injection and easier testing.
type Manager interface {
	// Load reads the history from disk
	Load() error

	// Save writes the history to disk
	Save() error

	// Add appends a confirmed (query, command) pair
	Add(query, command string)

	// Entries returns all records, oldest first
	Entries() []Entry

	// Clear removes all history
	Clear()
}

// Ensure concrete type implements the interface
var _ Manager = (*History)(nil)
