// Package executor validates, classifies, and runs generated shell commands.
package executor

import (
	"regexp"
	"strings"
)

// RiskLevel represents the risk level of a command
type RiskLevel int

const (
	// Safe commands are read-only
	Safe RiskLevel = iota
	// NeedsConfirm commands modify state
	NeedsConfirm
	// Dangerous commands are potentially destructive
	Dangerous
)

// String returns a short label for display next to a candidate
func (r RiskLevel) String() string {
	switch r {
	case Safe:
		return "safe"
	case NeedsConfirm:
		return "modifies state"
	case Dangerous:
		return "dangerous"
	default:
		return "unknown"
	}
}

// Read-only commands
var safeCommands = []string{
	"ls", "cat", "pwd", "echo", "head", "tail", "grep", "find",
	"which", "whoami", "date", "wc", "sort", "uniq", "diff",
	"env", "printenv", "df", "du", "ps", "top", "tree",
	"file", "stat", "basename", "dirname", "realpath",
	"ping", "traceroute", "nslookup", "dig",
}

// Read-only subcommand patterns
var safePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^git\s+(status|log|diff|branch|show|remote)`),
	regexp.MustCompile(`^npm\s+(list|ls|view|info|outdated)`),
	regexp.MustCompile(`^pip\s+(list|show|freeze)`),
	regexp.MustCompile(`^go\s+(list|version|env)`),
	regexp.MustCompile(`^docker\s+(ps|images|inspect|logs)`),
	regexp.MustCompile(`^kubectl\s+(get|describe|logs)`),
}

// Destructive patterns flagged before the user confirms
var dangerousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`rm\s+(-[rf]*\s+)?/`),       // rm -rf / or variations
	regexp.MustCompile(`rm\s+-rf\s+[~$]`),          // rm -rf with home or variable
	regexp.MustCompile(`\bsudo\b`),                 // privilege escalation
	regexp.MustCompile(`dd\s+if=`),                 // raw disk writes
	regexp.MustCompile(`mkfs`),                     // format filesystem
	regexp.MustCompile(`:\(\)\{`),                  // fork bomb
	regexp.MustCompile(`curl.*\|\s*(sh|bash|zsh)`), // pipe to shell
	regexp.MustCompile(`wget.*\|\s*(sh|bash|zsh)`), // pipe to shell
	regexp.MustCompile(`>\s*/dev/sd`),              // write to disk device
	regexp.MustCompile(`>\s*/etc/`),                // write to /etc
	regexp.MustCompile(`chmod.*777`),               // world-writable chmod
	regexp.MustCompile(`chown.*-R\s+`),             // recursive ownership change
}

// Chained commands could hide dangerous operations behind a safe first word
var commandChainingPattern = regexp.MustCompile(`[;&|]{1,2}`)

// Classify determines the risk level of a shell command
func Classify(cmd string) RiskLevel {
	cmd = strings.TrimSpace(cmd)

	if cmd == "" {
		return Dangerous
	}

	for _, pattern := range dangerousPatterns {
		if pattern.MatchString(cmd) {
			return Dangerous
		}
	}

	if commandChainingPattern.MatchString(cmd) {
		return NeedsConfirm
	}

	fields := strings.Fields(cmd)
	if len(fields) == 0 {
		return Dangerous
	}
	firstWord := fields[0]

	for _, safe := range safeCommands {
		if firstWord == safe {
			return Safe
		}
	}

	for _, pattern := range safePatterns {
		if pattern.MatchString(cmd) {
			return Safe
		}
	}

	return NeedsConfirm
}
