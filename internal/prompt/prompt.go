// Package prompt builds the Gemini request prompt and parses the model's
// response into command candidates. The parser is the reliability layer: it
// tolerates code fences, prose around the JSON payload, and plain-text
// answers from models that ignore the response contract.
package prompt

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

// Platform describes the environment a command will run in
type Platform struct {
	OS       string // "linux", "darwin", "windows", ...
	Describe string // human-readable OS name, with distro on Linux
	Shell    string // user's shell, e.g. /bin/zsh or cmd.exe
}

// DetectPlatform gathers OS and shell information for the prompt
func DetectPlatform() Platform {
	p := Platform{OS: runtime.GOOS}

	switch runtime.GOOS {
	case "linux":
		p.Describe = "Linux"
		if distro := linuxDistro(); distro != "" {
			p.Describe = fmt.Sprintf("Linux (%s)", distro)
		}
	case "darwin":
		p.Describe = "macOS"
	case "windows":
		p.Describe = "Windows"
	default:
		p.Describe = runtime.GOOS
	}

	p.Shell = os.Getenv("SHELL")
	if p.Shell == "" {
		p.Shell = os.Getenv("COMSPEC")
	}
	if p.Shell == "" {
		p.Shell = "unknown shell"
	}

	return p
}

// linuxDistro reads the distribution name from /etc/os-release
func linuxDistro() string {
	data, err := os.ReadFile("/etc/os-release")
	if err != nil {
		return ""
	}
	var name string
	for _, line := range strings.Split(string(data), "\n") {
		if v, ok := strings.CutPrefix(line, "PRETTY_NAME="); ok {
			return strings.Trim(v, `"`)
		}
		if v, ok := strings.CutPrefix(line, "NAME="); ok {
			name = strings.Trim(v, `"`)
		}
	}
	return name
}

// Context returns the platform as a single prompt fragment
func (p Platform) Context() string {
	return fmt.Sprintf("Operating System: %s, Shell: %s", p.Describe, p.Shell)
}

const promptTemplate = `You are a helpful assistant that translates natural language queries into shell commands.
Your responses are structured as JSON, with a "command" key for the shell command and an "explanation" key for a brief explanation of what the command does.
Here is platform context for more precise command generation: %s.
If several commands are reasonable answers, return a JSON array of such objects, best answer first.
If you cannot generate a command, return a JSON object with an "error" key describing the problem.
For example:
{
  "command": "ls -l",
  "explanation": "This command lists all files and directories in the current directory with detailed information."
}
Now, respond to the following query: %s`

// Build formats the user's query and platform context into the request
// prompt. The query text is included verbatim.
func Build(query string, platform Platform) string {
	return fmt.Sprintf(promptTemplate, platform.Context(), query)
}
