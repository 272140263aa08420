package prompt

import (
	"encoding/json"
	"strings"
)

// Candidate is a single generated command proposed as an answer to the query
type Candidate struct {
	Command     string `json:"command"`
	Explanation string `json:"explanation,omitempty"`
}

// Result holds the parsed candidates. When the model declined to answer via
// the JSON "error" key, Candidates is empty and ModelError carries its text.
type Result struct {
	Candidates []Candidate
	ModelError string
}

// jsonAnswer mirrors the response contract set in the prompt
type jsonAnswer struct {
	Command     string `json:"command"`
	Explanation string `json:"explanation"`
	Error       string `json:"error"`
}

// Parse extracts an ordered list of command candidates from raw model text.
// It is deterministic: the same input always yields the same candidates.
// Empty or whitespace-only input yields an empty result.
func Parse(raw string) Result {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Result{}
	}

	s = stripFence(s)

	// Strict JSON first: single object or array of objects.
	if res, ok := parseJSON(s); ok {
		return res
	}

	// JSON buried in prose: widest {...} or [...] span.
	if span := jsonSpan(s); span != "" {
		if res, ok := parseJSON(span); ok {
			return res
		}
	}

	// Plain text fallback: treat each non-empty line as a command candidate,
	// stripping backticks and "$ " prompt markers.
	var out []Candidate
	seen := make(map[string]bool)
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		line = strings.Trim(line, "`")
		line = strings.TrimPrefix(line, "$ ")
		line = strings.TrimSpace(line)
		if line == "" || seen[line] {
			continue
		}
		// Preamble lines like "Here is the command:" are not candidates.
		if strings.HasSuffix(line, ":") {
			continue
		}
		seen[line] = true
		out = append(out, Candidate{Command: line})
	}
	return Result{Candidates: out}
}

// stripFence removes a markdown code fence wrapping the whole payload
func stripFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	lines := strings.Split(s, "\n")
	if len(lines) > 1 {
		lines = lines[1:] // drop ```json / ```sh / ```
	}
	if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// parseJSON attempts the strict response contract
func parseJSON(s string) (Result, bool) {
	switch {
	case strings.HasPrefix(s, "{"):
		var ans jsonAnswer
		if err := json.Unmarshal([]byte(s), &ans); err != nil {
			return Result{}, false
		}
		return answerResult([]jsonAnswer{ans}), true

	case strings.HasPrefix(s, "["):
		var answers []jsonAnswer
		if err := json.Unmarshal([]byte(s), &answers); err != nil {
			return Result{}, false
		}
		return answerResult(answers), true
	}
	return Result{}, false
}

func answerResult(answers []jsonAnswer) Result {
	var res Result
	seen := make(map[string]bool)
	for _, ans := range answers {
		cmd := strings.TrimSpace(ans.Command)
		if cmd == "" {
			if res.ModelError == "" && strings.TrimSpace(ans.Error) != "" {
				res.ModelError = strings.TrimSpace(ans.Error)
			}
			continue
		}
		if seen[cmd] {
			continue
		}
		seen[cmd] = true
		res.Candidates = append(res.Candidates, Candidate{
			Command:     cmd,
			Explanation: strings.TrimSpace(ans.Explanation),
		})
	}
	return res
}

// jsonSpan returns the widest substring that looks like a JSON value
func jsonSpan(s string) string {
	for _, pair := range [][2]string{{"{", "}"}, {"[", "]"}} {
		start := strings.Index(s, pair[0])
		end := strings.LastIndex(s, pair[1])
		if start >= 0 && end > start {
			return s[start : end+1]
		}
	}
	return ""
}
