package cmd

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/oneq-sh/oneq/internal/history"
	promptpkg "github.com/oneq-sh/oneq/internal/prompt"
	"github.com/oneq-sh/oneq/internal/tui"
)

func newTestSession(t *testing.T) *inlineSession {
	t.Helper()
	return &inlineSession{
		app:   NewApp(),
		query: "list files in Documents ending with .pdf",
		candidates: []promptpkg.Candidate{
			{Command: `find ~/Documents -name '*.pdf'`, Explanation: "Finds PDF files."},
			{Command: `ls ~/Documents/*.pdf`},
		},
		hist:  history.New(filepath.Join(t.TempDir(), "history.json")),
		edits: make(map[int]string),
	}
}

func TestInlineSession_Run(t *testing.T) {
	for _, input := range []string{"run", "r", "y", "yes", "RUN"} {
		s := newTestSession(t)
		s.executor(input)

		if !s.exitFlag {
			t.Errorf("executor(%q) did not finish the session", input)
			continue
		}
		if s.outcome.Action != tui.ActionExecute {
			t.Errorf("executor(%q) Action = %v, want ActionExecute", input, s.outcome.Action)
		}
		if s.outcome.Command != `find ~/Documents -name '*.pdf'` {
			t.Errorf("executor(%q) Command = %q", input, s.outcome.Command)
		}
	}
}

func TestInlineSession_Quit(t *testing.T) {
	for _, input := range []string{"n", "no", "q", "quit", "exit"} {
		s := newTestSession(t)
		s.executor(input)

		if !s.exitFlag {
			t.Errorf("executor(%q) did not finish the session", input)
			continue
		}
		if s.outcome.Action != tui.ActionCancel {
			t.Errorf("executor(%q) Action = %v, want ActionCancel", input, s.outcome.Action)
		}
	}
}

func TestInlineSession_Copy(t *testing.T) {
	s := newTestSession(t)
	s.executor("copy")

	if s.outcome.Action != tui.ActionCopy {
		t.Errorf("Action = %v, want ActionCopy", s.outcome.Action)
	}
	if s.outcome.Command != `find ~/Documents -name '*.pdf'` {
		t.Errorf("Command = %q", s.outcome.Command)
	}
}

func TestInlineSession_NumberSelection(t *testing.T) {
	s := newTestSession(t)

	s.executor("2")
	if s.selected != 1 {
		t.Fatalf("selected = %d, want 1", s.selected)
	}

	s.executor("run")
	if s.outcome.Command != `ls ~/Documents/*.pdf` {
		t.Errorf("Command = %q, want the second candidate", s.outcome.Command)
	}
}

func TestInlineSession_NumberOutOfRange(t *testing.T) {
	s := newTestSession(t)
	s.executor("9")
	if s.selected != 0 {
		t.Errorf("selected = %d, out-of-range number must not change the selection", s.selected)
	}
	if s.exitFlag {
		t.Error("out-of-range number must not finish the session")
	}
}

func TestInlineSession_EditFlow(t *testing.T) {
	s := newTestSession(t)

	s.executor("edit")
	if !s.editing {
		t.Fatal("edit should switch to edit mode")
	}

	s.executor(`find ~/Documents -iname '*.pdf'`)
	if s.editing {
		t.Fatal("entering a replacement should leave edit mode")
	}

	s.executor("run")
	if s.outcome.Command != `find ~/Documents -iname '*.pdf'` {
		t.Errorf("Command = %q, want the edited command", s.outcome.Command)
	}
}

func TestInlineSession_EditEmptyKeepsOriginal(t *testing.T) {
	s := newTestSession(t)

	s.executor("edit")
	s.executor("")

	s.executor("run")
	if s.outcome.Command != `find ~/Documents -name '*.pdf'` {
		t.Errorf("Command = %q, empty edit should keep the original", s.outcome.Command)
	}
}

func TestInlineSession_InvalidEditBlocksRun(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell syntax validation is skipped on windows")
	}
	s := newTestSession(t)

	s.executor("edit")
	s.executor(`echo "unterminated`)

	s.executor("run")
	if s.exitFlag {
		t.Error("running an invalid command must not finish the session")
	}
}

func TestInlineSession_UnknownInputIgnored(t *testing.T) {
	s := newTestSession(t)
	s.executor("frobnicate")
	if s.exitFlag {
		t.Error("unknown input must not finish the session")
	}
}
