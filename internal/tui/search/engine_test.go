package search

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func typeQuery(e *Engine, s string) {
	for _, r := range s {
		e.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestEngine_MatchCycling(t *testing.T) {
	e := New()
	e.SetLines([]Line{
		{Text: "first subject", Commit: true},
		{Text: "    M a.go"},
		{Text: "second subject", Commit: true},
		{Text: "    A b.txt"},
	})
	e.Activate()
	if !e.IsActive() {
		t.Fatal("engine should be active")
	}

	typeQuery(e, "subject")
	if e.MatchCount() != 2 {
		t.Fatalf("expected 2 matches, got %d", e.MatchCount())
	}
	if e.CurrentMatchLine() != 0 {
		t.Fatalf("first match at line %d", e.CurrentMatchLine())
	}

	e.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if e.CurrentMatchLine() != 2 {
		t.Fatalf("enter should advance to line 2, got %d", e.CurrentMatchLine())
	}
	e.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if e.CurrentMatchLine() != 0 {
		t.Fatalf("matches should wrap, got %d", e.CurrentMatchLine())
	}
	e.HandleKey(tea.KeyMsg{Type: tea.KeyUp})
	if e.CurrentMatchLine() != 2 {
		t.Fatalf("up should go to the previous match, got %d", e.CurrentMatchLine())
	}

	e.HandleKey(tea.KeyMsg{Type: tea.KeyEsc})
	if e.IsActive() {
		t.Fatal("esc should deactivate")
	}
}

func TestEngine_CommitMatchNavigation(t *testing.T) {
	e := New()
	e.SetLines([]Line{
		{Text: "fix parser", Commit: true},
		{Text: "    M parser.go"},
		{Text: "    M parser_test.go"},
		{Text: "update docs", Commit: true},
	})
	e.Activate()

	typeQuery(e, "parser")
	if e.MatchCount() != 3 {
		t.Fatalf("expected 3 matches, got %d", e.MatchCount())
	}
	if e.CommitMatchCount() != 1 {
		t.Fatalf("expected 1 commit match, got %d", e.CommitMatchCount())
	}

	// From a file row, tab skips the other file row and wraps back to
	// the commit header.
	e.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if e.CurrentMatchLine() != 1 {
		t.Fatalf("expected a file row match, got line %d", e.CurrentMatchLine())
	}
	e.HandleKey(tea.KeyMsg{Type: tea.KeyTab})
	if e.CurrentMatchLine() != 0 {
		t.Fatalf("tab should land on the commit row, got line %d", e.CurrentMatchLine())
	}
}

func TestEngine_NoMatches(t *testing.T) {
	e := New()
	e.Activate()
	e.SetLines([]Line{{Text: "alpha", Commit: true}, {Text: "beta"}})

	typeQuery(e, "gamma")
	if e.MatchCount() != 0 {
		t.Fatalf("expected no matches, got %d", e.MatchCount())
	}
	if e.CurrentMatchLine() != -1 {
		t.Fatalf("no-match line should be -1, got %d", e.CurrentMatchLine())
	}
}

func TestHighlightLines_WrapsMatches(t *testing.T) {
	lines := []string{"alpha beta", "no hit"}
	out := highlightLines(lines, "beta", []int{0}, 0)
	if out[1] != "no hit" {
		t.Fatalf("non-matching line changed: %q", out[1])
	}
	want := "alpha " + currentMatchStartSeq + "beta" + matchEndSeq
	if out[0] != want {
		t.Fatalf("highlight mismatch:\n got %q\nwant %q", out[0], want)
	}
}
