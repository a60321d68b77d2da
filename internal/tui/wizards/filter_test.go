package wizards

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/interpretive-systems/histui/internal/history"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func typeText(w *FilterWizard, s string) {
	for _, r := range s {
		w.HandleKey(runeKey(r))
	}
}

func TestFilterWizard_SeedsFromCurrentOptions(t *testing.T) {
	w := NewFilterWizard()
	w.Init(".", history.QueryOptions{
		Path:     "src",
		Range:    &history.RevisionRange{From: "v1", To: "v2"},
		MaxCount: 50,
	})

	opts := w.Options()
	if opts.Path != "src" {
		t.Fatalf("Path = %q", opts.Path)
	}
	if opts.Range == nil || opts.Range.From != "v1" || opts.Range.To != "v2" {
		t.Fatalf("Range = %+v", opts.Range)
	}
	if opts.MaxCount != 50 {
		t.Fatalf("MaxCount = %d", opts.MaxCount)
	}
}

func TestFilterWizard_EditAndApply(t *testing.T) {
	w := NewFilterWizard()
	w.Init(".", history.QueryOptions{})

	typeText(w, "docs")
	w.HandleKey(tea.KeyMsg{Type: tea.KeyTab})
	typeText(w, "HEAD~20")
	w.HandleKey(tea.KeyMsg{Type: tea.KeyTab})
	typeText(w, "25")

	action, _ := w.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if action != ActionApply {
		t.Fatalf("expected apply, got %v", action)
	}

	opts := w.Options()
	if opts.Path != "docs" {
		t.Fatalf("Path = %q", opts.Path)
	}
	// A bare revision bounds the top of the walk.
	if opts.Range == nil || opts.Range.To != "HEAD~20" || opts.Range.From != "" {
		t.Fatalf("Range = %+v", opts.Range)
	}
	if opts.MaxCount != 25 {
		t.Fatalf("MaxCount = %d", opts.MaxCount)
	}
}

func TestFilterWizard_OpenEndedRange(t *testing.T) {
	w := NewFilterWizard()
	w.Init(".", history.QueryOptions{})

	w.HandleKey(tea.KeyMsg{Type: tea.KeyTab})
	typeText(w, "v1..")

	// A trailing ".." leaves the upper bound open; only From is set.
	opts := w.Options()
	if opts.Range == nil || opts.Range.From != "v1" || opts.Range.To != "" {
		t.Fatalf("Range = %+v", opts.Range)
	}
}

func TestFilterWizard_RejectsBadCount(t *testing.T) {
	w := NewFilterWizard()
	w.Init(".", history.QueryOptions{})

	w.HandleKey(tea.KeyMsg{Type: tea.KeyTab})
	w.HandleKey(tea.KeyMsg{Type: tea.KeyTab})
	typeText(w, "nope")

	action, _ := w.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if action != ActionContinue {
		t.Fatal("invalid max count must keep the wizard open")
	}

	action, _ = w.HandleKey(tea.KeyMsg{Type: tea.KeyEsc})
	if action != ActionClose {
		t.Fatalf("esc should close, got %v", action)
	}
}
