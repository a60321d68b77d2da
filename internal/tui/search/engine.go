package search

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/interpretive-systems/histui/internal/tui/ansi"
)

// Line is one searchable row of the history list. Commit marks commit
// header rows so matches can be navigated and counted per row kind;
// file rows of expanded commits carry Commit == false.
type Line struct {
	Text   string
	Commit bool
}

// Engine manages incremental search over the rendered history rows.
type Engine struct {
	query         string
	matches       []int // line indices with matches
	commitMatches int   // how many of those land on commit rows
	index         int   // current match index
	input         textinput.Model
	active        bool
	content       []Line
}

// New creates a new search engine.
func New() *Engine {
	ti := textinput.New()
	ti.Placeholder = "Search history"
	ti.Prompt = "/ "
	ti.CharLimit = 0

	return &Engine{input: ti}
}

// Activate opens the search input.
func (e *Engine) Activate() {
	e.active = true
	e.input.Focus()
}

// Deactivate closes search.
func (e *Engine) Deactivate() {
	e.active = false
	e.input.Blur()
}

// IsActive returns whether search is active.
func (e *Engine) IsActive() bool {
	return e.active
}

// HandleKey processes key input for search.
func (e *Engine) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "esc":
		e.Deactivate()
		return true, nil
	case "enter", "down":
		e.Next()
		return true, nil
	case "up":
		e.Previous()
		return true, nil
	case "tab":
		e.NextCommitMatch()
		return true, nil
	}

	var cmd tea.Cmd
	e.input, cmd = e.input.Update(msg)
	e.query = e.input.Value()
	e.recomputeMatches()

	return true, cmd
}

// SetLines replaces the rows being searched.
func (e *Engine) SetLines(lines []Line) {
	e.content = lines
	e.recomputeMatches()
}

// Query returns the current search query.
func (e *Engine) Query() string {
	return e.query
}

func (e *Engine) recomputeMatches() {
	if e.query == "" {
		e.matches = nil
		e.commitMatches = 0
		e.index = 0
		return
	}

	lowerQuery := strings.ToLower(e.query)
	matches := make([]int, 0, len(e.content))
	commits := 0

	for i, line := range e.content {
		plain := strings.ToLower(ansi.Strip(line.Text))
		if strings.Contains(plain, lowerQuery) {
			matches = append(matches, i)
			if line.Commit {
				commits++
			}
		}
	}

	e.matches = matches
	e.commitMatches = commits
	if len(matches) > 0 && e.index >= len(matches) {
		e.index = 0
	}
}

// Next advances to the next match.
func (e *Engine) Next() {
	if len(e.matches) == 0 {
		return
	}
	e.index = (e.index + 1) % len(e.matches)
}

// Previous moves to the previous match.
func (e *Engine) Previous() {
	if len(e.matches) == 0 {
		return
	}
	e.index = (e.index - 1 + len(e.matches)) % len(e.matches)
}

// NextCommitMatch advances to the next match that lands on a commit
// header row, skipping matches inside expanded file lists. No-op when no
// match is on a commit row.
func (e *Engine) NextCommitMatch() {
	if e.commitMatches == 0 {
		return
	}
	for step := 1; step <= len(e.matches); step++ {
		i := (e.index + step) % len(e.matches)
		line := e.matches[i]
		if line < len(e.content) && e.content[line].Commit {
			e.index = i
			return
		}
	}
}

// CurrentMatchLine returns the line index of the current match.
func (e *Engine) CurrentMatchLine() int {
	if len(e.matches) == 0 {
		return -1
	}
	return e.matches[e.index]
}

// HighlightedContent returns the row texts with search highlights applied.
func (e *Engine) HighlightedContent() []string {
	texts := make([]string, len(e.content))
	for i, line := range e.content {
		texts[i] = line.Text
	}
	if e.query == "" || len(texts) == 0 {
		return texts
	}

	currentLine := e.CurrentMatchLine()
	return highlightLines(texts, e.query, e.matches, currentLine)
}

// MatchCount returns the number of matches.
func (e *Engine) MatchCount() int {
	return len(e.matches)
}

// CommitMatchCount returns how many matches land on commit rows.
func (e *Engine) CommitMatchCount() int {
	return e.commitMatches
}

// CurrentMatchIndex returns the current match index (1-based).
func (e *Engine) CurrentMatchIndex() int {
	if len(e.matches) == 0 {
		return 0
	}
	return e.index + 1
}

// InputView returns the text input view.
func (e *Engine) InputView() string {
	return e.input.View()
}
