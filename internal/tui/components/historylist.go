package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/interpretive-systems/histui/internal/history"
	"github.com/interpretive-systems/histui/internal/shell"
	"github.com/interpretive-systems/histui/internal/theme"
	tuiansi "github.com/interpretive-systems/histui/internal/tui/ansi"
)

// RowKind distinguishes the two visual row types of the history list.
type RowKind int

const (
	RowCommit RowKind = iota
	RowFile
)

// Row addresses one visual row: a commit header, or one file change of an
// expanded commit.
type Row struct {
	Kind   RowKind
	Commit int // index into the panel's commit list
	File   int // index into the commit's file changes, -1 for commit rows
}

// HistoryList is the left-pane commit list: a flattened view over the
// panel's commits where expanded commits contribute one row per file
// change. It owns only cursor and scroll state; the commits themselves
// live in the history.Panel passed to Rebuild and Render.
type HistoryList struct {
	rows     []Row
	selected int
	offset   int
}

// NewHistoryList creates an empty history list.
func NewHistoryList() *HistoryList {
	return &HistoryList{}
}

// Rebuild recomputes the flattened rows from the current commits. The
// cursor is clamped into the new row range but otherwise kept, so
// appending a page or toggling a distant commit does not move it.
func (l *HistoryList) Rebuild(commits []history.CommitNode) {
	rows := make([]Row, 0, len(commits))
	for ci, c := range commits {
		rows = append(rows, Row{Kind: RowCommit, Commit: ci, File: -1})
		if !c.Expanded {
			continue
		}
		for fi := range c.FileChanges {
			rows = append(rows, Row{Kind: RowFile, Commit: ci, File: fi})
		}
	}
	l.rows = rows
	if l.selected >= len(rows) {
		l.selected = len(rows) - 1
	}
	if l.selected < 0 {
		l.selected = 0
	}
}

// Rows returns the flattened rows.
func (l *HistoryList) Rows() []Row {
	return l.rows
}

// Selected returns the current cursor row, or false when the list is empty.
func (l *HistoryList) Selected() (Row, bool) {
	if len(l.rows) == 0 || l.selected < 0 || l.selected >= len(l.rows) {
		return Row{}, false
	}
	return l.rows[l.selected], true
}

// SelectedIndex returns the cursor position.
func (l *HistoryList) SelectedIndex() int {
	return l.selected
}

// Select moves the cursor to row i, clamped.
func (l *HistoryList) Select(i int) {
	if i < 0 {
		i = 0
	}
	if i >= len(l.rows) {
		i = len(l.rows) - 1
	}
	if i < 0 {
		i = 0
	}
	l.selected = i
}

// MoveSelection moves the cursor by delta rows and reports a change.
func (l *HistoryList) MoveSelection(delta int) bool {
	if len(l.rows) == 0 {
		return false
	}
	prev := l.selected
	l.Select(l.selected + delta)
	return l.selected != prev
}

// GoToTop moves the cursor to the first row.
func (l *HistoryList) GoToTop() {
	l.selected = 0
}

// GoToBottom moves the cursor to the last row.
func (l *HistoryList) GoToBottom() {
	if len(l.rows) > 0 {
		l.selected = len(l.rows) - 1
	}
}

// EnsureVisible scrolls so the cursor is inside the window.
func (l *HistoryList) EnsureVisible(visibleCount int) {
	if len(l.rows) == 0 || visibleCount <= 0 {
		return
	}
	maxStart := len(l.rows) - visibleCount
	if maxStart < 0 {
		maxStart = 0
	}
	if l.offset > maxStart {
		l.offset = maxStart
	}
	if l.offset < 0 {
		l.offset = 0
	}
	if l.selected < l.offset {
		l.offset = l.selected
	} else if l.selected >= l.offset+visibleCount {
		l.offset = l.selected - visibleCount + 1
	}
}

// AtBottom reports whether the window's last line coincides with the last
// row, the trigger for fetching the next page.
func (l *HistoryList) AtBottom(visibleCount int) bool {
	if len(l.rows) == 0 || visibleCount <= 0 {
		return false
	}
	if len(l.rows) <= visibleCount {
		return l.selected == len(l.rows)-1
	}
	return l.offset+visibleCount == len(l.rows)
}

// Window scrolls to the cursor and returns the visible row bounds.
func (l *HistoryList) Window(height int) (start, end int) {
	l.EnsureVisible(height)
	end = l.offset + height
	if end > len(l.rows) {
		end = len(l.rows)
	}
	return l.offset, end
}

// PlainLines renders every row unstyled, in row order. The search engine
// matches and highlights these.
func (l *HistoryList) PlainLines(commits []history.CommitNode) []string {
	lines := make([]string, 0, len(l.rows))
	for _, row := range l.rows {
		switch row.Kind {
		case RowCommit:
			c := commits[row.Commit]
			caret := "▸"
			if c.Expanded {
				caret = "▾"
			}
			lines = append(lines, fmt.Sprintf("%s %s (%d) %s  %s, %s",
				caret, c.ShortID(), len(c.FileChanges), c.Subject, c.Author.Name, c.RelativeDate))
		case RowFile:
			fc := commits[row.Commit].FileChanges[row.File]
			name := fc.Name
			if name == "" {
				name = fc.Path
			}
			line := "    " + fc.Status.Letter() + " " + name
			if fc.Description != "" {
				line += " " + fc.Description
			}
			lines = append(lines, line)
		}
	}
	return lines
}

// Render produces the visible lines for the current window.
func (l *HistoryList) Render(commits []history.CommitNode, decorations *shell.DecorationRegistry, th theme.Theme, height, width int) []string {
	lines := make([]string, 0, height)
	if len(l.rows) == 0 {
		lines = append(lines, "No commits")
		return lines
	}

	l.EnsureVisible(height)
	end := l.offset + height
	if end > len(l.rows) {
		end = len(l.rows)
	}

	for i := l.offset; i < end; i++ {
		row := l.rows[i]
		marker := "  "
		if i == l.selected {
			marker = "> "
		}
		var line string
		switch row.Kind {
		case RowCommit:
			line = marker + commitLine(commits[row.Commit], th)
		case RowFile:
			c := commits[row.Commit]
			line = marker + fileLine(c.FileChanges[row.File], decorations, th)
		}
		lines = append(lines, tuiansi.TruncateToWidth(line, width))
	}
	return lines
}

func commitLine(c history.CommitNode, th theme.Theme) string {
	caret := "▸"
	if c.Expanded {
		caret = "▾"
	}
	count := fmt.Sprintf("(%d)", len(c.FileChanges))
	meta := th.FaintText(c.Author.Name + ", " + c.RelativeDate)
	return fmt.Sprintf("%s %s %s %s  %s", caret, th.MetaText(c.ShortID()), count, c.Subject, meta)
}

func fileLine(fc history.FileChangeNode, decorations *shell.DecorationRegistry, th theme.Theme) string {
	d := decorations.For(fc.Status)
	letter := d.Letter
	if d.Color != "" {
		letter = lipgloss.NewStyle().Foreground(lipgloss.Color(d.Color)).Render(letter)
	}
	name := fc.Name
	if name == "" {
		name = fc.Path
	}
	var b strings.Builder
	b.WriteString("    ")
	b.WriteString(letter)
	b.WriteString(" ")
	b.WriteString(name)
	if fc.Description != "" {
		b.WriteString(" ")
		b.WriteString(th.FaintText(fc.Description))
	}
	if fc.OldPath != "" {
		b.WriteString(th.FaintText(" ← " + fc.OldPath))
	}
	return b.String()
}
