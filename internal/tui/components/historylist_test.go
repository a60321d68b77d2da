package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/interpretive-systems/histui/internal/history"
	"github.com/interpretive-systems/histui/internal/shell"
	"github.com/interpretive-systems/histui/internal/theme"
)

func commitsForTest() []history.CommitNode {
	return []history.CommitNode{
		{
			ID:           "aaaaaaaaaaaa",
			Author:       history.Author{Name: "Ada"},
			RelativeDate: "2 days ago",
			Subject:      "first subject",
			FileChanges: []history.FileChangeNode{
				{Path: "src/a.go", Name: "a.go", Description: "src", Status: history.StatusModified},
				{Path: "b.txt", Name: "b.txt", Status: history.StatusAdded},
			},
		},
		{
			ID:           "bbbbbbbbbbbb",
			Author:       history.Author{Name: "Bob"},
			RelativeDate: "3 days ago",
			Subject:      "second subject",
			FileChanges: []history.FileChangeNode{
				{Path: "c.go", Name: "c.go", Status: history.StatusDeleted},
			},
		},
	}
}

func TestRebuild_FlattensExpandedCommits(t *testing.T) {
	commits := commitsForTest()
	l := NewHistoryList()

	l.Rebuild(commits)
	if len(l.Rows()) != 2 {
		t.Fatalf("collapsed commits must yield one row each, got %d", len(l.Rows()))
	}

	commits[0].Expanded = true
	l.Rebuild(commits)
	rows := l.Rows()
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows after expansion, got %d", len(rows))
	}
	if rows[0].Kind != RowCommit || rows[1].Kind != RowFile || rows[2].Kind != RowFile {
		t.Fatalf("unexpected row kinds: %+v", rows)
	}
	if rows[1].Commit != 0 || rows[1].File != 0 || rows[2].File != 1 {
		t.Fatalf("file rows mis-indexed: %+v", rows)
	}
	if rows[3].Kind != RowCommit || rows[3].Commit != 1 {
		t.Fatalf("second commit row wrong: %+v", rows[3])
	}
}

func TestSelection_MoveAndClamp(t *testing.T) {
	l := NewHistoryList()
	l.Rebuild(commitsForTest())

	if !l.MoveSelection(1) {
		t.Fatal("expected cursor to move")
	}
	if l.SelectedIndex() != 1 {
		t.Fatalf("cursor at %d", l.SelectedIndex())
	}
	if l.MoveSelection(5) {
		// clamped to the last row, which it already occupies
		t.Fatal("move past the end must not report a change")
	}
	l.GoToTop()
	if l.SelectedIndex() != 0 {
		t.Fatalf("cursor at %d after GoToTop", l.SelectedIndex())
	}
	l.GoToBottom()
	if l.SelectedIndex() != 1 {
		t.Fatalf("cursor at %d after GoToBottom", l.SelectedIndex())
	}
}

func TestAtBottom(t *testing.T) {
	commits := commitsForTest()
	commits[0].Expanded = true
	l := NewHistoryList()
	l.Rebuild(commits) // 4 rows

	// Short list: everything visible, bottom means cursor on last row.
	if l.AtBottom(10) {
		t.Fatal("cursor on first row is not at bottom")
	}
	l.GoToBottom()
	if !l.AtBottom(10) {
		t.Fatal("cursor on last row should be at bottom")
	}

	// Tall list: bottom means the window's last line is the last row.
	l.GoToTop()
	l.EnsureVisible(2)
	if l.AtBottom(2) {
		t.Fatal("window at the top of 4 rows is not at bottom")
	}
	l.GoToBottom()
	l.EnsureVisible(2)
	if !l.AtBottom(2) {
		t.Fatal("window scrolled to the end should be at bottom")
	}
}

func TestWindow_FollowsCursor(t *testing.T) {
	commits := commitsForTest()
	commits[0].Expanded = true
	l := NewHistoryList()
	l.Rebuild(commits) // 4 rows

	l.Select(3)
	start, end := l.Window(2)
	if start != 2 || end != 4 {
		t.Fatalf("window = [%d, %d)", start, end)
	}

	l.Select(0)
	start, end = l.Window(2)
	if start != 0 || end != 2 {
		t.Fatalf("window = [%d, %d)", start, end)
	}
}

func TestRender_CommitAndFileRows(t *testing.T) {
	commits := commitsForTest()
	commits[0].Expanded = true
	l := NewHistoryList()
	l.Rebuild(commits)

	c := shell.NewContainer()
	lines := l.Render(commits, c.Decorations, theme.DefaultTheme(), 10, 60)
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}

	first := ansi.Strip(lines[0])
	if !strings.HasPrefix(first, "> ") {
		t.Fatalf("cursor marker missing: %q", first)
	}
	if !strings.Contains(first, "▾") || !strings.Contains(first, "aaaaaaaa") ||
		!strings.Contains(first, "first subject") {
		t.Fatalf("unexpected commit line: %q", first)
	}
	if !strings.Contains(first, "(2)") {
		t.Fatalf("file count missing: %q", first)
	}

	file := ansi.Strip(lines[1])
	if !strings.Contains(file, "M") || !strings.Contains(file, "a.go") {
		t.Fatalf("unexpected file line: %q", file)
	}

	collapsed := ansi.Strip(lines[3])
	if !strings.Contains(collapsed, "▸") || !strings.Contains(collapsed, "second subject") {
		t.Fatalf("unexpected collapsed line: %q", collapsed)
	}
}

func TestPlainLines_MatchRowOrder(t *testing.T) {
	commits := commitsForTest()
	commits[0].Expanded = true
	l := NewHistoryList()
	l.Rebuild(commits)

	lines := l.PlainLines(commits)
	if len(lines) != len(l.Rows()) {
		t.Fatalf("expected %d lines, got %d", len(l.Rows()), len(lines))
	}
	if !strings.Contains(lines[0], "first subject") {
		t.Fatalf("line 0 = %q", lines[0])
	}
	if !strings.Contains(lines[2], "b.txt") {
		t.Fatalf("line 2 = %q", lines[2])
	}
	for _, line := range lines {
		if strings.Contains(line, "\x1b[") {
			t.Fatalf("plain lines must be unstyled: %q", line)
		}
	}
}
