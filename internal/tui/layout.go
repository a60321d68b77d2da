package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/interpretive-systems/histui/internal/theme"
)

// minPaneWidth keeps both the history list and the diff pane usable when
// the split is dragged or the terminal shrinks.
const minPaneWidth = 20

// Layout splits the screen into the history pane on the left and the
// diff pane on the right, with a header row above and the status bar
// below.
type Layout struct {
	width        int
	height       int
	historyWidth int
}

// NewLayout creates a layout with no size yet.
func NewLayout() *Layout {
	return &Layout{}
}

// SetSize updates the terminal dimensions.
func (l *Layout) SetSize(width, height int) {
	l.width = width
	l.height = height
}

// SetHistoryWidth sets the history pane width.
func (l *Layout) SetHistoryWidth(width int) {
	l.historyWidth = width
}

// Width returns the total width.
func (l *Layout) Width() int {
	return l.width
}

// Height returns the total height.
func (l *Layout) Height() int {
	return l.height
}

// HistoryWidth returns the history pane width.
func (l *Layout) HistoryWidth() int {
	if l.historyWidth < minPaneWidth {
		return minPaneWidth
	}
	return l.historyWidth
}

// DiffWidth returns the diff pane width, after the divider column.
func (l *Layout) DiffWidth() int {
	w := l.width - l.HistoryWidth() - 1
	if w < 1 {
		w = 1
	}
	return w
}

// ContentHeight returns the rows available to the panes once the header,
// the two rules, the status bar, and any overlay are taken out.
func (l *Layout) ContentHeight(overlayHeight int) int {
	h := l.height - 4 - overlayHeight
	if h < 1 {
		h = 1
	}
	return h
}

// AdjustHistoryWidth moves the pane split by delta columns, clamped so
// neither pane drops below its minimum.
func (l *Layout) AdjustHistoryWidth(delta int) {
	w := l.historyWidth + delta
	if w < minPaneWidth {
		w = minPaneWidth
	}
	if max := l.width - minPaneWidth; w > max && max >= minPaneWidth {
		w = max
	}
	l.historyWidth = w
}

// Frame is one full screen of the program: the header pair, the two pane
// bodies, an optional overlay block, and the status bar.
type Frame struct {
	Header    string
	DiffTitle string
	History   []string
	Diff      []string
	Overlay   []string
	Status    string
}

// RenderFrame assembles a Frame into the terminal string.
func (l *Layout) RenderFrame(f Frame, th theme.Theme) string {
	var b strings.Builder

	b.WriteString(l.renderHeader(f.Header, f.DiffTitle))
	b.WriteByte('\n')
	b.WriteString(th.DividerText(strings.Repeat("─", l.width)))
	b.WriteByte('\n')

	historyW := l.HistoryWidth()
	diffW := l.DiffWidth()
	sep := th.DividerText("│")

	rows := len(f.History)
	if len(f.Diff) > rows {
		rows = len(f.Diff)
	}
	for i := 0; i < rows; i++ {
		left := strings.Repeat(" ", historyW)
		if i < len(f.History) {
			left = padToWidth(f.History[i], historyW)
		}
		right := ""
		if i < len(f.Diff) {
			right = f.Diff[i]
		}
		b.WriteString(left)
		b.WriteString(sep)
		b.WriteString(padToWidth(right, diffW))
		if i < rows-1 {
			b.WriteByte('\n')
		}
	}

	if len(f.Overlay) > 0 {
		b.WriteByte('\n')
		for i, line := range f.Overlay {
			b.WriteString(padToWidth(line, l.width))
			if i < len(f.Overlay)-1 {
				b.WriteByte('\n')
			}
		}
	}

	b.WriteByte('\n')
	b.WriteString(strings.Repeat("─", l.width))
	b.WriteByte('\n')
	b.WriteString(f.Status)

	return b.String()
}

// renderHeader lays the history title left and the diff title right,
// truncating the left side first when space runs out.
func (l *Layout) renderHeader(left, right string) string {
	rightW := lipgloss.Width(right)
	if rightW >= l.width {
		return ansi.Truncate(right, l.width, "…")
	}

	avail := l.width - rightW - 1
	if lipgloss.Width(left) > avail {
		left = ansi.Truncate(left, avail, "…")
	} else if lipgloss.Width(left) < avail {
		left = left + strings.Repeat(" ", avail-lipgloss.Width(left))
	}

	return left + " " + right
}

func padToWidth(s string, w int) string {
	width := lipgloss.Width(s)
	if width == w {
		return s
	}
	if width < w {
		return s + strings.Repeat(" ", w-width)
	}
	return ansi.Truncate(s, w, "…")
}
