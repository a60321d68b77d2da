package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/x/ansi"
	"github.com/interpretive-systems/histui/internal/diffview"
	"github.com/interpretive-systems/histui/internal/theme"
	tuiansi "github.com/interpretive-systems/histui/internal/tui/ansi"
)

// DiffView manages the right pane: the diff (or single-revision file
// content) produced by the most recent open action.
type DiffView struct {
	title      string
	rows       []diffview.Row
	raw        []string // plain content for single-side opens
	viewport   viewport.Model
	xOffset    int
	sideBySide bool
	curTheme   theme.Theme
	content    []string
}

// NewDiffView creates a new diff viewer.
func NewDiffView(defaultTheme theme.Theme) *DiffView {
	return &DiffView{
		curTheme:   defaultTheme,
		sideBySide: true,
	}
}

// SetDiff shows a parsed diff under the given title.
func (d *DiffView) SetDiff(title string, rows []diffview.Row) {
	d.title = title
	d.rows = rows
	d.raw = nil
	d.viewport.GotoTop()
}

// SetFileContent shows plain file content (one side of a change).
func (d *DiffView) SetFileContent(title, content string) {
	d.title = title
	d.rows = nil
	d.raw = strings.Split(strings.TrimRight(content, "\n"), "\n")
	d.viewport.GotoTop()
}

// Clear empties the pane.
func (d *DiffView) Clear() {
	d.title = ""
	d.rows = nil
	d.raw = nil
	d.content = nil
}

// Title returns the pane title set by the last open.
func (d *DiffView) Title() string {
	return d.title
}

// SetSize updates the viewport dimensions.
func (d *DiffView) SetSize(width, height int) {
	d.viewport.Width = width
	d.viewport.Height = height
}

// SideBySide reports the display mode.
func (d *DiffView) SideBySide() bool {
	return d.sideBySide
}

// SetSideBySide sets the display mode.
func (d *DiffView) SetSideBySide(sideBySide bool) {
	d.sideBySide = sideBySide
}

// ScrollLeft scrolls left by delta columns.
func (d *DiffView) ScrollLeft(delta int) {
	d.xOffset -= delta
	if d.xOffset < 0 {
		d.xOffset = 0
	}
}

// ScrollRight scrolls right by delta columns.
func (d *DiffView) ScrollRight(delta int) {
	d.xOffset += delta
}

// ScrollHome resets horizontal scroll.
func (d *DiffView) ScrollHome() {
	d.xOffset = 0
}

// RenderContent generates the full content and caches it.
func (d *DiffView) RenderContent(width int) []string {
	switch {
	case d.raw != nil:
		d.content = d.renderRaw(width)
	case d.rows == nil:
		d.content = []string{d.curTheme.FaintText("Nothing opened")}
	case d.sideBySide:
		d.content = d.renderSideBySide(width)
	default:
		d.content = d.renderInline(width)
	}
	return d.content
}

// Content returns the cached content.
func (d *DiffView) Content() []string {
	return d.content
}

// SetContent updates the viewport content from rendered lines.
func (d *DiffView) SetContent(lines []string) {
	d.content = lines
	d.viewport.SetContent(strings.Join(lines, "\n"))
}

// View returns the viewport view.
func (d *DiffView) View() string {
	return d.viewport.View()
}

// Viewport returns the underlying viewport for direct manipulation.
func (d *DiffView) Viewport() *viewport.Model {
	return &d.viewport
}

func (d *DiffView) renderRaw(width int) []string {
	lines := make([]string, 0, len(d.raw))
	for _, l := range d.raw {
		line := l
		if d.xOffset > 0 {
			line = tuiansi.SliceHorizontal(line, d.xOffset, width)
		}
		lines = append(lines, tuiansi.PadExact(line, width))
	}
	return lines
}

func (d *DiffView) renderSideBySide(width int) []string {
	lines := make([]string, 0, len(d.rows))
	colsW := (width - 1) / 2
	if colsW < 10 {
		colsW = 10
	}
	mid := d.curTheme.DividerText("│")

	for _, r := range d.rows {
		switch r.Kind {
		case diffview.RowFile:
			lines = append(lines, d.curTheme.MetaText(r.Meta))
		case diffview.RowHunk:
			lines = append(lines, d.curTheme.FaintText(strings.Repeat("·", width)))
		case diffview.RowMeta:
			// skip
		default:
			l := tuiansi.PadExact(d.renderSideCell(r, "left", colsW), colsW)
			rr := tuiansi.PadExact(d.renderSideCell(r, "right", colsW), colsW)
			lines = append(lines, l+mid+rr)
		}
	}
	return lines
}

func (d *DiffView) renderInline(width int) []string {
	lines := make([]string, 0, len(d.rows))
	emit := func(s string) {
		if d.xOffset > 0 {
			s = tuiansi.PadExact(tuiansi.SliceHorizontal(s, d.xOffset, width), width)
		}
		lines = append(lines, s)
	}
	for _, r := range d.rows {
		switch r.Kind {
		case diffview.RowFile:
			lines = append(lines, d.curTheme.MetaText(r.Meta))
		case diffview.RowHunk:
			lines = append(lines, d.curTheme.FaintText(strings.Repeat("·", width)))
		case diffview.RowContext:
			emit("  " + r.Left)
		case diffview.RowAdd:
			emit(d.curTheme.AddText("+ " + r.Right))
		case diffview.RowDel:
			emit(d.curTheme.DelText("- " + r.Left))
		case diffview.RowReplace:
			emit(d.curTheme.DelText("- " + r.Left))
			emit(d.curTheme.AddText("+ " + r.Right))
		}
	}
	return lines
}

func (d *DiffView) renderSideCell(r diffview.Row, side string, width int) string {
	marker := " "
	content := ""

	switch side {
	case "left":
		content = r.Left
		switch r.Kind {
		case diffview.RowDel, diffview.RowReplace:
			marker = d.curTheme.DelText("-")
			content = d.curTheme.DelText(content)
		case diffview.RowAdd:
			content = ""
		}
	case "right":
		content = r.Right
		switch r.Kind {
		case diffview.RowAdd, diffview.RowReplace:
			marker = d.curTheme.AddText("+")
			content = d.curTheme.AddText(content)
		case diffview.RowDel:
			content = ""
		}
	}

	if width <= 2 {
		return ansi.Truncate(marker+" ", width, "")
	}
	return marker + " " + tuiansi.SliceHorizontal(content, d.xOffset, width-2)
}
