package search

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/interpretive-systems/histui/internal/tui/ansi"
)

// RenderOverlay renders the search input and match counter.
func (e *Engine) RenderOverlay(width int, dividerColor string) []string {
	if !e.active || width <= 0 {
		return nil
	}

	lines := make([]string, 0, 3)

	divider := lipgloss.NewStyle().
		Foreground(lipgloss.Color(dividerColor)).
		Render(strings.Repeat("─", width))
	lines = append(lines, divider)

	lines = append(lines, ansi.PadExact(e.InputView(), width))

	status := "Type to search (esc: close, enter: finish typing)"
	if e.query != "" {
		switch {
		case len(e.matches) == 0:
			status = "No matches (esc: close)"
		case e.commitMatches > 0:
			status = fmt.Sprintf(
				"Match %d of %d, %d on commits  (enter/down: next, up: prev, tab: next commit, esc: close)",
				e.CurrentMatchIndex(), e.MatchCount(), e.commitMatches,
			)
		default:
			status = fmt.Sprintf(
				"Match %d of %d  (enter/down: next, up: prev, esc: close)",
				e.CurrentMatchIndex(), e.MatchCount(),
			)
		}
	}

	statusStyled := lipgloss.NewStyle().Faint(true).Render(status)
	lines = append(lines, ansi.PadExact(statusStyled, width))

	return lines
}
