package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// StatusBar manages the bottom status bar.
type StatusBar struct {
	lastRefresh time.Time
	branch      string
	caption     string
	fetching    bool
	commitCount int
}

// NewStatusBar creates a new status bar.
func NewStatusBar() *StatusBar {
	return &StatusBar{}
}

// SetLastRefresh updates the refresh timestamp.
func (s *StatusBar) SetLastRefresh(t time.Time) {
	s.lastRefresh = t
}

// SetBranch updates the branch name.
func (s *StatusBar) SetBranch(branch string) {
	s.branch = branch
}

// SetCaption shows the selected row's caption.
func (s *StatusBar) SetCaption(caption string) {
	s.caption = caption
}

// SetFetching toggles the fetch-in-progress indicator.
func (s *StatusBar) SetFetching(v bool) {
	s.fetching = v
}

// SetCommitCount updates the loaded commit count.
func (s *StatusBar) SetCommitCount(n int) {
	s.commitCount = n
}

// Render renders the status bar.
func (s *StatusBar) Render(width int) string {
	leftText := "?: help"
	if s.branch != "" {
		leftText += "  |  " + s.branch
	}
	if s.caption != "" {
		leftText += "  |  " + s.caption
	}

	rightText := fmt.Sprintf("%d commits", s.commitCount)
	if s.fetching {
		rightText = "fetching…  " + rightText
	}
	if !s.lastRefresh.IsZero() {
		rightText += "  refreshed: " + s.lastRefresh.Format("15:04:05")
	}

	leftStyled := lipgloss.NewStyle().Faint(true).Render(leftText)
	right := lipgloss.NewStyle().Faint(true).Render(rightText)

	// The right part stays visible; the left is truncated first.
	rightW := lipgloss.Width(right)
	if rightW >= width {
		return ansi.Truncate(right, width, "…")
	}

	avail := width - rightW - 1
	leftRendered := leftStyled
	if lipgloss.Width(leftRendered) > avail {
		leftRendered = ansi.Truncate(leftRendered, avail, "…")
	} else if lipgloss.Width(leftRendered) < avail {
		leftRendered = leftRendered + strings.Repeat(" ", avail-lipgloss.Width(leftRendered))
	}

	return leftRendered + " " + right
}
