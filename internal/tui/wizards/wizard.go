package wizards

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/interpretive-systems/histui/internal/history"
)

// Action represents what the wizard wants the parent to do.
type Action int

const (
	ActionContinue Action = iota // keep processing inside the wizard
	ActionClose                  // close the wizard
	ActionApply                  // close and apply the wizard's result
)

// Wizard is the interface all overlay wizards implement.
type Wizard interface {
	// Init initializes the wizard with the current query options.
	Init(repoRoot string, current history.QueryOptions) tea.Cmd

	// HandleKey processes keyboard input and returns the action to take.
	HandleKey(msg tea.KeyMsg) (Action, tea.Cmd)

	// RenderOverlay returns the wizard UI lines.
	RenderOverlay(width int) []string
}
