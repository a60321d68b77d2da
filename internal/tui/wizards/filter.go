package wizards

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/interpretive-systems/histui/internal/history"
)

// FilterWizard edits the history query: a path filter, a revision range,
// and a max count. Applying replaces the panel's content.
type FilterWizard struct {
	inputs  [3]textinput.Model // path, range (from..to), max count
	focused int
	errMsg  string
}

// NewFilterWizard creates the filter wizard.
func NewFilterWizard() *FilterWizard {
	return &FilterWizard{}
}

// Init seeds the inputs from the options currently in effect.
func (w *FilterWizard) Init(repoRoot string, current history.QueryOptions) tea.Cmd {
	labels := [3]string{"Path filter", "Revision range (from..to)", "Max count"}
	for i := range w.inputs {
		ti := textinput.New()
		ti.Placeholder = labels[i]
		ti.Prompt = "> "
		ti.CharLimit = 0
		w.inputs[i] = ti
	}
	w.inputs[0].SetValue(current.Path)
	if current.Range != nil {
		if current.Range.From != "" || current.Range.To != "" {
			w.inputs[1].SetValue(current.Range.From + ".." + current.Range.To)
		}
	}
	if current.MaxCount > 0 {
		w.inputs[2].SetValue(strconv.Itoa(current.MaxCount))
	}
	w.focused = 0
	w.errMsg = ""
	w.inputs[0].Focus()
	return nil
}

// HandleKey processes keyboard input.
func (w *FilterWizard) HandleKey(msg tea.KeyMsg) (Action, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return ActionClose, nil
	case "tab", "down":
		w.moveFocus(1)
		return ActionContinue, nil
	case "shift+tab", "up":
		w.moveFocus(-1)
		return ActionContinue, nil
	case "enter":
		if _, err := w.parseMaxCount(); err != nil {
			w.errMsg = err.Error()
			return ActionContinue, nil
		}
		return ActionApply, nil
	}
	var cmd tea.Cmd
	w.inputs[w.focused], cmd = w.inputs[w.focused].Update(msg)
	w.errMsg = ""
	return ActionContinue, cmd
}

// Options returns the edited query options.
func (w *FilterWizard) Options() history.QueryOptions {
	opts := history.QueryOptions{Path: strings.TrimSpace(w.inputs[0].Value())}
	if r := strings.TrimSpace(w.inputs[1].Value()); r != "" {
		from, to, found := strings.Cut(r, "..")
		rng := &history.RevisionRange{}
		if found {
			rng.From, rng.To = from, to
		} else {
			rng.To = r
		}
		opts.Range = rng
	}
	if n, err := w.parseMaxCount(); err == nil && n > 0 {
		opts.MaxCount = n
	}
	return opts
}

// RenderOverlay returns the wizard UI lines.
func (w *FilterWizard) RenderOverlay(width int) []string {
	lines := make([]string, 0, 8)
	lines = append(lines, strings.Repeat("─", width))
	title := lipgloss.NewStyle().Bold(true).Render("Filter history (tab: next field, enter: apply, esc: cancel)")
	lines = append(lines, title)
	for i := range w.inputs {
		lines = append(lines, w.inputs[i].View())
	}
	if w.errMsg != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("Error: ")+w.errMsg)
	}
	return lines
}

func (w *FilterWizard) moveFocus(delta int) {
	w.inputs[w.focused].Blur()
	w.focused = (w.focused + delta + len(w.inputs)) % len(w.inputs)
	w.inputs[w.focused].Focus()
}

func (w *FilterWizard) parseMaxCount() (int, error) {
	s := strings.TrimSpace(w.inputs[2].Value())
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, strconvErr(s)
	}
	return n, nil
}

func strconvErr(s string) error {
	return &badCountError{s}
}

type badCountError struct{ s string }

func (e *badCountError) Error() string {
	return "invalid max count: " + e.s
}
