package tui

import (
	"github.com/interpretive-systems/histui/internal/tui/components"
)

const historyWidgetKind = "history.panel"

// historyWidget is the shell-managed handle for the history pane. The
// widget registry holds at most one instance per kind, so opening the
// panel twice yields the same handle.
type historyWidget struct {
	id   string
	list *components.HistoryList
}

func (w *historyWidget) ID() string   { return w.id }
func (w *historyWidget) Kind() string { return historyWidgetKind }

func (w *historyWidget) Dispose() {
	w.list.Rebuild(nil)
}
