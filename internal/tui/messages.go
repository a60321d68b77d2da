package tui

import (
	"github.com/interpretive-systems/histui/internal/history"
	"github.com/interpretive-systems/histui/internal/prefs"
	"github.com/interpretive-systems/histui/internal/resource"
)

// commitsMsg carries one fetched history page. Batches append in arrival
// order; a failed fetch carries only the error and changes nothing.
type commitsMsg struct {
	batch []history.CommitNode
	err   error
}

// openedMsg reports a finished open action.
type openedMsg struct {
	uri resource.URI
	err error
}

// branchMsg carries the current branch name.
type branchMsg struct {
	name string
	err  error
}

// prefsMsg carries loaded preferences.
type prefsMsg struct {
	p prefs.Prefs
}

// restoredMsg carries a panel snapshot loaded from disk.
type restoredMsg struct {
	state history.State
	err   error
}
