package tui

import (
	"context"
	"fmt"
	"sync"

	"github.com/interpretive-systems/histui/internal/diffview"
	"github.com/interpretive-systems/histui/internal/gitx"
	"github.com/interpretive-systems/histui/internal/resource"
	"github.com/interpretive-systems/histui/internal/shell"
)

// Opened is the content produced by an open action, ready for the right
// pane: either parsed diff rows or plain file text.
type Opened struct {
	Title string
	Rows  []diffview.Row
	Text  string
	IsTxt bool
}

// ContentArea is the handoff point between openers and the update loop.
// Openers run inside tea.Cmd goroutines; the loop collects the result
// when the matching openedMsg arrives.
type ContentArea struct {
	mu   sync.Mutex
	last *Opened
}

// NewContentArea creates an empty content area.
func NewContentArea() *ContentArea {
	return &ContentArea{}
}

func (a *ContentArea) publish(o Opened) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.last = &o
}

// Take removes and returns the most recently opened content.
func (a *ContentArea) Take() (Opened, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.last == nil {
		return Opened{}, false
	}
	o := *a.last
	a.last = nil
	return o, true
}

// revisionFileOpener opens scm URIs: the file's content at one revision.
// It serves the single-sided cases, additions and deletions.
type revisionFileOpener struct {
	repoRoot string
	labels   *shell.LabelRegistry
	area     *ContentArea
}

func (o *revisionFileOpener) CanOpen(u resource.URI) int {
	if u.Scheme == resource.SchemeSCM {
		return 50
	}
	return 0
}

func (o *revisionFileOpener) Open(ctx context.Context, u resource.URI) error {
	text, err := gitx.ShowFile(o.repoRoot, u.Revision(), u.Path)
	if err != nil {
		return fmt.Errorf("open %s: %w", u, err)
	}
	lbl := o.labels.Resolve(u)
	o.area.publish(Opened{Title: lbl.Caption, Text: text, IsTxt: true})
	return nil
}

// diffPairOpener opens encoded diff URIs by diffing the two sides.
type diffPairOpener struct {
	repoRoot string
	area     *ContentArea
}

func (o *diffPairOpener) CanOpen(u resource.URI) int {
	if u.Scheme == resource.SchemeDiff {
		return 100
	}
	return 0
}

func (o *diffPairOpener) Open(ctx context.Context, u resource.URI) error {
	left, right, err := resource.DecodeDiff(u)
	if err != nil {
		return err
	}
	unified, err := gitx.DiffFile(o.repoRoot, left.Revision(), right.Revision(), left.Path, right.Path)
	if err != nil {
		return fmt.Errorf("open %s: %w", u, err)
	}
	o.area.publish(Opened{Title: u.Path, Rows: diffview.BuildRowsFromUnified(unified)})
	return nil
}
