package shell

import (
	"context"
	"sync"

	"github.com/interpretive-systems/histui/internal/history"
	"github.com/interpretive-systems/histui/internal/label"
)

// Command IDs contributed by the history module.
const (
	CmdQuit         = "core.quit"
	CmdRefresh      = "history.refresh"
	CmdToggleExpand = "history.toggleExpand"
	CmdActivate     = "history.activate"
	CmdOpenDiff     = "history.openDiff"
	CmdLoadMore     = "history.loadMore"
	CmdSelectNext   = "history.selectNext"
	CmdSelectPrev   = "history.selectPrev"
	CmdSelectFirst  = "history.selectFirst"
	CmdSelectLast   = "history.selectLast"
	CmdToggleSide   = "diff.toggleSideBySide"
	CmdOpenFilter   = "history.openFilter"
	CmdOpenSearch   = "history.openSearch"
	CmdToggleHelp   = "core.toggleHelp"
	CmdFocusNext    = "core.focusNext"
	CmdLeftNarrower = "core.leftNarrower"
	CmdLeftWider    = "core.leftWider"
)

// Keybinding contexts.
const (
	ContextHistory = "historyView"
	ContextDiff    = "diffView"
)

// Menu paths.
const (
	MenuHistoryContext = "history/context"
)

// LifecycleHook runs at container start or stop.
type LifecycleHook func(ctx context.Context) error

// Container is the singleton composition root: one registry per
// capability, built once and shared by everything downstream.
type Container struct {
	Commands    *CommandRegistry
	Menus       *MenuRegistry
	Keymap      *KeymapRegistry
	Openers     *OpenerRegistry
	Decorations *DecorationRegistry
	Labels      *LabelRegistry
	Widgets     *WidgetRegistry

	mu      sync.Mutex
	onStart []LifecycleHook
	onStop  []LifecycleHook
	started bool
}

// NewContainer builds the container and wires the default contributions:
// label providers for scm and diff URIs, decorations for every change
// status, the history context menu, and the default keymap. Command
// handlers and openers are contributed by the UI layer before Start.
func NewContainer() *Container {
	c := &Container{
		Commands:    NewCommandRegistry(),
		Menus:       NewMenuRegistry(),
		Keymap:      NewKeymapRegistry(),
		Openers:     NewOpenerRegistry(),
		Decorations: NewDecorationRegistry(),
		Labels:      NewLabelRegistry(),
		Widgets:     NewWidgetRegistry(),
	}
	c.registerLabelProviders()
	c.registerDecorations()
	c.registerMenus()
	c.registerKeybindings()
	return c
}

func (c *Container) registerLabelProviders() {
	c.Labels.Register(label.NewFileProvider())
	c.Labels.Register(label.NewDiffProvider())
}

func (c *Container) registerDecorations() {
	c.Decorations.Register(history.StatusAdded, Decoration{Letter: "A", Color: "34"})
	c.Decorations.Register(history.StatusModified, Decoration{Letter: "M", Color: "178"})
	c.Decorations.Register(history.StatusDeleted, Decoration{Letter: "D", Color: "196"})
	c.Decorations.Register(history.StatusRenamed, Decoration{Letter: "R", Color: "63"})
	c.Decorations.Register(history.StatusCopied, Decoration{Letter: "C", Color: "36"})
}

func (c *Container) registerMenus() {
	c.Menus.Register(MenuHistoryContext, MenuItem{CommandID: CmdOpenDiff, Label: "Open Diff", Order: 10})
	c.Menus.Register(MenuHistoryContext, MenuItem{CommandID: CmdToggleExpand, Label: "Expand/Collapse", Order: 20})
	c.Menus.Register(MenuHistoryContext, MenuItem{CommandID: CmdRefresh, Label: "Refresh", Order: 30})
}

func (c *Container) registerKeybindings() {
	bind := func(key, cmd, context string) {
		c.Keymap.Register(Keybinding{Key: key, CommandID: cmd, Context: context})
	}
	bind("q", CmdQuit, "")
	bind("ctrl+c", CmdQuit, "")
	bind("?", CmdToggleHelp, "")
	bind("tab", CmdFocusNext, "")
	bind("<", CmdLeftNarrower, "")
	bind(">", CmdLeftWider, "")
	bind("r", CmdRefresh, ContextHistory)
	bind("enter", CmdActivate, ContextHistory)
	bind("o", CmdOpenDiff, ContextHistory)
	bind("j", CmdSelectNext, ContextHistory)
	bind("down", CmdSelectNext, ContextHistory)
	bind("k", CmdSelectPrev, ContextHistory)
	bind("up", CmdSelectPrev, ContextHistory)
	bind("g", CmdSelectFirst, ContextHistory)
	bind("G", CmdSelectLast, ContextHistory)
	bind("m", CmdLoadMore, ContextHistory)
	bind("f", CmdOpenFilter, ContextHistory)
	bind("/", CmdOpenSearch, ContextHistory)
	bind("s", CmdToggleSide, ContextDiff)
}

// OnStart registers a hook to run when the container starts.
func (c *Container) OnStart(h LifecycleHook) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onStart = append(c.onStart, h)
}

// OnStop registers a hook to run when the container stops.
func (c *Container) OnStop(h LifecycleHook) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onStop = append(c.onStop, h)
}

// Start runs the start hooks once, in registration order.
func (c *Container) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started {
		return nil
	}
	for _, h := range c.onStart {
		if err := h(ctx); err != nil {
			return err
		}
	}
	c.started = true
	return nil
}

// Stop runs the stop hooks in reverse order and disposes widgets. Hook
// errors do not abort the remaining hooks; the first one is returned.
func (c *Container) Stop(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.started {
		return nil
	}
	var first error
	for i := len(c.onStop) - 1; i >= 0; i-- {
		if err := c.onStop[i](ctx); err != nil && first == nil {
			first = err
		}
	}
	c.Widgets.DisposeAll()
	c.started = false
	return first
}
