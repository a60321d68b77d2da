package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/interpretive-systems/histui/internal/history"
	"github.com/interpretive-systems/histui/internal/prefs"
	"github.com/interpretive-systems/histui/internal/resource"
	"github.com/interpretive-systems/histui/internal/shell"
	"github.com/interpretive-systems/histui/internal/tui/components"
	"github.com/interpretive-systems/histui/internal/tui/search"
	"github.com/interpretive-systems/histui/internal/tui/wizards"
)

// Options configure a program run.
type Options struct {
	Query  history.QueryOptions
	Resume bool
}

// Program is the bubbletea model: state, layout, and key handling.
type Program struct {
	state        *State
	layout       *Layout
	keyHandler   *KeyHandler
	initialQuery history.QueryOptions
	resume       bool

	// pending collects follow-up tea.Cmds queued by command handlers
	// while they run synchronously inside Update.
	pending []tea.Cmd
}

// Run wires the UI contributions into the container, starts it, and runs
// the program. The panel snapshot is stored on the way out.
func Run(repoRoot, gitDir string, container *shell.Container, logger *slog.Logger, opts Options) error {
	state := NewState(repoRoot, gitDir, container, logger)
	p := NewProgram(state, opts)

	container.OnStart(func(ctx context.Context) error {
		logger.Info("histui starting", "repo", repoRoot)
		return nil
	})
	container.OnStop(func(ctx context.Context) error {
		if err := history.SaveState(state.StatePath(), state.Panel.StoreState()); err != nil {
			logger.Error("store state failed", "err", err)
		}
		logger.Info("histui stopping")
		return nil
	})

	ctx := context.Background()
	if err := container.Start(ctx); err != nil {
		return fmt.Errorf("container start: %w", err)
	}
	defer container.Stop(ctx)

	if _, err := container.Widgets.GetOrCreate(historyWidgetKind); err != nil {
		return fmt.Errorf("create history widget: %w", err)
	}

	if _, err := tea.NewProgram(p, tea.WithAltScreen()).Run(); err != nil {
		return err
	}
	return nil
}

// NewProgram builds the model and contributes the UI's openers, widget
// factory, and command handlers to the container.
func NewProgram(state *State, opts Options) *Program {
	p := &Program{
		state:        state,
		layout:       NewLayout(),
		keyHandler:   NewKeyHandler(state.Container.Keymap),
		initialQuery: opts.Query,
		resume:       opts.Resume,
	}
	state.Container.Openers.Register(&revisionFileOpener{repoRoot: state.RepoRoot, labels: state.Container.Labels, area: state.Area})
	state.Container.Openers.Register(&diffPairOpener{repoRoot: state.RepoRoot, area: state.Area})
	state.Container.Widgets.RegisterFactory(historyWidgetKind, func(id string) (shell.Widget, error) {
		return &historyWidget{id: id, list: state.HistoryList}, nil
	})
	p.registerCommands()
	return p
}

func (p *Program) enqueue(cmd tea.Cmd) {
	if cmd != nil {
		p.pending = append(p.pending, cmd)
	}
}

func (p *Program) drainPending() tea.Cmd {
	if len(p.pending) == 0 {
		return nil
	}
	cmds := p.pending
	p.pending = nil
	return tea.Batch(cmds...)
}

// registerCommands contributes the history commands. All key presses and
// menu activations funnel through the command registry.
func (p *Program) registerCommands() {
	s := p.state
	reg := func(id, label string, h shell.CommandHandler) {
		s.Container.Commands.Register(shell.Command{ID: id, Label: label}, h)
	}

	reg(shell.CmdQuit, "Quit", func(ctx context.Context, args ...any) error {
		p.enqueue(tea.Quit)
		return nil
	})
	reg(shell.CmdToggleHelp, "Toggle Help", func(ctx context.Context, args ...any) error {
		s.ShowHelp = !s.ShowHelp
		p.recalcViewport()
		return nil
	})
	reg(shell.CmdFocusNext, "Focus Next Pane", func(ctx context.Context, args ...any) error {
		if s.Focus == shell.ContextHistory {
			s.Focus = shell.ContextDiff
		} else {
			s.Focus = shell.ContextHistory
		}
		return nil
	})
	reg(shell.CmdLeftNarrower, "Narrow History Pane", func(ctx context.Context, args ...any) error {
		p.adjustLeft(-2)
		return nil
	})
	reg(shell.CmdLeftWider, "Widen History Pane", func(ctx context.Context, args ...any) error {
		p.adjustLeft(2)
		return nil
	})
	reg(shell.CmdRefresh, "Refresh History", func(ctx context.Context, args ...any) error {
		p.enqueue(p.setContent(s.Panel.Options()))
		return nil
	})
	reg(shell.CmdSelectNext, "Select Next Row", func(ctx context.Context, args ...any) error {
		s.HistoryList.MoveSelection(1)
		p.afterMove()
		return nil
	})
	reg(shell.CmdSelectPrev, "Select Previous Row", func(ctx context.Context, args ...any) error {
		s.HistoryList.MoveSelection(-1)
		p.afterMove()
		return nil
	})
	reg(shell.CmdSelectFirst, "Select First Row", func(ctx context.Context, args ...any) error {
		s.HistoryList.GoToTop()
		p.afterMove()
		return nil
	})
	reg(shell.CmdSelectLast, "Select Last Row", func(ctx context.Context, args ...any) error {
		s.HistoryList.GoToBottom()
		p.afterMove()
		return nil
	})
	reg(shell.CmdActivate, "Activate Row", func(ctx context.Context, args ...any) error {
		row, ok := s.HistoryList.Selected()
		if !ok {
			return nil
		}
		if row.Kind == components.RowCommit {
			return s.Container.Commands.Execute(ctx, shell.CmdToggleExpand)
		}
		return s.Container.Commands.Execute(ctx, shell.CmdOpenDiff)
	})
	reg(shell.CmdToggleExpand, "Expand/Collapse Commit", func(ctx context.Context, args ...any) error {
		row, ok := s.HistoryList.Selected()
		if !ok {
			return nil
		}
		s.Panel.ToggleExpanded(row.Commit)
		s.HistoryList.Rebuild(s.Panel.Commits())
		p.refreshSearchContent()
		return nil
	})
	reg(shell.CmdOpenDiff, "Open Diff", func(ctx context.Context, args ...any) error {
		p.openSelectedFile()
		return nil
	})
	reg(shell.CmdLoadMore, "Load Older Commits", func(ctx context.Context, args ...any) error {
		p.loadNextPage()
		return nil
	})
	reg(shell.CmdToggleSide, "Toggle Side-by-Side", func(ctx context.Context, args ...any) error {
		v := !s.DiffView.SideBySide()
		s.DiffView.SetSideBySide(v)
		if err := prefs.SaveSideBySide(s.RepoRoot, v); err != nil {
			s.Logger.Warn("save pref failed", "err", err)
		}
		p.recalcViewport()
		return nil
	})
	reg(shell.CmdOpenFilter, "Filter History", func(ctx context.Context, args ...any) error {
		s.ActiveWizard = "filter"
		p.enqueue(s.Wizards["filter"].Init(s.RepoRoot, s.Panel.Options()))
		return nil
	})
	reg(shell.CmdOpenSearch, "Search History", func(ctx context.Context, args ...any) error {
		s.SearchEngine.SetLines(p.searchLines())
		s.SearchEngine.Activate()
		return nil
	})
}

// setContent replaces the panel's query options, clears the list, and
// returns the initial fetch command.
func (p *Program) setContent(opts history.QueryOptions) tea.Cmd {
	if opts.MaxCount == 0 {
		opts.MaxCount = p.state.PageSize
	}
	p.state.Panel.SetContent(opts)
	p.state.HistoryList.Rebuild(nil)
	p.state.DiffView.Clear()
	p.state.Fetching++
	p.refreshSearchContent()
	return loadHistory(p.state.RepoRoot, opts, p.state.Container.Labels, p.state.Logger)
}

// afterMove updates the status caption and fires pagination when the
// bottom of the scroll window lines up with the last row.
func (p *Program) afterMove() {
	s := p.state
	if row, ok := s.HistoryList.Selected(); ok {
		s.StatusBar.SetCaption(p.captionFor(row))
	}
	if s.HistoryList.AtBottom(p.contentHeight()) {
		p.loadNextPage()
	}
}

func (p *Program) captionFor(row components.Row) string {
	s := p.state
	c := s.Panel.Commits()[row.Commit]
	if row.File < 0 {
		return fmt.Sprintf("%s <%s>  %s", c.Author.Name, c.Author.Email, c.Date.Format("2006-01-02 15:04"))
	}
	return c.FileChanges[row.File].Caption
}

// loadNextPage requests commits older than the last loaded one.
func (p *Program) loadNextPage() {
	s := p.state
	next, ok := s.Panel.NextPageOptions()
	if !ok {
		return
	}
	if s.PageSize != history.DefaultPageSize {
		next.MaxCount = s.PageSize
	}
	s.Fetching++
	p.enqueue(loadHistory(s.RepoRoot, next, s.Container.Labels, s.Logger))
}

// openSelectedFile computes the open target for the selected file row and
// dispatches it through the opener registry.
func (p *Program) openSelectedFile() {
	s := p.state
	row, ok := s.HistoryList.Selected()
	if !ok || row.File < 0 {
		return
	}
	c := s.Panel.Commits()[row.Commit]
	fc := c.FileChanges[row.File]
	var fromRev string
	if opts := s.Panel.Options(); opts.Range != nil {
		fromRev = opts.Range.From
	}
	target, err := resource.OpenTarget(resource.Change{
		Path:    fc.Path,
		OldPath: fc.OldPath,
		Deleted: fc.Status == history.StatusDeleted,
		Added:   fc.Status == history.StatusAdded,
	}, c.ID, fromRev)
	if err != nil {
		s.Logger.Error("open target", "path", fc.Path, "err", err)
		return
	}
	p.enqueue(openResource(s.Container, s.Logger, target))
}

func (p *Program) adjustLeft(delta int) {
	p.layout.AdjustHistoryWidth(delta)
	if err := prefs.SaveLeftWidth(p.state.RepoRoot, p.layout.HistoryWidth()); err != nil {
		p.state.Logger.Warn("save pref failed", "err", err)
	}
	p.recalcViewport()
}

func (p *Program) refreshSearchContent() {
	if p.state.SearchEngine.IsActive() {
		p.state.SearchEngine.SetLines(p.searchLines())
	}
}

// searchLines pairs the plain rendering of every row with its kind so the
// search engine can tell commit headers from file entries.
func (p *Program) searchLines() []search.Line {
	s := p.state
	texts := s.HistoryList.PlainLines(s.Panel.Commits())
	rows := s.HistoryList.Rows()
	lines := make([]search.Line, len(texts))
	for i, t := range texts {
		lines[i] = search.Line{
			Text:   t,
			Commit: i < len(rows) && rows[i].Kind == components.RowCommit,
		}
	}
	return lines
}

func (p *Program) Init() tea.Cmd {
	cmds := []tea.Cmd{loadBranch(p.state.RepoRoot), loadPrefs(p.state.RepoRoot)}
	if p.resume {
		cmds = append(cmds, restorePanelState(p.state.StatePath()))
	} else {
		cmds = append(cmds, p.setContent(p.initialQuery))
	}
	return tea.Batch(cmds...)
}

func (p *Program) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	s := p.state
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return p.handleKey(msg)

	case tea.WindowSizeMsg:
		p.layout.SetSize(msg.Width, msg.Height)
		s.Width = msg.Width
		s.Height = msg.Height
		if p.layout.historyWidth == 0 {
			w := msg.Width / 2
			if w < 30 {
				w = 30
			}
			p.layout.SetHistoryWidth(w)
		}
		p.recalcViewport()
		return p, nil

	case commitsMsg:
		if s.Fetching > 0 {
			s.Fetching--
		}
		s.StatusBar.SetFetching(s.Fetching > 0)
		if msg.err != nil {
			// Logged at the fetch site; the panel keeps its prior state.
			return p, nil
		}
		s.Panel.Append(msg.batch)
		s.HistoryList.Rebuild(s.Panel.Commits())
		s.LastRefresh = time.Now()
		s.StatusBar.SetLastRefresh(s.LastRefresh)
		s.StatusBar.SetCommitCount(s.Panel.Len())
		p.refreshSearchContent()
		p.recalcViewport()
		return p, nil

	case openedMsg:
		if msg.err != nil {
			return p, nil
		}
		if o, ok := s.Area.Take(); ok {
			if o.IsTxt {
				s.DiffView.SetFileContent(o.Title, o.Text)
			} else {
				s.DiffView.SetDiff(o.Title, o.Rows)
			}
			p.recalcViewport()
		}
		return p, nil

	case branchMsg:
		if msg.err == nil {
			s.Branch = msg.name
			s.StatusBar.SetBranch(msg.name)
		}
		return p, nil

	case prefsMsg:
		if msg.p.SideSet {
			s.DiffView.SetSideBySide(msg.p.SideBySide)
		}
		if msg.p.PageSet {
			s.PageSize = msg.p.PageSize
		}
		if msg.p.LeftSet {
			p.layout.SetHistoryWidth(msg.p.LeftWidth)
		}
		p.recalcViewport()
		return p, nil

	case restoredMsg:
		if msg.err != nil {
			s.Logger.Warn("restore state failed", "err", msg.err)
			return p, p.setContent(p.initialQuery)
		}
		s.Panel.RestoreState(msg.state)
		s.HistoryList.Rebuild(s.Panel.Commits())
		s.StatusBar.SetCommitCount(s.Panel.Len())
		p.recalcViewport()
		return p, nil
	}
	return p, nil
}

func (p *Program) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := p.state

	if s.SearchEngine.IsActive() {
		handled, cmd := s.SearchEngine.HandleKey(msg)
		if line := s.SearchEngine.CurrentMatchLine(); line >= 0 {
			s.HistoryList.Select(line)
			p.afterMove()
		}
		p.recalcViewport()
		if handled {
			return p, tea.Batch(cmd, p.drainPending())
		}
		return p, cmd
	}

	if s.ActiveWizard != "" {
		w := s.Wizards[s.ActiveWizard]
		action, cmd := w.HandleKey(msg)
		switch action {
		case wizards.ActionClose:
			s.ActiveWizard = ""
			p.recalcViewport()
		case wizards.ActionApply:
			s.ActiveWizard = ""
			if fw, ok := w.(*wizards.FilterWizard); ok {
				opts := fw.Options()
				if opts.MaxCount > 0 && opts.MaxCount != s.PageSize {
					s.PageSize = opts.MaxCount
					if err := prefs.SavePageSize(s.RepoRoot, opts.MaxCount); err != nil {
						s.Logger.Warn("save pref failed", "err", err)
					}
				}
				p.enqueue(p.setContent(opts))
			}
			p.recalcViewport()
		}
		return p, tea.Batch(cmd, p.drainPending())
	}

	if s.ShowHelp {
		switch msg.String() {
		case "q", "ctrl+c":
			return p, tea.Quit
		case "?", "esc":
			s.ShowHelp = false
			p.recalcViewport()
		}
		return p, nil
	}

	cmdID, count := p.keyHandler.Handle(msg, s.Focus)
	s.StatusBar.SetCaption(p.currentCaption())
	if cmdID != "" {
		times := 1
		if cmdID == shell.CmdSelectNext || cmdID == shell.CmdSelectPrev {
			times = count
		}
		ctx := context.Background()
		for i := 0; i < times; i++ {
			if err := s.Container.Commands.Execute(ctx, cmdID); err != nil {
				s.Logger.Error("command failed", "command", cmdID, "err", err)
				break
			}
		}
		return p, p.drainPending()
	}

	// Keys outside the keymap scroll the diff pane directly.
	vp := s.DiffView.Viewport()
	switch msg.String() {
	case "pgdown":
		vp.PageDown()
	case "pgup":
		vp.PageUp()
	case "J", "ctrl+d":
		vp.HalfPageDown()
	case "K", "ctrl+u":
		vp.HalfPageUp()
	case "ctrl+e":
		vp.LineDown(1)
	case "ctrl+y":
		vp.LineUp(1)
	case "left", "{":
		s.DiffView.ScrollLeft(4)
		p.recalcViewport()
	case "right", "}":
		s.DiffView.ScrollRight(4)
		p.recalcViewport()
	case "home":
		s.DiffView.ScrollHome()
		p.recalcViewport()
	}
	return p, nil
}

func (p *Program) currentCaption() string {
	if row, ok := p.state.HistoryList.Selected(); ok {
		return p.captionFor(row)
	}
	return ""
}

func (p *Program) View() string {
	s := p.state
	if s.Width == 0 || s.Height == 0 {
		return "Loading..."
	}

	var overlay []string
	if s.ShowHelp {
		overlay = p.helpOverlayLines(s.Width)
	}
	if s.ActiveWizard != "" {
		overlay = append(overlay, s.Wizards[s.ActiveWizard].RenderOverlay(s.Width)...)
	}
	overlay = append(overlay, s.SearchEngine.RenderOverlay(s.Width, s.Theme.DividerColor)...)

	contentHeight := p.layout.ContentHeight(len(overlay))
	leftW := p.layout.HistoryWidth()

	var leftLines []string
	if s.SearchEngine.IsActive() && s.SearchEngine.Query() != "" {
		hl := s.SearchEngine.HighlightedContent()
		start, end := s.HistoryList.Window(contentHeight)
		sel := s.HistoryList.SelectedIndex()
		for i := start; i < end && i < len(hl); i++ {
			marker := "  "
			if i == sel {
				marker = "> "
			}
			leftLines = append(leftLines, padToWidth(marker+hl[i], leftW))
		}
	} else {
		leftLines = s.HistoryList.Render(s.Panel.Commits(), s.Container.Decorations, s.Theme, contentHeight, leftW)
	}
	for len(leftLines) < contentHeight {
		leftLines = append(leftLines, "")
	}

	s.DiffView.SetSize(p.layout.DiffWidth(), contentHeight)
	rightLines := strings.Split(s.DiffView.View(), "\n")

	return p.layout.RenderFrame(Frame{
		Header:    p.headerTitle(),
		DiffTitle: s.DiffView.Title(),
		History:   leftLines[:contentHeight],
		Diff:      rightLines,
		Overlay:   overlay,
		Status:    s.StatusBar.Render(s.Width),
	}, s.Theme)
}

// headerTitle shows the optional path filter and the loaded commit count.
func (p *Program) headerTitle() string {
	s := p.state
	title := fmt.Sprintf("History | %d commits", s.Panel.Len())
	if s.Fetching > 0 {
		title += " (fetching)"
	}
	if path := s.Panel.Options().Path; path != "" {
		title += " | path: " + path
	}
	return title
}

// recalcViewport rebuilds the right pane content for the current size.
func (p *Program) recalcViewport() {
	s := p.state
	if s.Width == 0 || s.Height == 0 {
		return
	}
	overlayH := 0
	if s.ShowHelp {
		overlayH += len(p.helpOverlayLines(s.Width))
	}
	if s.ActiveWizard != "" {
		overlayH += len(s.Wizards[s.ActiveWizard].RenderOverlay(s.Width))
	}
	overlayH += len(s.SearchEngine.RenderOverlay(s.Width, s.Theme.DividerColor))

	rightW := p.layout.DiffWidth()
	s.DiffView.SetSize(rightW, p.layout.ContentHeight(overlayH))
	s.DiffView.SetContent(s.DiffView.RenderContent(rightW))
}

func (p *Program) contentHeight() int {
	return p.layout.ContentHeight(0)
}

func (p *Program) helpOverlayLines(width int) []string {
	s := p.state
	title := lipgloss.NewStyle().Bold(true).Render("Help (press '?' or Esc to close)")

	// One row per bound command, keys joined in registration order.
	var order []string
	keysFor := map[string][]string{}
	for _, b := range s.Container.Keymap.Bindings() {
		if _, seen := keysFor[b.CommandID]; !seen {
			order = append(order, b.CommandID)
		}
		keysFor[b.CommandID] = append(keysFor[b.CommandID], b.Key)
	}

	lines := make([]string, 0, len(order)+5)
	lines = append(lines, strings.Repeat("─", width), title)
	for _, id := range order {
		label := id
		if cmd, ok := s.Container.Commands.Get(id); ok {
			label = cmd.Label
		}
		lines = append(lines, fmt.Sprintf("%-15s %s", strings.Join(keysFor[id], "/"), label))
	}
	lines = append(lines, fmt.Sprintf("%-15s %s", "J/K, pgdn/pgup", "Scroll diff"))

	if items := s.Container.Menus.ItemsFor(shell.MenuHistoryContext); len(items) > 0 {
		labels := make([]string, 0, len(items))
		for _, it := range items {
			labels = append(labels, it.Label)
		}
		lines = append(lines, s.Theme.FaintText("Commit actions: "+strings.Join(labels, ", ")))
	}
	return lines
}
