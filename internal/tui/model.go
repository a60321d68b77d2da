package tui

import (
	"log/slog"
	"path/filepath"
	"time"

	"github.com/interpretive-systems/histui/internal/history"
	"github.com/interpretive-systems/histui/internal/shell"
	"github.com/interpretive-systems/histui/internal/theme"
	"github.com/interpretive-systems/histui/internal/tui/components"
	"github.com/interpretive-systems/histui/internal/tui/search"
	"github.com/interpretive-systems/histui/internal/tui/wizards"
)

// State holds all application state.
type State struct {
	// Repository
	RepoRoot string
	GitDir   string
	Branch   string

	// History panel state
	Panel    *history.Panel
	PageSize int

	// Shell container (registries, lifecycle)
	Container *shell.Container
	Logger    *slog.Logger

	// UI state
	Width       int
	Height      int
	ShowHelp    bool
	Focus       string // shell.ContextHistory or shell.ContextDiff
	Fetching    int    // in-flight fetch count; no dedup, late batches still append
	LastRefresh time.Time

	// Active wizard
	ActiveWizard string // "" or "filter"

	// Components
	HistoryList  *components.HistoryList
	DiffView     *components.DiffView
	StatusBar    *components.StatusBar
	SearchEngine *search.Engine
	Wizards      map[string]wizards.Wizard

	// Opened-content handoff from the openers
	Area *ContentArea

	// Theme
	Theme theme.Theme
}

// NewState creates initial application state.
func NewState(repoRoot, gitDir string, container *shell.Container, logger *slog.Logger) *State {
	curTheme := theme.LoadThemeFromRepo(repoRoot)

	return &State{
		RepoRoot:     repoRoot,
		GitDir:       gitDir,
		Panel:        history.NewPanel(),
		PageSize:     history.DefaultPageSize,
		Container:    container,
		Logger:       logger,
		Focus:        shell.ContextHistory,
		Theme:        curTheme,
		HistoryList:  components.NewHistoryList(),
		DiffView:     components.NewDiffView(curTheme),
		StatusBar:    components.NewStatusBar(),
		SearchEngine: search.New(),
		Area:         NewContentArea(),
		Wizards: map[string]wizards.Wizard{
			"filter": wizards.NewFilterWizard(),
		},
	}
}

// StatePath is where the panel snapshot is persisted between runs.
func (s *State) StatePath() string {
	return filepath.Join(s.GitDir, "histui", "state.json")
}
