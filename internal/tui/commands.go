package tui

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/interpretive-systems/histui/internal/gitx"
	"github.com/interpretive-systems/histui/internal/history"
	"github.com/interpretive-systems/histui/internal/prefs"
	"github.com/interpretive-systems/histui/internal/resource"
	"github.com/interpretive-systems/histui/internal/shell"
)

// labelFanOut bounds the concurrent label resolutions per batch.
const labelFanOut = 8

// loadHistory fetches one history page and resolves display labels for
// every changed file before handing the batch to the update loop. Errors
// are logged and otherwise swallowed; the panel keeps its prior state.
func loadHistory(repoRoot string, opts history.QueryOptions, labels *shell.LabelRegistry, logger *slog.Logger) tea.Cmd {
	return func() tea.Msg {
		lopts := gitx.LogOptions{Path: opts.Path, MaxCount: opts.MaxCount}
		if opts.Range != nil {
			lopts.From = opts.Range.From
			lopts.To = opts.Range.To
		}
		commits, err := gitx.Log(repoRoot, lopts)
		if err != nil {
			logger.Error("history fetch failed", "path", opts.Path, "err", err)
			return commitsMsg{err: err}
		}
		return commitsMsg{batch: buildCommitNodes(commits, labels)}
	}
}

// buildCommitNodes maps gitx commits to panel nodes, resolving per-file
// labels concurrently within the batch. Nodes start collapsed.
func buildCommitNodes(commits []gitx.Commit, labels *shell.LabelRegistry) []history.CommitNode {
	nodes := make([]history.CommitNode, len(commits))
	g := new(errgroup.Group)
	g.SetLimit(labelFanOut)
	for i, c := range commits {
		nodes[i] = history.CommitNode{
			ID:           c.Hash,
			Author:       history.Author{Name: c.AuthorName, Email: c.AuthorEmail},
			Date:         c.Date,
			RelativeDate: c.RelativeDate,
			Subject:      c.Subject,
			Body:         c.Body,
			FileChanges:  make([]history.FileChangeNode, len(c.Files)),
		}
		for j, f := range c.Files {
			i, j, f := i, j, f
			commitID := c.Hash
			g.Go(func() error {
				node := history.FileChangeNode{
					Path:    f.Path,
					OldPath: f.OldPath,
					Status:  history.ParseStatus(f.Status),
				}
				lbl := labels.Resolve(resource.WithRevision(f.Path, commitID))
				node.Icon = lbl.Icon
				node.Name = lbl.Name
				node.Description = lbl.Description
				node.Caption = lbl.Caption
				nodes[i].FileChanges[j] = node
				return nil
			})
		}
	}
	g.Wait() // resolvers never return errors; the group only bounds fan-out
	return nodes
}

// openResource dispatches a URI through the opener registry. Failures are
// logged and swallowed, never surfaced past the status line.
func openResource(c *shell.Container, logger *slog.Logger, u resource.URI) tea.Cmd {
	return func() tea.Msg {
		if err := c.Openers.Open(context.Background(), u); err != nil {
			logger.Error("open failed", "uri", u.String(), "err", err)
			return openedMsg{uri: u, err: err}
		}
		return openedMsg{uri: u}
	}
}

// loadBranch loads the current branch name.
func loadBranch(repoRoot string) tea.Cmd {
	return func() tea.Msg {
		name, err := gitx.CurrentBranch(repoRoot)
		return branchMsg{name: name, err: err}
	}
}

// loadPrefs loads user preferences.
func loadPrefs(repoRoot string) tea.Cmd {
	return func() tea.Msg {
		return prefsMsg{p: prefs.Load(repoRoot)}
	}
}

// restorePanelState loads the persisted panel snapshot.
func restorePanelState(path string) tea.Cmd {
	return func() tea.Msg {
		s, err := history.LoadState(path)
		return restoredMsg{state: s, err: err}
	}
}
