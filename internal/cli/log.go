package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/interpretive-systems/histui/internal/gitx"
	"github.com/interpretive-systems/histui/internal/history"
	"github.com/interpretive-systems/histui/internal/logx"
	"github.com/interpretive-systems/histui/internal/shell"
	"github.com/interpretive-systems/histui/internal/tui"
)

func newLogCmd() *cobra.Command {
	var (
		path     string
		revRange string
		maxCount int
		resume   bool
	)
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Open the commit history TUI",
		RunE: func(cmd *cobra.Command, args []string) error {
			repoPath := mustGetStringFlag(cmd.Root(), "repo")
			root, err := gitx.RepoRoot(repoPath)
			if err != nil {
				return fmt.Errorf("not a git repo: %w", err)
			}
			gitDir, err := gitx.GitDir(root)
			if err != nil {
				return fmt.Errorf("resolve git dir: %w", err)
			}

			logger, closer, err := logx.Open(gitDir)
			if err != nil {
				logger = logx.Discard()
			} else {
				defer closer.Close()
			}

			opts := history.QueryOptions{Path: path, MaxCount: maxCount}
			if revRange != "" {
				r, err := parseRange(revRange)
				if err != nil {
					return err
				}
				opts.Range = r
			}

			container := shell.NewContainer()
			return tui.Run(root, gitDir, container, logger, tui.Options{
				Query:  opts,
				Resume: resume,
			})
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "Limit history to commits touching this path")
	cmd.Flags().StringVar(&revRange, "range", "", "Revision range, e.g. v1.0..HEAD or HEAD~20")
	cmd.Flags().IntVar(&maxCount, "max-count", 0, "Commits per page (default from config, else 100)")
	cmd.Flags().BoolVar(&resume, "resume", false, "Restore the previously saved history view")
	return cmd
}

// parseRange splits "from..to" into a revision range. A bare revision is
// treated as the upper bound.
func parseRange(s string) (*history.RevisionRange, error) {
	if strings.Contains(s, "...") {
		return nil, fmt.Errorf("symmetric ranges are not supported: %q", s)
	}
	if from, to, ok := strings.Cut(s, ".."); ok {
		if from == "" || to == "" {
			return nil, fmt.Errorf("invalid range %q", s)
		}
		return &history.RevisionRange{From: from, To: to}, nil
	}
	return &history.RevisionRange{To: s}, nil
}
