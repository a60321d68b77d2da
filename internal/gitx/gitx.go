package gitx

import (
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// Commit is one parsed log entry.
type Commit struct {
	Hash         string
	AuthorName   string
	AuthorEmail  string
	Date         time.Time
	RelativeDate string
	Subject      string
	Body         string
	Files        []FileChange
}

// FileChange is one name-status entry of a commit.
type FileChange struct {
	Status  string // A, M, D, R, C (similarity score stripped)
	Path    string
	OldPath string // set for renames and copies
}

// LogOptions parameterize a Log query.
type LogOptions struct {
	Path     string // restrict to commits touching this path
	From     string // exclusive lower bound revision
	To       string // revision to walk back from (defaults to HEAD)
	MaxCount int
}

// RepoRoot resolves the git repository root from a given path (or current dir).
func RepoRoot(path string) (string, error) {
	if path == "" {
		path = "."
	}
	cmd := exec.Command("git", "-C", path, "rev-parse", "--show-toplevel")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("rev-parse: %w", err)
	}
	root := strings.TrimSpace(string(out))
	if root == "" {
		return "", errors.New("empty git root")
	}
	return root, nil
}

// GitDir resolves the absolute .git directory, where histui keeps its
// state snapshot and log file.
func GitDir(repoRoot string) (string, error) {
	cmd := exec.Command("git", "-C", repoRoot, "rev-parse", "--absolute-git-dir")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("rev-parse --absolute-git-dir: %w", err)
	}
	dir := strings.TrimSpace(string(out))
	if dir == "" {
		return "", errors.New("empty git dir")
	}
	return dir, nil
}

// CurrentBranch returns the checked-out branch name.
func CurrentBranch(repoRoot string) (string, error) {
	cmd := exec.Command("git", "-C", repoRoot, "rev-parse", "--abbrev-ref", "HEAD")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("rev-parse --abbrev-ref: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// Record and field separators for the log pretty format. Control
// characters keep multi-line bodies unambiguous.
const (
	recSep   = "\x1e"
	fieldSep = "\x1f"
)

// Log runs git log with the given options and parses commits together
// with their per-file name-status changes. Rename and copy detection is
// enabled so R/C entries carry both paths.
func Log(repoRoot string, opts LogOptions) ([]Commit, error) {
	format := recSep + "%H" + fieldSep + "%an" + fieldSep + "%ae" + fieldSep +
		"%aI" + fieldSep + "%ar" + fieldSep + "%s" + fieldSep + "%b" + fieldSep

	args := []string{"-C", repoRoot, "log", "--format=" + format, "--name-status", "-M", "-C"}
	if opts.MaxCount > 0 {
		args = append(args, "-n", strconv.Itoa(opts.MaxCount))
	}
	switch {
	case opts.From != "" && opts.To != "":
		args = append(args, opts.From+".."+opts.To)
	case opts.To != "":
		args = append(args, opts.To)
	case opts.From != "":
		args = append(args, opts.From+"..HEAD")
	}
	if opts.Path != "" {
		args = append(args, "--", opts.Path)
	}

	cmd := exec.Command("git", args...)
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git log: %w", err)
	}
	return parseLog(string(out))
}

func parseLog(out string) ([]Commit, error) {
	records := strings.Split(out, recSep)
	commits := make([]Commit, 0, len(records))
	for _, rec := range records {
		if strings.TrimSpace(rec) == "" {
			continue
		}
		fields := strings.SplitN(rec, fieldSep, 8)
		if len(fields) < 8 {
			return nil, fmt.Errorf("malformed log record: %q", rec)
		}
		date, err := time.Parse(time.RFC3339, fields[3])
		if err != nil {
			return nil, fmt.Errorf("commit %s date: %w", fields[0], err)
		}
		c := Commit{
			Hash:         fields[0],
			AuthorName:   fields[1],
			AuthorEmail:  fields[2],
			Date:         date,
			RelativeDate: fields[4],
			Subject:      fields[5],
			Body:         strings.TrimRight(fields[6], "\n"),
			Files:        parseNameStatus(fields[7]),
		}
		commits = append(commits, c)
	}
	return commits, nil
}

func parseNameStatus(block string) []FileChange {
	var files []FileChange
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		parts := strings.Split(line, "\t")
		if len(parts) < 2 {
			continue
		}
		status := parts[0]
		if status == "" {
			continue
		}
		fc := FileChange{Status: status[:1]}
		if (status[0] == 'R' || status[0] == 'C') && len(parts) >= 3 {
			fc.OldPath = parts[1]
			fc.Path = parts[2]
		} else {
			fc.Path = parts[1]
		}
		files = append(files, fc)
	}
	return files
}

// DiffFile returns a unified diff of a single file between two revisions.
// oldPath may differ from path across a rename or copy.
func DiffFile(repoRoot, fromRev, toRev, oldPath, path string) (string, error) {
	paths := []string{path}
	if oldPath != "" && oldPath != path {
		paths = append(paths, oldPath)
	}
	args := append([]string{"-C", repoRoot, "diff", "--no-color", "--text", "-M", "-C", fromRev, toRev, "--"}, paths...)
	cmd := exec.Command("git", args...)
	b, err := cmd.CombinedOutput()
	if err != nil {
		if len(b) == 0 {
			return "", fmt.Errorf("git diff: %w", err)
		}
	}
	return string(b), nil
}

// ShowFile returns the contents of a file at a revision, used when only
// one side of a change exists (additions and deletions).
func ShowFile(repoRoot, rev, path string) (string, error) {
	cmd := exec.Command("git", "-C", repoRoot, "show", rev+":"+path)
	b, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git show %s:%s: %w", rev, path, err)
	}
	return string(b), nil
}
