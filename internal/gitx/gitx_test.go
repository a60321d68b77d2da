package gitx

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestLog_StatusesAndRename(t *testing.T) {
	dir := t.TempDir()

	mustRun(t, dir, "git", "init", "-q")
	mustRun(t, dir, "git", "config", "user.email", "test@example.com")
	mustRun(t, dir, "git", "config", "user.name", "Test User")

	// commit 1: add two files
	write(t, filepath.Join(dir, "a.txt"), "one\ntwo\nthree\n")
	write(t, filepath.Join(dir, "del.txt"), "to delete\n")
	mustRun(t, dir, "git", "add", ".")
	mustRun(t, dir, "git", "commit", "-q", "-m", "init")

	// commit 2: modify a.txt, delete del.txt, rename nothing yet
	write(t, filepath.Join(dir, "a.txt"), "one\ntwo changed\nthree\n")
	if err := os.Remove(filepath.Join(dir, "del.txt")); err != nil {
		t.Fatal(err)
	}
	mustRun(t, dir, "git", "add", "-A")
	mustRun(t, dir, "git", "commit", "-q", "-m", "modify and delete")

	// commit 3: rename a.txt
	mustRun(t, dir, "git", "mv", "a.txt", "b.txt")
	mustRun(t, dir, "git", "commit", "-q", "-m", "rename a to b")

	commits, err := Log(dir, LogOptions{})
	if err != nil {
		t.Fatalf("Log error: %v", err)
	}
	if len(commits) != 3 {
		t.Fatalf("expected 3 commits, got %d", len(commits))
	}
	// newest first
	if commits[0].Subject != "rename a to b" {
		t.Fatalf("unexpected order, got %q first", commits[0].Subject)
	}
	if commits[0].AuthorName != "Test User" || commits[0].AuthorEmail != "test@example.com" {
		t.Fatalf("unexpected author: %q <%q>", commits[0].AuthorName, commits[0].AuthorEmail)
	}
	if commits[0].RelativeDate == "" {
		t.Fatal("expected a relative date")
	}

	ren := commits[0].Files
	if len(ren) != 1 || ren[0].Status != "R" {
		t.Fatalf("expected one rename, got %+v", ren)
	}
	if ren[0].OldPath != "a.txt" || ren[0].Path != "b.txt" {
		t.Fatalf("rename paths wrong: %+v", ren[0])
	}

	m := map[string]FileChange{}
	for _, f := range commits[1].Files {
		m[f.Path] = f
	}
	if m["a.txt"].Status != "M" {
		t.Fatalf("expected a.txt modified, got %+v", m["a.txt"])
	}
	if m["del.txt"].Status != "D" {
		t.Fatalf("expected del.txt deleted, got %+v", m["del.txt"])
	}

	for _, f := range commits[2].Files {
		if f.Status != "A" {
			t.Fatalf("expected only additions in first commit, got %+v", f)
		}
	}
}

func TestLog_PaginationAndPathFilter(t *testing.T) {
	dir := t.TempDir()

	mustRun(t, dir, "git", "init", "-q")
	mustRun(t, dir, "git", "config", "user.email", "test@example.com")
	mustRun(t, dir, "git", "config", "user.name", "Test User")

	for i := 0; i < 5; i++ {
		write(t, filepath.Join(dir, "f.txt"), strings.Repeat("x", i+1)+"\n")
		mustRun(t, dir, "git", "add", ".")
		mustRun(t, dir, "git", "commit", "-q", "-m", "rev "+strings.Repeat("i", i+1))
	}
	write(t, filepath.Join(dir, "other.txt"), "other\n")
	mustRun(t, dir, "git", "add", ".")
	mustRun(t, dir, "git", "commit", "-q", "-m", "other file")

	page1, err := Log(dir, LogOptions{MaxCount: 2})
	if err != nil {
		t.Fatalf("Log error: %v", err)
	}
	if len(page1) != 2 {
		t.Fatalf("expected page of 2, got %d", len(page1))
	}

	// Next page walks back from the parent of the last loaded commit.
	last := page1[len(page1)-1].Hash
	page2, err := Log(dir, LogOptions{To: last + "~1", MaxCount: 2})
	if err != nil {
		t.Fatalf("Log page 2 error: %v", err)
	}
	if len(page2) != 2 {
		t.Fatalf("expected second page of 2, got %d", len(page2))
	}
	if page2[0].Hash == page1[0].Hash || page2[0].Hash == page1[1].Hash {
		t.Fatal("second page repeats the first")
	}

	filtered, err := Log(dir, LogOptions{Path: "other.txt"})
	if err != nil {
		t.Fatalf("Log filtered error: %v", err)
	}
	if len(filtered) != 1 || filtered[0].Subject != "other file" {
		t.Fatalf("expected only the other.txt commit, got %+v", filtered)
	}

	ranged, err := Log(dir, LogOptions{From: page2[0].Hash, To: "HEAD"})
	if err != nil {
		t.Fatalf("Log ranged error: %v", err)
	}
	if len(ranged) != 2 {
		t.Fatalf("expected 2 commits in range, got %d", len(ranged))
	}

	// A lower bound alone walks back from HEAD.
	fromOnly, err := Log(dir, LogOptions{From: page2[1].Hash})
	if err != nil {
		t.Fatalf("Log from-only error: %v", err)
	}
	if len(fromOnly) != 3 {
		t.Fatalf("expected 3 commits above the lower bound, got %d", len(fromOnly))
	}
	if fromOnly[0].Subject != "other file" {
		t.Fatalf("unexpected head of from-only log: %q", fromOnly[0].Subject)
	}
}

func TestDiffFileAndShowFile(t *testing.T) {
	dir := t.TempDir()

	mustRun(t, dir, "git", "init", "-q")
	mustRun(t, dir, "git", "config", "user.email", "test@example.com")
	mustRun(t, dir, "git", "config", "user.name", "Test User")

	write(t, filepath.Join(dir, "f.txt"), "line1\nline2\nline3\n")
	mustRun(t, dir, "git", "add", ".")
	mustRun(t, dir, "git", "commit", "-q", "-m", "init")
	write(t, filepath.Join(dir, "f.txt"), "line1\nline2 changed\nline3\n")
	mustRun(t, dir, "git", "add", ".")
	mustRun(t, dir, "git", "commit", "-q", "-m", "change")

	d, err := DiffFile(dir, "HEAD~1", "HEAD", "", "f.txt")
	if err != nil {
		t.Fatalf("DiffFile error: %v", err)
	}
	if !strings.Contains(d, "-line2") || !strings.Contains(d, "+line2 changed") {
		t.Fatalf("unexpected diff: %s", d)
	}

	content, err := ShowFile(dir, "HEAD~1", "f.txt")
	if err != nil {
		t.Fatalf("ShowFile error: %v", err)
	}
	if content != "line1\nline2\nline3\n" {
		t.Fatalf("unexpected content: %q", content)
	}

	if _, err := ShowFile(dir, "HEAD", "missing.txt"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestParseLog_MultilineBody(t *testing.T) {
	rec := recSep + "abc123" + fieldSep + "A" + fieldSep + "a@b.c" + fieldSep +
		"2024-10-01T12:34:56+00:00" + fieldSep + "3 days ago" + fieldSep +
		"subject" + fieldSep + "body line 1\nbody line 2\n" + fieldSep +
		"\nM\tf.txt\n"
	commits, err := parseLog(rec)
	if err != nil {
		t.Fatalf("parseLog error: %v", err)
	}
	if len(commits) != 1 {
		t.Fatalf("expected 1 commit, got %d", len(commits))
	}
	c := commits[0]
	if c.Body != "body line 1\nbody line 2" {
		t.Fatalf("unexpected body: %q", c.Body)
	}
	if len(c.Files) != 1 || c.Files[0].Status != "M" || c.Files[0].Path != "f.txt" {
		t.Fatalf("unexpected files: %+v", c.Files)
	}
}

func TestParseNameStatus_SkipsMalformedLines(t *testing.T) {
	files := parseNameStatus("M\tf.txt\n\tno status\n\n")
	if len(files) != 1 || files[0].Status != "M" || files[0].Path != "f.txt" {
		t.Fatalf("unexpected files: %+v", files)
	}
}

func TestGitDirAndBranch(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "git", "init", "-q", "-b", "main")

	root, err := RepoRoot(dir)
	if err != nil {
		t.Fatalf("RepoRoot error: %v", err)
	}
	gd, err := GitDir(root)
	if err != nil {
		t.Fatalf("GitDir error: %v", err)
	}
	if filepath.Base(gd) != ".git" {
		t.Fatalf("unexpected git dir: %q", gd)
	}
	br, err := CurrentBranch(root)
	if err != nil {
		t.Fatalf("CurrentBranch error: %v", err)
	}
	if br != "main" {
		t.Fatalf("unexpected branch: %q", br)
	}
}

func mustRun(t *testing.T, dir string, name string, args ...string) {
	t.Helper()
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("command %s %v failed: %v\n%s", name, args, err, out)
	}
}

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
