package prefs

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Prefs represents persisted UI preferences, stored in git local config.
type Prefs struct {
	SideBySide bool
	SideSet    bool
	PageSize   int
	PageSet    bool
	LeftWidth  int
	LeftSet    bool
}

const (
	keySideBySide = "histui.sideBySide"
	keyPageSize   = "histui.pageSize"
	keyLeftWidth  = "histui.leftWidth"
)

// Load reads preferences from git local config.
func Load(repoRoot string) Prefs {
	var p Prefs
	if s, ok := get(repoRoot, keySideBySide); ok {
		p.SideSet = true
		p.SideBySide = parseBool(s)
	}
	if s, ok := get(repoRoot, keyPageSize); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil && n > 0 {
			p.PageSet = true
			p.PageSize = n
		}
	}
	if s, ok := get(repoRoot, keyLeftWidth); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil && n > 0 {
			p.LeftSet = true
			p.LeftWidth = n
		}
	}
	return p
}

// SaveSideBySide persists the diff display mode.
func SaveSideBySide(repoRoot string, v bool) error {
	return set(repoRoot, keySideBySide, boolStr(v))
}

// SavePageSize persists the history page size.
func SavePageSize(repoRoot string, n int) error {
	if n <= 0 {
		return fmt.Errorf("invalid page size: %d", n)
	}
	return set(repoRoot, keyPageSize, strconv.Itoa(n))
}

// SaveLeftWidth persists the left column width.
func SaveLeftWidth(repoRoot string, w int) error {
	if w <= 0 {
		return fmt.Errorf("invalid left width: %d", w)
	}
	return set(repoRoot, keyLeftWidth, strconv.Itoa(w))
}

func get(repoRoot, key string) (string, bool) {
	cmd := exec.Command("git", "-C", repoRoot, "config", "--get", key)
	b, err := cmd.Output()
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(string(b)), true
}

func set(repoRoot, key, value string) error {
	cmd := exec.Command("git", "-C", repoRoot, "config", "--local", key, value)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("git config %s: %w: %s", key, err, string(out))
	}
	return nil
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func boolStr(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
