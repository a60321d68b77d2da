// Package ansi holds width- and escape-aware string helpers shared by the
// TUI components.
package ansi

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
)

// ConsumeEscape consumes an ANSI escape sequence starting at position i
// and returns the position after it.
func ConsumeEscape(s string, i int) int {
	if i >= len(s) || s[i] != 0x1b {
		if i+1 > len(s) {
			return len(s)
		}
		return i + 1
	}

	j := i + 1
	if j >= len(s) {
		return j
	}

	switch s[j] {
	case '[': // CSI
		j++
		for j < len(s) {
			c := s[j]
			if c >= 0x40 && c <= 0x7e {
				j++
				break
			}
			j++
		}
	case ']': // OSC
		j++
		for j < len(s) && s[j] != 0x07 {
			j++
		}
		if j < len(s) {
			j++
		}
	case 'P', 'X', '^', '_': // DCS, SOS, PM, APC
		j++
		for j < len(s) {
			if s[j] == 0x1b {
				j++
				break
			}
			j++
		}
	default:
		j++
	}

	if j <= i {
		return i + 1
	}
	return j
}

// Strip removes all ANSI escape sequences from the string.
func Strip(s string) string {
	var result []byte
	i := 0
	for i < len(s) {
		if s[i] == 0x1b {
			i = ConsumeEscape(s, i)
			continue
		}
		result = append(result, s[i])
		i++
	}
	return string(result)
}

// VisualWidth returns the rune count of the string excluding ANSI codes.
func VisualWidth(s string) int {
	return utf8.RuneCountInString(Strip(s))
}

// SliceHorizontal returns a substring starting at visual column start with
// at most width columns, preserving ANSI escape sequences.
func SliceHorizontal(s string, start, width int) string {
	if start <= 0 {
		return ansi.Truncate(s, width, "")
	}
	head := ansi.Truncate(s, start+width, "")
	return ansi.TruncateLeft(head, start, "")
}

// PadExact pads string with spaces to exactly width w (ANSI-aware).
func PadExact(s string, w int) string {
	vw := VisualWidth(s)
	if vw >= w {
		return s
	}
	return s + strings.Repeat(" ", w-vw)
}

// TruncateToWidth truncates to width with ellipsis if needed.
func TruncateToWidth(s string, width int) string {
	return ansi.Truncate(s, width, "…")
}

// WrapLine wraps a single line to the given width, preserving ANSI codes.
func WrapLine(s string, width int) []string {
	if width <= 0 {
		return []string{""}
	}
	return strings.Split(ansi.Hardwrap(s, width, false), "\n")
}
