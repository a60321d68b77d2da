package diffview

import (
	"bufio"
	"strings"
)

// RowKind represents the semantic type of a side-by-side row.
type RowKind int

const (
	RowContext RowKind = iota
	RowAdd
	RowDel
	RowReplace
	RowHunk
	RowMeta
	RowFile
)

// Row represents a single visual row for side-by-side rendering.
type Row struct {
	Left  string
	Right string
	Kind  RowKind
	Meta  string // hunk header or file boundary text
}

// BuildRowsFromUnified parses a unified diff string into side-by-side rows.
// Within each hunk deletions are paired with subsequent additions as
// replacements; leftovers become left-only or right-only rows. File
// boundaries ("diff --git") produce RowFile rows so multi-file diffs stay
// readable.
func BuildRowsFromUnified(unified string) []Row {
	s := bufio.NewScanner(strings.NewReader(unified))
	s.Buffer(make([]byte, 0, 64*1024), 10*1024*1024) // allow large lines

	rows := make([]Row, 0, 256)
	pendingDel := make([]string, 0)

	flushPending := func() {
		for _, dl := range pendingDel {
			rows = append(rows, Row{Left: trimPrefix(dl), Kind: RowDel})
		}
		pendingDel = pendingDel[:0]
	}

	inHunk := false
	for s.Scan() {
		line := s.Text()
		if strings.HasPrefix(line, "diff --git ") {
			flushPending()
			rows = append(rows, Row{Kind: RowFile, Meta: fileBoundaryName(line)})
			inHunk = false
			continue
		}
		if isMetaLine(line) {
			flushPending()
			rows = append(rows, Row{Kind: RowMeta, Meta: line})
			continue
		}
		if strings.HasPrefix(line, "@@ ") {
			flushPending()
			rows = append(rows, Row{Kind: RowHunk, Meta: line})
			inHunk = true
			continue
		}
		if !inHunk {
			continue
		}

		if len(line) == 0 {
			// blank line inside hunk counts as context
			flushPending()
			rows = append(rows, Row{Kind: RowContext})
			continue
		}

		switch line[0] {
		case ' ':
			flushPending()
			t := trimPrefix(line)
			rows = append(rows, Row{Left: t, Right: t, Kind: RowContext})
		case '-':
			pendingDel = append(pendingDel, line)
		case '+':
			if len(pendingDel) > 0 {
				dl := pendingDel[0]
				pendingDel = pendingDel[1:]
				rows = append(rows, Row{Left: trimPrefix(dl), Right: trimPrefix(line), Kind: RowReplace})
			} else {
				rows = append(rows, Row{Right: trimPrefix(line), Kind: RowAdd})
			}
		default:
			// unknown line, skip
		}
	}
	flushPending()
	return rows
}

func isMetaLine(line string) bool {
	for _, p := range []string{"index ", "--- ", "+++ ", "rename from ", "rename to ", "copy from ", "copy to ", "similarity index ", "new file mode ", "deleted file mode ", "old mode ", "new mode "} {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}

// fileBoundaryName extracts the b-side path from a "diff --git a/x b/y" line.
func fileBoundaryName(line string) string {
	parts := strings.Fields(line)
	if len(parts) < 4 {
		return line
	}
	return strings.TrimPrefix(parts[len(parts)-1], "b/")
}

func trimPrefix(s string) string {
	if s == "" {
		return s
	}
	if s[0] == ' ' || s[0] == '+' || s[0] == '-' {
		return s[1:]
	}
	return s
}
