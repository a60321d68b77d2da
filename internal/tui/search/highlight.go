package search

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/interpretive-systems/histui/internal/tui/ansi"
)

const (
	matchStartSeq        = "\x1b[30;107m" // black on bright white
	currentMatchStartSeq = "\x1b[30;43m"  // black on yellow
	matchEndSeq          = "\x1b[0m"
)

// highlightLines wraps every query occurrence on the matching lines in
// highlight sequences. The current match gets a distinct color.
func highlightLines(lines []string, query string, matches []int, currentLine int) []string {
	if len(lines) == 0 || query == "" {
		return lines
	}

	matchSet := make(map[int]struct{}, len(matches))
	for _, idx := range matches {
		if idx >= 0 && idx < len(lines) {
			matchSet[idx] = struct{}{}
		}
	}

	result := make([]string, len(lines))
	for i, line := range lines {
		if _, ok := matchSet[i]; !ok {
			result[i] = line
			continue
		}
		spans := querySpans(line, query)
		if len(spans) == 0 {
			result[i] = line
			continue
		}
		result[i] = paintSpans(line, spans, i == currentLine)
	}
	return result
}

// runeSpan is a half-open rune range [Start, End) into the stripped line.
type runeSpan struct {
	Start int
	End   int
}

// querySpans finds every case-insensitive occurrence of query in line,
// measured in runes over the line with ANSI sequences stripped.
func querySpans(line, query string) []runeSpan {
	plain := ansi.Strip(line)
	if plain == "" || query == "" {
		return nil
	}

	hay := []rune(strings.ToLower(plain))
	needle := []rune(strings.ToLower(query))
	if len(needle) == 0 || len(needle) > len(hay) {
		return nil
	}

	var spans []runeSpan
	for i := 0; i+len(needle) <= len(hay); i++ {
		match := true
		for j := range needle {
			if hay[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			spans = append(spans, runeSpan{Start: i, End: i + len(needle)})
		}
	}
	return mergeSpans(spans)
}

// mergeSpans collapses overlapping or touching spans so the painter never
// opens a highlight inside another.
func mergeSpans(spans []runeSpan) []runeSpan {
	if len(spans) <= 1 {
		return spans
	}
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].Start == spans[j].Start {
			return spans[i].End < spans[j].End
		}
		return spans[i].Start < spans[j].Start
	})

	merged := spans[:1]
	for _, s := range spans[1:] {
		last := &merged[len(merged)-1]
		if s.Start <= last.End {
			if s.End > last.End {
				last.End = s.End
			}
			continue
		}
		merged = append(merged, s)
	}
	return merged
}

// paintSpans rewrites line with highlight sequences around the spans.
// Existing ANSI sequences pass through untouched and do not count toward
// rune positions.
func paintSpans(line string, spans []runeSpan, isCurrent bool) string {
	startSeq := matchStartSeq
	if isCurrent {
		startSeq = currentMatchStartSeq
	}

	var b strings.Builder
	span := 0
	inMatch := false
	pos := 0

	for i := 0; i < len(line); {
		if line[i] == 0x1b {
			next := ansi.ConsumeEscape(line, i)
			b.WriteString(line[i:next])
			i = next
			continue
		}

		_, size := utf8.DecodeRuneInString(line[i:])

		if inMatch && pos >= spans[span].End {
			b.WriteString(matchEndSeq)
			inMatch = false
			span++
		}
		for !inMatch && span < len(spans) && pos >= spans[span].End {
			span++
		}
		if !inMatch && span < len(spans) && pos == spans[span].Start {
			b.WriteString(startSeq)
			inMatch = true
		}

		b.WriteString(line[i : i+size])
		pos++
		i += size
	}

	if inMatch {
		b.WriteString(matchEndSeq)
	}
	return b.String()
}
