package render

import (
	"strings"

	"github.com/rivo/uniseg"
)

// WrapText greedily wraps s to maxWidthPx under f, breaking each
// newline-separated paragraph at whitespace and splitting a word wider
// than maxWidthPx by grapheme cluster, matching the teacher's word-wrap technique (prefix-sum width
// measurement per candidate line) simplified to a single font — the
// summary sheet never mixes font sizes within one paragraph, unlike the
// teacher's multi-scale Text layout.
func WrapText(f *Font, s string, maxWidthPx float64) []string {
	if maxWidthPx <= 0 || s == "" {
		return []string{s}
	}

	var lines []string
	for _, para := range strings.Split(s, "\n") {
		lines = append(lines, wrapParagraph(f, para, maxWidthPx)...)
	}
	return lines
}

func wrapParagraph(f *Font, p string, maxWidthPx float64) []string {
	words := strings.Fields(p)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	current := words[0]
	for _, w := range words[1:] {
		candidate := current + " " + w
		width, _ := f.MeasureString(candidate)
		if width <= maxWidthPx {
			current = candidate
			continue
		}
		lines = append(lines, splitOverlongWord(f, current, maxWidthPx)...)
		current = w
	}
	lines = append(lines, splitOverlongWord(f, current, maxWidthPx)...)
	return lines
}

// splitOverlongWord handles the case where a single line (possibly a
// single overlong word) still exceeds maxWidthPx, breaking it by
// grapheme cluster so multi-byte glyphs are never split mid-cluster.
func splitOverlongWord(f *Font, line string, maxWidthPx float64) []string {
	if w, _ := f.MeasureString(line); w <= maxWidthPx {
		return []string{line}
	}

	var out []string
	g := uniseg.NewGraphemes(line)
	var current string
	for g.Next() {
		candidate := current + g.Str()
		if w, _ := f.MeasureString(candidate); w > maxWidthPx && current != "" {
			out = append(out, current)
			current = g.Str()
			continue
		}
		current = candidate
	}
	if current != "" {
		out = append(out, current)
	}
	return out
}
