package editor

import (
	"strings"

	"github.com/rivo/uniseg"

	"github.com/custodia-labs/composer/internal/core/domain"
)

// objectReplacement stands in for a mention when a leaf is viewed as text,
// so that rune offsets and offset units coincide.
const objectReplacement = '\uFFFC'

// splitRuns cuts runs at offset. Mentions are never cut.
func splitRuns(runs []domain.Run, offset int) (left, right []domain.Run) {
	pos := 0
	for i, r := range runs {
		n := r.Len()
		switch {
		case offset <= pos:
			return left, append(right, runs[i:]...)
		case offset >= pos+n:
			left = append(left, r)
		default:
			// offset falls strictly inside a text run
			rs := []rune(r.Text)
			cut := offset - pos
			l, rr := r, r
			l.Text = string(rs[:cut])
			rr.Text = string(rs[cut:])
			left = append(left, l)
			right = append(right, rr)
			right = append(right, runs[i+1:]...)
			return left, right
		}
		pos += n
	}
	return left, right
}

// sliceRuns returns the runs between from and to, plus the parts before and after.
func sliceRuns(runs []domain.Run, from, to int) (before, mid, after []domain.Run) {
	head, rest := splitRuns(runs, from)
	mid, after = splitRuns(rest, to-from)
	return head, mid, after
}

// concatRuns joins run slices without aliasing.
func concatRuns(parts ...[]domain.Run) []domain.Run {
	var out []domain.Run
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// runBefore returns the run holding the unit just before offset.
func runBefore(runs []domain.Run, offset int) (domain.Run, bool) {
	pos := 0
	for _, r := range runs {
		n := r.Len()
		if offset > pos && offset <= pos+n {
			return r, true
		}
		pos += n
	}
	return domain.Run{}, false
}

// styleAt returns the template a text insertion at offset inherits:
// the text run it splits or extends. At the start of a leaf only the
// marks of the first run carry over, never its link.
func styleAt(runs []domain.Run, offset int) domain.Run {
	tmpl := domain.Run{Kind: domain.RunText}
	if offset == 0 {
		if len(runs) > 0 && runs[0].Kind == domain.RunText {
			tmpl.Marks = runs[0].Marks
		}
		return tmpl
	}
	if r, ok := runBefore(runs, offset); ok && r.Kind == domain.RunText {
		tmpl.Marks = r.Marks
		tmpl.URL = r.URL
	}
	return tmpl
}

// runsString renders runs as text with one placeholder rune per mention.
func runsString(runs []domain.Run) string {
	var sb strings.Builder
	for _, r := range runs {
		if r.Kind == domain.RunMention {
			sb.WriteRune(objectReplacement)
			continue
		}
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// prevClusterLen returns the length in units of the grapheme cluster
// ending at offset.
func prevClusterLen(runs []domain.Run, offset int) int {
	if offset <= 0 {
		return 0
	}
	prefix := string([]rune(runsString(runs))[:offset])
	last := 1
	g := uniseg.NewGraphemes(prefix)
	for g.Next() {
		last = len(g.Runes())
	}
	return last
}

// nextClusterLen returns the length in units of the grapheme cluster
// starting at offset.
func nextClusterLen(runs []domain.Run, offset int) int {
	rs := []rune(runsString(runs))
	if offset >= len(rs) {
		return 0
	}
	g := uniseg.NewGraphemes(string(rs[offset:]))
	if g.Next() {
		return len(g.Runes())
	}
	return 1
}
