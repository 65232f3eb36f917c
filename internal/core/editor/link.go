package editor

import (
	"net/url"
	"strings"
	"unicode"

	"github.com/custodia-labs/composer/internal/core/domain"
)

// IsValidURL reports whether s parses as an absolute URL with a host.
func IsValidURL(s string) bool {
	if s == "" || strings.IndexFunc(s, unicode.IsSpace) >= 0 {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

// ActiveLink returns the link run the caret sits in or at the end of.
func ActiveLink(st State) (domain.Run, bool) {
	if !st.Selection.IsCollapsed() || (st.Pending != nil && st.Pending.ExitLink) {
		return domain.Run{}, false
	}
	caret := st.Caret()
	leaf, ok := st.Doc.Leaf(caret.Path)
	if !ok {
		return domain.Run{}, false
	}
	r, ok := runBefore(leaf.Runs, caret.Offset)
	if !ok || !r.IsLink() {
		return domain.Run{}, false
	}
	return r, true
}

// IsLinkActive reports whether typing at the caret would extend a link.
func IsLinkActive(st State) bool {
	_, ok := ActiveLink(st)
	return ok
}

// WrapOrUpdateLink makes the text in r a link to target. Text already
// linked inside r is re-pointed. A range that spans blocks or lies outside
// the document leaves the state unchanged.
func WrapOrUpdateLink(st State, target string, r domain.Range) State {
	st = st.Clone()
	if target == "" || r.IsCollapsed() || !r.Start.Path.Equal(r.End.Path) {
		return st
	}
	if !ValidPoint(st.Doc, r.Start) || !ValidPoint(st.Doc, r.End) {
		return st
	}
	leaf, _ := st.Doc.Leaf(r.Start.Path)
	before, mid, after := sliceRuns(leaf.Runs, r.Start.Offset, r.End.Offset)
	for k := range mid {
		if mid[k].Kind == domain.RunText {
			mid[k].URL = target
		}
	}
	leaf.Runs = domain.NormalizeRuns(concatRuns(before, mid, after))
	return st
}

// ExitLinkWrap moves the caret to the end of the active link and arranges
// for the next insertion to land outside it. Pending marks are kept.
func ExitLinkWrap(st State) State {
	run, ok := ActiveLink(st)
	if !ok {
		return st.Clone()
	}
	caret := st.Caret()
	leaf, _ := st.Doc.Leaf(caret.Path)
	end := linkRunEnd(leaf.Runs, caret.Offset)
	marks := run.Marks
	if st.Pending != nil {
		marks = st.Pending.Marks
	}
	out := st.WithCaret(domain.Point{Path: caret.Path, Offset: end})
	out.Pending = &Pending{Marks: marks, ExitLink: true}
	return out
}

// linkRunEnd returns the end offset of the link run holding the unit
// before offset.
func linkRunEnd(runs []domain.Run, offset int) int {
	pos := 0
	for _, r := range runs {
		n := r.Len()
		if offset > pos && offset <= pos+n {
			return pos + n
		}
		pos += n
	}
	return offset
}

// InsertLink inserts text as a link run to target at the caret.
// The caret ends after it, outside the link.
func InsertLink(st State, text, target string) State {
	if !st.Selection.IsCollapsed() {
		st = DeleteRange(st, st.Selection.Range())
	}
	if text == "" || target == "" {
		return st.Clone()
	}
	start := st.Caret()
	st = InsertText(st.WithCaret(start), text)
	end := domain.Point{Path: start.Path, Offset: start.Offset + len([]rune(text))}
	st = WrapOrUpdateLink(st, target, domain.Range{Start: start, End: end})
	st.Pending = &Pending{Marks: MarksAt(st, domain.Range{Start: end, End: end}), ExitLink: true}
	return st
}
