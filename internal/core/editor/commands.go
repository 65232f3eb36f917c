package editor

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/custodia-labs/composer/internal/core/domain"
)

// ToggleMark sets mark over the selection unless every text run in it
// already carries the mark, in which case the mark is cleared. At a
// collapsed caret the toggle applies to the next insertion.
func ToggleMark(st State, mark domain.Mark) State {
	if !mark.IsValid() {
		return st.Clone()
	}
	r := st.Selection.Range()
	current := MarksAt(st, r)
	if r.IsCollapsed() {
		out := st.Clone()
		exit := out.Pending != nil && out.Pending.ExitLink
		out.Pending = &Pending{Marks: current.With(mark, !current.Has(mark)), ExitLink: exit}
		return out
	}
	return SetMark(st, r, mark, !current.Has(mark))
}

// IsMarkActive reports whether mark applies at the selection.
func IsMarkActive(st State, mark domain.Mark) bool {
	return MarksAt(st, st.Selection.Range()).Has(mark)
}

// CurrentList returns the list kind holding the caret, if any.
func CurrentList(st State) (domain.BlockKind, bool) {
	p := st.Caret().Path
	if len(p) != 2 || p[0] >= len(st.Doc.Blocks) {
		return "", false
	}
	return st.Doc.Blocks[p[0]].Kind, true
}

// ToggleList wraps the selected blocks in a list of kind. Items already in
// a list of kind are unwrapped to paragraphs; a list of the other kind only
// changes its kind.
func ToggleList(st State, kind domain.BlockKind) State {
	if !kind.IsList() {
		return st.Clone()
	}
	st = st.Clone()
	r := st.Selection.Range()
	si, ei := selectedOrdinals(st.Doc, r)
	if si < 0 || ei < 0 {
		return st
	}
	paths := st.Doc.LeafPaths()
	first, last := paths[si][0], paths[ei][0]

	allKind, allList := true, true
	for i := first; i <= last; i++ {
		k := st.Doc.Blocks[i].Kind
		allKind = allKind && k == kind
		allList = allList && k.IsList()
	}

	before := st.Doc
	switch {
	case allKind:
		st.Doc = unwrapItems(st.Doc, func(ord int) bool { return ord >= si && ord <= ei })
	case allList && first == last:
		st.Doc.Blocks[first].Kind = kind
	default:
		var items []domain.Block
		for i := first; i <= last; i++ {
			b := st.Doc.Blocks[i]
			if b.Kind.IsList() {
				items = append(items, b.Items...)
				continue
			}
			items = append(items, domain.Block{
				Kind:   domain.KindListItem,
				Indent: b.Indent,
				Runs:   domain.NormalizeRuns(linkedRuns(b)),
			})
		}
		blocks := make([]domain.Block, 0, len(st.Doc.Blocks))
		blocks = append(blocks, st.Doc.Blocks[:first]...)
		blocks = append(blocks, domain.List(kind, items...))
		blocks = append(blocks, st.Doc.Blocks[last+1:]...)
		st.Doc = domain.Document{Blocks: blocks}
	}
	st.Selection = remapSelection(before, st.Doc, st.Selection)
	return st
}

// IndentList raises the indent of the selected blocks by one, up to
// domain.MaxIndent.
func IndentList(st State) State {
	st = st.Clone()
	forSelectedLeaves(st, func(_ int, b *domain.Block) {
		b.Indent = clamp(b.Indent+1, 0, domain.MaxIndent)
	})
	return st
}

// OutdentList lowers the indent of the selected blocks by one. A list item
// already at indent zero leaves its list and becomes a paragraph.
func OutdentList(st State) State {
	st = st.Clone()
	demote := map[int]bool{}
	forSelectedLeaves(st, func(ord int, b *domain.Block) {
		if b.Indent > 0 {
			b.Indent--
			return
		}
		if b.Kind == domain.KindListItem {
			demote[ord] = true
		}
	})
	if len(demote) > 0 {
		before := st.Doc
		st.Doc = unwrapItems(st.Doc, func(ord int) bool { return demote[ord] })
		st.Selection = remapSelection(before, st.Doc, st.Selection)
	}
	return st
}

func forSelectedLeaves(st State, fn func(ord int, b *domain.Block)) {
	si, ei := selectedOrdinals(st.Doc, st.Selection.Range())
	for ord, path := range st.Doc.LeafPaths() {
		if ord < si || ord > ei {
			continue
		}
		leaf, _ := st.Doc.Leaf(path)
		fn(ord, leaf)
	}
}

// Backspace deletes backwards. At the start of a list item it outdents an
// indented item, turns the first item of a list into a paragraph, and
// otherwise merges the item into the previous one.
func Backspace(st State) State {
	if !st.Selection.IsCollapsed() {
		return DeleteRange(st, st.Selection.Range())
	}
	caret := st.Caret()
	leaf, ok := st.Doc.Leaf(caret.Path)
	if !ok || caret.Offset > 0 || leaf.Kind != domain.KindListItem {
		return DeleteBackward(st)
	}
	switch {
	case leaf.Indent > 0:
		return OutdentList(st)
	case caret.Path[1] == 0:
		st = st.Clone()
		ord := leafOrdinal(st.Doc, caret.Path)
		before := st.Doc
		st.Doc = unwrapItems(st.Doc, func(o int) bool { return o == ord })
		st.Selection = remapSelection(before, st.Doc, st.Selection)
		return st
	default:
		return mergeWithPrevious(st)
	}
}

var numberedMarker = regexp.MustCompile(`^\d+\.$`)

// AutoListFormat turns a paragraph that starts with a list marker typed
// before the caret into a list. "-" and "*" give a bulleted list, "1."
// a numbered one. It reports whether the conversion happened, in which
// case the space that triggered it should not be inserted.
func AutoListFormat(st State) (State, bool) {
	if !st.Selection.IsCollapsed() {
		return st, false
	}
	caret := st.Caret()
	leaf, ok := st.Doc.Leaf(caret.Path)
	if !ok || leaf.Kind != domain.KindParagraph || caret.Offset == 0 {
		return st, false
	}
	prefix, _ := splitRuns(leaf.Runs, caret.Offset)
	marker := runsString(prefix)
	var kind domain.BlockKind
	switch {
	case marker == "-" || marker == "*":
		kind = domain.KindBulletedList
	case numberedMarker.MatchString(marker):
		kind = domain.KindNumberedList
	default:
		return st, false
	}
	start := domain.Point{Path: caret.Path}
	out := DeleteRange(st, domain.Range{Start: start, End: caret})
	return ToggleList(out, kind), true
}

// ResetFormatting clears marks, unwraps lists and removes indents.
func ResetFormatting(st State) State {
	before := st.Doc
	out := domain.Document{}
	for _, b := range st.Doc.Blocks {
		leaves := []domain.Block{b}
		if b.Kind.IsList() {
			leaves = b.Items
		}
		for _, leaf := range leaves {
			runs := make([]domain.Run, len(leaf.Runs))
			for k, r := range leaf.Runs {
				r.Marks = domain.Marks{}
				runs[k] = r
			}
			kind, target := domain.KindParagraph, ""
			if leaf.Kind == domain.KindLink {
				kind, target = domain.KindLink, leaf.URL
			}
			out.Blocks = append(out.Blocks, domain.Block{Kind: kind, URL: target, Runs: domain.NormalizeRuns(runs)})
		}
	}
	out = out.Normalize()
	return State{Doc: out, Selection: remapSelection(before, out, st.Selection)}
}

// InsertMention replaces r with a mention token followed by a space.
// An existing whitespace after the range is reused instead.
func InsertMention(st State, r domain.Range, m domain.Mention) State {
	if m.ID == "" || !r.Start.Path.Equal(r.End.Path) {
		return st.Clone()
	}
	if !ValidPoint(st.Doc, r.Start) || !ValidPoint(st.Doc, r.End) {
		return st.Clone()
	}
	st = DeleteRange(st, r)
	caret := st.Caret()
	leaf, _ := st.Doc.Leaf(caret.Path)
	left, right := splitRuns(leaf.Runs, caret.Offset)
	leaf.Runs = domain.NormalizeRuns(concatRuns(left, []domain.Run{domain.MentionRun(m)}, right))
	after := domain.Point{Path: caret.Path, Offset: caret.Offset + 1}
	if spaceAt(leaf.Runs, after.Offset) {
		return st.WithCaret(domain.Point{Path: after.Path, Offset: after.Offset + 1})
	}
	return insertLine(st.WithCaret(after), " ")
}

func spaceAt(runs []domain.Run, offset int) bool {
	rs := []rune(runsString(runs))
	return offset < len(rs) && unicode.IsSpace(rs[offset])
}

// Paste inserts clipboard text. A lone absolute URL becomes a link run.
func Paste(st State, text string) State {
	trimmed := strings.TrimSpace(text)
	if IsValidURL(trimmed) {
		return InsertLink(st, trimmed, trimmed)
	}
	return InsertText(st, text)
}
