package editor

import (
	"strings"

	"github.com/custodia-labs/composer/internal/core/domain"
)

// InsertText inserts text at the caret, replacing a non-collapsed
// selection first. Each newline splits the block.
func InsertText(st State, text string) State {
	if !st.Selection.IsCollapsed() {
		st = DeleteRange(st, st.Selection.Range())
	} else {
		st = st.Clone()
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			st = SplitBlock(st)
		}
		st = insertLine(st, line)
	}
	return st
}

// InsertLiteral inserts text at the caret without splitting the block on
// newlines. Plain-text composers keep their whole value in one block.
func InsertLiteral(st State, text string) State {
	if !st.Selection.IsCollapsed() {
		st = DeleteRange(st, st.Selection.Range())
	} else {
		st = st.Clone()
	}
	return insertLine(st, strings.ReplaceAll(text, "\r\n", "\n"))
}

// insertLine inserts newline-free text at a collapsed caret in place.
func insertLine(st State, line string) State {
	if line == "" {
		return st
	}
	caret := st.Caret()
	leaf, ok := st.Doc.Leaf(caret.Path)
	if !ok {
		return st
	}
	off := clamp(caret.Offset, 0, leaf.Len())
	run := styleAt(leaf.Runs, off)
	if st.Pending != nil {
		run.Marks = st.Pending.Marks
		if st.Pending.ExitLink {
			run.URL = ""
		}
	}
	run.Text = line
	left, right := splitRuns(leaf.Runs, off)
	leaf.Runs = domain.NormalizeRuns(concatRuns(left, []domain.Run{run}, right))
	st.Selection = domain.Caret(domain.Point{Path: caret.Path.Clone(), Offset: off + run.Len()})
	st.Pending = nil
	return st
}

// DeleteRange removes the content between r.Start and r.End and leaves
// the caret at r.Start. Blocks between the endpoints are removed and the
// remainder of the last block joins the first. A mention token inside
// the range is removed whole.
func DeleteRange(st State, r domain.Range) State {
	st = st.Clone()
	if !ValidPoint(st.Doc, r.Start) || !ValidPoint(st.Doc, r.End) {
		return st
	}
	if domain.ComparePoints(r.Start, r.End) > 0 {
		r.Start, r.End = r.End, r.Start
	}
	st.Pending = nil
	if r.IsCollapsed() {
		st.Selection = domain.Caret(clonePoint(r.Start))
		return st
	}
	first, _ := st.Doc.Leaf(r.Start.Path)
	if r.Start.Path.Equal(r.End.Path) {
		before, _, after := sliceRuns(first.Runs, r.Start.Offset, r.End.Offset)
		first.Runs = domain.NormalizeRuns(concatRuns(before, after))
		st.Selection = domain.Caret(clonePoint(r.Start))
		return st
	}
	last, _ := st.Doc.Leaf(r.End.Path)
	head, _ := splitRuns(first.Runs, r.Start.Offset)
	_, tail := splitRuns(linkedRuns(*last), r.End.Offset)
	first.Runs = domain.NormalizeRuns(concatRuns(head, tail))

	si, ei := selectedOrdinals(st.Doc, r)
	st.Doc = removeLeaves(st.Doc, func(ord int) bool { return ord > si && ord <= ei })
	st.Selection = domain.Caret(clonePoint(r.Start))
	return st
}

// SplitBlock splits the leaf at the caret into two siblings of the same
// kind and indent, moving the caret to the start of the second.
func SplitBlock(st State) State {
	if !st.Selection.IsCollapsed() {
		st = DeleteRange(st, st.Selection.Range())
	} else {
		st = st.Clone()
	}
	caret := st.Caret()
	leaf, ok := st.Doc.Leaf(caret.Path)
	if !ok {
		return st
	}
	off := clamp(caret.Offset, 0, leaf.Len())
	tmpl := styleAt(leaf.Runs, off)
	left, right := splitRuns(leaf.Runs, off)
	if len(right) == 0 {
		right = []domain.Run{domain.MarkedRun("", tmpl.Marks)}
	}
	next := domain.Block{
		Kind:   leaf.Kind,
		Indent: leaf.Indent,
		URL:    leaf.URL,
		Runs:   domain.NormalizeRuns(right),
	}
	leaf.Runs = domain.NormalizeRuns(left)

	var path domain.Path
	if len(caret.Path) == 1 {
		i := caret.Path[0]
		st.Doc.Blocks = insertBlock(st.Doc.Blocks, i+1, next)
		path = domain.Path{i + 1}
	} else {
		i, j := caret.Path[0], caret.Path[1]
		st.Doc.Blocks[i].Items = insertBlock(st.Doc.Blocks[i].Items, j+1, next)
		path = domain.Path{i, j + 1}
	}
	st.Selection = domain.Caret(domain.Point{Path: path})
	st.Pending = nil
	return st
}

func insertBlock(blocks []domain.Block, at int, b domain.Block) []domain.Block {
	out := make([]domain.Block, 0, len(blocks)+1)
	out = append(out, blocks[:at]...)
	out = append(out, b)
	return append(out, blocks[at:]...)
}

// SetMark sets or clears mark on every text run overlapping r.
func SetMark(st State, r domain.Range, mark domain.Mark, on bool) State {
	st = st.Clone()
	if !ValidPoint(st.Doc, r.Start) || !ValidPoint(st.Doc, r.End) || r.IsCollapsed() {
		return st
	}
	si, ei := selectedOrdinals(st.Doc, r)
	for ord, path := range st.Doc.LeafPaths() {
		if ord < si || ord > ei {
			continue
		}
		leaf, _ := st.Doc.Leaf(path)
		from, to := 0, leaf.Len()
		if ord == si {
			from = r.Start.Offset
		}
		if ord == ei {
			to = r.End.Offset
		}
		before, mid, after := sliceRuns(leaf.Runs, from, to)
		for k := range mid {
			if mid[k].Kind == domain.RunText {
				mid[k].Marks = mid[k].Marks.With(mark, on)
			}
		}
		leaf.Runs = domain.NormalizeRuns(concatRuns(before, mid, after))
	}
	return st
}

// MarksAt returns the marks shared by every text run overlapping r.
// At a collapsed range it returns the marks the next insertion would get.
func MarksAt(st State, r domain.Range) domain.Marks {
	if r.IsCollapsed() {
		if st.Pending != nil {
			return st.Pending.Marks
		}
		leaf, ok := st.Doc.Leaf(r.Start.Path)
		if !ok {
			return domain.Marks{}
		}
		return styleAt(leaf.Runs, clamp(r.Start.Offset, 0, leaf.Len())).Marks
	}
	if !ValidPoint(st.Doc, r.Start) || !ValidPoint(st.Doc, r.End) {
		return domain.Marks{}
	}
	si, ei := selectedOrdinals(st.Doc, r)
	var shared *domain.Marks
	for ord, path := range st.Doc.LeafPaths() {
		if ord < si || ord > ei {
			continue
		}
		leaf, _ := st.Doc.Leaf(path)
		from, to := 0, leaf.Len()
		if ord == si {
			from = r.Start.Offset
		}
		if ord == ei {
			to = r.End.Offset
		}
		_, mid, _ := sliceRuns(leaf.Runs, from, to)
		for _, run := range mid {
			if run.Kind != domain.RunText || run.Text == "" {
				continue
			}
			if shared == nil {
				m := run.Marks
				shared = &m
				continue
			}
			*shared = shared.Intersect(run.Marks)
		}
	}
	if shared == nil {
		return domain.Marks{}
	}
	return *shared
}

// DeleteBackward removes the grapheme cluster or mention before the caret,
// or joins the leaf with the previous one at its start.
func DeleteBackward(st State) State {
	if !st.Selection.IsCollapsed() {
		return DeleteRange(st, st.Selection.Range())
	}
	caret := st.Caret()
	leaf, ok := st.Doc.Leaf(caret.Path)
	if !ok {
		return st.Clone()
	}
	if caret.Offset > 0 {
		n := prevClusterLen(leaf.Runs, caret.Offset)
		from := domain.Point{Path: caret.Path, Offset: caret.Offset - n}
		return DeleteRange(st, domain.Range{Start: from, End: caret})
	}
	return mergeWithPrevious(st)
}

// DeleteForward removes the grapheme cluster or mention after the caret,
// or pulls the next leaf into this one at its end.
func DeleteForward(st State) State {
	if !st.Selection.IsCollapsed() {
		return DeleteRange(st, st.Selection.Range())
	}
	caret := st.Caret()
	leaf, ok := st.Doc.Leaf(caret.Path)
	if !ok {
		return st.Clone()
	}
	if caret.Offset < leaf.Len() {
		n := nextClusterLen(leaf.Runs, caret.Offset)
		to := domain.Point{Path: caret.Path, Offset: caret.Offset + n}
		return DeleteRange(st, domain.Range{Start: caret, End: to})
	}
	paths := st.Doc.LeafPaths()
	ord := leafOrdinal(st.Doc, caret.Path)
	if ord < 0 || ord+1 >= len(paths) {
		return st.Clone()
	}
	return DeleteRange(st, domain.Range{Start: caret, End: domain.Point{Path: paths[ord+1]}})
}

// mergeWithPrevious appends the caret's leaf to the previous leaf.
func mergeWithPrevious(st State) State {
	caret := st.Caret()
	ord := leafOrdinal(st.Doc, caret.Path)
	if ord <= 0 {
		return st.Clone()
	}
	prevPath := st.Doc.LeafPaths()[ord-1]
	prev, _ := st.Doc.Leaf(prevPath)
	start := domain.Point{Path: prevPath, Offset: prev.Len()}
	return DeleteRange(st, domain.Range{Start: start, End: domain.Point{Path: caret.Path}})
}
