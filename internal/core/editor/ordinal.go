package editor

import "github.com/custodia-labs/composer/internal/core/domain"

// loc addresses a position by leaf ordinal instead of path.
// Structural commands that keep leaves in order (wrapping, unwrapping,
// changing list kind) preserve locs while paths shift.
type loc struct {
	leaf   int
	offset int
}

func leafOrdinal(doc domain.Document, path domain.Path) int {
	for i, p := range doc.LeafPaths() {
		if p.Equal(path) {
			return i
		}
	}
	return -1
}

func toLoc(doc domain.Document, p domain.Point) loc {
	return loc{leaf: leafOrdinal(doc, p.Path), offset: p.Offset}
}

func fromLoc(doc domain.Document, l loc) domain.Point {
	paths := doc.LeafPaths()
	if l.leaf < 0 || l.leaf >= len(paths) {
		return EndPoint(doc)
	}
	leaf, _ := doc.Leaf(paths[l.leaf])
	return domain.Point{Path: paths[l.leaf].Clone(), Offset: clamp(l.offset, 0, leaf.Len())}
}

// remapSelection rebuilds st.Selection after a leaf-preserving change.
func remapSelection(before domain.Document, after domain.Document, sel domain.Selection) domain.Selection {
	return domain.Selection{
		Anchor: fromLoc(after, toLoc(before, sel.Anchor)),
		Focus:  fromLoc(after, toLoc(before, sel.Focus)),
	}
}

// selectedOrdinals returns the first and last leaf ordinals touched by r.
func selectedOrdinals(doc domain.Document, r domain.Range) (int, int) {
	return leafOrdinal(doc, r.Start.Path), leafOrdinal(doc, r.End.Path)
}

// removeLeaves drops every leaf whose ordinal satisfies drop.
// Lists left without items disappear.
func removeLeaves(doc domain.Document, drop func(ord int) bool) domain.Document {
	out := domain.Document{}
	ord := 0
	for _, b := range doc.Blocks {
		if b.Kind.IsList() {
			var items []domain.Block
			for _, item := range b.Items {
				if !drop(ord) {
					items = append(items, item)
				}
				ord++
			}
			if len(items) > 0 {
				b.Items = items
				out.Blocks = append(out.Blocks, b)
			}
			continue
		}
		if !drop(ord) {
			out.Blocks = append(out.Blocks, b)
		}
		ord++
	}
	if len(out.Blocks) == 0 {
		return domain.EmptyDocument()
	}
	return out
}

// unwrapItems turns the list items picked by demote into paragraphs,
// splitting their lists around them.
func unwrapItems(doc domain.Document, demote func(ord int) bool) domain.Document {
	out := domain.Document{}
	ord := 0
	for _, b := range doc.Blocks {
		if !b.Kind.IsList() {
			out.Blocks = append(out.Blocks, b)
			ord++
			continue
		}
		var pending []domain.Block
		flush := func() {
			if len(pending) > 0 {
				out.Blocks = append(out.Blocks, domain.List(b.Kind, pending...))
				pending = nil
			}
		}
		for _, item := range b.Items {
			if demote(ord) {
				flush()
				out.Blocks = append(out.Blocks, domain.Block{
					Kind:   domain.KindParagraph,
					Indent: item.Indent,
					Runs:   item.Runs,
				})
			} else {
				pending = append(pending, item)
			}
			ord++
		}
		flush()
	}
	return out
}

// linkedRuns returns the runs of b, carrying a link block's URL onto its
// text runs so the link survives leaving the block.
func linkedRuns(b domain.Block) []domain.Run {
	runs := make([]domain.Run, len(b.Runs))
	copy(runs, b.Runs)
	if b.Kind != domain.KindLink {
		return runs
	}
	for i := range runs {
		if runs[i].Kind == domain.RunText && runs[i].URL == "" && runs[i].Text != "" {
			runs[i].URL = b.URL
		}
	}
	return runs
}
