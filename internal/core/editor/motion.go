package editor

import "github.com/custodia-labs/composer/internal/core/domain"

// Direction is a caret movement.
type Direction uint8

// Caret movements.
const (
	Left Direction = iota
	Right
	Up
	Down
	LineStart
	LineEnd
)

// Move moves the caret. With extend the anchor stays put and the
// selection grows; without it a selection collapses towards the move.
func Move(st State, dir Direction, extend bool) State {
	sel := st.Selection
	if !extend && !sel.IsCollapsed() && (dir == Left || dir == Right) {
		r := sel.Range()
		p := r.Start
		if dir == Right {
			p = r.End
		}
		return st.WithCaret(p)
	}
	focus := movePoint(st.Doc, sel.Focus, dir)
	if extend {
		return st.WithSelection(domain.Selection{Anchor: sel.Anchor, Focus: focus})
	}
	return st.WithCaret(focus)
}

// SelectAll selects the whole document.
func SelectAll(st State) State {
	return st.WithSelection(domain.Selection{Anchor: StartPoint(st.Doc), Focus: EndPoint(st.Doc)})
}

func movePoint(doc domain.Document, p domain.Point, dir Direction) domain.Point {
	leaf, ok := doc.Leaf(p.Path)
	if !ok {
		return clampPoint(doc, p)
	}
	paths := doc.LeafPaths()
	ord := leafOrdinal(doc, p.Path)
	switch dir {
	case Left:
		if p.Offset > 0 {
			return domain.Point{Path: p.Path, Offset: p.Offset - prevClusterLen(leaf.Runs, p.Offset)}
		}
		if ord > 0 {
			prev, _ := doc.Leaf(paths[ord-1])
			return domain.Point{Path: paths[ord-1], Offset: prev.Len()}
		}
	case Right:
		if p.Offset < leaf.Len() {
			return domain.Point{Path: p.Path, Offset: p.Offset + nextClusterLen(leaf.Runs, p.Offset)}
		}
		if ord+1 < len(paths) {
			return domain.Point{Path: paths[ord+1]}
		}
	case Up:
		if ord > 0 {
			prev, _ := doc.Leaf(paths[ord-1])
			return domain.Point{Path: paths[ord-1], Offset: clamp(p.Offset, 0, prev.Len())}
		}
		return domain.Point{Path: p.Path}
	case Down:
		if ord+1 < len(paths) {
			next, _ := doc.Leaf(paths[ord+1])
			return domain.Point{Path: paths[ord+1], Offset: clamp(p.Offset, 0, next.Len())}
		}
		return domain.Point{Path: p.Path, Offset: leaf.Len()}
	case LineStart:
		return domain.Point{Path: p.Path}
	case LineEnd:
		return domain.Point{Path: p.Path, Offset: leaf.Len()}
	}
	return p
}
