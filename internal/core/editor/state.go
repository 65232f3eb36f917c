package editor

import "github.com/custodia-labs/composer/internal/core/domain"

// Pending holds styling for the next insertion at a collapsed caret.
// It is cleared by any insertion or caret movement.
type Pending struct {
	// Marks replaces the inherited marks.
	Marks domain.Marks

	// ExitLink makes the next insertion land outside any link run.
	ExitLink bool
}

// State is a document together with its selection.
type State struct {
	Doc       domain.Document
	Selection domain.Selection
	Pending   *Pending
}

// NewState creates a state with the caret at the start of doc.
func NewState(doc domain.Document) State {
	return State{Doc: doc, Selection: domain.Caret(StartPoint(doc))}
}

// NewStateAtEnd creates a state with the caret at the end of doc.
func NewStateAtEnd(doc domain.Document) State {
	return State{Doc: doc, Selection: domain.Caret(EndPoint(doc))}
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	out := State{
		Doc: s.Doc.Clone(),
		Selection: domain.Selection{
			Anchor: clonePoint(s.Selection.Anchor),
			Focus:  clonePoint(s.Selection.Focus),
		},
	}
	if s.Pending != nil {
		p := *s.Pending
		out.Pending = &p
	}
	return out
}

// Caret returns the focus point of the selection.
func (s State) Caret() domain.Point {
	return s.Selection.Focus
}

// WithCaret returns a copy of s with a collapsed selection at p.
func (s State) WithCaret(p domain.Point) State {
	out := s.Clone()
	out.Selection = domain.Caret(clampPoint(out.Doc, p))
	out.Pending = nil
	return out
}

// WithSelection returns a copy of s with sel clamped into the document.
func (s State) WithSelection(sel domain.Selection) State {
	out := s.Clone()
	out.Selection = domain.Selection{
		Anchor: clampPoint(out.Doc, sel.Anchor),
		Focus:  clampPoint(out.Doc, sel.Focus),
	}
	out.Pending = nil
	return out
}

// StartPoint returns the first position of doc.
func StartPoint(doc domain.Document) domain.Point {
	paths := doc.LeafPaths()
	if len(paths) == 0 {
		return domain.At(0, 0)
	}
	return domain.Point{Path: paths[0].Clone()}
}

// EndPoint returns the last position of doc.
func EndPoint(doc domain.Document) domain.Point {
	paths := doc.LeafPaths()
	if len(paths) == 0 {
		return domain.At(0, 0)
	}
	last := paths[len(paths)-1]
	leaf, _ := doc.Leaf(last)
	return domain.Point{Path: last.Clone(), Offset: leaf.Len()}
}

// ValidPoint reports whether p addresses a position inside doc.
func ValidPoint(doc domain.Document, p domain.Point) bool {
	leaf, ok := doc.Leaf(p.Path)
	return ok && p.Offset >= 0 && p.Offset <= leaf.Len()
}

func clonePoint(p domain.Point) domain.Point {
	return domain.Point{Path: p.Path.Clone(), Offset: p.Offset}
}

// clampPoint moves p to the nearest valid position.
func clampPoint(doc domain.Document, p domain.Point) domain.Point {
	if leaf, ok := doc.Leaf(p.Path); ok {
		return domain.Point{Path: p.Path.Clone(), Offset: clamp(p.Offset, 0, leaf.Len())}
	}
	paths := doc.LeafPaths()
	for i := len(paths) - 1; i >= 0; i-- {
		if domain.ComparePaths(paths[i], p.Path) <= 0 {
			leaf, _ := doc.Leaf(paths[i])
			return domain.Point{Path: paths[i].Clone(), Offset: leaf.Len()}
		}
	}
	return StartPoint(doc)
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
