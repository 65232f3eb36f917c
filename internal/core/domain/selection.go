package domain

// Path addresses a block: [i] for top-level blocks, [i, j] for list items.
type Path []int

// Clone returns a copy of the path.
func (p Path) Clone() Path {
	out := make(Path, len(p))
	copy(out, p)
	return out
}

// Equal reports whether both paths address the same block.
func (p Path) Equal(o Path) bool {
	return ComparePaths(p, o) == 0
}

// ComparePaths orders paths lexicographically.
func ComparePaths(a, b Path) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// Point is a cursor position inside a text-bearing block.
type Point struct {
	Path   Path
	Offset int
}

// At creates a point.
func At(offset int, path ...int) Point {
	return Point{Path: Path(path), Offset: offset}
}

// Equal reports whether both points are the same position.
func (p Point) Equal(o Point) bool {
	return ComparePoints(p, o) == 0
}

// ComparePoints totally orders points: path first, then offset.
func ComparePoints(a, b Point) int {
	if c := ComparePaths(a.Path, b.Path); c != 0 {
		return c
	}
	switch {
	case a.Offset < b.Offset:
		return -1
	case a.Offset > b.Offset:
		return 1
	default:
		return 0
	}
}

// Range is an ordered span with Start <= End.
type Range struct {
	Start Point
	End   Point
}

// IsCollapsed returns true when the range is empty.
func (r Range) IsCollapsed() bool {
	return r.Start.Equal(r.End)
}

// Selection is an anchor and a focus; the focus is the caret.
type Selection struct {
	Anchor Point
	Focus  Point
}

// Caret returns a collapsed selection at p.
func Caret(p Point) Selection {
	return Selection{Anchor: p, Focus: p}
}

// IsCollapsed returns true when anchor equals focus.
func (s Selection) IsCollapsed() bool {
	return s.Anchor.Equal(s.Focus)
}

// Range returns the selection ordered start to end.
func (s Selection) Range() Range {
	if ComparePoints(s.Anchor, s.Focus) <= 0 {
		return Range{Start: s.Anchor, End: s.Focus}
	}
	return Range{Start: s.Focus, End: s.Anchor}
}
