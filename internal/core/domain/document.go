package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxIndent is the deepest visual indent a block may carry.
const MaxIndent = 10

// BlockKind identifies the type of a Block.
type BlockKind string

// Available block kinds.
const (
	// KindParagraph is a plain text-bearing block.
	KindParagraph BlockKind = "paragraph"

	// KindBulletedList is an unordered list of list items.
	KindBulletedList BlockKind = "bulleted-list"

	// KindNumberedList is an ordered list of list items.
	KindNumberedList BlockKind = "numbered-list"

	// KindListItem is a text-bearing block that only appears inside a list.
	KindListItem BlockKind = "list-item"

	// KindLink is a text-bearing block whose whole content links to a URL.
	KindLink BlockKind = "link"
)

// IsList returns true for the two list kinds.
func (k BlockKind) IsList() bool {
	return k == KindBulletedList || k == KindNumberedList
}

// IsLeaf returns true for kinds that carry runs and can hold the cursor.
func (k BlockKind) IsLeaf() bool {
	return k == KindParagraph || k == KindListItem || k == KindLink
}

// IsValid returns true if the block kind is recognised.
func (k BlockKind) IsValid() bool {
	return k.IsList() || k.IsLeaf()
}

// Block is a node of the document tree.
// Leaf blocks (paragraph, list item, link) carry Runs.
// List blocks carry Items, each a list item.
type Block struct {
	// Kind is the block type.
	Kind BlockKind

	// Indent is the visual indent level in [0, MaxIndent].
	// Lists themselves do not indent; their items do.
	Indent int

	// URL is the target of a link block.
	URL string

	// Runs is the inline content of a leaf block.
	Runs []Run

	// Items holds the list items of a list block.
	Items []Block
}

// Paragraph creates a paragraph block. With no runs it is empty.
func Paragraph(runs ...Run) Block {
	return Block{Kind: KindParagraph, Runs: leafRuns(runs)}
}

// ListItem creates a list item block.
func ListItem(runs ...Run) Block {
	return Block{Kind: KindListItem, Runs: leafRuns(runs)}
}

// LinkBlock creates a link block pointing at url.
func LinkBlock(url string, runs ...Run) Block {
	return Block{Kind: KindLink, URL: url, Runs: leafRuns(runs)}
}

// List creates a list block of the given kind.
func List(kind BlockKind, items ...Block) Block {
	return Block{Kind: kind, Items: items}
}

func leafRuns(runs []Run) []Run {
	if len(runs) == 0 {
		return []Run{TextRun("")}
	}
	return runs
}

// IsLeaf returns true if the block carries runs.
func (b Block) IsLeaf() bool {
	return b.Kind.IsLeaf()
}

// Len returns the content length of a leaf block in offset units.
func (b Block) Len() int {
	n := 0
	for _, r := range b.Runs {
		n += r.Len()
	}
	return n
}

// Text returns the plain text of the block.
// List items are concatenated; mentions render as @name.
func (b Block) Text() string {
	var sb strings.Builder
	if b.Kind.IsList() {
		for _, item := range b.Items {
			sb.WriteString(item.Text())
		}
		return sb.String()
	}
	for _, r := range b.Runs {
		sb.WriteString(r.PlainText())
	}
	return sb.String()
}

// IsEmpty returns true if the block holds no content.
func (b Block) IsEmpty() bool {
	if b.Kind.IsList() {
		for _, item := range b.Items {
			if !item.IsEmpty() {
				return false
			}
		}
		return true
	}
	return b.Len() == 0
}

// Clone returns a deep copy of the block.
func (b Block) Clone() Block {
	out := b
	if b.Runs != nil {
		out.Runs = make([]Run, len(b.Runs))
		copy(out.Runs, b.Runs)
	}
	if b.Items != nil {
		out.Items = make([]Block, len(b.Items))
		for i, item := range b.Items {
			out.Items[i] = item.Clone()
		}
	}
	return out
}

// Document is an ordered, non-empty sequence of top-level blocks.
type Document struct {
	Blocks []Block
}

// NewDocument creates a document from blocks.
// An empty block list yields the canonical empty document.
func NewDocument(blocks ...Block) Document {
	if len(blocks) == 0 {
		return EmptyDocument()
	}
	return Document{Blocks: blocks}
}

// EmptyDocument returns a document holding one empty paragraph.
func EmptyDocument() Document {
	return Document{Blocks: []Block{Paragraph()}}
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	out := Document{Blocks: make([]Block, len(d.Blocks))}
	for i, b := range d.Blocks {
		out.Blocks[i] = b.Clone()
	}
	return out
}

// Leaf returns the text-bearing block at path.
// Top-level paragraphs and links are addressed as [i],
// list items as [i, j].
func (d *Document) Leaf(path Path) (*Block, bool) {
	switch len(path) {
	case 1:
		i := path[0]
		if i < 0 || i >= len(d.Blocks) || !d.Blocks[i].IsLeaf() {
			return nil, false
		}
		return &d.Blocks[i], true
	case 2:
		i, j := path[0], path[1]
		if i < 0 || i >= len(d.Blocks) || !d.Blocks[i].Kind.IsList() {
			return nil, false
		}
		if j < 0 || j >= len(d.Blocks[i].Items) {
			return nil, false
		}
		return &d.Blocks[i].Items[j], true
	default:
		return nil, false
	}
}

// LeafPaths returns the paths of all text-bearing blocks in document order.
func (d Document) LeafPaths() []Path {
	var paths []Path
	for i, b := range d.Blocks {
		if b.Kind.IsList() {
			for j := range b.Items {
				paths = append(paths, Path{i, j})
			}
			continue
		}
		paths = append(paths, Path{i})
	}
	return paths
}

// FirstBlockEmpty reports whether the first top-level block has no content.
func (d Document) FirstBlockEmpty() bool {
	if len(d.Blocks) == 0 {
		return true
	}
	return d.Blocks[0].IsEmpty()
}

// Mentions returns every mention token in document order.
func (d Document) Mentions() []Mention {
	var out []Mention
	collect := func(runs []Run) {
		for _, r := range runs {
			if r.Kind == RunMention {
				out = append(out, r.Mention)
			}
		}
	}
	for _, b := range d.Blocks {
		if b.Kind.IsList() {
			for _, item := range b.Items {
				collect(item.Runs)
			}
			continue
		}
		collect(b.Runs)
	}
	return out
}

// Validate checks the structural invariants of the document.
func (d Document) Validate() error {
	if len(d.Blocks) == 0 {
		return fmt.Errorf("%w: document has no blocks", ErrInvariant)
	}
	for i, b := range d.Blocks {
		switch {
		case b.Kind.IsList():
			if len(b.Items) == 0 {
				return fmt.Errorf("%w: list %d has no items", ErrInvariant, i)
			}
			for j, item := range b.Items {
				if item.Kind != KindListItem {
					return fmt.Errorf("%w: list %d holds %q at %d", ErrInvariant, i, item.Kind, j)
				}
				if err := validateLeaf(item); err != nil {
					return fmt.Errorf("block [%d %d]: %w", i, j, err)
				}
			}
		case b.Kind == KindParagraph || b.Kind == KindLink:
			if err := validateLeaf(b); err != nil {
				return fmt.Errorf("block [%d]: %w", i, err)
			}
		default:
			return fmt.Errorf("%w: unexpected top-level %q at %d", ErrInvariant, b.Kind, i)
		}
	}
	return nil
}

func validateLeaf(b Block) error {
	if b.Indent < 0 || b.Indent > MaxIndent {
		return fmt.Errorf("%w: indent %d out of range", ErrInvariant, b.Indent)
	}
	if b.Kind == KindLink && b.URL == "" {
		return fmt.Errorf("%w: link block without url", ErrInvariant)
	}
	if len(b.Runs) == 0 {
		return fmt.Errorf("%w: leaf has no runs", ErrInvariant)
	}
	for k, r := range b.Runs {
		switch r.Kind {
		case RunMention:
			if r.Mention.ID == "" {
				return fmt.Errorf("%w: mention %d without id", ErrInvariant, k)
			}
		case RunText:
			if r.Text == "" && len(b.Runs) > 1 {
				return fmt.Errorf("%w: empty text run %d", ErrInvariant, k)
			}
			if r.Text == "" && r.URL != "" {
				return fmt.Errorf("%w: empty link run %d", ErrInvariant, k)
			}
			if k > 0 && b.Runs[k-1].Kind == RunText && b.Runs[k-1].sameStyle(r) {
				return fmt.Errorf("%w: unmerged runs %d and %d", ErrInvariant, k-1, k)
			}
		default:
			return fmt.Errorf("%w: unknown run kind %d", ErrInvariant, r.Kind)
		}
	}
	return nil
}

// Normalize restores the document invariants.
// Stray list items become paragraphs, empty lists are dropped,
// indents are clamped and runs are merged.
func (d Document) Normalize() Document {
	out := Document{Blocks: make([]Block, 0, len(d.Blocks))}
	for _, b := range d.Blocks {
		switch {
		case b.Kind.IsList():
			items := make([]Block, 0, len(b.Items))
			for _, item := range b.Items {
				if item.Kind.IsList() {
					// Nested lists flatten into the parent.
					for _, nested := range item.Items {
						items = append(items, normalizeLeaf(nested, KindListItem))
					}
					continue
				}
				items = append(items, normalizeLeaf(item, KindListItem))
			}
			if len(items) == 0 {
				continue
			}
			out.Blocks = append(out.Blocks, Block{Kind: b.Kind, Items: items})
		case b.Kind == KindLink && b.URL != "":
			out.Blocks = append(out.Blocks, normalizeLeaf(b, KindLink))
		default:
			out.Blocks = append(out.Blocks, normalizeLeaf(b, KindParagraph))
		}
	}
	if len(out.Blocks) == 0 {
		return EmptyDocument()
	}
	return out
}

func normalizeLeaf(b Block, kind BlockKind) Block {
	out := Block{Kind: kind, Indent: clampIndent(b.Indent), Runs: NormalizeRuns(b.Runs)}
	if kind == KindLink {
		out.URL = b.URL
	}
	return out
}

func clampIndent(n int) int {
	if n < 0 {
		return 0
	}
	if n > MaxIndent {
		return MaxIndent
	}
	return n
}

// NormalizeRuns drops empty text runs and merges neighbours of equal style.
// The result always holds at least one run.
func NormalizeRuns(runs []Run) []Run {
	out := make([]Run, 0, len(runs))
	var emptyMarks *Marks
	for _, r := range runs {
		if r.Kind == RunMention {
			out = append(out, r)
			continue
		}
		if r.Text == "" {
			if emptyMarks == nil {
				m := r.Marks
				emptyMarks = &m
			}
			continue
		}
		if n := len(out); n > 0 && out[n-1].Kind == RunText && out[n-1].sameStyle(r) {
			out[n-1].Text += r.Text
			continue
		}
		out = append(out, r)
	}
	if len(out) == 0 {
		empty := TextRun("")
		if emptyMarks != nil {
			empty.Marks = *emptyMarks
		}
		return []Run{empty}
	}
	return out
}

// runeLen is shared by runs and blocks.
func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
