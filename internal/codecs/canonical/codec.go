package canonical

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/custodia-labs/composer/internal/core/domain"
	"github.com/custodia-labs/composer/internal/core/ports/driven"
)

// Ensure Codec implements the interface.
var _ driven.Codec = (*Codec)(nil)

const (
	typeLink    = "link"
	typeMention = "mention"
)

// Codec handles the canonical JSON form.
type Codec struct{}

// New creates a new canonical codec.
func New() *Codec {
	return &Codec{}
}

// Format returns the representation this codec handles.
func (c *Codec) Format() domain.Format {
	return domain.FormatCanonical
}

// Priority returns the load precedence.
func (c *Codec) Priority() int {
	return 100 // Tried first
}

// node is the wire shape of both elements and text leaves.
type node struct {
	Type     string       `json:"type,omitempty"`
	URL      string       `json:"url,omitempty"`
	Indent   int          `json:"indent,omitempty"`
	Mention  *mentionJSON `json:"mention,omitempty"`
	Children []node       `json:"children,omitempty"`

	Text          *string `json:"text,omitempty"`
	Bold          bool    `json:"bold,omitempty"`
	Italic        bool    `json:"italic,omitempty"`
	Underline     bool    `json:"underline,omitempty"`
	Strikethrough bool    `json:"strikethrough,omitempty"`
}

type mentionJSON struct {
	ID   flexString `json:"id"`
	Name string     `json:"name"`
}

// flexString accepts JSON strings and numbers.
type flexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *flexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// Encode serialises a document as a JSON array of block elements.
func (c *Codec) Encode(doc domain.Document) (string, error) {
	nodes := make([]node, 0, len(doc.Blocks))
	for _, b := range doc.Blocks {
		nodes = append(nodes, encodeBlock(b))
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(nodes); err != nil {
		return "", fmt.Errorf("encode canonical: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func encodeBlock(b domain.Block) node {
	n := node{Type: string(b.Kind), Indent: b.Indent}
	if b.Kind.IsList() {
		n.Indent = 0
		for _, item := range b.Items {
			n.Children = append(n.Children, encodeBlock(item))
		}
		return n
	}
	if b.Kind == domain.KindLink {
		n.URL = b.URL
	}
	n.Children = encodeRuns(b.Runs)
	return n
}

func encodeRuns(runs []domain.Run) []node {
	out := make([]node, 0, len(runs))
	for i := 0; i < len(runs); i++ {
		r := runs[i]
		switch {
		case r.Kind == domain.RunMention:
			empty := ""
			out = append(out, node{
				Type:     typeMention,
				Mention:  &mentionJSON{ID: flexString(r.Mention.ID), Name: r.Mention.Name},
				Children: []node{{Text: &empty}},
			})
		case r.IsLink():
			link := node{Type: typeLink, URL: r.URL}
			for ; i < len(runs) && runs[i].IsLink() && runs[i].URL == r.URL; i++ {
				link.Children = append(link.Children, leaf(runs[i]))
			}
			i--
			out = append(out, link)
		default:
			out = append(out, leaf(r))
		}
	}
	return out
}

func leaf(r domain.Run) node {
	text := r.Text
	return node{
		Text:          &text,
		Bold:          r.Marks.Bold,
		Italic:        r.Marks.Italic,
		Underline:     r.Marks.Underline,
		Strikethrough: r.Marks.Strikethrough,
	}
}

// Decode parses a JSON array of block elements. Elements without a type
// are paragraphs.
func (c *Codec) Decode(value string) (domain.Document, error) {
	trimmed := strings.TrimSpace(value)
	if !strings.HasPrefix(trimmed, "[") {
		return domain.Document{}, fmt.Errorf("%w: not a JSON array", domain.ErrNotCanonical)
	}
	var nodes []node
	if err := json.Unmarshal([]byte(trimmed), &nodes); err != nil {
		return domain.Document{}, fmt.Errorf("%w: %v", domain.ErrNotCanonical, err)
	}
	if len(nodes) == 0 {
		return domain.Document{}, fmt.Errorf("%w: no blocks", domain.ErrNotCanonical)
	}
	doc := domain.Document{Blocks: make([]domain.Block, 0, len(nodes))}
	for i, n := range nodes {
		b, err := decodeBlock(n)
		if err != nil {
			return domain.Document{}, fmt.Errorf("block %d: %w", i, err)
		}
		doc.Blocks = append(doc.Blocks, b)
	}
	doc = doc.Normalize()
	if err := doc.Validate(); err != nil {
		return domain.Document{}, fmt.Errorf("%w: %v", domain.ErrNotCanonical, err)
	}
	return doc, nil
}

func decodeBlock(n node) (domain.Block, error) {
	if n.Text != nil || n.Children == nil {
		return domain.Block{}, fmt.Errorf("%w: not a block element", domain.ErrNotCanonical)
	}
	kind := domain.BlockKind(n.Type)
	switch {
	case kind.IsList():
		b := domain.Block{Kind: kind}
		for _, child := range n.Children {
			item, err := decodeBlock(child)
			if err != nil {
				return domain.Block{}, err
			}
			if item.Kind != domain.KindListItem && !item.Kind.IsList() {
				item.Kind = domain.KindListItem
			}
			b.Items = append(b.Items, item)
		}
		return b, nil
	case kind == domain.KindLink || kind == domain.KindListItem:
	default:
		kind = domain.KindParagraph
	}
	runs, err := decodeRuns(n.Children, "")
	if err != nil {
		return domain.Block{}, err
	}
	return domain.Block{Kind: kind, Indent: n.Indent, URL: n.URL, Runs: runs}, nil
}

func decodeRuns(children []node, target string) ([]domain.Run, error) {
	var runs []domain.Run
	for _, child := range children {
		switch {
		case child.Text != nil:
			runs = append(runs, domain.Run{
				Kind: domain.RunText,
				Text: *child.Text,
				URL:  target,
				Marks: domain.Marks{
					Bold:          child.Bold,
					Italic:        child.Italic,
					Underline:     child.Underline,
					Strikethrough: child.Strikethrough,
				},
			})
		case child.Type == typeMention:
			if child.Mention == nil || child.Mention.ID == "" {
				return nil, fmt.Errorf("%w: mention without id", domain.ErrNotCanonical)
			}
			runs = append(runs, domain.MentionRun(domain.Mention{
				ID:   string(child.Mention.ID),
				Name: child.Mention.Name,
			}))
		case child.Type == typeLink:
			linked, err := decodeRuns(child.Children, child.URL)
			if err != nil {
				return nil, err
			}
			runs = append(runs, linked...)
		default:
			return nil, fmt.Errorf("%w: unexpected inline %q", domain.ErrNotCanonical, child.Type)
		}
	}
	return runs, nil
}
