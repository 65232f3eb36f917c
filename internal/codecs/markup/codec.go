package markup

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/custodia-labs/composer/internal/core/domain"
	"github.com/custodia-labs/composer/internal/core/ports/driven"
)

// Ensure Codec implements the interface.
var _ driven.Codec = (*Codec)(nil)

const indentAttr = "data-indent"

// Codec handles legacy markup.
type Codec struct{}

// New creates a new markup codec.
func New() *Codec {
	return &Codec{}
}

// Format returns the representation this codec handles.
func (c *Codec) Format() domain.Format {
	return domain.FormatMarkup
}

// Priority returns the load precedence.
func (c *Codec) Priority() int {
	return 50 // After canonical, before the raw fallback
}

// Encode renders a document as markup.
func (c *Codec) Encode(doc domain.Document) (string, error) {
	var sb strings.Builder
	for _, b := range doc.Blocks {
		switch b.Kind {
		case domain.KindBulletedList, domain.KindNumberedList:
			tag := "ul"
			if b.Kind == domain.KindNumberedList {
				tag = "ol"
			}
			sb.WriteString("<" + tag + ">")
			for _, item := range b.Items {
				sb.WriteString("<li" + indent(item.Indent) + ">")
				writeRuns(&sb, item.Runs)
				sb.WriteString("</li>")
			}
			sb.WriteString("</" + tag + ">")
		case domain.KindLink:
			sb.WriteString("<p" + indent(b.Indent) + `><a href="` + html.EscapeString(b.URL) + `">`)
			writeRuns(&sb, b.Runs)
			sb.WriteString("</a></p>")
		default:
			sb.WriteString("<p" + indent(b.Indent) + ">")
			writeRuns(&sb, b.Runs)
			sb.WriteString("</p>")
		}
	}
	return sb.String(), nil
}

func indent(n int) string {
	if n == 0 {
		return ""
	}
	return fmt.Sprintf(` %s="%d"`, indentAttr, n)
}

func writeRuns(sb *strings.Builder, runs []domain.Run) {
	for i := 0; i < len(runs); i++ {
		r := runs[i]
		if r.IsLink() {
			sb.WriteString(`<a href="` + html.EscapeString(r.URL) + `">`)
			for ; i < len(runs) && runs[i].IsLink() && runs[i].URL == r.URL; i++ {
				writeText(sb, runs[i])
			}
			i--
			sb.WriteString("</a>")
			continue
		}
		writeText(sb, r)
	}
}

var markTags = []struct {
	mark domain.Mark
	tag  string
}{
	{domain.MarkBold, "strong"},
	{domain.MarkItalic, "em"},
	{domain.MarkUnderline, "u"},
	{domain.MarkStrikethrough, "s"},
}

func writeText(sb *strings.Builder, r domain.Run) {
	if r.Kind == domain.RunMention {
		sb.WriteString(html.EscapeString("@" + r.Mention.Name))
		return
	}
	if r.Text == "" {
		return
	}
	for _, mt := range markTags {
		if r.Marks.Has(mt.mark) {
			sb.WriteString("<" + mt.tag + ">")
		}
	}
	sb.WriteString(html.EscapeString(r.Text))
	for i := len(markTags) - 1; i >= 0; i-- {
		if r.Marks.Has(markTags[i].mark) {
			sb.WriteString("</" + markTags[i].tag + ">")
		}
	}
}

// Decode parses markup. Input without any recognised element is rejected
// with domain.ErrNotMarkup so callers can fall back to raw text.
func (c *Codec) Decode(value string) (domain.Document, error) {
	body := &xhtml.Node{Type: xhtml.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := xhtml.ParseFragment(strings.NewReader(value), body)
	if err != nil {
		return domain.Document{}, fmt.Errorf("%w: %v", domain.ErrNotMarkup, err)
	}
	d := &decoder{}
	for _, n := range nodes {
		d.block(n)
	}
	d.flush()
	if !d.recognised {
		return domain.Document{}, domain.ErrNotMarkup
	}
	doc := domain.Document{Blocks: d.blocks}.Normalize()
	return doc, nil
}

// decoder walks the parsed fragment, collecting inline content into the
// current leaf and closing it at block boundaries.
type decoder struct {
	blocks     []domain.Block
	runs       []domain.Run
	indent     int
	recognised bool
}

func (d *decoder) flush() {
	if len(d.runs) == 0 {
		return
	}
	d.blocks = append(d.blocks, domain.Block{Kind: domain.KindParagraph, Indent: d.indent, Runs: d.runs})
	d.runs = nil
	d.indent = 0
}

func (d *decoder) block(n *xhtml.Node) {
	switch n.Type {
	case xhtml.TextNode:
		if strings.TrimSpace(n.Data) == "" && len(d.runs) == 0 {
			return
		}
		d.inline(n, style{})
		return
	case xhtml.ElementNode:
	default:
		return
	}
	switch n.DataAtom {
	case atom.P, atom.Div, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6, atom.Blockquote, atom.Pre:
		d.recognised = true
		d.flush()
		d.indent = indentOf(n)
		for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
			d.inline(ch, style{})
		}
		d.emitParagraph()
	case atom.Ul, atom.Ol:
		d.recognised = true
		d.flush()
		kind := domain.KindBulletedList
		if n.DataAtom == atom.Ol {
			kind = domain.KindNumberedList
		}
		list := domain.List(kind)
		collectItems(n, 0, &list.Items)
		if len(list.Items) > 0 {
			d.blocks = append(d.blocks, list)
		}
	case atom.Br:
		d.recognised = true
		d.emitParagraph()
	default:
		d.inline(n, style{})
	}
}

// emitParagraph closes the current paragraph even when it is empty.
func (d *decoder) emitParagraph() {
	d.blocks = append(d.blocks, domain.Block{Kind: domain.KindParagraph, Indent: d.indent, Runs: d.runs})
	d.runs = nil
	d.indent = 0
}

// collectItems flattens nested lists into items with increasing indent.
func collectItems(list *xhtml.Node, depth int, items *[]domain.Block) {
	for li := list.FirstChild; li != nil; li = li.NextSibling {
		if li.Type != xhtml.ElementNode || li.DataAtom != atom.Li {
			continue
		}
		var inner decoder
		var nested []*xhtml.Node
		for ch := li.FirstChild; ch != nil; ch = ch.NextSibling {
			if ch.Type == xhtml.ElementNode && (ch.DataAtom == atom.Ul || ch.DataAtom == atom.Ol) {
				nested = append(nested, ch)
				continue
			}
			inner.inline(ch, style{})
		}
		*items = append(*items, domain.Block{
			Kind:   domain.KindListItem,
			Indent: depth + indentOf(li),
			Runs:   inner.runs,
		})
		for _, sub := range nested {
			collectItems(sub, depth+1, items)
		}
	}
}

func indentOf(n *xhtml.Node) int {
	for _, a := range n.Attr {
		if a.Key == indentAttr {
			if v, err := strconv.Atoi(a.Val); err == nil {
				return v
			}
		}
	}
	return 0
}

type style struct {
	marks domain.Marks
	url   string
}

func (d *decoder) inline(n *xhtml.Node, st style) {
	switch n.Type {
	case xhtml.TextNode:
		d.runs = append(d.runs, domain.Run{Kind: domain.RunText, Text: n.Data, Marks: st.marks, URL: st.url})
		return
	case xhtml.ElementNode:
	default:
		return
	}
	switch n.DataAtom {
	case atom.Strong, atom.B:
		st.marks.Bold = true
	case atom.Em, atom.I:
		st.marks.Italic = true
	case atom.U, atom.Ins:
		st.marks.Underline = true
	case atom.S, atom.Strike, atom.Del:
		st.marks.Strikethrough = true
	case atom.A:
		for _, a := range n.Attr {
			if a.Key == "href" {
				st.url = a.Val
			}
		}
	case atom.Br:
		d.recognised = true
		d.emitParagraph()
		return
	case atom.Script, atom.Style:
		return
	}
	if markupAtom(n.DataAtom) {
		d.recognised = true
	}
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		d.inline(ch, st)
	}
}

func markupAtom(a atom.Atom) bool {
	switch a {
	case atom.Strong, atom.B, atom.Em, atom.I, atom.U, atom.Ins, atom.S, atom.Strike, atom.Del, atom.A, atom.Span:
		return true
	default:
		return false
	}
}
