package domain

// Mark is a character-level formatting flag.
type Mark string

// Available marks.
const (
	MarkBold          Mark = "bold"
	MarkItalic        Mark = "italic"
	MarkUnderline     Mark = "underline"
	MarkStrikethrough Mark = "strikethrough"
)

// AllMarks returns the fixed mark set in display order.
func AllMarks() []Mark {
	return []Mark{MarkBold, MarkItalic, MarkUnderline, MarkStrikethrough}
}

// IsValid returns true if the mark is recognised.
func (m Mark) IsValid() bool {
	switch m {
	case MarkBold, MarkItalic, MarkUnderline, MarkStrikethrough:
		return true
	default:
		return false
	}
}

// Marks is the set of marks applied to a text run.
type Marks struct {
	Bold          bool
	Italic        bool
	Underline     bool
	Strikethrough bool
}

// Has reports whether mark is set.
func (m Marks) Has(mark Mark) bool {
	switch mark {
	case MarkBold:
		return m.Bold
	case MarkItalic:
		return m.Italic
	case MarkUnderline:
		return m.Underline
	case MarkStrikethrough:
		return m.Strikethrough
	default:
		return false
	}
}

// With returns a copy of m with mark set to on.
func (m Marks) With(mark Mark, on bool) Marks {
	switch mark {
	case MarkBold:
		m.Bold = on
	case MarkItalic:
		m.Italic = on
	case MarkUnderline:
		m.Underline = on
	case MarkStrikethrough:
		m.Strikethrough = on
	}
	return m
}

// Intersect returns the marks set in both m and o.
func (m Marks) Intersect(o Marks) Marks {
	return Marks{
		Bold:          m.Bold && o.Bold,
		Italic:        m.Italic && o.Italic,
		Underline:     m.Underline && o.Underline,
		Strikethrough: m.Strikethrough && o.Strikethrough,
	}
}

// IsZero returns true when no mark is set.
func (m Marks) IsZero() bool {
	return m == Marks{}
}

// Mention identifies a directory member that can be referenced inline.
type Mention struct {
	ID   string
	Name string
}

// RunKind distinguishes text runs from mention tokens.
type RunKind uint8

const (
	// RunText is a run of marked text, optionally linked.
	RunText RunKind = iota

	// RunMention is an atomic reference to a directory member.
	RunMention
)

// Run is an inline segment of a leaf block.
type Run struct {
	Kind RunKind

	// Text is the content of a text run.
	Text string

	// Marks applies to text runs only.
	Marks Marks

	// URL makes a text run a link run.
	URL string

	// Mention is set for mention tokens.
	Mention Mention
}

// TextRun creates an unmarked text run.
func TextRun(text string) Run {
	return Run{Kind: RunText, Text: text}
}

// MarkedRun creates a text run with marks.
func MarkedRun(text string, marks Marks) Run {
	return Run{Kind: RunText, Text: text, Marks: marks}
}

// LinkRun creates a text run linking to url.
func LinkRun(text, url string) Run {
	return Run{Kind: RunText, Text: text, URL: url}
}

// MentionRun creates a mention token.
func MentionRun(m Mention) Run {
	return Run{Kind: RunMention, Mention: m}
}

// Len returns the run length in offset units.
// A mention token occupies exactly one unit.
func (r Run) Len() int {
	if r.Kind == RunMention {
		return 1
	}
	return runeLen(r.Text)
}

// IsLink returns true for text runs carrying a URL.
func (r Run) IsLink() bool {
	return r.Kind == RunText && r.URL != ""
}

// PlainText returns the run's text; mentions render as @name.
func (r Run) PlainText() string {
	if r.Kind == RunMention {
		return "@" + r.Mention.Name
	}
	return r.Text
}

func (r Run) sameStyle(o Run) bool {
	return o.Kind == RunText && r.Marks == o.Marks && r.URL == o.URL
}
