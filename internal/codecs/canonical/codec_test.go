package canonical

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/composer/internal/core/domain"
	"github.com/custodia-labs/composer/internal/core/editor"
)

func TestCodec_Metadata(t *testing.T) {
	c := New()

	assert.Equal(t, domain.FormatCanonical, c.Format())
	assert.Equal(t, 100, c.Priority())
}

func TestCodec_Encode(t *testing.T) {
	doc := domain.NewDocument(
		domain.Paragraph(
			domain.MarkedRun("hi ", domain.Marks{Bold: true}),
			domain.MentionRun(domain.Mention{ID: "u2", Name: "bob"}),
			domain.LinkRun("x", "https://x.io"),
		),
	)

	out, err := New().Encode(doc)

	require.NoError(t, err)
	assert.JSONEq(t, `[{"type":"paragraph","children":[
		{"text":"hi ","bold":true},
		{"type":"mention","mention":{"id":"u2","name":"bob"},"children":[{"text":""}]},
		{"type":"link","url":"https://x.io","children":[{"text":"x"}]}
	]}]`, out)
}

func TestCodec_Decode_LegacyShapes(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  domain.Document
	}{
		{
			name:  "untyped element is a paragraph",
			value: `[{"children":[{"text":"hello"}]}]`,
			want:  domain.NewDocument(domain.Paragraph(domain.TextRun("hello"))),
		},
		{
			name:  "numeric mention id",
			value: `[{"type":"paragraph","children":[{"text":""},{"type":"mention","mention":{"id":42,"name":"ann"},"children":[{"text":""}]},{"text":""}]}]`,
			want:  domain.NewDocument(domain.Paragraph(domain.MentionRun(domain.Mention{ID: "42", Name: "ann"}))),
		},
		{
			name:  "list with indented item",
			value: `[{"type":"numbered-list","children":[{"type":"list-item","indent":2,"children":[{"text":"a","italic":true}]}]}]`,
			want: domain.NewDocument(domain.List(domain.KindNumberedList, domain.Block{
				Kind: domain.KindListItem, Indent: 2, Runs: []domain.Run{domain.MarkedRun("a", domain.Marks{Italic: true})},
			})),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := New().Decode(tt.value)

			require.NoError(t, err)
			assert.Equal(t, tt.want, doc)
		})
	}
}

func TestCodec_Decode_Rejects(t *testing.T) {
	inputs := []string{
		"",
		"hello",
		"<p>hi</p>",
		"[]",
		"[1, 2]",
		`{"type":"paragraph"}`,
		`[{"text":"leaf at top"}]`,
		`[{"type":"paragraph"}]`,
		`[{"type":"paragraph","children":[{"type":"table"}]}]`,
		`[{"type":"paragraph","children":[{"type":"mention","children":[]}]}]`,
		`[{"type":"paragraph","children":[`,
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_, err := New().Decode(in)

			assert.ErrorIs(t, err, domain.ErrNotCanonical)
		})
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	st := editor.NewState(domain.EmptyDocument())
	for _, p := range []editor.Pass{
		editor.Insert("intro "),
		editor.Mark(domain.MarkBold),
		editor.Insert("loud"),
		func(s editor.State) editor.State { return editor.Paste(s, "https://example.com") },
		editor.Insert("\nfirst"),
		editor.ListOf(domain.KindBulletedList),
		editor.Insert("\nsecond"),
		editor.IndentList,
		func(s editor.State) editor.State {
			return editor.InsertMention(s, s.Selection.Range(), domain.Mention{ID: "u1", Name: "ann"})
		},
		editor.Insert("\n"),
		editor.OutdentList,
		editor.OutdentList,
		editor.Mark(domain.MarkStrikethrough),
		editor.Insert("<tail> & \"quotes\""),
	} {
		st = p(st)
		require.NoError(t, st.Doc.Validate())

		encoded, err := New().Encode(st.Doc)
		require.NoError(t, err)
		decoded, err := New().Decode(encoded)
		require.NoError(t, err)
		assert.Equal(t, st.Doc, decoded)
	}
}

func TestCodec_RoundTrip_LinkBlock(t *testing.T) {
	doc := domain.NewDocument(
		domain.Block{Kind: domain.KindLink, URL: "https://x.io", Indent: 3, Runs: []domain.Run{domain.TextRun("x")}},
		domain.Paragraph(domain.MarkedRun("", domain.Marks{Underline: true})),
	)

	encoded, err := New().Encode(doc)
	require.NoError(t, err)
	decoded, err := New().Decode(encoded)

	require.NoError(t, err)
	assert.Equal(t, doc, decoded)
}
