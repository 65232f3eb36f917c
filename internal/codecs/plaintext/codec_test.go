package plaintext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/composer/internal/core/domain"
)

func TestCodec_Encode(t *testing.T) {
	doc := domain.NewDocument(
		domain.Paragraph(domain.MarkedRun("hi ", domain.Marks{Bold: true}), domain.MentionRun(domain.Mention{ID: "1", Name: "ann"})),
		domain.List(domain.KindBulletedList, domain.ListItem(domain.TextRun("a")), domain.ListItem(domain.TextRun("b"))),
		domain.Paragraph(),
	)

	out, err := New().Encode(doc)

	require.NoError(t, err)
	assert.Equal(t, "hi @ann\nab\n", out)
}

func TestCodec_Decode(t *testing.T) {
	doc, err := New().Decode("<b>not parsed</b>\nsecond line")

	require.NoError(t, err)
	assert.Equal(t, domain.NewDocument(domain.Paragraph(domain.TextRun("<b>not parsed</b>\nsecond line"))), doc)
	assert.Equal(t, domain.FormatPlain, New().Format())
	assert.Less(t, New().Priority(), 10)
}
