package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/composer/internal/core/domain"
)

func TestConversionService_Formats_PriorityOrder(t *testing.T) {
	service := newConversion()

	assert.Equal(t, []domain.Format{
		domain.FormatCanonical,
		domain.FormatMarkup,
		domain.FormatPlain,
	}, service.Formats())
}

func TestConversionService_Register_Replaces(t *testing.T) {
	service := newConversion()
	service.Register(newConversion().codecs[0])

	assert.Len(t, service.Formats(), 3)
}

func TestConversionService_Load_Precedence(t *testing.T) {
	service := newConversion()
	canonicalValue, err := service.Encode(domain.NewDocument(domain.Paragraph(domain.TextRun("json"))), domain.FormatCanonical)
	require.NoError(t, err)

	tests := []struct {
		name   string
		value  string
		format domain.Format
		want   domain.Document
	}{
		{
			name:   "canonical",
			value:  canonicalValue,
			format: domain.FormatCanonical,
			want:   domain.NewDocument(domain.Paragraph(domain.TextRun("json"))),
		},
		{
			name:   "markup",
			value:  "<p>hi</p>",
			format: domain.FormatMarkup,
			want:   domain.NewDocument(domain.Paragraph(domain.TextRun("hi"))),
		},
		{
			name:   "raw text",
			value:  "just words",
			format: domain.FormatPlain,
			want:   domain.NewDocument(domain.Paragraph(domain.TextRun("just words"))),
		},
		{
			name:   "broken json falls through",
			value:  `[{"type":`,
			format: domain.FormatPlain,
			want:   domain.NewDocument(domain.Paragraph(domain.TextRun(`[{"type":`))),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, service.Load(tt.value))
			assert.Equal(t, tt.format, service.Detect(tt.value))
		})
	}
}

func TestConversionService_Load_EmptyRegistry(t *testing.T) {
	service := NewConversionService()

	doc := service.Load("text")

	assert.Equal(t, domain.NewDocument(domain.Paragraph(domain.TextRun("text"))), doc)
	assert.Equal(t, domain.FormatPlain, service.Detect("text"))
}

func TestConversionService_Encode_Unsupported(t *testing.T) {
	service := NewConversionService()

	_, err := service.Encode(domain.EmptyDocument(), domain.FormatMarkup)

	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestConversionService_Convert(t *testing.T) {
	service := newConversion()

	out, err := service.Convert("<ul><li>a</li><li>b</li></ul><p>c</p>", domain.FormatPlain)

	require.NoError(t, err)
	assert.Equal(t, "ab\nc", out)
}

func TestConversionService_Save_ByMode(t *testing.T) {
	service := newConversion()
	doc := domain.NewDocument(domain.Paragraph(domain.MarkedRun("bold", domain.Marks{Bold: true})))

	plain, err := service.Save(doc, domain.ModePlain)
	require.NoError(t, err)
	assert.Equal(t, "bold", plain)

	rich, err := service.Save(doc, domain.ModeRich)
	require.NoError(t, err)
	assert.Equal(t, doc, service.Load(rich))
	assert.Equal(t, domain.FormatCanonical, service.Detect(rich))
}
