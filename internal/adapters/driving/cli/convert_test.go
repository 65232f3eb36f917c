package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertCmd_Use(t *testing.T) {
	assert.Equal(t, "convert [value]", convertCmd.Use)
}

func TestConvertCmd_DefaultsToPlain(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("", "convert", "<p>hello <b>world</b></p>")

	require.NoError(t, err)
	assert.Equal(t, "hello world\n", out)
}

func TestConvertCmd_ReadsStdin(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("plain *text*\n", "convert", "--to", "markup")

	require.NoError(t, err)
	assert.Equal(t, "<p>plain *text*</p>\n", out)
}

func TestConvertCmd_Detect(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	tests := []struct {
		value    string
		expected string
	}{
		{`[{"type":"paragraph","children":[{"text":"x"}]}]`, "canonical"},
		{"<p>x</p>", "markup"},
		{"just text", "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			out, err := execute("", "convert", "--detect", tt.value)

			require.NoError(t, err)
			assert.Equal(t, tt.expected+"\n", out)
		})
	}
}

func TestConvertCmd_UnknownFormat(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("", "convert", "--to", "rtf", "x")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "rtf")
}

func TestConvertCmd_Copy(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("", "convert", "--copy", "<p>a<br>b</p>")
	require.NoError(t, err)

	copied, err := ts.clipboard.ReadText()
	require.NoError(t, err)
	assert.Equal(t, "a\nb", copied)
}

func TestConvertCmd_NotConfigured(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	SetServices(Services{})

	_, err := execute("", "convert", "x")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
