package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/composer/internal/core/domain"
)

func readRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: uri}}
}

func TestExtractChannel(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{"valid channel URI", "composer://drafts/general", "general"},
		{"invalid prefix", "file://drafts/general", ""},
		{"nested path", "composer://drafts/a/b", ""},
		{"missing channel", "composer://drafts/", ""},
		{"empty URI", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractChannel(tt.uri))
		})
	}
}

func TestServer_handleDraftsResource(t *testing.T) {
	ctx := context.Background()
	server, ports := newTestServer(t)
	_, err := ports.Drafts.Save(ctx, "general", "<p>draft <i>one</i></p>")
	require.NoError(t, err)

	res, err := server.handleDraftsResource(ctx, readRequest("composer://drafts"))
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)

	var drafts []map[string]string
	require.NoError(t, json.Unmarshal([]byte(res.Contents[0].Text), &drafts))
	require.Len(t, drafts, 1)
	assert.Equal(t, "general", drafts[0]["channel"])
	assert.Equal(t, "draft one", drafts[0]["preview"])
}

func TestServer_handleDraftsResource_NoService(t *testing.T) {
	server, ports := newTestServer(t)
	ports.Drafts = nil

	res, err := server.handleDraftsResource(context.Background(), readRequest("composer://drafts"))

	require.NoError(t, err)
	assert.Equal(t, "[]", res.Contents[0].Text)
}

func TestServer_handleDraftsResource_Error(t *testing.T) {
	server, ports := newTestServer(t)
	ports.Drafts = &mockDraftService{err: errors.New("db locked")}

	_, err := server.handleDraftsResource(context.Background(), readRequest("composer://drafts"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "db locked")
}

func TestServer_handleChannelDraftResource(t *testing.T) {
	ctx := context.Background()
	server, ports := newTestServer(t)
	_, err := ports.Drafts.Save(ctx, "general", "<ul><li>a</li><li>b</li></ul>")
	require.NoError(t, err)

	t.Run("existing draft", func(t *testing.T) {
		res, err := server.handleChannelDraftResource(ctx, readRequest("composer://drafts/general"))

		require.NoError(t, err)
		assert.Equal(t, "text/plain", res.Contents[0].MIMEType)
		assert.Equal(t, "ab", res.Contents[0].Text)
	})

	t.Run("missing draft", func(t *testing.T) {
		_, err := server.handleChannelDraftResource(ctx, readRequest("composer://drafts/random"))

		assert.Error(t, err)
	})

	t.Run("bad uri", func(t *testing.T) {
		_, err := server.handleChannelDraftResource(ctx, readRequest("composer://drafts/"))

		assert.Error(t, err)
	})
}

func TestServer_handleMembersResource(t *testing.T) {
	server, _ := newTestServer(t, domain.Mention{ID: "u1", Name: "Ada"})

	res, err := server.handleMembersResource(context.Background(), readRequest("composer://members"))

	require.NoError(t, err)
	assert.Contains(t, res.Contents[0].Text, `"name": "Ada"`)
}
