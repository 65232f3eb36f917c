package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/composer/internal/core/domain"
)

// ConvertInput is the input schema for the convert_message tool.
type ConvertInput struct {
	Value string `json:"value" jsonschema:"the stored message value: canonical JSON, legacy markup or plain text"`
	To    string `json:"to,omitempty" jsonschema:"target format: canonical, markup or plain (default plain)"`
}

// ConvertOutput is the output schema for the convert_message tool.
type ConvertOutput struct {
	Output     string          `json:"output"`
	From       string          `json:"from"`
	To         string          `json:"to"`
	Mentions   []MentionOutput `json:"mentions,omitempty"`
	BlockCount int             `json:"block_count"`
}

// MentionsInput is the input schema for the list_mentions tool.
type MentionsInput struct {
	Value string `json:"value" jsonschema:"the stored message value"`
}

// MentionsOutput is the output schema for the list_mentions tool.
type MentionsOutput struct {
	Mentions []MentionOutput `json:"mentions"`
	Count    int             `json:"count"`
}

// MembersInput is the input schema for the search_members tool.
type MembersInput struct {
	Prefix string `json:"prefix,omitempty" jsonschema:"name prefix to match, with or without a leading @"`
}

// MembersOutput is the output schema for the search_members tool.
type MembersOutput struct {
	Members []MentionOutput `json:"members"`
	Count   int             `json:"count"`
}

// MentionOutput represents a referenced or matching member.
type MentionOutput struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func mentionOutputs(mentions []domain.Mention) []MentionOutput {
	out := make([]MentionOutput, len(mentions))
	for i, m := range mentions {
		out[i] = MentionOutput{ID: m.ID, Name: m.Name}
	}
	return out
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "convert_message",
		Description: "Convert a stored chat message between canonical JSON, legacy markup and plain text",
	}, s.handleConvert)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_mentions",
		Description: "List the members mentioned in a stored chat message",
	}, s.handleListMentions)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_members",
		Description: "Find directory members that can be mentioned, by name prefix",
	}, s.handleSearchMembers)
}

// handleConvert handles the convert_message tool invocation.
func (s *Server) handleConvert(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ConvertInput,
) (*mcp.CallToolResult, ConvertOutput, error) {
	to := domain.FormatPlain
	if input.To != "" {
		f, err := domain.ParseFormat(input.To)
		if err != nil {
			return nil, ConvertOutput{}, err
		}
		to = f
	}

	doc := s.ports.Conversion.Load(input.Value)
	out, err := s.ports.Conversion.Encode(doc, to)
	if err != nil {
		return nil, ConvertOutput{}, fmt.Errorf("encoding %s: %w", to, err)
	}

	return nil, ConvertOutput{
		Output:     out,
		From:       string(s.ports.Conversion.Detect(input.Value)),
		To:         string(to),
		Mentions:   mentionOutputs(doc.Mentions()),
		BlockCount: len(doc.Blocks),
	}, nil
}

// handleListMentions handles the list_mentions tool invocation.
func (s *Server) handleListMentions(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input MentionsInput,
) (*mcp.CallToolResult, MentionsOutput, error) {
	mentions := s.ports.Conversion.Load(input.Value).Mentions()
	return nil, MentionsOutput{
		Mentions: mentionOutputs(mentions),
		Count:    len(mentions),
	}, nil
}

// handleSearchMembers handles the search_members tool invocation.
func (s *Server) handleSearchMembers(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input MembersInput,
) (*mcp.CallToolResult, MembersOutput, error) {
	if s.ports.Directory == nil {
		return nil, MembersOutput{}, ErrMissingDirectoryService
	}

	members, err := s.ports.Directory.Search(ctx, input.Prefix)
	if err != nil {
		return nil, MembersOutput{}, fmt.Errorf("searching members: %w", err)
	}

	return nil, MembersOutput{
		Members: mentionOutputs(members),
		Count:   len(members),
	}, nil
}
