package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/composer/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for composer resources.
	uriScheme = "composer://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "drafts",
		Name:        "drafts",
		Description: "Saved message drafts, most recent first",
		MIMEType:    "application/json",
	}, s.handleDraftsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "drafts/{channel}",
		Name:        "channel-draft",
		Description: "The draft for a channel as plain text",
		MIMEType:    "text/plain",
	}, s.handleChannelDraftResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "members",
		Name:        "members",
		Description: "Members that can be mentioned",
		MIMEType:    "application/json",
	}, s.handleMembersResource)
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleDraftsResource lists drafts without their full values.
func (s *Server) handleDraftsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	type draftInfo struct {
		ID        string `json:"id"`
		Channel   string `json:"channel"`
		Preview   string `json:"preview"`
		UpdatedAt string `json:"updated_at"`
	}

	if s.ports.Drafts == nil {
		return jsonResult(req.Params.URI, []draftInfo{})
	}

	drafts, err := s.ports.Drafts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing drafts: %w", err)
	}

	infos := make([]draftInfo, len(drafts))
	for i := range drafts {
		infos[i] = draftInfo{
			ID:        drafts[i].ID,
			Channel:   drafts[i].Channel,
			Preview:   drafts[i].Preview,
			UpdatedAt: drafts[i].UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		}
	}
	return jsonResult(req.Params.URI, infos)
}

// handleChannelDraftResource returns a channel's draft as plain text.
func (s *Server) handleChannelDraftResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Drafts == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	channel := extractChannel(req.Params.URI)
	if channel == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	d, err := s.ports.Drafts.ForChannel(ctx, channel)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting draft: %w", err)
	}

	text, err := s.ports.Conversion.Convert(d.Value, domain.FormatPlain)
	if err != nil {
		return nil, fmt.Errorf("converting draft: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     text,
		}},
	}, nil
}

// handleMembersResource lists the mention directory.
func (s *Server) handleMembersResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Directory == nil {
		return jsonResult(req.Params.URI, []MentionOutput{})
	}

	members, err := s.ports.Directory.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing members: %w", err)
	}
	return jsonResult(req.Params.URI, mentionOutputs(members))
}

// extractChannel extracts the channel from a URI like composer://drafts/{channel}.
func extractChannel(uri string) string {
	const prefix = uriScheme + "drafts/"

	channel, ok := strings.CutPrefix(uri, prefix)
	if !ok || strings.Contains(channel, "/") {
		return ""
	}
	return channel
}
