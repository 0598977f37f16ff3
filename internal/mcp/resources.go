// ABOUTME: MCP resources exposing generated tag page descriptors.
// ABOUTME: Allows AI agents to read tags/<slug>/index.md via URI scheme.

package mcp

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/harper/tagpages/internal/models"
	"github.com/harper/tagpages/internal/tagindex"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const tagURIPrefix = "tagpages://tag/"

func (s *Server) registerResources() {
	s.server.AddResourceTemplate(
		&mcp.ResourceTemplate{
			URITemplate: tagURIPrefix + "{slug}",
			Name:        "Tag page",
			Description: "Generated tag page descriptor by slug",
			MIMEType:    "text/markdown",
		},
		s.handleReadResource,
	)
}

func (s *Server) handleReadResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	content, err := s.readDescriptor(req.Params.URI)
	if err != nil {
		return nil, err
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      req.Params.URI,
				MIMEType: "text/markdown",
				Text:     content,
			},
		},
	}, nil
}

// readDescriptor loads the descriptor for a tagpages://tag/{slug} URI.
func (s *Server) readDescriptor(uri string) (string, error) {
	slug, ok := strings.CutPrefix(uri, tagURIPrefix)
	if !ok || slug == "" || slug != models.Slugify(slug) {
		return "", fmt.Errorf("invalid resource URI: %s", uri)
	}

	data, err := os.ReadFile(tagindex.DescriptorPath(s.cfg.Source, slug)) //nolint:gosec // Slug is validated above
	if os.IsNotExist(err) {
		return "", mcp.ResourceNotFoundError(uri)
	}
	if err != nil {
		return "", fmt.Errorf("read tag page: %w", err)
	}

	// Tag names are written verbatim, so the page need not be valid YAML.
	if _, err := models.ParseTagIndex(data); err != nil {
		return "", fmt.Errorf("invalid tag page %s: %w", slug, err)
	}
	return string(data), nil
}
