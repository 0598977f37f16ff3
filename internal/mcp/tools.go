// ABOUTME: MCP tools for listing tags, tag listings and running builds.
// ABOUTME: Maps CLI functionality to MCP tool interface.

package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/harper/tagpages/internal/build"
	"github.com/harper/tagpages/internal/db"
	"github.com/harper/tagpages/internal/site"
	"github.com/harper/tagpages/internal/tagindex"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var errNoHistory = errors.New("build history is not available")

type postInfo struct {
	Path  string `json:"path"`
	Title string `json:"title"`
	Date  string `json:"date"`
}

type buildInfo struct {
	ID         string               `json:"id"`
	Production bool                 `json:"production"`
	Skipped    bool                 `json:"skipped"`
	Error      string               `json:"error,omitempty"`
	Written    []tagindex.Written   `json:"written"`
	Collisions []tagindex.Collision `json:"collisions,omitempty"`
}

type buildListItem struct {
	ID        string `json:"id"`
	StartedAt string `json:"started_at"`
	Skipped   bool   `json:"skipped"`
	Error     string `json:"error,omitempty"`
	Pages     int    `json:"pages"`
}

func (s *Server) registerTools() {
	// list_tags
	s.server.AddTool(&mcp.Tool{
		Name:        "list_tags",
		Description: "List every tag used by the site's posts with its slug and post count",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {}
		}`),
	}, s.handleListTags)

	// list_tag_posts
	s.server.AddTool(&mcp.Tool{
		Name:        "list_tag_posts",
		Description: "List the posts a tag page shows, matched on the exact tag string",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"tag": {"type": "string", "description": "Tag name as authored"}
			},
			"required": ["tag"]
		}`),
	}, s.handleListTagPosts)

	// build_tag_pages
	s.server.AddTool(&mcp.Tool{
		Name:        "build_tag_pages",
		Description: "Write tags/<slug>/index.md for every tag. Only runs for production builds.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"production": {"type": "boolean", "description": "Force a production build regardless of JEKYLL_ENV", "default": false}
			}
		}`),
	}, s.handleBuildTagPages)

	// list_builds
	s.server.AddTool(&mcp.Tool{
		Name:        "list_builds",
		Description: "List recent tag page builds",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"limit": {"type": "integer", "description": "Max results", "default": 10}
			}
		}`),
	}, s.handleListBuilds)
}

func decodeArgs(req *mcp.CallToolRequest, v any) error {
	if req.Params == nil || len(req.Params.Arguments) == 0 {
		return nil
	}
	return json.Unmarshal(req.Params.Arguments, v)
}

func textResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(data)},
		},
	}, nil
}

func errorResult(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf(format, args...)},
		},
		IsError: true,
	}
}

func (s *Server) handleListTags(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tags, err := s.listTags()
	if err != nil {
		return errorResult("failed to list tags: %v", err), nil
	}
	return textResult(tags)
}

func (s *Server) handleListTagPosts(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Tag string `json:"tag"`
	}
	if err := decodeArgs(req, &params); err != nil {
		return nil, err
	}
	if params.Tag == "" {
		return errorResult("tag is required"), nil
	}

	posts, err := s.listTagPosts(params.Tag)
	if err != nil {
		return errorResult("failed to list posts: %v", err), nil
	}
	return textResult(posts)
}

func (s *Server) handleBuildTagPages(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Production bool `json:"production"`
	}
	if err := decodeArgs(req, &params); err != nil {
		return nil, err
	}

	info, err := s.buildTagPages(params.Production)
	if err != nil {
		return errorResult("build failed: %v", err), nil
	}
	return textResult(info)
}

func (s *Server) handleListBuilds(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Limit int `json:"limit"`
	}
	params.Limit = 10 // default
	if err := decodeArgs(req, &params); err != nil {
		return nil, err
	}

	builds, err := s.listBuilds(params.Limit)
	if err != nil {
		return errorResult("failed to list builds: %v", err), nil
	}
	return textResult(builds)
}

func (s *Server) listTags() ([]tagindex.Summary, error) {
	posts, err := site.LoadPosts(s.cfg)
	if err != nil {
		return nil, err
	}
	return tagindex.Summarize(tagindex.GroupByTag(posts)), nil
}

func (s *Server) listTagPosts(tag string) ([]postInfo, error) {
	posts, err := site.LoadPosts(s.cfg)
	if err != nil {
		return nil, err
	}

	out := []postInfo{}
	for _, p := range site.PostsWithTag(posts, tag) {
		out = append(out, postInfo{
			Path:  p.Path,
			Title: p.Title,
			Date:  p.Date.Format("2006-01-02"),
		})
	}
	return out, nil
}

func (s *Server) buildTagPages(force bool) (*buildInfo, error) {
	res, err := build.Run(s.cfg, build.Options{
		Production: s.cfg.Production() || force,
		Logger:     s.logger,
		History:    s.history,
	})
	if err != nil {
		return nil, err
	}

	written := res.Report.Written
	if written == nil {
		written = []tagindex.Written{}
	}
	return &buildInfo{
		ID:         res.Record.ID.String(),
		Production: res.Record.Production,
		Skipped:    res.Report.Skipped,
		Written:    written,
		Collisions: res.Report.Collisions,
	}, nil
}

func (s *Server) listBuilds(limit int) ([]buildListItem, error) {
	if s.history == nil {
		return nil, errNoHistory
	}
	if limit <= 0 {
		limit = 10
	}

	builds, err := db.ListBuilds(s.history, limit)
	if err != nil {
		return nil, err
	}

	out := []buildListItem{}
	for _, b := range builds {
		out = append(out, buildListItem{
			ID:        b.Build.ID.String(),
			StartedAt: b.Build.StartedAt.Format("2006-01-02T15:04:05Z07:00"),
			Skipped:   b.Build.Skipped,
			Error:     b.Build.Error,
			Pages:     b.TagCount,
		})
	}
	return out, nil
}
