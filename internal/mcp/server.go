// ABOUTME: MCP server exposing tag pages to AI agents.
// ABOUTME: Provides tools and resources over the site's tags and builds.

package mcp

import (
	"context"
	"database/sql"

	"github.com/charmbracelet/log"
	"github.com/harper/tagpages/internal/logging"
	"github.com/harper/tagpages/internal/site"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type Server struct {
	server  *mcp.Server
	cfg     *site.Config
	history *sql.DB
	logger  *log.Logger
}

// NewServer builds a server for the site in cfg. history may be nil, in
// which case builds are not recorded and list_builds reports an error.
func NewServer(cfg *site.Config, history *sql.DB, logger *log.Logger) *Server {
	if logger == nil {
		logger = logging.Discard()
	}
	s := &Server{cfg: cfg, history: history, logger: logger}

	s.server = mcp.NewServer(
		&mcp.Implementation{
			Name:    "tagpages",
			Version: "1.0.0",
		},
		&mcp.ServerOptions{
			HasTools:     true,
			HasResources: true,
		},
	)

	s.registerTools()
	s.registerResources()

	return s
}

func (s *Server) Serve(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
