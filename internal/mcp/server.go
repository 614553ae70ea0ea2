// ABOUTME: MCP server initialization and configuration
// ABOUTME: Exposes the trip store to AI agents over stdio

package mcp

import (
	"context"
	"fmt"

	"github.com/dmarchetti/viaggio/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps an MCP server over the trip store.
type Server struct {
	mcp   *mcp.Server
	store storage.Repository
}

// NewServer creates an MCP server with all trip tools registered.
func NewServer(store storage.Repository) (*Server, error) {
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "viaggio",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcp:   mcpServer,
		store: store,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server in stdio mode.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}
