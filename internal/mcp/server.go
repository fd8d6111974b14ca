package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/winsnap/internal/ipc"
)

const (
	ServerName    = "winsnap"
	ServerVersion = "0.1.0"
)

// DaemonClient is the subset of the IPC client the tools call.
type DaemonClient interface {
	Snap(action string) (*ipc.SnapData, error)
	GetStatus() (*ipc.StatusData, error)
	GetDisplays() (*ipc.DisplaysData, error)
}

// Server exposes the running daemon to MCP clients.
type Server struct {
	mcpServer *mcpsdk.Server
	client    DaemonClient
}

// NewServer creates an MCP server that forwards tool calls to the daemon.
func NewServer(client DaemonClient) *Server {
	s := &Server{client: client}
	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)
	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}
