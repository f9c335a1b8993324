// Package mcp exposes the confirm tool over the Model Context Protocol.
package mcp

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/zoonderkins/claude-confirm/version"
)

// ServerName is advertised to clients on initialize
const ServerName = "claude-confirm"

// Server wraps the MCP server and the confirmation service
type Server struct {
	confirmer Confirmer
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates an MCP server with the confirm tool registered
func NewServer(confirmer Confirmer, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	mcpServer := server.NewMCPServer(
		ServerName,
		version.Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(ServerInstructions),
	)

	s := &Server{
		confirmer: confirmer,
		logger:    logger,
		mcpServer: mcpServer,
	}

	mcpServer.AddTool(confirmTool(), s.handleConfirm)

	return s
}

// MCPServer returns the underlying mcp-go server
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// Serve speaks MCP over in/out until in reaches EOF or ctx is cancelled.
// Diagnostics go to the logger, never to out.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcpServer)
	stdio.SetErrorLogger(slog.NewLogLogger(s.logger.Handler(), slog.LevelError))

	s.logger.Info("serving MCP over stdio", "server", ServerName, "version", version.Version)

	err := stdio.Listen(ctx, in, out)
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, io.EOF) {
		return err
	}

	s.logger.Info("MCP server stopped")
	return nil
}
