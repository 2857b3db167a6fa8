package server

import (
	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"holster-go/internal/config"
)

// Serve runs the stdio MCP server until the client closes the stream.
func Serve(store *config.Store, logger *zap.Logger, version string) error {
	mcpServer := mcpserver.NewMCPServer("holster", version,
		mcpserver.WithToolCapabilities(false),
	)

	RegisterTools(mcpServer, store, logger)

	logger.Info("serving MCP over stdio",
		zap.String("config", store.Path()),
		zap.String("version", version))

	return mcpserver.ServeStdio(mcpServer)
}
