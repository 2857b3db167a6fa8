package server

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"holster-go/internal/config"
)

// RegisterTools registers the management tools with an MCP server.
func RegisterTools(mcpServer *mcpserver.MCPServer, store *config.Store, logger *zap.Logger) *ToolsServer {
	toolsServer := NewToolsServer(store, logger)

	for _, toolDef := range toolsServer.GetTools() {
		tool := createMCPTool(toolDef)
		mcpServer.AddTool(tool, createToolHandler(toolsServer, toolDef.Name))
	}

	logger.Info("registered management tools",
		zap.Int("tool_count", len(toolsServer.GetTools())))

	return toolsServer
}

// createMCPTool creates an MCP tool from a ToolDefinition.
func createMCPTool(def ToolDefinition) mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription(def.Description),
	}

	props, _ := def.InputSchema["properties"].(map[string]interface{})
	required := make(map[string]bool)
	if req, ok := def.InputSchema["required"].([]string); ok {
		for _, r := range req {
			required[r] = true
		}
	}

	for name, propDef := range props {
		propMap, ok := propDef.(map[string]interface{})
		if !ok {
			continue
		}

		propType, _ := propMap["type"].(string)
		propDesc, _ := propMap["description"].(string)
		isRequired := required[name]

		switch propType {
		case "string":
			stringOpts := []mcp.PropertyOption{mcp.Description(propDesc)}
			if isRequired {
				stringOpts = append(stringOpts, mcp.Required())
			}
			opts = append(opts, mcp.WithString(name, stringOpts...))

		case "boolean":
			boolOpts := []mcp.PropertyOption{mcp.Description(propDesc)}
			if isRequired {
				boolOpts = append(boolOpts, mcp.Required())
			}
			opts = append(opts, mcp.WithBoolean(name, boolOpts...))

		case "array":
			arrayOpts := []mcp.PropertyOption{mcp.Description(propDesc)}
			if isRequired {
				arrayOpts = append(arrayOpts, mcp.Required())
			}
			if items, ok := propMap["items"].(map[string]interface{}); ok {
				arrayOpts = append(arrayOpts, mcp.Items(items))
			}
			opts = append(opts, mcp.WithArray(name, arrayOpts...))
		}
	}

	return mcp.NewTool(def.Name, opts...)
}

// createToolHandler creates an MCP tool handler for a specific tool.
func createToolHandler(srv *ToolsServer, toolName string) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := make(map[string]interface{})
		if request.Params.Arguments != nil {
			if argsMap, ok := request.Params.Arguments.(map[string]interface{}); ok {
				args = argsMap
			}
		}

		result, err := srv.CallTool(ctx, toolName, args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		// Plain-string results (ping) go through verbatim.
		if text, ok := result.(string); ok {
			return mcp.NewToolResultText(text), nil
		}

		jsonResult, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(string(jsonResult)), nil
	}
}
