// Package server exposes the registry operations as MCP tools.
package server

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"holster-go/internal/config"
	"holster-go/internal/registry"
)

// ToolsServer dispatches the management tools. Each mutating call runs one
// full load, transform, persist cycle against the store; nothing is cached
// across calls.
type ToolsServer struct {
	store  *config.Store
	logger *zap.Logger
}

// NewToolsServer creates a tools server backed by the given store.
func NewToolsServer(store *config.Store, logger *zap.Logger) *ToolsServer {
	return &ToolsServer{store: store, logger: logger}
}

// ToolDefinition represents an MCP tool definition.
type ToolDefinition struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetTools returns all available management tools.
func (s *ToolsServer) GetTools() []ToolDefinition {
	return []ToolDefinition{
		s.createServerTool(),
		s.listServersTool(),
		s.updateServerStatusTool(),
		s.deleteServersTool(),
		s.pingTool(),
		s.explainTool(),
	}
}

// CallTool executes a management tool.
func (s *ToolsServer) CallTool(ctx context.Context, name string, args map[string]interface{}) (interface{}, error) {
	s.logger.Debug("CallTool invoked", zap.String("tool", name), zap.Any("args", args))

	switch name {
	case "create_server":
		return s.handleCreateServer(ctx, args)
	case "list_servers":
		return s.handleListServers(ctx, args)
	case "update_server_status":
		return s.handleUpdateServerStatus(ctx, args)
	case "delete_servers":
		return s.handleDeleteServers(ctx, args)
	case "ping":
		return s.handlePing(ctx, args)
	case "explain":
		return s.handleExplain(ctx, args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// Tool Definitions

func (s *ToolsServer) createServerTool() ToolDefinition {
	return ToolDefinition{
		Name:        "create_server",
		Description: "Add a new MCP server entry to the configuration file. New entries start inactive; activate explicitly to register them with the host application",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Unique server name",
				},
				"command": map[string]interface{}{
					"type":        "string",
					"description": "Executable or launcher name (e.g. 'uv', 'npx')",
				},
				"directory": map[string]interface{}{
					"type":        "string",
					"description": "Directory containing the server implementation",
				},
				"script": map[string]interface{}{
					"type":        "string",
					"description": "Entry-point script to run",
				},
			},
			"required": []string{"name", "command"},
		},
	}
}

func (s *ToolsServer) listServersTool() ToolDefinition {
	return ToolDefinition{
		Name:        "list_servers",
		Description: "List all server entries, split into active (recognized by the host) and inactive (holstered) collections",
		InputSchema: map[string]interface{}{
			"type":       "object",
			"properties": map[string]interface{}{},
		},
	}
}

func (s *ToolsServer) updateServerStatusTool() ToolDefinition {
	return ToolDefinition{
		Name:        "update_server_status",
		Description: "Move server entries between the active and inactive collections. Names already in the target collection count as updated; unknown names are reported in not_found without failing the batch",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"server_names": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Server names to move",
				},
				"active": map[string]interface{}{
					"type":        "boolean",
					"description": "Target state: true to activate, false to deactivate",
				},
			},
			"required": []string{"server_names", "active"},
		},
	}
}

func (s *ToolsServer) deleteServersTool() ToolDefinition {
	return ToolDefinition{
		Name:        "delete_servers",
		Description: "Delete server entries from whichever collection holds them. Unknown names are reported in not_found without failing the batch",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"server_names": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Server names to delete",
				},
			},
			"required": []string{"server_names"},
		},
	}
}

func (s *ToolsServer) pingTool() ToolDefinition {
	return ToolDefinition{
		Name:        "ping",
		Description: "Liveness check; returns a fixed acknowledgement without touching the configuration file",
		InputSchema: map[string]interface{}{
			"type":       "object",
			"properties": map[string]interface{}{},
		},
	}
}

func (s *ToolsServer) explainTool() ToolDefinition {
	return ToolDefinition{
		Name:        "explain",
		Description: "Describe the available tools and their contracts",
		InputSchema: map[string]interface{}{
			"type":       "object",
			"properties": map[string]interface{}{},
		},
	}
}

// Tool Handlers

func (s *ToolsServer) handleCreateServer(_ context.Context, args map[string]interface{}) (interface{}, error) {
	name, _ := args["name"].(string)
	command, _ := args["command"].(string)
	directory, _ := args["directory"].(string)
	script, _ := args["script"].(string)

	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if command == "" {
		return nil, fmt.Errorf("command is required")
	}

	entry := config.ServerEntry{
		Command: command,
		Args:    launchArgs(directory, script),
	}

	doc, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	if err := registry.Create(doc, name, entry); err != nil {
		return nil, err
	}
	if err := s.store.Save(doc); err != nil {
		return nil, err
	}

	s.logger.Info("server created",
		zap.String("name", name),
		zap.String("command", command))

	return map[string]interface{}{"created": name}, nil
}

func (s *ToolsServer) handleListServers(_ context.Context, _ map[string]interface{}) (interface{}, error) {
	doc, err := s.store.Load()
	if err != nil {
		return nil, err
	}

	active, inactive := registry.List(doc)
	return map[string]interface{}{
		"active":   active,
		"inactive": inactive,
	}, nil
}

func (s *ToolsServer) handleUpdateServerStatus(_ context.Context, args map[string]interface{}) (interface{}, error) {
	names, err := stringSlice(args["server_names"])
	if err != nil {
		return nil, err
	}
	active, ok := args["active"].(bool)
	if !ok {
		return nil, fmt.Errorf("active is required")
	}

	doc, err := s.store.Load()
	if err != nil {
		return nil, err
	}

	result := registry.SetStatus(doc, names, active)
	if len(result.Updated) > 0 {
		if err := s.store.Save(doc); err != nil {
			return nil, err
		}
	}

	s.logger.Info("server status updated",
		zap.Bool("active", active),
		zap.Strings("updated", result.Updated),
		zap.Strings("not_found", result.NotFound))

	return map[string]interface{}{
		"updated":   result.Updated,
		"not_found": result.NotFound,
	}, nil
}

func (s *ToolsServer) handleDeleteServers(_ context.Context, args map[string]interface{}) (interface{}, error) {
	names, err := stringSlice(args["server_names"])
	if err != nil {
		return nil, err
	}

	doc, err := s.store.Load()
	if err != nil {
		return nil, err
	}

	result := registry.Delete(doc, names)
	if len(result.Deleted) > 0 {
		if err := s.store.Save(doc); err != nil {
			return nil, err
		}
	}

	s.logger.Info("servers deleted",
		zap.Strings("deleted", result.Deleted),
		zap.Strings("not_found", result.NotFound))

	return map[string]interface{}{
		"deleted":            result.Deleted,
		"not_found":          result.NotFound,
		"remaining_active":   registry.Names(doc.Active),
		"remaining_inactive": registry.Names(doc.Inactive),
	}, nil
}

func (s *ToolsServer) handlePing(_ context.Context, _ map[string]interface{}) (interface{}, error) {
	return "Pong!", nil
}

func (s *ToolsServer) handleExplain(_ context.Context, _ map[string]interface{}) (interface{}, error) {
	return map[string]interface{}{
		"overview": explainOverview,
		"tools":    explainTools,
	}, nil
}

// launchArgs assembles the launcher argument list the host convention
// expects: ["--directory", <dir>, "run", <script>].
func launchArgs(directory, script string) []string {
	args := []string{}
	if directory != "" {
		args = append(args, "--directory", directory)
	}
	if script != "" {
		args = append(args, "run", script)
	}
	return args
}

// stringSlice accepts either an array of strings or a JSON-encoded array
// passed as a string (some clients cannot send real arrays).
func stringSlice(v interface{}) ([]string, error) {
	switch vv := v.(type) {
	case nil:
		return nil, fmt.Errorf("server_names is required")
	case []string:
		return vv, nil
	case []interface{}:
		out := make([]string, 0, len(vv))
		for _, item := range vv {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("server_names must contain only strings")
			}
			out = append(out, s)
		}
		return out, nil
	case string:
		var out []string
		if err := json.Unmarshal([]byte(vv), &out); err != nil {
			return nil, fmt.Errorf("server_names must be a JSON array of strings: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("server_names must be an array of strings")
	}
}
