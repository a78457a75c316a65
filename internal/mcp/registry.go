package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Registry is a thread-safe set of MCP tools.
//
// The official SDK's Server is designed for transport-based communication,
// so the Registry keeps its own copy of every tool for direct invocation.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]*registeredTool
}

// registeredTool holds tool metadata and its handler.
type registeredTool struct {
	tool    *mcp.Tool
	handler mcp.ToolHandler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]*registeredTool, 10),
	}
}

// AddTool registers a tool, replacing any tool with the same name.
func (r *Registry) AddTool(tool *mcp.Tool, handler mcp.ToolHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tools[tool.Name] = &registeredTool{
		tool:    tool,
		handler: handler,
	}
}

// Names returns the registered tool names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Sorted(maps.Keys(r.tools))
}

// Tool returns the metadata of a registered tool.
func (r *Registry) Tool(name string) (*mcp.Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tools[name]
	if !ok {
		return nil, false
	}

	return t.tool, true
}

// CallTool executes a tool by name with raw JSON arguments.
//
// Unknown tools and handler failures are reported as error results, never as
// a Go error, matching how MCP servers surface tool failures to the model.
func (r *Registry) CallTool(ctx context.Context, name string, arguments json.RawMessage) *mcp.CallToolResult {
	r.mu.RLock()
	t, exists := r.tools[name]
	r.mu.RUnlock()

	if !exists {
		return ErrorResult("Tool not found: " + name)
	}

	req := &mcp.CallToolRequest{
		Params: &mcp.CallToolParamsRaw{
			Name:      name,
			Arguments: arguments,
		},
	}

	result, err := t.handler(ctx, req)
	if err != nil {
		return ErrorResult("Tool execution failed: " + err.Error())
	}

	if result == nil {
		return &mcp.CallToolResult{Content: []mcp.Content{}}
	}

	return result
}

// Server builds an MCP server serving every registered tool.
func (r *Registry) Server(name, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: name, Version: version}, nil)

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, name := range slices.Sorted(maps.Keys(r.tools)) {
		t := r.tools[name]
		server.AddTool(t.tool, t.handler)
	}

	return server
}

// SimpleSchema creates an object schema from a simple type map.
//
// Input format: {"a": "float64", "b": "string"}
// Every property is required; use Optional to relax some of them.
func SimpleSchema(props map[string]string) *jsonschema.Schema {
	properties := make(map[string]*jsonschema.Schema, len(props))

	for name, goType := range props {
		properties[name] = goTypeToJSONSchema(goType)
	}

	return &jsonschema.Schema{
		Type:       "object",
		Properties: properties,
		Required:   slices.Sorted(maps.Keys(props)),
	}
}

// Optional removes names from the schema's required list.
func Optional(schema *jsonschema.Schema, names ...string) *jsonschema.Schema {
	schema.Required = slices.DeleteFunc(schema.Required, func(name string) bool {
		return slices.Contains(names, name)
	})

	return schema
}

// Describe sets the description of a schema property.
func Describe(schema *jsonschema.Schema, property, description string) *jsonschema.Schema {
	if p, ok := schema.Properties[property]; ok {
		p.Description = description
	}

	return schema
}

// goTypeToJSONSchema converts a Go type string to a JSON Schema type.
func goTypeToJSONSchema(goType string) *jsonschema.Schema {
	switch goType {
	case "string":
		return &jsonschema.Schema{Type: "string"}
	case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64":
		return &jsonschema.Schema{Type: "integer"}
	case "float32", "float64", "float", "number":
		return &jsonschema.Schema{Type: "number"}
	case "bool", "boolean":
		return &jsonschema.Schema{Type: "boolean"}
	case "any", "object", "map[string]any":
		return &jsonschema.Schema{Type: "object"}
	default:
		if len(goType) > 2 && goType[:2] == "[]" {
			return &jsonschema.Schema{
				Type:  "array",
				Items: goTypeToJSONSchema(goType[2:]),
			}
		}

		return &jsonschema.Schema{Type: "string"}
	}
}

// TextResult creates a CallToolResult with text content.
func TextResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

// ErrorResult creates a CallToolResult indicating an error.
func ErrorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: message},
		},
		IsError: true,
	}
}

// JSONResult creates a CallToolResult holding v as indented JSON.
func JSONResult(v any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ErrorResult("Failed to encode result: " + err.Error())
	}

	return TextResult(string(data))
}

// NewTool creates an mcp.Tool with the given parameters.
func NewTool(name, description string, inputSchema *jsonschema.Schema) *mcp.Tool {
	return &mcp.Tool{
		Name:        name,
		Description: description,
		InputSchema: inputSchema,
	}
}

// ParseArguments unmarshals CallToolRequest arguments into T.
// Absent arguments yield the zero value.
func ParseArguments[T any](req *mcp.CallToolRequest) (*T, error) {
	var args T

	if req == nil || req.Params == nil || len(req.Params.Arguments) == 0 {
		return &args, nil
	}

	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return nil, fmt.Errorf("failed to unmarshal arguments: %w", err)
	}

	return &args, nil
}
