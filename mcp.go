package inspector

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	internalmcp "github.com/wagiedev/inspector-go/internal/mcp"
)

// NewMCPServer returns a Model Context Protocol server exposing the client's
// debugger operations as tools: set_breakpoint, remove_breakpoint, step_over,
// step_into, step_out, resume, pause, evaluate, evaluate_on_call_frame and
// get_properties.
//
// Serve it over stdio with:
//
//	server := inspector.NewMCPServer(client, "inspector", version)
//	err := server.Run(ctx, &mcp.StdioTransport{})
func NewMCPServer(client Client, name, version string) *mcp.Server {
	return internalmcp.NewServer(client, name, version)
}
