// Package mcp exposes debugger operations as Model Context Protocol tools.
//
// A Registry holds tool metadata and handlers so tools can be invoked
// directly, and can build an mcp.Server that serves the same tools over any
// MCP transport (stdio in the command-line tool).
package mcp
