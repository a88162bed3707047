// Package mcpserver exposes the directory accessors as MCP tools over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/graph-mcp/graph-mcp/internal/metrics"
)

const serverName = "Microsoft Graph Directory"

// New builds the MCP server with every directory tool registered.
func New(svc DirectoryService, version string) *server.MCPServer {
	s := server.NewMCPServer(
		serverName,
		version,
		server.WithLogging(),
		server.WithToolCapabilities(false),
	)
	registerTools(s, svc)
	return s
}

// ServeStdio runs the server on stdin/stdout until the stream closes or ctx
// is canceled.
func ServeStdio(ctx context.Context, s *server.MCPServer) error {
	stdio := server.NewStdioServer(s)
	return stdio.Listen(ctx, os.Stdin, os.Stdout)
}

// instrumented wraps a tool handler with call metrics. Handlers report
// operation failures as error results, not Go errors, so the status label is
// derived from the result.
func instrumented(tool string, handler server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		started := time.Now()
		result, err := handler(ctx, request)
		metrics.ToolCallDuration.WithLabelValues(tool).Observe(time.Since(started).Seconds())

		status := "ok"
		if err != nil || (result != nil && result.IsError) {
			status = "error"
		}
		metrics.ToolCallsTotal.WithLabelValues(tool, status).Inc()
		return result, err
	}
}

// jsonResult marshals v as the tool's text content.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	encoded, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(encoded)), nil
}
