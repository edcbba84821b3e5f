package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/colonyops/waggle/internal/core/kv"
)

var collectToolDef = mcp.NewTool("feedback_collect",
	mcp.WithDescription("Open the interactive feedback panel and wait for the user to respond. "+
		"Returns the submitted feedback, or a timed_out marker if the user never responded."),
	mcp.WithString("summary",
		mcp.Required(),
		mcp.Description("Markdown summary of the work the user is being asked to review."),
	),
	mcp.WithString("project_directory",
		mcp.Description("Directory of the project the feedback concerns."),
	),
	mcp.WithNumber("timeout_seconds",
		mcp.Description("How long to wait for a submission before giving up. Defaults to 600."),
	),
)

var lastToolDef = mcp.NewTool("feedback_last",
	mcp.WithDescription("Return the most recently submitted feedback without opening a panel."),
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"feedback_collect": {
		def:     collectToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCollect },
	},
	"feedback_last": {
		def:     lastToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleLast },
	},
}

// AllToolNames returns a list of all valid tool names.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	return names
}

// NewServer creates an MCP server with the feedback tools registered.
func NewServer(collector Collector, store kv.KV, version string, log zerolog.Logger) *server.MCPServer {
	s := server.NewMCPServer(
		"waggle",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(collector, store, log)
	for _, entry := range toolRegistry {
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts the MCP server on stdio transport. It blocks until the
// client disconnects.
func Run(collector Collector, store kv.KV, version string, log zerolog.Logger) error {
	return server.ServeStdio(NewServer(collector, store, version, log))
}
