package mcp

import (
	"context"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"vartree/internal/application/commands"
	"vartree/internal/domain"
	"vartree/internal/ports"
)

// Session owns the model served over MCP. Tool handlers may run
// concurrently, so every model access goes through the lock.
type Session struct {
	mu     sync.Mutex
	source ports.DocumentSource
	model  *domain.VariantModel
}

// NewSession creates a session serving model, reloadable from source
func NewSession(source ports.DocumentSource, model *domain.VariantModel) *Session {
	return &Session{source: source, model: model}
}

func (s *Session) with(fn func(m *domain.VariantModel) (*mcp.CallToolResult, error)) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.model)
}

// RegisterSessionTools adds the tools that change the session to the MCP server.
func RegisterSessionTools(s *server.MCPServer, session *Session) {
	s.AddTool(reloadTool(), reloadHandler(session))
}

// --- reload ---

func reloadTool() mcp.Tool {
	return mcp.NewTool("reload",
		mcp.WithDescription("Read the document source again and rebuild the tree. Indices and row numbers from before the reload may now point elsewhere."),
	)
}

func reloadHandler(session *Session) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return session.with(func(m *domain.VariantModel) (*mcp.CallToolResult, error) {
			result, err := commands.NewReloadCommand(session.source, m).Execute(ctx)
			if err != nil {
				return toolError(err)
			}
			return mcp.NewToolResultText(result.Message), nil
		})
	}
}
