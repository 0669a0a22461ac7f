package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"vartree/internal/adapters/codec"
	"vartree/internal/application"
	"vartree/internal/application/commands"
	"vartree/internal/domain"
)

// RegisterReadTools adds all read-only document tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, session *Session) {
	s.AddTool(headerTool(), headerHandler(session))
	s.AddTool(rowCountTool(), rowCountHandler(session))
	s.AddTool(dataTool(), dataHandler(session))
	s.AddTool(listTool(), listHandler(session))
	s.AddTool(treeTool(), treeHandler(session))
	s.AddTool(lookupTool(), lookupHandler(session))
	s.AddTool(searchTool(), searchHandler(session))
}

func pathParam() mcp.ToolOption {
	return mcp.WithString("path",
		mcp.Description(`Path to a node, e.g. .partitions[0].device or partitions.0.device. Omit or use "." for the document root.`),
	)
}

// locate resolves the "path" argument to an index
func locate(m *domain.VariantModel, req mcp.CallToolRequest) (domain.ModelIndex, error) {
	path, err := application.ParsePath(req.GetString("path", ""))
	if err != nil {
		return domain.ModelIndex{}, err
	}
	index, ok := m.Locate(path)
	if !ok {
		return domain.ModelIndex{}, &application.LookupError{Path: path.String()}
	}
	return index, nil
}

// --- header ---

func headerTool() mcp.Tool {
	return mcp.NewTool("header",
		mcp.WithDescription("Return the localized column titles of the tree (key and value)."),
		mcp.WithNumber("section",
			mcp.Description("Column to return: 0 for the key title, 1 for the value title. Omit for both."),
		),
	)
}

func headerHandler(session *Session) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return session.with(func(m *domain.VariantModel) (*mcp.CallToolResult, error) {
			section := req.GetInt("section", -1)
			if section < 0 {
				key := m.HeaderData(0, domain.Horizontal, domain.RoleDisplay)
				value := m.HeaderData(1, domain.Horizontal, domain.RoleDisplay)
				return mcp.NewToolResultText(key.String() + "\t" + value.String()), nil
			}

			title := m.HeaderData(section, domain.Horizontal, domain.RoleDisplay)
			if !title.IsValid() {
				return toolError(fmt.Errorf("no header for section %d", section))
			}
			return mcp.NewToolResultText(title.String()), nil
		})
	}
}

// --- row_count ---

func rowCountTool() mcp.Tool {
	return mcp.NewTool("row_count",
		mcp.WithDescription("Return the number of direct children of a node."),
		pathParam(),
	)
}

func rowCountHandler(session *Session) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return session.with(func(m *domain.VariantModel) (*mcp.CallToolResult, error) {
			index, err := locate(m, req)
			if err != nil {
				return toolError(err)
			}
			return mcp.NewToolResultText(fmt.Sprint(m.RowCount(index))), nil
		})
	}
}

// --- data ---

func dataTool() mcp.Tool {
	return mcp.NewTool("data",
		mcp.WithDescription("Return one cell of the tree as JSON: the key (column 0) or the value (column 1) of the node at path."),
		pathParam(),
		mcp.WithNumber("column",
			mcp.Description("0 for the key, 1 for the value (default)"),
		),
	)
}

func dataHandler(session *Session) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return session.with(func(m *domain.VariantModel) (*mcp.CallToolResult, error) {
			index, err := locate(m, req)
			if err != nil {
				return toolError(err)
			}
			column := req.GetInt("column", 1)
			if column < 0 || column > 1 {
				return toolError(fmt.Errorf("column must be 0 or 1, got %d", column))
			}

			// The root has no cell of its own; its value is the whole document.
			var cell domain.Value
			if index.IsValid() {
				cell = m.Data(index.Sibling(column), domain.RoleDisplay)
			} else if column == 1 {
				cell = m.Underlying(index)
			}
			return jsonResult(cell)
		})
	}
}

// --- list ---

func listTool() mcp.Tool {
	return mcp.NewTool("list",
		mcp.WithDescription("List the direct children of a node as key, value summary and child count."),
		pathParam(),
	)
}

func listHandler(session *Session) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return session.with(func(m *domain.VariantModel) (*mcp.CallToolResult, error) {
			entries, err := commands.NewListChildrenCommand(m, req.GetString("path", "")).Execute(ctx)
			if err != nil {
				return toolError(err)
			}
			return formatEntities(entries, formatEntry)
		})
	}
}

// --- tree ---

func treeTool() mcp.Tool {
	return mcp.NewTool("tree",
		mcp.WithDescription("Display the document, or the subtree at path, as indented key: value lines."),
		pathParam(),
		mcp.WithNumber("depth",
			mcp.Description("Maximum nesting depth to expand; 0 or omitted for everything"),
		),
	)
}

func treeHandler(session *Session) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return session.with(func(m *domain.VariantModel) (*mcp.CallToolResult, error) {
			root, err := locate(m, req)
			if err != nil {
				return toolError(err)
			}

			cmd := commands.NewRenderTreeCommand(m)
			cmd.Root = root
			cmd.MaxDepth = req.GetInt("depth", 0)
			out, err := cmd.Execute(ctx)
			if err != nil {
				return toolError(err)
			}
			if out == "" {
				return mcp.NewToolResultText("(empty)"), nil
			}
			return mcp.NewToolResultText(out), nil
		})
	}
}

// --- lookup ---

func lookupTool() mcp.Tool {
	return mcp.NewTool("lookup",
		mcp.WithDescription("Resolve a path and return the node's value as JSON."),
		mcp.WithString("path",
			mcp.Description("Path to a node, e.g. .branding.productName"),
			mcp.Required(),
		),
	)
}

func lookupHandler(session *Session) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path, err := req.RequireString("path")
		if err != nil {
			return toolError(err)
		}
		return session.with(func(m *domain.VariantModel) (*mcp.CallToolResult, error) {
			result, err := commands.NewLookupCommand(m, path).Execute(ctx)
			if err != nil {
				return toolError(err)
			}
			return jsonResult(result.Value)
		})
	}
}

// --- search ---

func searchTool() mcp.Tool {
	return mcp.NewTool("search",
		mcp.WithDescription("Fuzzy search keys and values. Returns matching paths with their values."),
		mcp.WithString("query",
			mcp.Description("Search query, at least two characters"),
			mcp.Required(),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results (default 20)"),
		),
	)
}

func searchHandler(session *Session) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")
		if query == "" {
			return toolError(fmt.Errorf("query is required"))
		}

		return session.with(func(m *domain.VariantModel) (*mcp.CallToolResult, error) {
			cmd := commands.NewSearchCommand(m, query)
			cmd.Limit = req.GetInt("limit", 20)
			results, err := cmd.Execute(ctx)
			if err != nil {
				return toolError(err)
			}

			if len(results) == 0 {
				return mcp.NewToolResultText("No results found."), nil
			}

			var sb strings.Builder
			for _, r := range results {
				fmt.Fprintf(&sb, "%s  %s\n", r.Path, r.Value)
			}
			return mcp.NewToolResultText(sb.String()), nil
		})
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func jsonResult(v domain.Value) (*mcp.CallToolResult, error) {
	data, err := codec.EncodeJSONIndent(v)
	if err != nil {
		return toolError(err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatEntry(e commands.ListEntry) string {
	key := "-"
	if e.Key.IsValid() {
		key = e.Key.String()
	}
	if e.Children > 0 {
		return fmt.Sprintf("%s  %s  (%d children)", key, e.Value, e.Children)
	}
	return fmt.Sprintf("%s  %s", key, e.Value)
}
