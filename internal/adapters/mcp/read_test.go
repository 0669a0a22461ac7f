package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vartree/internal/domain"
)

type stubSource struct {
	doc domain.Value
	err error
}

func (s *stubSource) Load(context.Context) (domain.Value, error) { return s.doc, s.err }
func (s *stubSource) Describe() string                           { return "stub.json" }

func installerState() domain.Value {
	return domain.Map(
		domain.Entry{Key: "branding", Value: domain.Map(
			domain.Entry{Key: "productName", Value: domain.Scalar("Generic Linux")},
			domain.Entry{Key: "version", Value: domain.Scalar("2019.1")},
		)},
		domain.Entry{Key: "partitions", Value: domain.List(
			domain.Map(domain.Entry{Key: "device", Value: domain.Scalar("/dev/sda1")}),
			domain.Map(domain.Entry{Key: "device", Value: domain.Scalar("/dev/sda2")}),
		)},
		domain.Entry{Key: "hostname", Value: domain.Scalar("calamares")},
	)
}

func newTestSession() (*Session, *stubSource) {
	src := &stubSource{doc: installerState()}
	doc := installerState()
	return NewSession(src, domain.NewVariantModel(&doc)), src
}

func call(t *testing.T, handler server.ToolHandlerFunc, args map[string]any) (string, bool) {
	t.Helper()

	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	result, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, result.Content)

	text, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok, "expected text content")
	return text.Text, result.IsError
}

func TestHeaderTool(t *testing.T) {
	session, _ := newTestSession()

	out, isErr := call(t, headerHandler(session), nil)
	assert.False(t, isErr)
	assert.Equal(t, "Key\tValue", out)

	out, _ = call(t, headerHandler(session), map[string]any{"section": 1})
	assert.Equal(t, "Value", out)

	_, isErr = call(t, headerHandler(session), map[string]any{"section": 5})
	assert.True(t, isErr)
}

func TestRowCountTool(t *testing.T) {
	session, _ := newTestSession()

	tests := []struct {
		path string
		want string
	}{
		{"", "3"},
		{".partitions", "2"},
		{".partitions[0]", "1"},
		{".hostname", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			out, isErr := call(t, rowCountHandler(session), map[string]any{"path": tt.path})
			assert.False(t, isErr)
			assert.Equal(t, tt.want, out)
		})
	}

	_, isErr := call(t, rowCountHandler(session), map[string]any{"path": ".missing"})
	assert.True(t, isErr)
}

func TestDataTool(t *testing.T) {
	session, _ := newTestSession()

	out, isErr := call(t, dataHandler(session), map[string]any{"path": ".branding.version"})
	assert.False(t, isErr)
	assert.Equal(t, `"2019.1"`, out)

	out, _ = call(t, dataHandler(session), map[string]any{"path": ".partitions[1]", "column": 0})
	assert.Equal(t, "1", out)

	out, _ = call(t, dataHandler(session), map[string]any{"path": ".partitions[1]"})
	assert.JSONEq(t, `{"device": "/dev/sda2"}`, out)

	_, isErr = call(t, dataHandler(session), map[string]any{"path": ".hostname", "column": 2})
	assert.True(t, isErr)
}

func TestListTool(t *testing.T) {
	session, _ := newTestSession()

	out, isErr := call(t, listHandler(session), map[string]any{"path": "."})
	assert.False(t, isErr)
	assert.Equal(t, "branding  {2 keys}  (2 children)\nhostname  calamares\npartitions  [2 items]  (2 children)\n", out)
}

func TestTreeTool(t *testing.T) {
	session, _ := newTestSession()

	out, isErr := call(t, treeHandler(session), map[string]any{"path": ".partitions", "depth": 1})
	assert.False(t, isErr)
	assert.Equal(t, "0: {1 key}\n1: {1 key}\n", out)

	out, _ = call(t, treeHandler(session), map[string]any{"path": ".hostname"})
	assert.Equal(t, "(empty)", out)
}

func TestLookupTool(t *testing.T) {
	session, _ := newTestSession()

	out, isErr := call(t, lookupHandler(session), map[string]any{"path": ".branding"})
	assert.False(t, isErr)
	assert.JSONEq(t, `{"productName": "Generic Linux", "version": "2019.1"}`, out)

	out, isErr = call(t, lookupHandler(session), map[string]any{"path": ".branding.nope"})
	assert.True(t, isErr)
	assert.Contains(t, out, "not found")

	_, isErr = call(t, lookupHandler(session), nil)
	assert.True(t, isErr)
}

func TestSearchTool(t *testing.T) {
	session, _ := newTestSession()

	out, isErr := call(t, searchHandler(session), map[string]any{"query": "sda2"})
	assert.False(t, isErr)
	assert.Equal(t, ".partitions.1.device  /dev/sda2\n", out)

	out, _ = call(t, searchHandler(session), map[string]any{"query": "zzzz"})
	assert.Equal(t, "No results found.", out)
}

func TestReloadTool(t *testing.T) {
	session, src := newTestSession()

	src.doc = domain.Map(domain.Entry{Key: "fresh", Value: domain.Scalar(true)})
	out, isErr := call(t, reloadHandler(session), nil)
	assert.False(t, isErr)
	assert.Contains(t, out, "Reloaded stub.json")

	out, _ = call(t, rowCountHandler(session), nil)
	assert.Equal(t, "1", out)

	src.err = errors.New("disk on fire")
	out, isErr = call(t, reloadHandler(session), nil)
	assert.True(t, isErr)
	assert.Contains(t, out, "disk on fire")
}

func TestRegisterTools(t *testing.T) {
	session, _ := newTestSession()
	s := server.NewMCPServer("vartree", "test", server.WithToolCapabilities(false))

	RegisterReadTools(s, session)
	RegisterSessionTools(s, session)

	tools := s.ListTools()
	for _, name := range []string{"header", "row_count", "data", "list", "tree", "lookup", "search", "reload"} {
		assert.Contains(t, tools, name)
	}
}
