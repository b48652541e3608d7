package server

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/letta-mcp/internal/dispatch"
	"github.com/thoreinstein/letta-mcp/internal/logging"
)

func testRegistry(t *testing.T) *dispatch.Registry {
	t.Helper()
	reg := dispatch.NewRegistry(logging.ForTest(t))
	require.NoError(t, reg.Register(dispatch.Tool{
		Name:        "letta_echo",
		Description: "Echoes the agent id",
		Params: []dispatch.Param{
			{Name: "agent_id", Type: dispatch.TypeString, Required: true, Description: "Agent to echo"},
			{Name: "limit", Type: dispatch.TypeInteger, Default: 10, Min: dispatch.Bound(1), Max: dispatch.Bound(50)},
		},
		Mode: dispatch.ReadOnly,
		Handler: func(_ context.Context, args dispatch.Args) (dispatch.Result, error) {
			return dispatch.Result{Data: map[string]any{"agent_id": args.String("agent_id"), "limit": args.Int("limit")}}, nil
		},
	}))
	require.NoError(t, reg.Register(dispatch.Tool{
		Name:        "letta_drop",
		Description: "Drops an agent",
		Params: []dispatch.Param{
			{Name: "agent_id", Type: dispatch.TypeString, Required: true},
			{Name: "tags", Type: dispatch.TypeArray, Items: dispatch.TypeString},
		},
		Mode: dispatch.Destructive,
		Handler: func(context.Context, dispatch.Args) (dispatch.Result, error) {
			return dispatch.Result{Data: "dropped"}, nil
		},
	}))
	return reg
}

func TestDefinition_Annotations(t *testing.T) {
	reg := testRegistry(t)

	tests := []struct {
		tool        string
		readOnly    bool
		destructive bool
	}{
		{"letta_echo", true, false},
		{"letta_drop", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			tool, ok := reg.Lookup(tt.tool)
			require.True(t, ok)

			def := Definition(tool)
			assert.Equal(t, tt.tool, def.Name)
			require.NotNil(t, def.Annotations.ReadOnlyHint)
			require.NotNil(t, def.Annotations.DestructiveHint)
			assert.Equal(t, tt.readOnly, *def.Annotations.ReadOnlyHint)
			assert.Equal(t, tt.destructive, *def.Annotations.DestructiveHint)
		})
	}
}

func TestDefinition_Schema(t *testing.T) {
	reg := testRegistry(t)
	tool, ok := reg.Lookup("letta_echo")
	require.True(t, ok)

	def := Definition(tool)
	assert.Equal(t, "object", def.InputSchema.Type)
	assert.Equal(t, []string{"agent_id"}, def.InputSchema.Required)

	agentID, ok := def.InputSchema.Properties["agent_id"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "string", agentID["type"])
	assert.Equal(t, "Agent to echo", agentID["description"])

	limit, ok := def.InputSchema.Properties["limit"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "integer", limit["type"])
	assert.InDelta(t, 10.0, limit["default"], 0)
	assert.InDelta(t, 1.0, limit["minimum"], 0)
	assert.InDelta(t, 50.0, limit["maximum"], 0)

	drop, _ := reg.Lookup("letta_drop")
	tags, ok := Definition(drop).InputSchema.Properties["tags"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "array", tags["type"])
	assert.Equal(t, map[string]any{"type": "string"}, tags["items"])
}

func TestNew_RegistersEveryTool(t *testing.T) {
	s := New(testRegistry(t), Options{Version: "1.2.3", Logger: logging.ForTest(t)})

	tools := s.MCP().ListTools()
	assert.Len(t, tools, 2)
	assert.Contains(t, tools, "letta_echo")
	assert.Contains(t, tools, "letta_drop")
}

func TestResult(t *testing.T) {
	tests := []struct {
		name    string
		env     dispatch.Envelope
		isError bool
		want    string
	}{
		{
			name: "success",
			env:  dispatch.Envelope{Success: true, Data: "ok", Metadata: dispatch.Metadata{Tool: "t"}},
			want: `"success":true`,
		},
		{
			name: "failure",
			env: dispatch.Envelope{
				Error:    &dispatch.ErrorInfo{Kind: dispatch.KindValidation, Message: "agent_id: required", Field: "agent_id"},
				Metadata: dispatch.Metadata{Tool: "t"},
			},
			isError: true,
			want:    `"kind":"ValidationError"`,
		},
		{
			name:    "unencodable data",
			env:     dispatch.Envelope{Success: true, Data: make(chan int)},
			isError: true,
			want:    `"kind":"InternalError"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Result(tt.env)
			assert.Equal(t, tt.isError, res.IsError)
			require.Len(t, res.Content, 1)
			text, ok := res.Content[0].(mcp.TextContent)
			require.True(t, ok)
			assert.Contains(t, text.Text, tt.want)
			assert.True(t, json.Valid([]byte(text.Text)))
		})
	}
}

type rpcResponse struct {
	ID     int             `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func TestServeStdio_RoundTrip(t *testing.T) {
	s := New(testRegistry(t), Options{Version: "test", Logger: logging.ForTest(t)})

	inR, inW := io.Pipe()
	outR, outW := io.Pipe()

	done := make(chan error, 1)
	go func() {
		done <- s.ServeStdio(t.Context(), inR, outW)
	}()

	responses := bufio.NewReader(outR)
	call := func(req string) rpcResponse {
		t.Helper()
		_, err := io.WriteString(inW, req+"\n")
		require.NoError(t, err)
		line, err := responses.ReadBytes('\n')
		require.NoError(t, err)
		var resp rpcResponse
		require.NoError(t, json.Unmarshal(line, &resp))
		return resp
	}

	init := call(`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"test","version":"0"}}}`)
	require.Nil(t, init.Error)
	assert.Contains(t, string(init.Result), `"name":"letta"`)

	list := call(`{"jsonrpc":"2.0","id":2,"method":"tools/list"}`)
	require.Nil(t, list.Error)
	assert.Contains(t, string(list.Result), "letta_echo")

	ok := call(`{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"letta_echo","arguments":{"agent_id":"agent-1"}}}`)
	require.Nil(t, ok.Error)
	var result struct {
		IsError bool `json:"isError"`
	}
	require.NoError(t, json.Unmarshal(ok.Result, &result))
	assert.False(t, result.IsError)
	assert.Contains(t, string(ok.Result), `agent-1`)

	bad := call(`{"jsonrpc":"2.0","id":4,"method":"tools/call","params":{"name":"letta_echo","arguments":{}}}`)
	require.Nil(t, bad.Error)
	assert.Contains(t, string(bad.Result), `"isError":true`)
	assert.Contains(t, string(bad.Result), `ValidationError`)

	require.NoError(t, inW.Close())
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("stdio server did not stop after input closed")
	}
}

func TestRouter_Healthz(t *testing.T) {
	s := New(testRegistry(t), Options{Logger: logging.ForTest(t)})
	srv := httptest.NewServer(s.Router(HTTPOptions{}))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body healthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, healthResponse{Status: "ok", Name: Name, Tools: 2}, body)
}

func TestRouter_CORS(t *testing.T) {
	s := New(testRegistry(t), Options{Logger: logging.ForTest(t)})

	tests := []struct {
		name    string
		origins []string
		origin  string
		want    string
	}{
		{"allowed origin", []string{"https://app.example.com"}, "https://app.example.com", "https://app.example.com"},
		{"other origin", []string{"https://app.example.com"}, "https://evil.example.com", ""},
		{"cors disabled", nil, "https://app.example.com", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := s.Router(HTTPOptions{AllowedOrigins: tt.origins})
			req := httptest.NewRequest(http.MethodOptions, EndpointPath, nil)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestRouter_MCPEndpoint(t *testing.T) {
	s := New(testRegistry(t), Options{Logger: logging.ForTest(t)})
	srv := httptest.NewServer(s.Router(HTTPOptions{}))
	defer srv.Close()

	body := `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"test","version":"0"}}}`
	req, err := http.NewRequestWithContext(t.Context(), http.MethodPost, srv.URL+EndpointPath, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Mcp-Session-Id"))
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"name":"letta"`)
}

func TestServeHTTP_ShutsDownOnCancel(t *testing.T) {
	s := New(testRegistry(t), Options{Logger: logging.ForTest(t)})
	ctx, cancel := context.WithCancel(t.Context())

	done := make(chan error, 1)
	go func() {
		done <- s.ServeHTTP(ctx, HTTPOptions{Addr: "127.0.0.1:0"})
	}()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("HTTP server did not shut down")
	}
}
