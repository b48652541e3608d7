package server

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/thoreinstein/letta-mcp/internal/dispatch"
	"github.com/thoreinstein/letta-mcp/internal/errors"
)

// Name is the MCP server name reported to clients.
const Name = "letta"

const instructions = `Tools for managing Letta agents: list and inspect agents, read and update core memory, ` +
	`exchange messages, manage tools, and search archival memory. Every result is a JSON envelope ` +
	`with success, data or error, and metadata. List results are summaries; use letta_get_agent for detail.`

// Options configures a Server.
type Options struct {
	Version string
	Logger  *slog.Logger
}

// Server adapts a registry to the MCP protocol.
type Server struct {
	mcp      *server.MCPServer
	registry *dispatch.Registry
	logger   *slog.Logger
}

// New builds an MCP server advertising every tool in reg.
func New(reg *dispatch.Registry, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	version := opts.Version
	if version == "" {
		version = "dev"
	}

	s := &Server{
		mcp: server.NewMCPServer(Name, version,
			server.WithToolCapabilities(true),
			server.WithRecovery(),
			server.WithInstructions(instructions),
		),
		registry: reg,
		logger:   logger,
	}
	for _, t := range reg.Tools() {
		s.mcp.AddTool(Definition(t), s.handler(t.Name))
	}
	return s
}

// MCP returns the underlying protocol server.
func (s *Server) MCP() *server.MCPServer {
	return s.mcp
}

func (s *Server) handler(name string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return Result(s.registry.Dispatch(ctx, name, req.GetArguments())), nil
	}
}

// Result renders an envelope as a tool result. IsError mirrors !Success.
func Result(env dispatch.Envelope) *mcp.CallToolResult {
	data, err := json.Marshal(env)
	if err != nil {
		fallback := dispatch.Envelope{
			Error:    &dispatch.ErrorInfo{Kind: dispatch.KindInternal, Message: "encoding result: " + err.Error()},
			Metadata: env.Metadata,
		}
		data, _ = json.Marshal(fallback)
		env.Success = false
	}
	res := mcp.NewToolResultText(string(data))
	res.IsError = !env.Success
	return res
}

// ServeStdio serves MCP over in and out until ctx is cancelled or in is
// closed. Nothing else may write to out.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(log.New(&slogWriter{logger: s.logger}, "", 0))

	s.logger.Info("serving MCP over stdio", "tools", len(s.registry.Tools()))
	err := stdio.Listen(ctx, in, out)
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, io.EOF) {
		return errors.Wrap(err, "serving stdio")
	}
	return nil
}

// slogWriter routes mcp-go's standard logger into slog.
type slogWriter struct {
	logger *slog.Logger
}

func (w *slogWriter) Write(p []byte) (int, error) {
	w.logger.Warn("mcp", "message", string(trimNewline(p)))
	return len(p), nil
}

func trimNewline(p []byte) []byte {
	for len(p) > 0 && (p[len(p)-1] == '\n' || p[len(p)-1] == '\r') {
		p = p[:len(p)-1]
	}
	return p
}
