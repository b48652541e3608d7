// Package logging builds the slog loggers used by letta-mcp.
//
// Logs always go to stderr, since stdout carries the MCP protocol in stdio
// mode. Text output is colorized on terminals; JSON is used otherwise and
// for --log-file. Both redact Letta API keys and other credentials through
// package redact, and render [LevelTrace] as TRACE.
//
//	logger, closer, err := logging.Build(logging.Options{
//		Level:  logging.LevelFromVerbosity(2),
//		Format: logging.FormatAuto,
//		Output: os.Stderr,
//	})
//
// Request-scoped loggers travel in a context. The dispatcher stores one
// tagged with the tool name and request id, and the transport logs through
// it:
//
//	ctx = logging.NewContext(ctx, logger.With("request_id", id))
//	logging.FromContext(ctx, nil).Debug("upstream request")
//
// Tests use [ForTest] so output appears only for failing tests or -v.
package logging
