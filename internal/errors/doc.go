// Package errors is the single errors import for letta-mcp.
//
// It re-exports the github.com/cockroachdb/errors helpers the module uses
// (hints, marks, wrapping) and adds [ExitError], which the CLI turns into a
// process exit code:
//
//	0  success
//	1  user error: flags, config, upstream 4xx
//	2  system error: I/O, network, failed checks
//
// Tool failures served over MCP never become ExitErrors; they travel back
// to the client as error envelopes.
package errors
