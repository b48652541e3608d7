// Package server exposes a dispatch.Registry as an MCP server.
//
// Tools are advertised with schemas derived from their parameters and with
// read-only, destructive, and idempotent hints derived from their mode.
// Every call result is a single text content holding the envelope JSON.
//
// Two transports are supported: stdio, where stdout is the protocol channel,
// and streamable HTTP behind a chi router with CORS and a /healthz probe.
package server
