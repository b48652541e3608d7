// Package toolset defines the letta_* tools exposed over MCP.
//
// Each tool is a dispatch.Tool whose handler calls the upstream API and
// bounds the result with the shaper. Handlers receive their dependencies by
// closure; there is no package state.
package toolset
