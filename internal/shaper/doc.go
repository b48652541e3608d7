// Package shaper bounds upstream payloads before they are handed to MCP
// clients.
//
// Listings are capped to a page size, projected onto compact summaries, and
// then trimmed to a whole-response character budget. Free text is cut on rune
// boundaries and marked with Marker, so a client can always tell a shortened
// value from a complete one.
package shaper
