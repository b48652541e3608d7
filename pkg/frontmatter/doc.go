// Package frontmatter reads and writes Markdown files that begin with a
// YAML header delimited by "---" lines.
//
// letta-mcp uses it for agent definition files: the header carries the
// agent's name, model and other settings, the body is the persona.
//
//	---
//	name: support-bot
//	model: openai/gpt-4o-mini
//	---
//	You are a patient support agent.
//
// Both LF and CRLF line endings are accepted.
package frontmatter
