package models

import (
	"encoding/json"
	"time"
)

// Message roles as presented to MCP clients.
const (
	RoleUser   = "user"
	RoleAgent  = "agent"
	RoleSystem = "system"
	RoleTool   = "tool"
)

// Upstream message_type values.
const (
	TypeUserMessage       = "user_message"
	TypeAssistantMessage  = "assistant_message"
	TypeSystemMessage     = "system_message"
	TypeReasoningMessage  = "reasoning_message"
	TypeHiddenReasoning   = "hidden_reasoning_message"
	TypeToolCallMessage   = "tool_call_message"
	TypeToolReturnMessage = "tool_return_message"
)

// AgentInfo is a snapshot of an agent's state.
type AgentInfo struct {
	ID          string
	Name        string
	Description string
	Persona     string
	CreatedAt   time.Time
	ToolIDs     []string
	ToolNames   []string
	BlockIDs    []string
	BlockLabels []string
	Model       string
	System      string
	Tags        []string
}

// MemoryBlock is one labelled section of an agent's core memory.
type MemoryBlock struct {
	ID    string
	Label string
	Value string
	// Limit is the declared character ceiling; 0 means unknown.
	Limit       int
	Description string
}

// Fits reports whether content is within the block's declared limit.
func (b MemoryBlock) Fits(content string) bool {
	return b.Limit <= 0 || len([]rune(content)) <= b.Limit
}

// ToolInfo describes a tool registered with the upstream.
type ToolInfo struct {
	ID          string
	Name        string
	Description string
	Tags        []string
	SourceType  string
	// Parameters is the raw JSON schema, if any.
	Parameters json.RawMessage
}

// ToolCall is the invocation carried by a tool_call_message.
type ToolCall struct {
	Name      string
	Arguments string
	ID        string
}

// Message is one entry in an agent's conversation.
type Message struct {
	ID       string
	Role     string
	Type     string
	Content  string
	Date     time.Time
	ToolCall *ToolCall
}

// Internal reports whether the message is agent bookkeeping rather than
// conversation: reasoning and tool traffic.
func (m Message) Internal() bool {
	switch m.Type {
	case TypeReasoningMessage, TypeHiddenReasoning, TypeToolCallMessage, TypeToolReturnMessage:
		return true
	}
	return false
}

// Passage is an archival memory record.
type Passage struct {
	ID        string
	Text      string
	CreatedAt time.Time
}

// RoleForType maps an upstream message_type onto a client-facing role.
func RoleForType(messageType string) string {
	switch messageType {
	case TypeUserMessage:
		return RoleUser
	case TypeSystemMessage:
		return RoleSystem
	case TypeToolCallMessage, TypeToolReturnMessage:
		return RoleTool
	default:
		return RoleAgent
	}
}
