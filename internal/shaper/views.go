package shaper

import "time"

// AgentSummary is the list projection of an agent.
type AgentSummary struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Description      string `json:"description,omitempty"`
	CreatedAt        string `json:"created_at,omitempty"`
	Model            string `json:"model,omitempty"`
	ToolCount        int    `json:"tool_count"`
	MemoryBlockCount int    `json:"memory_block_count"`
}

// ToolSummary is the list projection of a tool.
type ToolSummary struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// MessageView is the list projection of a conversation message.
type MessageView struct {
	ID       string `json:"id"`
	Role     string `json:"role"`
	Type     string `json:"type"`
	Content  string `json:"content"`
	Date     string `json:"date,omitempty"`
	ToolName string `json:"tool_name,omitempty"`
}

// PassageView is the list projection of an archival passage.
type PassageView struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at,omitempty"`
}

// ToolRef names a tool attached to an agent.
type ToolRef struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// BlockView is a bounded memory block.
type BlockView struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Value       string `json:"value"`
	Chars       int    `json:"chars"`
	Limit       int    `json:"limit,omitempty"`
	Description string `json:"description,omitempty"`
}

// AgentDetail is the single-agent view.
type AgentDetail struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Model       string      `json:"model,omitempty"`
	CreatedAt   string      `json:"created_at,omitempty"`
	Persona     string      `json:"persona,omitempty"`
	System      string      `json:"system,omitempty"`
	Tags        []string    `json:"tags,omitempty"`
	Tools       []ToolRef   `json:"tools"`
	Memory      []BlockView `json:"memory"`
}

func timestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
