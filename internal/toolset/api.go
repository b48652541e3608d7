package toolset

import (
	"context"

	"github.com/thoreinstein/letta-mcp/internal/letta"
	"github.com/thoreinstein/letta-mcp/internal/models"
)

// API is the upstream surface the tools need. *letta.Client implements it.
type API interface {
	ListAgents(ctx context.Context, limit int) (models.ListResult[models.AgentInfo], error)
	GetAgentWithMemory(ctx context.Context, agentID string) (models.AgentInfo, []models.MemoryBlock, error)
	CreateAgent(ctx context.Context, req letta.CreateAgentRequest) (models.AgentInfo, error)
	DeleteAgent(ctx context.Context, agentID string) error
	SendMessage(ctx context.Context, agentID, content string) (models.ListResult[models.Message], error)
	ListMessages(ctx context.Context, agentID string, limit int) (models.ListResult[models.Message], error)
	ListBlocks(ctx context.Context, agentID string) (models.ListResult[models.MemoryBlock], error)
	GetBlock(ctx context.Context, agentID, label string) (models.MemoryBlock, error)
	UpdateBlock(ctx context.Context, agentID, label, value string) (models.MemoryBlock, error)
	ListTools(ctx context.Context, limit int) (models.ListResult[models.ToolInfo], error)
	ListAgentTools(ctx context.Context, agentID string) (models.ListResult[models.ToolInfo], error)
	AttachTool(ctx context.Context, agentID, toolID string) (models.AgentInfo, error)
	DetachTool(ctx context.Context, agentID, toolID string) (models.AgentInfo, error)
	SearchArchival(ctx context.Context, agentID, query string, limit int) (models.ListResult[models.Passage], error)
	InsertArchival(ctx context.Context, agentID, text string) (models.ListResult[models.Passage], error)
	Health(ctx context.Context) (letta.Health, error)
}

var _ API = (*letta.Client)(nil)
