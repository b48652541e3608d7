package toolset

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/thoreinstein/letta-mcp/internal/dispatch"
	"github.com/thoreinstein/letta-mcp/internal/letta"
	"github.com/thoreinstein/letta-mcp/internal/shaper"
)

// Prefix is prepended to every tool name.
const Prefix = "letta_"

// Tool names.
const (
	ListAgents             = Prefix + "list_agents"
	GetAgent               = Prefix + "get_agent"
	SendMessage            = Prefix + "send_message"
	GetMemory              = Prefix + "get_memory"
	UpdateMemory           = Prefix + "update_memory"
	ListTools              = Prefix + "list_tools"
	GetConversationHistory = Prefix + "get_conversation_history"
	GetAgentTools          = Prefix + "get_agent_tools"
	AttachTool             = Prefix + "attach_tool"
	DetachTool             = Prefix + "detach_tool"
	CreateAgent            = Prefix + "create_agent"
	DeleteAgent            = Prefix + "delete_agent"
	SearchArchivalMemory   = Prefix + "search_archival_memory"
	InsertArchivalMemory   = Prefix + "insert_archival_memory"
	HealthCheck            = Prefix + "health_check"
)

// internalOverfetch widens the upstream page when internal messages are
// filtered out, so the visible page can still be filled.
const internalOverfetch = 3

// Toolset binds the tools to an upstream API and a shaper.
type Toolset struct {
	api    API
	shaper *shaper.Shaper
}

// New returns a Toolset.
func New(api API, s *shaper.Shaper) *Toolset {
	return &Toolset{api: api, shaper: s}
}

// Register adds every tool to reg.
func (t *Toolset) Register(reg *dispatch.Registry) error {
	for _, tool := range t.Tools() {
		if err := reg.Register(tool); err != nil {
			return err
		}
	}
	return nil
}

func agentIDParam() dispatch.Param {
	return dispatch.Param{Name: "agent_id", Type: dispatch.TypeString, Required: true, Description: "ID of the agent"}
}

func (t *Toolset) limitParam(op, noun string) dispatch.Param {
	p := t.shaper.Limits().Page(op)
	return dispatch.Param{
		Name:        "limit",
		Type:        dispatch.TypeInteger,
		Default:     p.Default,
		Min:         dispatch.Bound(1),
		Max:         dispatch.Bound(float64(p.Max)),
		Description: fmt.Sprintf("Maximum %s to return (default %d, max %d)", noun, p.Default, p.Max),
	}
}

// Tools returns the tool table in presentation order.
func (t *Toolset) Tools() []dispatch.Tool {
	return []dispatch.Tool{
		{
			Name:        ListAgents,
			Description: "List agents as compact summaries: id, name, description, model, and tool and memory counts.",
			Params:      []dispatch.Param{t.limitParam(shaper.OpListAgents, "agents")},
			Mode:        dispatch.ReadOnly,
			Handler:     t.listAgents,
		},
		{
			Name:        GetAgent,
			Description: "Get one agent with its tools and core memory blocks.",
			Params:      []dispatch.Param{agentIDParam()},
			Mode:        dispatch.ReadOnly,
			Handler:     t.getAgent,
		},
		{
			Name:        SendMessage,
			Description: "Send a user message to an agent and return the agent's reply.",
			Params: []dispatch.Param{
				agentIDParam(),
				{Name: "content", Type: dispatch.TypeString, Required: true, Description: "Message text"},
			},
			Mode:    dispatch.Write,
			Handler: t.sendMessage,
		},
		{
			Name:        GetMemory,
			Description: "Get an agent's core memory blocks.",
			Params:      []dispatch.Param{agentIDParam()},
			Mode:        dispatch.ReadOnly,
			Handler:     t.getMemory,
		},
		{
			Name:        UpdateMemory,
			Description: "Replace the content of one core memory block. Fails if the content exceeds the block's character limit.",
			Params: []dispatch.Param{
				agentIDParam(),
				{Name: "block_label", Type: dispatch.TypeString, Required: true, Description: "Label of the block, e.g. persona or human"},
				{Name: "content", Type: dispatch.TypeString, Required: true, Description: "New block content"},
			},
			Mode:    dispatch.Write,
			Handler: t.updateMemory,
		},
		{
			Name:        ListTools,
			Description: "List tools available on the server as compact summaries.",
			Params:      []dispatch.Param{t.limitParam(shaper.OpListTools, "tools")},
			Mode:        dispatch.ReadOnly,
			Handler:     t.listTools,
		},
		{
			Name:        GetConversationHistory,
			Description: "Get an agent's most recent messages, oldest first. Reasoning and tool messages are hidden unless include_internal is set.",
			Params: []dispatch.Param{
				agentIDParam(),
				t.limitParam(shaper.OpConversationHistory, "messages"),
				{Name: "include_internal", Type: dispatch.TypeBoolean, Default: false, Description: "Include reasoning and tool messages"},
			},
			Mode:    dispatch.ReadOnly,
			Handler: t.conversationHistory,
		},
		{
			Name:        GetAgentTools,
			Description: "List the tools attached to an agent.",
			Params:      []dispatch.Param{agentIDParam(), t.limitParam(shaper.OpAgentTools, "tools")},
			Mode:        dispatch.ReadOnly,
			Handler:     t.agentTools,
		},
		{
			Name:        AttachTool,
			Description: "Attach a tool to an agent.",
			Params: []dispatch.Param{
				agentIDParam(),
				{Name: "tool_id", Type: dispatch.TypeString, Required: true, Description: "ID of the tool"},
			},
			Mode:    dispatch.Write,
			Handler: t.attachTool,
		},
		{
			Name:        DetachTool,
			Description: "Detach a tool from an agent.",
			Params: []dispatch.Param{
				agentIDParam(),
				{Name: "tool_id", Type: dispatch.TypeString, Required: true, Description: "ID of the tool"},
			},
			Mode:    dispatch.Write,
			Handler: t.detachTool,
		},
		{
			Name:        CreateAgent,
			Description: "Create an agent with optional model, embedding, persona and human memory.",
			Params: []dispatch.Param{
				{Name: "name", Type: dispatch.TypeString, Required: true, Description: "Agent name"},
				{Name: "description", Type: dispatch.TypeString, Description: "Agent description"},
				{Name: "model", Type: dispatch.TypeString, Description: "LLM handle, e.g. openai/gpt-4o-mini"},
				{Name: "embedding", Type: dispatch.TypeString, Description: "Embedding handle"},
				{Name: "persona", Type: dispatch.TypeString, Description: "Initial persona block"},
				{Name: "human", Type: dispatch.TypeString, Description: "Initial human block"},
			},
			Mode:    dispatch.Write,
			Handler: t.createAgent,
		},
		{
			Name:        DeleteAgent,
			Description: "Permanently delete an agent. Requires confirm=true.",
			Params: []dispatch.Param{
				agentIDParam(),
				{Name: dispatch.ConfirmParam, Type: dispatch.TypeBoolean, Required: true, Description: "Must be true"},
			},
			Mode:    dispatch.Destructive,
			Handler: t.deleteAgent,
		},
		{
			Name:        SearchArchivalMemory,
			Description: "Search an agent's archival memory. Without a query, lists passages.",
			Params: []dispatch.Param{
				agentIDParam(),
				{Name: "query", Type: dispatch.TypeString, Description: "Search text"},
				t.limitParam(shaper.OpSearchArchival, "passages"),
			},
			Mode:    dispatch.ReadOnly,
			Handler: t.searchArchival,
		},
		{
			Name:        InsertArchivalMemory,
			Description: "Store a passage in an agent's archival memory.",
			Params: []dispatch.Param{
				agentIDParam(),
				{Name: "text", Type: dispatch.TypeString, Required: true, Description: "Passage text"},
			},
			Mode:    dispatch.Write,
			Handler: t.insertArchival,
		},
		{
			Name:        HealthCheck,
			Description: "Check that the Letta server is reachable.",
			Mode:        dispatch.ReadOnly,
			Handler:     t.healthCheck,
		},
	}
}

// metadata converts shaping details into envelope metadata.
func metadata(m shaper.Meta, skipped int) dispatch.Metadata {
	out := dispatch.Metadata{
		Truncated:       m.Truncated,
		Skipped:         skipped,
		Dropped:         m.Dropped,
		TruncatedFields: m.TruncatedFields,
	}
	out.SetPage(m.Count, m.Limit)
	return out
}

func (t *Toolset) page(op string, args dispatch.Args) (int, bool) {
	return t.shaper.PageSize(op, args.Int("limit"), args.Has("limit"))
}

func (t *Toolset) listAgents(ctx context.Context, args dispatch.Args) (dispatch.Result, error) {
	limit, clamped := t.page(shaper.OpListAgents, args)
	res, err := t.api.ListAgents(ctx, limit)
	if err != nil {
		return dispatch.Result{}, err
	}
	items, meta := t.shaper.Agents(res.Items, limit)
	meta.Truncated = meta.Truncated || clamped
	return dispatch.Result{Data: items, Meta: metadata(meta, res.Skipped)}, nil
}

func (t *Toolset) getAgent(ctx context.Context, args dispatch.Args) (dispatch.Result, error) {
	agent, blocks, err := t.api.GetAgentWithMemory(ctx, args.String("agent_id"))
	if err != nil {
		return dispatch.Result{}, err
	}
	detail, meta := t.shaper.Agent(agent, blocks)
	out := dispatch.Metadata{Truncated: meta.Truncated, TruncatedFields: meta.TruncatedFields}
	return dispatch.Result{Data: detail, Meta: out}, nil
}

type replyData struct {
	AgentID  string               `json:"agent_id"`
	Messages []shaper.MessageView `json:"messages"`
}

func (t *Toolset) sendMessage(ctx context.Context, args dispatch.Args) (dispatch.Result, error) {
	agentID := args.String("agent_id")
	res, err := t.api.SendMessage(ctx, agentID, args.String("content"))
	if err != nil {
		return dispatch.Result{}, err
	}
	msgs, meta := t.shaper.Reply(res.Items, false)
	out := metadata(meta, res.Skipped)
	out.Limit = nil
	return dispatch.Result{Data: replyData{AgentID: agentID, Messages: msgs}, Meta: out}, nil
}

type memoryData struct {
	AgentID string             `json:"agent_id"`
	Blocks  []shaper.BlockView `json:"blocks"`
}

func (t *Toolset) getMemory(ctx context.Context, args dispatch.Args) (dispatch.Result, error) {
	agentID := args.String("agent_id")
	res, err := t.api.ListBlocks(ctx, agentID)
	if err != nil {
		return dispatch.Result{}, err
	}
	blocks, meta := t.shaper.Blocks(res.Items)
	out := metadata(meta, res.Skipped)
	out.Limit = nil
	return dispatch.Result{Data: memoryData{AgentID: agentID, Blocks: blocks}, Meta: out}, nil
}

type updateData struct {
	AgentID       string           `json:"agent_id"`
	Block         shaper.BlockView `json:"block"`
	PreviousChars int              `json:"previous_chars"`
}

func (t *Toolset) updateMemory(ctx context.Context, args dispatch.Args) (dispatch.Result, error) {
	agentID := args.String("agent_id")
	label := args.String("block_label")
	content := args.String("content")

	current, err := t.api.GetBlock(ctx, agentID, label)
	if err != nil {
		return dispatch.Result{}, err
	}
	if !current.Fits(content) {
		return dispatch.Result{}, &dispatch.ValidationError{
			Field: "content",
			Reason: fmt.Sprintf("is %d characters, block %q allows at most %d",
				utf8.RuneCountInString(content), label, current.Limit),
		}
	}

	updated, err := t.api.UpdateBlock(ctx, agentID, label, content)
	if err != nil {
		return dispatch.Result{}, err
	}
	var meta shaper.Meta
	view := t.shaper.Block(updated, &meta)
	out := dispatch.Metadata{Truncated: meta.Truncated, TruncatedFields: meta.TruncatedFields}
	return dispatch.Result{
		Data: updateData{AgentID: agentID, Block: view, PreviousChars: utf8.RuneCountInString(current.Value)},
		Meta: out,
	}, nil
}

func (t *Toolset) listTools(ctx context.Context, args dispatch.Args) (dispatch.Result, error) {
	limit, clamped := t.page(shaper.OpListTools, args)
	res, err := t.api.ListTools(ctx, limit)
	if err != nil {
		return dispatch.Result{}, err
	}
	items, meta := t.shaper.Tools(res.Items, limit)
	meta.Truncated = meta.Truncated || clamped
	return dispatch.Result{Data: items, Meta: metadata(meta, res.Skipped)}, nil
}

func (t *Toolset) conversationHistory(ctx context.Context, args dispatch.Args) (dispatch.Result, error) {
	limit, clamped := t.page(shaper.OpConversationHistory, args)
	includeInternal := args.Bool("include_internal")

	fetch := limit
	if !includeInternal {
		fetch = limit * internalOverfetch
	}
	res, err := t.api.ListMessages(ctx, args.String("agent_id"), fetch)
	if err != nil {
		return dispatch.Result{}, err
	}
	items, meta := t.shaper.History(res.Items, limit, includeInternal)
	meta.Truncated = meta.Truncated || clamped
	return dispatch.Result{Data: items, Meta: metadata(meta, res.Skipped)}, nil
}

func (t *Toolset) agentTools(ctx context.Context, args dispatch.Args) (dispatch.Result, error) {
	limit, clamped := t.page(shaper.OpAgentTools, args)
	res, err := t.api.ListAgentTools(ctx, args.String("agent_id"))
	if err != nil {
		return dispatch.Result{}, err
	}
	items, meta := t.shaper.Tools(res.Items, limit)
	meta.Truncated = meta.Truncated || clamped
	return dispatch.Result{Data: items, Meta: metadata(meta, res.Skipped)}, nil
}

type attachmentData struct {
	AgentID   string           `json:"agent_id"`
	ToolID    string           `json:"tool_id"`
	Attached  bool             `json:"attached"`
	ToolCount int              `json:"tool_count"`
	Tools     []shaper.ToolRef `json:"tools"`
}

func (t *Toolset) attachTool(ctx context.Context, args dispatch.Args) (dispatch.Result, error) {
	return t.changeAttachment(ctx, args, true)
}

func (t *Toolset) detachTool(ctx context.Context, args dispatch.Args) (dispatch.Result, error) {
	return t.changeAttachment(ctx, args, false)
}

func (t *Toolset) changeAttachment(ctx context.Context, args dispatch.Args, attach bool) (dispatch.Result, error) {
	agentID, toolID := args.String("agent_id"), args.String("tool_id")
	change := t.api.DetachTool
	if attach {
		change = t.api.AttachTool
	}
	agent, err := change(ctx, agentID, toolID)
	if err != nil {
		return dispatch.Result{}, err
	}

	detail, _ := t.shaper.Agent(agent, nil)
	attached := false
	for _, ref := range detail.Tools {
		if ref.ID == toolID {
			attached = true
			break
		}
	}
	return dispatch.Result{Data: attachmentData{
		AgentID:   agentID,
		ToolID:    toolID,
		Attached:  attached,
		ToolCount: len(detail.Tools),
		Tools:     detail.Tools,
	}}, nil
}

func (t *Toolset) createAgent(ctx context.Context, args dispatch.Args) (dispatch.Result, error) {
	agent, err := t.api.CreateAgent(ctx, letta.CreateAgentRequest{
		Name:        args.String("name"),
		Description: args.String("description"),
		Model:       args.String("model"),
		Embedding:   args.String("embedding"),
		Persona:     args.String("persona"),
		Human:       args.String("human"),
	})
	if err != nil {
		return dispatch.Result{}, err
	}
	detail, meta := t.shaper.Agent(agent, nil)
	return dispatch.Result{
		Data: detail,
		Meta: dispatch.Metadata{Truncated: meta.Truncated, TruncatedFields: meta.TruncatedFields},
	}, nil
}

type deleteData struct {
	AgentID string `json:"agent_id"`
	Deleted bool   `json:"deleted"`
}

func (t *Toolset) deleteAgent(ctx context.Context, args dispatch.Args) (dispatch.Result, error) {
	agentID := args.String("agent_id")
	if err := t.api.DeleteAgent(ctx, agentID); err != nil {
		return dispatch.Result{}, err
	}
	return dispatch.Result{Data: deleteData{AgentID: agentID, Deleted: true}}, nil
}

func (t *Toolset) searchArchival(ctx context.Context, args dispatch.Args) (dispatch.Result, error) {
	limit, clamped := t.page(shaper.OpSearchArchival, args)
	res, err := t.api.SearchArchival(ctx, args.String("agent_id"), args.String("query"), limit)
	if err != nil {
		return dispatch.Result{}, err
	}
	items, meta := t.shaper.Passages(res.Items, limit)
	meta.Truncated = meta.Truncated || clamped
	return dispatch.Result{Data: items, Meta: metadata(meta, res.Skipped)}, nil
}

type insertData struct {
	AgentID  string               `json:"agent_id"`
	Passages []shaper.PassageView `json:"passages"`
}

func (t *Toolset) insertArchival(ctx context.Context, args dispatch.Args) (dispatch.Result, error) {
	agentID := args.String("agent_id")
	res, err := t.api.InsertArchival(ctx, agentID, args.String("text"))
	if err != nil {
		return dispatch.Result{}, err
	}
	items, meta := t.shaper.Passages(res.Items, len(res.Items))
	out := metadata(meta, res.Skipped)
	out.Limit = nil
	return dispatch.Result{Data: insertData{AgentID: agentID, Passages: items}, Meta: out}, nil
}

func (t *Toolset) healthCheck(ctx context.Context, _ dispatch.Args) (dispatch.Result, error) {
	h, err := t.api.Health(ctx)
	if err != nil {
		return dispatch.Result{}, err
	}
	return dispatch.Result{Data: h}, nil
}
