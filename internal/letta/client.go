package letta

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"

	"github.com/thoreinstein/letta-mcp/internal/models"
	"github.com/thoreinstein/letta-mcp/internal/retry"
	"github.com/thoreinstein/letta-mcp/internal/transport"
)

// Invoker performs a single upstream call. *transport.Client implements it.
type Invoker interface {
	Invoke(ctx context.Context, method, path string, payload any) (*transport.RawResponse, error)
}

// Client issues typed Letta operations. It is safe for concurrent use.
type Client struct {
	invoker Invoker
	reads   retry.Policy
	writes  retry.Policy
	logger  *slog.Logger
}

// New returns a Client that retries reads under policy. Writes are not
// idempotent and use policy.ForWrites, which only repeats requests the
// upstream cannot have applied.
func New(invoker Invoker, policy retry.Policy, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if policy.Logger == nil {
		policy.Logger = logger
	}
	return &Client{invoker: invoker, reads: policy, writes: policy.ForWrites(), logger: logger}
}

// CreateAgentRequest holds the fields accepted when creating an agent.
type CreateAgentRequest struct {
	Name        string
	Description string
	Model       string
	Embedding   string
	Persona     string
	Human       string
}

// Health is the upstream health report.
type Health struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

func (c *Client) call(ctx context.Context, method, path string, payload any) ([]byte, error) {
	policy := c.reads
	if method != http.MethodGet {
		policy = c.writes
	}
	return retry.Do(ctx, policy, func(ctx context.Context) ([]byte, error) {
		resp, err := c.invoker.Invoke(ctx, method, path, payload)
		if err != nil {
			return nil, err
		}
		return resp.Body, nil
	})
}

func agentPath(agentID string, rest ...string) string {
	p := "/v1/agents/" + url.PathEscape(agentID)
	for _, r := range rest {
		p += "/" + r
	}
	return p
}

func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

func limitQuery(limit int) url.Values {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return q
}

// ListAgents returns up to limit agents.
func (c *Client) ListAgents(ctx context.Context, limit int) (models.ListResult[models.AgentInfo], error) {
	body, err := c.call(ctx, http.MethodGet, withQuery("/v1/agents/", limitQuery(limit)), nil)
	if err != nil {
		return models.ListResult[models.AgentInfo]{}, err
	}
	return models.ParseAgents(body)
}

// GetAgent returns a single agent.
func (c *Client) GetAgent(ctx context.Context, agentID string) (models.AgentInfo, error) {
	body, err := c.call(ctx, http.MethodGet, agentPath(agentID), nil)
	if err != nil {
		return models.AgentInfo{}, err
	}
	return models.ParseAgent(body)
}

// GetAgentWithMemory fetches an agent and its core memory blocks
// concurrently. Either failure fails the whole call.
func (c *Client) GetAgentWithMemory(ctx context.Context, agentID string) (models.AgentInfo, []models.MemoryBlock, error) {
	var (
		agent  models.AgentInfo
		blocks models.ListResult[models.MemoryBlock]
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		agent, err = c.GetAgent(gctx, agentID)
		return err
	})
	g.Go(func() error {
		var err error
		blocks, err = c.ListBlocks(gctx, agentID)
		return err
	})
	if err := g.Wait(); err != nil {
		return models.AgentInfo{}, nil, err
	}

	for _, b := range blocks.Items {
		if b.Label == "persona" && agent.Persona == "" {
			agent.Persona = b.Value
		}
	}
	return agent, blocks.Items, nil
}

// CreateAgent creates an agent with optional persona and human blocks.
func (c *Client) CreateAgent(ctx context.Context, req CreateAgentRequest) (models.AgentInfo, error) {
	payload := map[string]any{"name": req.Name}
	if req.Description != "" {
		payload["description"] = req.Description
	}
	if req.Model != "" {
		payload["model"] = req.Model
	}
	if req.Embedding != "" {
		payload["embedding"] = req.Embedding
	}
	var blocks []map[string]string
	if req.Persona != "" {
		blocks = append(blocks, map[string]string{"label": "persona", "value": req.Persona})
	}
	if req.Human != "" {
		blocks = append(blocks, map[string]string{"label": "human", "value": req.Human})
	}
	if len(blocks) > 0 {
		payload["memory_blocks"] = blocks
	}

	body, err := c.call(ctx, http.MethodPost, "/v1/agents/", payload)
	if err != nil {
		return models.AgentInfo{}, err
	}
	return models.ParseAgent(body)
}

// DeleteAgent permanently removes an agent.
func (c *Client) DeleteAgent(ctx context.Context, agentID string) error {
	_, err := c.call(ctx, http.MethodDelete, agentPath(agentID), nil)
	return err
}

// SendMessage posts a user message and returns the messages the agent
// produced in response.
func (c *Client) SendMessage(ctx context.Context, agentID, content string) (models.ListResult[models.Message], error) {
	payload := map[string]any{
		"messages": []map[string]string{{"role": "user", "content": content}},
	}
	body, err := c.call(ctx, http.MethodPost, agentPath(agentID, "messages"), payload)
	if err != nil {
		return models.ListResult[models.Message]{}, err
	}
	return models.ParseMessages(body)
}

// ListMessages returns up to limit of the agent's most recent messages.
func (c *Client) ListMessages(ctx context.Context, agentID string, limit int) (models.ListResult[models.Message], error) {
	body, err := c.call(ctx, http.MethodGet, withQuery(agentPath(agentID, "messages"), limitQuery(limit)), nil)
	if err != nil {
		return models.ListResult[models.Message]{}, err
	}
	return models.ParseMessages(body)
}

// ListBlocks returns the agent's core memory blocks.
func (c *Client) ListBlocks(ctx context.Context, agentID string) (models.ListResult[models.MemoryBlock], error) {
	body, err := c.call(ctx, http.MethodGet, agentPath(agentID, "core-memory", "blocks"), nil)
	if err != nil {
		return models.ListResult[models.MemoryBlock]{}, err
	}
	return models.ParseBlocks(body)
}

// GetBlock returns one core memory block by label.
func (c *Client) GetBlock(ctx context.Context, agentID, label string) (models.MemoryBlock, error) {
	body, err := c.call(ctx, http.MethodGet, agentPath(agentID, "core-memory", "blocks", url.PathEscape(label)), nil)
	if err != nil {
		return models.MemoryBlock{}, err
	}
	return models.ParseMemoryBlock(body)
}

// UpdateBlock replaces a block's value. Callers validate against the
// block limit first.
func (c *Client) UpdateBlock(ctx context.Context, agentID, label, value string) (models.MemoryBlock, error) {
	path := agentPath(agentID, "core-memory", "blocks", url.PathEscape(label))
	body, err := c.call(ctx, http.MethodPatch, path, map[string]string{"value": value})
	if err != nil {
		return models.MemoryBlock{}, err
	}
	return models.ParseMemoryBlock(body)
}

// ListTools returns up to limit tools known to the upstream.
func (c *Client) ListTools(ctx context.Context, limit int) (models.ListResult[models.ToolInfo], error) {
	body, err := c.call(ctx, http.MethodGet, withQuery("/v1/tools/", limitQuery(limit)), nil)
	if err != nil {
		return models.ListResult[models.ToolInfo]{}, err
	}
	return models.ParseTools(body)
}

// ListAgentTools returns the tools attached to an agent.
func (c *Client) ListAgentTools(ctx context.Context, agentID string) (models.ListResult[models.ToolInfo], error) {
	body, err := c.call(ctx, http.MethodGet, agentPath(agentID, "tools"), nil)
	if err != nil {
		return models.ListResult[models.ToolInfo]{}, err
	}
	return models.ParseTools(body)
}

// AttachTool attaches a tool and returns the updated agent.
func (c *Client) AttachTool(ctx context.Context, agentID, toolID string) (models.AgentInfo, error) {
	body, err := c.call(ctx, http.MethodPatch, agentPath(agentID, "tools", "attach", url.PathEscape(toolID)), nil)
	if err != nil {
		return models.AgentInfo{}, err
	}
	return models.ParseAgent(body)
}

// DetachTool detaches a tool and returns the updated agent.
func (c *Client) DetachTool(ctx context.Context, agentID, toolID string) (models.AgentInfo, error) {
	body, err := c.call(ctx, http.MethodPatch, agentPath(agentID, "tools", "detach", url.PathEscape(toolID)), nil)
	if err != nil {
		return models.AgentInfo{}, err
	}
	return models.ParseAgent(body)
}

// SearchArchival queries archival memory. An empty query lists passages.
func (c *Client) SearchArchival(ctx context.Context, agentID, query string, limit int) (models.ListResult[models.Passage], error) {
	q := limitQuery(limit)
	if query != "" {
		q.Set("search", query)
	}
	body, err := c.call(ctx, http.MethodGet, withQuery(agentPath(agentID, "archival-memory"), q), nil)
	if err != nil {
		return models.ListResult[models.Passage]{}, err
	}
	return models.ParsePassages(body)
}

// InsertArchival stores text in archival memory and returns the passages
// the upstream created.
func (c *Client) InsertArchival(ctx context.Context, agentID, text string) (models.ListResult[models.Passage], error) {
	body, err := c.call(ctx, http.MethodPost, agentPath(agentID, "archival-memory"), map[string]string{"text": text})
	if err != nil {
		return models.ListResult[models.Passage]{}, err
	}
	if gjson.ParseBytes(body).IsObject() {
		p, err := models.ParsePassage(body)
		if err != nil {
			return models.ListResult[models.Passage]{}, err
		}
		return models.ListResult[models.Passage]{Items: []models.Passage{p}}, nil
	}
	return models.ParsePassages(body)
}

// Health reports upstream liveness.
func (c *Client) Health(ctx context.Context) (Health, error) {
	body, err := c.call(ctx, http.MethodGet, "/v1/health/", nil)
	if err != nil {
		return Health{}, err
	}
	h := Health{
		Status:  gjson.GetBytes(body, "status").String(),
		Version: gjson.GetBytes(body, "version").String(),
	}
	if h.Status == "" {
		h.Status = "ok"
	}
	return h, nil
}

// Ping checks connectivity and returns the number of visible agents.
func (c *Client) Ping(ctx context.Context) (int, error) {
	if _, err := c.Health(ctx); err != nil {
		return 0, err
	}
	agents, err := c.ListAgents(ctx, 0)
	if err != nil {
		return 0, err
	}
	return len(agents.Items), nil
}
