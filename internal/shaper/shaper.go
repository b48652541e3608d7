package shaper

import (
	"encoding/json"
	"slices"

	"github.com/thoreinstein/letta-mcp/internal/models"
)

// Meta reports what shaping did to a result. It is merged into the
// envelope metadata.
type Meta struct {
	// Count is the number of items returned.
	Count int
	// Limit is the effective page size.
	Limit int
	// Truncated is set when anything was clamped, cut, or dropped.
	Truncated bool
	// Dropped counts items removed to fit the response budget.
	Dropped int
	// TruncatedFields lists the fields that had at least one value cut.
	TruncatedFields []string
}

func (m *Meta) markField(name string) {
	m.Truncated = true
	if !slices.Contains(m.TruncatedFields, name) {
		m.TruncatedFields = append(m.TruncatedFields, name)
	}
}

// Shaper applies Limits. It holds no mutable state and is safe for
// concurrent use.
type Shaper struct {
	limits Limits
}

// New returns a Shaper for limits. Zero thresholds fall back to defaults.
func New(limits Limits) *Shaper {
	def := DefaultLimits()
	if limits.TextChars <= 0 {
		limits.TextChars = def.TextChars
	}
	if limits.DetailChars <= 0 {
		limits.DetailChars = def.DetailChars
	}
	if limits.ResponseChars <= 0 {
		limits.ResponseChars = def.ResponseChars
	}
	return &Shaper{limits: limits}
}

// Limits returns the effective thresholds.
func (s *Shaper) Limits() Limits {
	return s.limits
}

// PageSize resolves the page size for op. When set is false the default
// applies; otherwise requested is clamped to [1, Max] and clamped reports
// whether it had to be.
func (s *Shaper) PageSize(op string, requested int, set bool) (size int, clamped bool) {
	p := s.limits.Page(op)
	if !set {
		return p.Default, false
	}
	switch {
	case requested < 1:
		return 1, true
	case requested > p.Max:
		return p.Max, true
	default:
		return requested, false
	}
}

func (s *Shaper) text(meta *Meta, field, v string) string {
	out, cut := Truncate(v, s.limits.TextChars)
	if cut {
		meta.markField(field)
	}
	return out
}

func (s *Shaper) detail(meta *Meta, field, v string) string {
	out, cut := Truncate(v, s.limits.DetailChars)
	if cut {
		meta.markField(field)
	}
	return out
}

// head keeps the first limit items.
func head[T any](items []T, limit int, meta *Meta) []T {
	meta.Limit = limit
	if len(items) > limit {
		meta.Truncated = true
		return items[:limit]
	}
	return items
}

// fit drops items until the encoded list fits budget. Listings drop from the
// tail; histories (dropOldest) drop from the front, keeping the newest.
func fit[T any](items []T, budget int, dropOldest bool, meta *Meta) []T {
	costs := make([]int, len(items))
	total := 2 // []
	for i, it := range items {
		b, err := json.Marshal(it)
		if err != nil {
			costs[i] = 0
			continue
		}
		costs[i] = len(b) + 1 // trailing comma
		total += costs[i]
	}

	start, end := 0, len(items)
	for total > budget && start < end {
		if dropOldest {
			total -= costs[start]
			start++
		} else {
			end--
			total -= costs[end]
		}
	}

	if dropped := len(items) - (end - start); dropped > 0 {
		meta.Dropped = dropped
		meta.Truncated = true
	}
	out := items[start:end]
	meta.Count = len(out)
	return out
}

// Agents projects an agent listing.
func (s *Shaper) Agents(agents []models.AgentInfo, limit int) ([]AgentSummary, Meta) {
	var meta Meta
	agents = head(agents, limit, &meta)

	out := make([]AgentSummary, 0, len(agents))
	for _, a := range agents {
		out = append(out, AgentSummary{
			ID:               a.ID,
			Name:             a.Name,
			Description:      s.text(&meta, "description", a.Description),
			CreatedAt:        timestamp(a.CreatedAt),
			Model:            a.Model,
			ToolCount:        len(a.ToolIDs),
			MemoryBlockCount: len(a.BlockIDs),
		})
	}
	return fit(out, s.limits.ResponseChars, false, &meta), meta
}

// Tools projects a tool listing.
func (s *Shaper) Tools(tools []models.ToolInfo, limit int) ([]ToolSummary, Meta) {
	var meta Meta
	tools = head(tools, limit, &meta)

	out := make([]ToolSummary, 0, len(tools))
	for _, t := range tools {
		out = append(out, ToolSummary{
			ID:          t.ID,
			Name:        t.Name,
			Description: s.text(&meta, "description", t.Description),
			Tags:        t.Tags,
		})
	}
	return fit(out, s.limits.ResponseChars, false, &meta), meta
}

// History keeps the newest limit messages, oldest first. Internal messages
// are filtered out before paging unless includeInternal is set.
func (s *Shaper) History(msgs []models.Message, limit int, includeInternal bool) ([]MessageView, Meta) {
	var meta Meta
	meta.Limit = limit

	visible := make([]models.Message, 0, len(msgs))
	for _, m := range msgs {
		if includeInternal || !m.Internal() {
			visible = append(visible, m)
		}
	}
	if len(visible) > limit {
		visible = visible[len(visible)-limit:]
		meta.Truncated = true
	}

	out := make([]MessageView, 0, len(visible))
	for _, m := range visible {
		out = append(out, s.messageView(&meta, m, s.text))
	}
	return fit(out, s.limits.ResponseChars, true, &meta), meta
}

// Reply bounds the messages produced by a send. Internal messages are
// omitted unless includeInternal is set. Content uses the detail ceiling.
func (s *Shaper) Reply(msgs []models.Message, includeInternal bool) ([]MessageView, Meta) {
	var meta Meta
	out := make([]MessageView, 0, len(msgs))
	for _, m := range msgs {
		if !includeInternal && m.Internal() {
			continue
		}
		out = append(out, s.messageView(&meta, m, s.detail))
	}
	meta.Limit = len(out)
	return fit(out, s.limits.ResponseChars, true, &meta), meta
}

func (s *Shaper) messageView(meta *Meta, m models.Message, bound func(*Meta, string, string) string) MessageView {
	v := MessageView{
		ID:      m.ID,
		Role:    m.Role,
		Type:    m.Type,
		Content: bound(meta, "content", m.Content),
		Date:    timestamp(m.Date),
	}
	if m.ToolCall != nil {
		v.ToolName = m.ToolCall.Name
	}
	return v
}

// Passages projects an archival search result.
func (s *Shaper) Passages(passages []models.Passage, limit int) ([]PassageView, Meta) {
	var meta Meta
	passages = head(passages, limit, &meta)

	out := make([]PassageView, 0, len(passages))
	for _, p := range passages {
		out = append(out, PassageView{
			ID:        p.ID,
			Text:      s.text(&meta, "text", p.Text),
			CreatedAt: timestamp(p.CreatedAt),
		})
	}
	return fit(out, s.limits.ResponseChars, false, &meta), meta
}

// Block bounds a single memory block.
func (s *Shaper) Block(b models.MemoryBlock, meta *Meta) BlockView {
	return BlockView{
		ID:          b.ID,
		Label:       b.Label,
		Value:       s.detail(meta, "value", b.Value),
		Chars:       len([]rune(b.Value)),
		Limit:       b.Limit,
		Description: s.detail(meta, "description", b.Description),
	}
}

// Blocks bounds an agent's core memory.
func (s *Shaper) Blocks(blocks []models.MemoryBlock) ([]BlockView, Meta) {
	var meta Meta
	out := make([]BlockView, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, s.Block(b, &meta))
	}
	meta.Limit = len(out)
	return fit(out, s.limits.ResponseChars, false, &meta), meta
}

// Agent bounds a single agent together with its memory.
func (s *Shaper) Agent(a models.AgentInfo, blocks []models.MemoryBlock) (AgentDetail, Meta) {
	var meta Meta
	d := AgentDetail{
		ID:          a.ID,
		Name:        a.Name,
		Description: s.detail(&meta, "description", a.Description),
		Model:       a.Model,
		CreatedAt:   timestamp(a.CreatedAt),
		Persona:     s.detail(&meta, "persona", a.Persona),
		System:      s.detail(&meta, "system", a.System),
		Tags:        a.Tags,
		Tools:       make([]ToolRef, 0, len(a.ToolIDs)),
	}
	for i, id := range a.ToolIDs {
		ref := ToolRef{ID: id}
		if i < len(a.ToolNames) {
			ref.Name = a.ToolNames[i]
		}
		d.Tools = append(d.Tools, ref)
	}

	d.Memory = make([]BlockView, 0, len(blocks))
	for _, b := range blocks {
		d.Memory = append(d.Memory, s.Block(b, &meta))
	}
	meta.Count = 1
	return d, meta
}
