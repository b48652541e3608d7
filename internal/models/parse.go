package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// ParseError reports a record that could not be turned into a model.
type ParseError struct {
	Model string
	// Field is the missing or malformed field. "$" means the whole document.
	Field string
}

func (e *ParseError) Error() string {
	if e.Field == "$" {
		return fmt.Sprintf("parse %s: unexpected document shape", e.Model)
	}
	return fmt.Sprintf("parse %s: missing or invalid field %q", e.Model, e.Field)
}

// ListResult is the outcome of a partial-success list parse.
type ListResult[T any] struct {
	Items []T
	// Skipped counts malformed items that were dropped.
	Skipped int
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// ParseTime accepts RFC3339 and naive ISO timestamps. Naive values are UTC.
// Anything else yields the zero time.
func ParseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func object(model string, data []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(data) {
		return gjson.Result{}, &ParseError{Model: model, Field: "$"}
	}
	r := gjson.ParseBytes(data)
	if !r.IsObject() {
		return gjson.Result{}, &ParseError{Model: model, Field: "$"}
	}
	return r, nil
}

func requireString(model string, r gjson.Result, field string) (string, error) {
	v := r.Get(field)
	if v.Type != gjson.String || strings.TrimSpace(v.String()) == "" {
		return "", &ParseError{Model: model, Field: field}
	}
	return v.String(), nil
}

func stringList(r gjson.Result) []string {
	if !r.IsArray() {
		return nil
	}
	var out []string
	for _, v := range r.Array() {
		if v.Type == gjson.String {
			out = append(out, v.String())
		}
	}
	return out
}

// ParseAgent builds an AgentInfo from an upstream agent object.
func ParseAgent(data []byte) (AgentInfo, error) {
	r, err := object("agent", data)
	if err != nil {
		return AgentInfo{}, err
	}
	return agentFrom(r)
}

func agentFrom(r gjson.Result) (AgentInfo, error) {
	if !r.IsObject() {
		return AgentInfo{}, &ParseError{Model: "agent", Field: "$"}
	}
	id, err := requireString("agent", r, "id")
	if err != nil {
		return AgentInfo{}, err
	}
	name, err := requireString("agent", r, "name")
	if err != nil {
		return AgentInfo{}, err
	}

	a := AgentInfo{
		ID:          id,
		Name:        name,
		Description: r.Get("description").String(),
		CreatedAt:   ParseTime(r.Get("created_at").String()),
		System:      r.Get("system").String(),
		Tags:        stringList(r.Get("tags")),
	}

	a.Model = r.Get("llm_config.model").String()
	if a.Model == "" {
		a.Model = r.Get("model").String()
	}

	for _, t := range r.Get("tools").Array() {
		if id := t.Get("id").String(); id != "" {
			a.ToolIDs = append(a.ToolIDs, id)
			a.ToolNames = append(a.ToolNames, t.Get("name").String())
		}
	}
	if len(a.ToolIDs) == 0 {
		a.ToolIDs = stringList(r.Get("tool_ids"))
	}

	blocks := r.Get("memory.blocks")
	if !blocks.IsArray() {
		blocks = r.Get("blocks")
	}
	for _, b := range blocks.Array() {
		id := b.Get("id").String()
		label := b.Get("label").String()
		if id == "" || label == "" {
			continue
		}
		a.BlockIDs = append(a.BlockIDs, id)
		a.BlockLabels = append(a.BlockLabels, label)
		if label == "persona" {
			a.Persona = b.Get("value").String()
		}
	}
	return a, nil
}

// ParseMemoryBlock builds a MemoryBlock from an upstream block object.
func ParseMemoryBlock(data []byte) (MemoryBlock, error) {
	r, err := object("memory_block", data)
	if err != nil {
		return MemoryBlock{}, err
	}
	return blockFrom(r)
}

func blockFrom(r gjson.Result) (MemoryBlock, error) {
	if !r.IsObject() {
		return MemoryBlock{}, &ParseError{Model: "memory_block", Field: "$"}
	}
	id, err := requireString("memory_block", r, "id")
	if err != nil {
		return MemoryBlock{}, err
	}
	label, err := requireString("memory_block", r, "label")
	if err != nil {
		return MemoryBlock{}, err
	}
	return MemoryBlock{
		ID:          id,
		Label:       label,
		Value:       r.Get("value").String(),
		Limit:       int(r.Get("limit").Int()),
		Description: r.Get("description").String(),
	}, nil
}

// ParseTool builds a ToolInfo from an upstream tool object.
func ParseTool(data []byte) (ToolInfo, error) {
	r, err := object("tool", data)
	if err != nil {
		return ToolInfo{}, err
	}
	return toolFrom(r)
}

func toolFrom(r gjson.Result) (ToolInfo, error) {
	if !r.IsObject() {
		return ToolInfo{}, &ParseError{Model: "tool", Field: "$"}
	}
	id, err := requireString("tool", r, "id")
	if err != nil {
		return ToolInfo{}, err
	}
	name, err := requireString("tool", r, "name")
	if err != nil {
		return ToolInfo{}, err
	}
	t := ToolInfo{
		ID:          id,
		Name:        name,
		Description: r.Get("description").String(),
		Tags:        stringList(r.Get("tags")),
		SourceType:  r.Get("source_type").String(),
	}
	if schema := r.Get("json_schema"); schema.IsObject() {
		t.Parameters = json.RawMessage(schema.Raw)
	}
	return t, nil
}

// ParseMessage builds a Message from one upstream LettaMessage.
func ParseMessage(data []byte) (Message, error) {
	r, err := object("message", data)
	if err != nil {
		return Message{}, err
	}
	return messageFrom(r)
}

func messageFrom(r gjson.Result) (Message, error) {
	if !r.IsObject() {
		return Message{}, &ParseError{Model: "message", Field: "$"}
	}
	id, err := requireString("message", r, "id")
	if err != nil {
		return Message{}, err
	}
	typ, err := requireString("message", r, "message_type")
	if err != nil {
		return Message{}, err
	}

	m := Message{
		ID:   id,
		Type: typ,
		Role: RoleForType(typ),
		Date: ParseTime(r.Get("date").String()),
	}

	switch typ {
	case TypeReasoningMessage:
		m.Content = r.Get("reasoning").String()
	case TypeHiddenReasoning:
		m.Content = r.Get("hidden_reasoning").String()
	case TypeToolCallMessage:
		call := r.Get("tool_call")
		m.ToolCall = &ToolCall{
			Name:      call.Get("name").String(),
			Arguments: call.Get("arguments").String(),
			ID:        call.Get("tool_call_id").String(),
		}
		m.Content = m.ToolCall.Arguments
	case TypeToolReturnMessage:
		m.Content = r.Get("tool_return").String()
		if name := r.Get("name").String(); name != "" {
			m.ToolCall = &ToolCall{Name: name, ID: r.Get("tool_call_id").String()}
		}
	default:
		m.Content = content(r.Get("content"))
	}
	return m, nil
}

// content flattens a string or an array of {type:"text", text} parts.
func content(r gjson.Result) string {
	if r.Type == gjson.String {
		return r.String()
	}
	if !r.IsArray() {
		return ""
	}
	var parts []string
	for _, p := range r.Array() {
		switch {
		case p.Type == gjson.String:
			parts = append(parts, p.String())
		case p.Get("type").String() == "text":
			parts = append(parts, p.Get("text").String())
		}
	}
	return strings.Join(parts, "\n")
}

// ParsePassage builds a Passage from an upstream archival record.
func ParsePassage(data []byte) (Passage, error) {
	r, err := object("passage", data)
	if err != nil {
		return Passage{}, err
	}
	return passageFrom(r)
}

func passageFrom(r gjson.Result) (Passage, error) {
	if !r.IsObject() {
		return Passage{}, &ParseError{Model: "passage", Field: "$"}
	}
	id, err := requireString("passage", r, "id")
	if err != nil {
		return Passage{}, err
	}
	return Passage{
		ID:        id,
		Text:      r.Get("text").String(),
		CreatedAt: ParseTime(r.Get("created_at").String()),
	}, nil
}

// parseList applies fn to every element of a top-level array. envelopeKey,
// when set, also accepts {"<key>": [...]} wrappers.
func parseList[T any](model, envelopeKey string, data []byte, fn func(gjson.Result) (T, error)) (ListResult[T], error) {
	if !gjson.ValidBytes(data) {
		return ListResult[T]{}, &ParseError{Model: model, Field: "$"}
	}
	r := gjson.ParseBytes(data)
	if envelopeKey != "" && r.IsObject() {
		r = r.Get(envelopeKey)
	}
	if !r.IsArray() {
		return ListResult[T]{}, &ParseError{Model: model, Field: "$"}
	}

	out := ListResult[T]{Items: []T{}}
	for _, item := range r.Array() {
		v, err := fn(item)
		if err != nil {
			out.Skipped++
			continue
		}
		out.Items = append(out.Items, v)
	}
	return out, nil
}

// ParseAgents parses an agent listing.
func ParseAgents(data []byte) (ListResult[AgentInfo], error) {
	return parseList("agent", "", data, agentFrom)
}

// ParseBlocks parses a core memory block listing.
func ParseBlocks(data []byte) (ListResult[MemoryBlock], error) {
	return parseList("memory_block", "", data, blockFrom)
}

// ParseTools parses a tool listing.
func ParseTools(data []byte) (ListResult[ToolInfo], error) {
	return parseList("tool", "", data, toolFrom)
}

// ParsePassages parses an archival memory listing.
func ParsePassages(data []byte) (ListResult[Passage], error) {
	return parseList("passage", "", data, passageFrom)
}

// ParseMessages parses a message listing, either a bare array or the
// {"messages": [...]} reply of a send. The result is ordered by date, ties
// kept in upstream order.
func ParseMessages(data []byte) (ListResult[Message], error) {
	res, err := parseList("message", "messages", data, messageFrom)
	if err != nil {
		return res, err
	}
	sort.SliceStable(res.Items, func(i, j int) bool {
		return res.Items[i].Date.Before(res.Items[j].Date)
	})
	return res, nil
}
