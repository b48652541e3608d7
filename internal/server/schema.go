package server

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/thoreinstein/letta-mcp/internal/dispatch"
)

// Definition converts a dispatch tool into its MCP description.
func Definition(t dispatch.Tool) mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription(t.Description),
		mcp.WithReadOnlyHintAnnotation(t.Mode == dispatch.ReadOnly),
		mcp.WithDestructiveHintAnnotation(t.Mode == dispatch.Destructive),
		mcp.WithIdempotentHintAnnotation(t.Mode == dispatch.ReadOnly),
		mcp.WithOpenWorldHintAnnotation(true),
	}
	for _, p := range t.Params {
		opts = append(opts, paramOption(p))
	}

	tool := mcp.NewTool(t.Name, opts...)
	for _, p := range t.Params {
		if p.Type != dispatch.TypeInteger {
			continue
		}
		if prop, ok := tool.InputSchema.Properties[p.Name].(map[string]any); ok {
			prop["type"] = "integer"
		}
	}
	return tool
}

func paramOption(p dispatch.Param) mcp.ToolOption {
	var props []mcp.PropertyOption
	if p.Required {
		props = append(props, mcp.Required())
	}
	if p.Description != "" {
		props = append(props, mcp.Description(p.Description))
	}

	switch p.Type {
	case dispatch.TypeString:
		if s, ok := p.Default.(string); ok {
			props = append(props, mcp.DefaultString(s))
		}
		if p.Min != nil {
			props = append(props, mcp.MinLength(int(*p.Min)))
		}
		if p.Max != nil {
			props = append(props, mcp.MaxLength(int(*p.Max)))
		}
		return mcp.WithString(p.Name, props...)

	case dispatch.TypeInteger, dispatch.TypeNumber:
		switch d := p.Default.(type) {
		case int:
			props = append(props, mcp.DefaultNumber(float64(d)))
		case float64:
			props = append(props, mcp.DefaultNumber(d))
		}
		if p.Min != nil {
			props = append(props, mcp.Min(*p.Min))
		}
		if p.Max != nil {
			props = append(props, mcp.Max(*p.Max))
		}
		return mcp.WithNumber(p.Name, props...)

	case dispatch.TypeBoolean:
		if b, ok := p.Default.(bool); ok {
			props = append(props, mcp.DefaultBool(b))
		}
		return mcp.WithBoolean(p.Name, props...)

	case dispatch.TypeArray:
		switch p.Items {
		case dispatch.TypeString:
			props = append(props, mcp.WithStringItems())
		case dispatch.TypeInteger, dispatch.TypeNumber:
			props = append(props, mcp.WithNumberItems())
		}
		return mcp.WithArray(p.Name, props...)

	default:
		return mcp.WithObject(p.Name, props...)
	}
}
