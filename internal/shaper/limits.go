package shaper

// Page operations.
const (
	OpListAgents          = "list_agents"
	OpListTools           = "list_tools"
	OpAgentTools          = "agent_tools"
	OpConversationHistory = "conversation_history"
	OpSearchArchival      = "search_archival"
)

// PageLimit is the default and maximum page size of one operation.
type PageLimit struct {
	Default int
	Max     int
}

// Limits holds every shaping threshold.
type Limits struct {
	// TextChars bounds free text in list items.
	TextChars int
	// DetailChars bounds free text in single-entity views.
	DetailChars int
	// ResponseChars bounds the encoded size of a whole listing.
	ResponseChars int
	Pages         map[string]PageLimit
}

// DefaultLimits returns the built-in thresholds.
func DefaultLimits() Limits {
	return Limits{
		TextChars:     200,
		DetailChars:   2000,
		ResponseChars: 100000,
		Pages: map[string]PageLimit{
			OpListAgents:          {Default: 10, Max: 50},
			OpListTools:           {Default: 20, Max: 100},
			OpAgentTools:          {Default: 20, Max: 100},
			OpConversationHistory: {Default: 10, Max: 50},
			OpSearchArchival:      {Default: 10, Max: 50},
		},
	}
}

// Page returns the page limits of op, falling back to the built-in values
// for operations the caller did not configure.
func (l Limits) Page(op string) PageLimit {
	if p, ok := l.Pages[op]; ok && p.Default > 0 && p.Max >= p.Default {
		return p
	}
	if p, ok := DefaultLimits().Pages[op]; ok {
		return p
	}
	return PageLimit{Default: 10, Max: 50}
}
