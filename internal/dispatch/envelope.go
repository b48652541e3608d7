package dispatch

import (
	"context"
	"fmt"

	"github.com/thoreinstein/letta-mcp/internal/config"
	"github.com/thoreinstein/letta-mcp/internal/errors"
	"github.com/thoreinstein/letta-mcp/internal/models"
	"github.com/thoreinstein/letta-mcp/internal/retry"
	"github.com/thoreinstein/letta-mcp/internal/transport"
)

// Envelope error kinds. These strings are part of the wire contract.
const (
	KindValidation    = "ValidationError"
	KindRetry         = "RetryExhausted"
	KindTransport     = "TransportError"
	KindParse         = "ParseError"
	KindConfiguration = "ConfigurationError"
	KindInternal      = "InternalError"
	KindCancelled     = "Cancelled"
)

// Envelope is the uniform result of every tool call.
type Envelope struct {
	Success  bool       `json:"success"`
	Data     any        `json:"data,omitempty"`
	Error    *ErrorInfo `json:"error,omitempty"`
	Metadata Metadata   `json:"metadata"`
}

// ErrorInfo describes a failed call.
type ErrorInfo struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Status  int    `json:"status,omitempty"`
}

// Metadata accompanies every envelope. Count and Limit are pointers so a
// zero count is still reported.
type Metadata struct {
	Tool            string   `json:"tool"`
	RequestID       string   `json:"request_id"`
	DurationMS      int64    `json:"duration_ms"`
	Idempotent      bool     `json:"idempotent"`
	Truncated       bool     `json:"truncated"`
	Count           *int     `json:"count,omitempty"`
	Limit           *int     `json:"limit,omitempty"`
	Skipped         int      `json:"skipped,omitempty"`
	Dropped         int      `json:"dropped,omitempty"`
	TruncatedFields []string `json:"truncated_fields,omitempty"`
}

// SetPage records the item count and effective page size.
func (m *Metadata) SetPage(count, limit int) {
	m.Count = &count
	m.Limit = &limit
}

// SetCount records the item count of an unpaged result.
func (m *Metadata) SetCount(count int) {
	m.Count = &count
}

// merge copies handler-reported shaping details into m.
func (m *Metadata) merge(from Metadata) {
	m.Truncated = m.Truncated || from.Truncated
	m.Count = from.Count
	m.Limit = from.Limit
	m.Skipped = from.Skipped
	m.Dropped = from.Dropped
	m.TruncatedFields = from.TruncatedFields
}

// translate maps an error onto its envelope representation. Retry
// exhaustion is checked first because it wraps the transport error.
func translate(err error) *ErrorInfo {
	var (
		verr      *ValidationError
		exhausted *retry.ExhaustedError
		terr      *transport.Error
		perr      *models.ParseError
		cerr      *config.ConfigurationError
	)

	switch {
	case errors.As(err, &verr):
		return &ErrorInfo{Kind: KindValidation, Message: verr.Error(), Field: verr.Field}
	case errors.As(err, &exhausted):
		info := &ErrorInfo{Kind: KindRetry, Message: exhausted.Error()}
		if errors.As(exhausted.Cause, &terr) {
			info.Status = terr.StatusCode
		}
		return info
	case errors.As(err, &terr):
		return &ErrorInfo{Kind: KindTransport, Message: terr.Error(), Status: terr.StatusCode}
	case errors.As(err, &perr):
		return &ErrorInfo{Kind: KindParse, Message: perr.Error(), Field: perr.Field}
	case errors.As(err, &cerr):
		return &ErrorInfo{Kind: KindConfiguration, Message: cerr.Error(), Field: cerr.Field}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return &ErrorInfo{Kind: KindCancelled, Message: err.Error()}
	default:
		return &ErrorInfo{Kind: KindInternal, Message: err.Error()}
	}
}

// panicError wraps a recovered handler panic.
type panicError struct {
	value any
}

func (e *panicError) Error() string {
	return fmt.Sprintf("tool handler panicked: %v", e.value)
}
