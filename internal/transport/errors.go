package transport

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// Kind classifies a transport failure.
type Kind int

const (
	// KindTimeout means the per-call deadline expired.
	KindTimeout Kind = iota + 1
	// KindHTTPStatus means the upstream answered with a non-2xx status.
	KindHTTPStatus
	// KindConnectionFailed means no usable response was received.
	KindConnectionFailed
	// KindInvalidResponse means a 2xx response carried an unparseable body.
	KindInvalidResponse
)

// String returns the stable name used in logs and envelopes.
func (k Kind) String() string {
	switch k {
	case KindTimeout:
		return "Timeout"
	case KindHTTPStatus:
		return "HttpStatus"
	case KindConnectionFailed:
		return "ConnectionFailed"
	case KindInvalidResponse:
		return "InvalidResponse"
	default:
		return "Unknown"
	}
}

// maxErrorMessage bounds upstream error text carried into envelopes.
const maxErrorMessage = 500

// Error is the normalized failure of a single upstream call.
type Error struct {
	Kind       Kind
	Method     string
	Path       string
	StatusCode int
	Message    string
	// RetryAfter is the server-requested delay on 429 and 5xx responses.
	RetryAfter time.Duration
	// Unsent is set when the request never reached the upstream: a dial
	// failure or a rate-limiter wait that ran out of time.
	Unsent bool
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s: ", e.Method, e.Path)
	switch e.Kind {
	case KindHTTPStatus:
		fmt.Fprintf(&b, "HTTP %d", e.StatusCode)
		if e.Message != "" {
			b.WriteString(": " + e.Message)
		}
	default:
		b.WriteString(strings.ToLower(e.Kind.String()))
		if e.Message != "" {
			b.WriteString(": " + e.Message)
		} else if e.Err != nil {
			b.WriteString(": " + e.Err.Error())
		}
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Retryable reports whether the failure is transient: timeouts, connection
// failures, and HTTP 429, 500, 502, 503 and 504. Other 4xx and 5xx statuses
// are permanent.
func (e *Error) Retryable() bool {
	switch e.Kind {
	case KindTimeout, KindConnectionFailed:
		return true
	case KindHTTPStatus:
		switch e.StatusCode {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
	}
	return false
}

// SafeToResend reports whether the upstream cannot have applied the request,
// so repeating a non-idempotent write cannot duplicate it: the request was
// never sent, or the upstream refused it with 429 or 503.
func (e *Error) SafeToResend() bool {
	if e.Unsent {
		return true
	}
	return e.Kind == KindHTTPStatus &&
		(e.StatusCode == http.StatusTooManyRequests || e.StatusCode == http.StatusServiceUnavailable)
}

// RetryAfterHint exposes the server-requested delay to the retry policy.
func (e *Error) RetryAfterHint() time.Duration {
	return e.RetryAfter
}

// IsNotFound reports whether the upstream answered 404.
func (e *Error) IsNotFound() bool {
	return e.Kind == KindHTTPStatus && e.StatusCode == http.StatusNotFound
}

// IsUnauthorized reports whether the upstream rejected the credential.
func (e *Error) IsUnauthorized() bool {
	return e.Kind == KindHTTPStatus &&
		(e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden)
}

// statusError builds a KindHTTPStatus error from a response.
func statusError(method, path string, status int, header http.Header, body []byte) *Error {
	e := &Error{
		Kind:       KindHTTPStatus,
		Method:     method,
		Path:       path,
		StatusCode: status,
		Message:    errorMessage(status, body),
	}
	if status == http.StatusTooManyRequests || status >= 500 {
		e.RetryAfter = parseRetryAfter(header.Get("Retry-After"), time.Now())
	}
	return e
}

// errorMessage extracts a human-readable message from an error body.
// Letta (FastAPI) reports {"detail": ...}; other proxies use message or error.
func errorMessage(status int, body []byte) string {
	msg := ""
	if gjson.ValidBytes(body) {
		parsed := gjson.ParseBytes(body)
		for _, path := range []string{"detail", "message", "error.message", "error"} {
			r := parsed.Get(path)
			if !r.Exists() {
				continue
			}
			if r.Type == gjson.String {
				msg = r.String()
			} else {
				msg = r.Raw
			}
			break
		}
	} else {
		msg = strings.TrimSpace(string(body))
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	if r := []rune(msg); len(r) > maxErrorMessage {
		msg = string(r[:maxErrorMessage]) + "..."
	}
	return msg
}

// parseRetryAfter accepts delta-seconds or an HTTP date.
func parseRetryAfter(v string, now time.Time) time.Duration {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		if secs < 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(v); err == nil {
		if d := at.Sub(now); d > 0 {
			return d
		}
	}
	return 0
}
