// Package transport issues authenticated requests to the Letta REST API and
// normalizes every failure into an *Error with a stable Kind.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"github.com/thoreinstein/letta-mcp/internal/errors"
	"github.com/thoreinstein/letta-mcp/internal/logging"
)

// maxResponseBytes caps how much of a response body is read into memory.
const maxResponseBytes = 16 << 20

// Config holds configuration for creating a Client.
type Config struct {
	// BaseURL is the root URL for API requests, e.g. https://api.letta.com.
	BaseURL string

	// APIKey is sent as a bearer token. It is never logged.
	APIKey string

	// Timeout bounds each call independently. Required.
	Timeout time.Duration

	// MaxIdleConns sizes the per-host idle connection pool. Defaults to 10.
	MaxIdleConns int

	// UserAgent identifies the bridge to the upstream.
	UserAgent string

	// RateLimit is the maximum requests per second. Zero disables limiting.
	RateLimit float64

	// RateBurst is the limiter bucket size. Defaults to 1.
	RateBurst int

	// HTTPClient overrides the pooled client. Tests inject httptest clients.
	HTTPClient *http.Client

	// Logger is used when the request context carries none.
	Logger *slog.Logger
}

// RawResponse is an undecoded upstream reply with a 2xx status.
type RawResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Client is safe for concurrent use. Create one per process and share it.
type Client struct {
	baseURL    string
	apiKey     string
	timeout    time.Duration
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// New creates a Client with its own pooled transport.
func New(cfg Config) (*Client, error) {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, errors.Newf("transport: invalid base URL %q", cfg.BaseURL)
	}
	if cfg.Timeout <= 0 {
		return nil, errors.New("transport: timeout must be positive")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		idle := cfg.MaxIdleConns
		if idle <= 0 {
			idle = 10
		}
		tr := http.DefaultTransport.(*http.Transport).Clone()
		tr.MaxIdleConns = idle * 2
		tr.MaxIdleConnsPerHost = idle
		tr.IdleConnTimeout = 90 * time.Second
		httpClient = &http.Client{Transport: tr}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		timeout:    cfg.Timeout,
		userAgent:  cfg.UserAgent,
		httpClient: httpClient,
		logger:     logger,
	}
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	return c, nil
}

// BaseURL returns the upstream root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Close releases idle pooled connections. In-flight calls are unaffected.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// Invoke performs one upstream call. path may carry a query string. payload,
// when non-nil, is JSON encoded; []byte and json.RawMessage are sent as is.
//
// Failures are *Error values, except caller cancellation, which returns the
// context's error so it is never mistaken for a transient fault.
func (c *Client) Invoke(ctx context.Context, method, path string, payload any) (*RawResponse, error) {
	log := logging.FromContext(ctx, c.logger)

	body, err := encodePayload(payload)
	if err != nil {
		return nil, errors.Wrapf(err, "encoding %s %s payload", method, path)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	// The limiter wait counts against the call's timeout.
	if c.limiter != nil {
		if err := c.limiter.Wait(callCtx); err != nil {
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil, ctx.Err()
			}
			return nil, &Error{Kind: KindTimeout, Method: method, Path: path, Unsent: true,
				Message: "rate limit wait exceeds " + c.timeout.String(), Err: err}
		}
	}

	req, err := http.NewRequestWithContext(callCtx, method, c.baseURL+path, body)
	if err != nil {
		return nil, errors.Wrapf(err, "creating %s %s request", method, path)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.classify(ctx, callCtx, method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return nil, c.classify(ctx, callCtx, method, path, err)
	}

	log.Debug("upstream call",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"bytes", len(data),
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, statusError(method, path, resp.StatusCode, resp.Header, data)
	}
	if len(data) > maxResponseBytes {
		return nil, &Error{Kind: KindInvalidResponse, Method: method, Path: path,
			StatusCode: resp.StatusCode, Message: "response body exceeds 16MiB"}
	}
	if len(bytes.TrimSpace(data)) > 0 && !gjson.ValidBytes(data) {
		return nil, &Error{Kind: KindInvalidResponse, Method: method, Path: path,
			StatusCode: resp.StatusCode, Message: "response body is not valid JSON"}
	}

	return &RawResponse{StatusCode: resp.StatusCode, Header: resp.Header, Body: data}, nil
}

// classify maps a client-side failure onto a Kind.
func (c *Client) classify(parent, callCtx context.Context, method, path string, err error) error {
	if errors.Is(parent.Err(), context.Canceled) {
		return parent.Err()
	}
	e := &Error{Kind: KindConnectionFailed, Method: method, Path: path, Err: err}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		e.Unsent = true
	}

	var netErr net.Error
	switch {
	case errors.Is(callCtx.Err(), context.DeadlineExceeded):
		e.Kind = KindTimeout
		e.Message = "no response within " + c.timeout.String()
	case errors.As(err, &netErr) && netErr.Timeout():
		e.Kind = KindTimeout
	}
	return e
}

func encodePayload(payload any) (io.Reader, error) {
	switch p := payload.(type) {
	case nil:
		return nil, nil
	case json.RawMessage:
		return bytes.NewReader(p), nil
	case []byte:
		return bytes.NewReader(p), nil
	default:
		data, err := json.Marshal(p)
		if err != nil {
			return nil, err
		}
		return bytes.NewReader(data), nil
	}
}
