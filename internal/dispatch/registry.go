package dispatch

import (
	"context"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/thoreinstein/letta-mcp/internal/errors"
	"github.com/thoreinstein/letta-mcp/internal/logging"
)

// Registry is the static name to tool table. Tools are registered at
// startup; Dispatch is safe for concurrent use afterwards.
type Registry struct {
	mu     sync.RWMutex
	tools  map[string]*Tool
	order  []string
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

// NewRegistry returns an empty registry.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		tools:  make(map[string]*Tool),
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Register adds a tool. Names must be unique.
func (r *Registry) Register(t Tool) error {
	if err := t.check(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[t.Name]; exists {
		return errors.Newf("tool %s is already registered", t.Name)
	}
	r.tools[t.Name] = &t
	r.order = append(r.order, t.Name)
	return nil
}

// Tools returns every tool in registration order.
func (r *Registry) Tools() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, *r.tools[name])
	}
	return out
}

// Lookup returns the tool named name.
func (r *Registry) Lookup(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	if !ok {
		return Tool{}, false
	}
	return *t, true
}

// Dispatch runs one tool call and waits for its envelope.
func (r *Registry) Dispatch(ctx context.Context, name string, args map[string]any) Envelope {
	return <-r.DispatchAsync(ctx, name, args)
}

type outcome struct {
	result Result
	err    error
}

// DispatchAsync starts one tool call and returns a channel that receives
// exactly one envelope.
func (r *Registry) DispatchAsync(ctx context.Context, name string, args map[string]any) <-chan Envelope {
	out := make(chan Envelope, 1)
	start := r.now()
	meta := Metadata{Tool: name, RequestID: r.newID()}
	log := logging.FromContext(ctx, r.logger).With("tool", name, "request_id", meta.RequestID)

	fail := func(err error) {
		meta.DurationMS = r.now().Sub(start).Milliseconds()
		env := Envelope{Error: translate(err), Metadata: meta}
		log.Info("tool call failed", "kind", env.Error.Kind, "error", err, "duration_ms", meta.DurationMS)
		out <- env
	}

	tool, ok := r.Lookup(name)
	if !ok {
		fail(&ValidationError{Field: "tool", Reason: "unknown tool " + name})
		return out
	}
	meta.Idempotent = tool.Mode == ReadOnly

	validated, err := tool.validate(args)
	if err != nil {
		fail(err)
		return out
	}

	// Handlers run detached from caller cancellation.
	hctx := logging.NewContext(context.WithoutCancel(ctx), log)
	results := make(chan outcome, 1)

	go func() {
		defer func() {
			if v := recover(); v != nil {
				log.Error("tool handler panicked", "panic", v, "stack", string(debug.Stack()))
				results <- outcome{err: &panicError{value: v}}
			}
		}()
		log.Debug("tool call started", "mode", tool.Mode.String())
		res, err := tool.Handler(hctx, validated)
		results <- outcome{result: res, err: err}
	}()

	go func() {
		select {
		case o := <-results:
			if o.err != nil {
				fail(o.err)
				return
			}
			meta.merge(o.result.Meta)
			meta.DurationMS = r.now().Sub(start).Milliseconds()
			log.Info("tool call succeeded", "duration_ms", meta.DurationMS, "truncated", meta.Truncated)
			out <- Envelope{Success: true, Data: o.result.Data, Metadata: meta}
		case <-ctx.Done():
			meta.DurationMS = r.now().Sub(start).Milliseconds()
			log.Info("caller went away, discarding result", "error", ctx.Err())
			out <- Envelope{
				Error:    &ErrorInfo{Kind: KindCancelled, Message: ctx.Err().Error()},
				Metadata: meta,
			}
		}
	}()

	return out
}
