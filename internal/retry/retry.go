// Package retry runs upstream operations under a bounded exponential backoff
// policy. Only errors that declare themselves transient are retried.
package retry

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/thoreinstein/letta-mcp/internal/errors"
	"github.com/thoreinstein/letta-mcp/internal/logging"
)

// Defaults applied by Policy.normalized.
const (
	DefaultMaxAttempts = 3
	DefaultBaseDelay   = 500 * time.Millisecond
	DefaultMaxDelay    = 8 * time.Second
	DefaultJitter      = 0.2
)

// Retryable is implemented by errors that know whether a repeat attempt can
// succeed.
type Retryable interface {
	Retryable() bool
}

// Resendable is implemented by errors that know whether the failed request
// could have been applied upstream.
type Resendable interface {
	SafeToResend() bool
}

// afterHinter is implemented by errors carrying a server-requested delay.
type afterHinter interface {
	RetryAfterHint() time.Duration
}

// Policy bounds how often and how patiently an operation is repeated.
type Policy struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	// Jitter is the largest fraction of a nominal delay that may be
	// subtracted. Must be in [0, 1).
	Jitter float64

	// ShouldRetry decides which failures are repeated. Defaults to
	// IsRetryable.
	ShouldRetry func(error) bool

	Clock Clock
	// Rand returns a value in [0, 1). Defaults to math/rand/v2.
	Rand   func() float64
	Logger *slog.Logger
}

// DefaultPolicy returns the policy used when nothing is configured.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: DefaultMaxAttempts,
		BaseDelay:   DefaultBaseDelay,
		MaxDelay:    DefaultMaxDelay,
		Jitter:      DefaultJitter,
	}
}

func (p Policy) normalized() Policy {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = DefaultMaxAttempts
	}
	if p.BaseDelay <= 0 {
		p.BaseDelay = DefaultBaseDelay
	}
	if p.MaxDelay <= 0 {
		p.MaxDelay = max(DefaultMaxDelay, p.BaseDelay)
	}
	if p.MaxDelay < p.BaseDelay {
		p.MaxDelay = p.BaseDelay
	}
	if p.Jitter < 0 || p.Jitter >= 1 {
		p.Jitter = DefaultJitter
	}
	if p.ShouldRetry == nil {
		p.ShouldRetry = IsRetryable
	}
	if p.Clock == nil {
		p.Clock = RealClock()
	}
	if p.Rand == nil {
		p.Rand = rand.Float64
	}
	if p.Logger == nil {
		p.Logger = slog.Default()
	}
	return p
}

// ForWrites returns p restricted to failures the upstream cannot have
// applied. Non-idempotent calls use it so a timed-out write is never sent
// twice.
func (p Policy) ForWrites() Policy {
	p.ShouldRetry = IsSafeToResend
	return p
}

// Nominal returns the un-jittered delay before retry n (1-based).
func (p Policy) Nominal(n int) time.Duration {
	p = p.normalized()
	d := p.BaseDelay
	for i := 1; i < n; i++ {
		d *= 2
		if d >= p.MaxDelay {
			return p.MaxDelay
		}
	}
	return min(d, p.MaxDelay)
}

// Delay returns the wait before retry n. A positive hint from the server
// raises the delay but never past MaxDelay.
func (p Policy) Delay(n int, hint time.Duration) time.Duration {
	p = p.normalized()
	nominal := p.Nominal(n)
	d := nominal - time.Duration(float64(nominal)*p.Jitter*p.Rand())
	if hint > d {
		d = min(hint, p.MaxDelay)
	}
	return d
}

// ExhaustedError reports that every allowed attempt failed transiently.
type ExhaustedError struct {
	Attempts int
	Cause    error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("gave up after %d attempts: %v", e.Attempts, e.Cause)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Cause
}

// IsRetryable reports whether err declares itself transient.
func IsRetryable(err error) bool {
	var r Retryable
	return errors.As(err, &r) && r.Retryable()
}

// IsSafeToResend reports whether err is transient and the failed request
// provably was not applied.
func IsSafeToResend(err error) bool {
	var r Resendable
	return IsRetryable(err) && errors.As(err, &r) && r.SafeToResend()
}

// Do runs op until it succeeds, fails permanently, or MaxAttempts transient
// failures have occurred. Permanent failures are returned unchanged.
// Cancelling ctx aborts any pending wait and returns ctx.Err().
func Do[T any](ctx context.Context, p Policy, op func(ctx context.Context) (T, error)) (T, error) {
	p = p.normalized()
	log := logging.FromContext(ctx, p.Logger)

	var zero T
	for attempt := 1; ; attempt++ {
		v, err := op(ctx)
		if err == nil {
			return v, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return zero, ctxErr
		}
		if !p.ShouldRetry(err) {
			return zero, err
		}
		if attempt >= p.MaxAttempts {
			return zero, &ExhaustedError{Attempts: attempt, Cause: err}
		}

		var hint time.Duration
		var h afterHinter
		if errors.As(err, &h) {
			hint = h.RetryAfterHint()
		}
		delay := p.Delay(attempt, hint)

		log.Warn("transient upstream failure, retrying",
			"attempt", attempt,
			"max_attempts", p.MaxAttempts,
			"delay", delay,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-p.Clock.After(delay):
		}
	}
}
