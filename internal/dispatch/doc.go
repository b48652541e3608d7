// Package dispatch owns the static tool table and turns every tool call
// into an Envelope.
//
// A call is validated against the tool's parameter schema, run on its own
// goroutine, and translated into a uniform success or error wrapper. No
// error escapes Dispatch: validation failures, upstream faults, and handler
// panics all come back as envelopes with a stable kind.
//
// If the caller goes away before the handler finishes, Dispatch returns a
// Cancelled envelope immediately. The handler keeps running detached from
// the caller's cancellation and its result is discarded.
package dispatch
