package logging

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/cockroachdb/errors"
)

// Format selects the stderr log format.
type Format string

const (
	// FormatAuto is text on a terminal and JSON otherwise.
	FormatAuto Format = "auto"
	// FormatText is the colorized single-line format.
	FormatText Format = "text"
	// FormatJSON is one JSON object per line.
	FormatJSON Format = "json"
)

// ErrInvalidFormat is returned by Build for unknown formats.
var ErrInvalidFormat = errors.New("invalid log format")

// Options configures Build.
type Options struct {
	Level  slog.Level
	Format Format
	// Output receives the primary stream, normally stderr.
	Output io.Writer
	// File, when set, also receives every record as JSON. It is opened
	// for append with mode 0600.
	File string
}

// Build assembles the logger described by opts. The returned closer
// releases the log file and is safe to call when there is none.
func Build(opts Options) (*slog.Logger, io.Closer, error) {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	handlerOpts := &slog.HandlerOptions{Level: opts.Level, ReplaceAttr: replaceAttr}

	var primary slog.Handler
	switch ResolveFormat(opts.Format, out) {
	case FormatText:
		primary = NewTextHandler(out, handlerOpts)
	case FormatJSON:
		primary = slog.NewJSONHandler(out, handlerOpts)
	default:
		return nil, nopCloser{}, errors.Wrapf(ErrInvalidFormat, "%q", opts.Format)
	}

	if opts.File == "" {
		return slog.New(primary), nopCloser{}, nil
	}

	f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nopCloser{}, errors.Wrap(err, "opening log file")
	}
	file := slog.NewJSONHandler(f, handlerOpts)
	return slog.New(fanout{primary, file}), f, nil
}

// ResolveFormat turns FormatAuto (or an empty format) into text or JSON
// depending on whether out is a terminal.
func ResolveFormat(f Format, out io.Writer) Format {
	if f == FormatAuto || f == "" {
		if IsTTY(out) {
			return FormatText
		}
		return FormatJSON
	}
	return f
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// fanout sends each record to every handler that accepts its level.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f {
		if h.Enabled(ctx, r.Level) {
			if err := h.Handle(ctx, r.Clone()); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make(fanout, len(f))
	for i, h := range f {
		next[i] = h.WithAttrs(attrs)
	}
	return next
}

func (f fanout) WithGroup(name string) slog.Handler {
	next := make(fanout, len(f))
	for i, h := range f {
		next[i] = h.WithGroup(name)
	}
	return next
}
