package logging

import (
	"bytes"
	"log/slog"
	"testing"
)

// testWriter routes handler output to t.Log.
type testWriter struct {
	t *testing.T
}

func (w *testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(bytes.TrimSuffix(p, []byte("\n"))))
	return len(p), nil
}

// ForTest returns a trace-level text logger writing to the test log.
func ForTest(t *testing.T) *slog.Logger {
	t.Helper()
	return slog.New(NewTextHandler(&testWriter{t: t}, &slog.HandlerOptions{Level: LevelTrace}))
}
