// Package testutil carries test-only helpers shared across packages.
package testutil

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// LogEntry is one record captured by a LogRecorder. Attrs bound on the
// logger with With are flattened into the entry alongside the call-site attrs.
type LogEntry struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// logBuffer is the store shared between a recorder and its WithAttrs clones,
// so entries land in one place no matter which derived logger wrote them.
type logBuffer struct {
	mu      sync.Mutex
	entries []LogEntry
}

// LogRecorder is a slog.Handler that keeps records in memory so tests can
// assert on what a component logged.
type LogRecorder struct {
	buf   *logBuffer
	attrs []slog.Attr
}

// NewTestLogger returns a logger wired to a fresh recorder.
func NewTestLogger(t *testing.T) (*slog.Logger, *LogRecorder) {
	t.Helper()
	rec := &LogRecorder{buf: &logBuffer{}}
	return slog.New(rec), rec
}

// Enabled captures every level; filtering belongs in the assertion, not the
// handler.
func (r *LogRecorder) Enabled(context.Context, slog.Level) bool {
	return true
}

// Handle implements slog.Handler.
func (r *LogRecorder) Handle(_ context.Context, record slog.Record) error {
	attrs := make(map[string]any, len(r.attrs)+record.NumAttrs())
	for _, a := range r.attrs {
		attrs[a.Key] = a.Value.Any()
	}
	record.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})

	r.buf.mu.Lock()
	defer r.buf.mu.Unlock()
	r.buf.entries = append(r.buf.entries, LogEntry{
		Level:   record.Level,
		Message: record.Message,
		Attrs:   attrs,
	})
	return nil
}

// WithAttrs implements slog.Handler. The clone writes into the same buffer.
func (r *LogRecorder) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(r.attrs)+len(attrs))
	merged = append(merged, r.attrs...)
	merged = append(merged, attrs...)
	return &LogRecorder{buf: r.buf, attrs: merged}
}

// WithGroup implements slog.Handler. Groups are flattened away; none of the
// code under test logs grouped attrs.
func (r *LogRecorder) WithGroup(string) slog.Handler {
	return r
}

// Entries returns a copy of everything captured so far.
func (r *LogRecorder) Entries() []LogEntry {
	r.buf.mu.Lock()
	defer r.buf.mu.Unlock()
	out := make([]LogEntry, len(r.buf.entries))
	copy(out, r.buf.entries)
	return out
}

// EntriesAtLevel returns the captured entries with exactly the given level.
func (r *LogRecorder) EntriesAtLevel(level slog.Level) []LogEntry {
	var out []LogEntry
	for _, e := range r.Entries() {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

// AssertLogContains fails the test unless an entry at the given level has a
// message containing the given text.
func AssertLogContains(t *testing.T, rec *LogRecorder, level slog.Level, message string) {
	t.Helper()
	for _, e := range rec.EntriesAtLevel(level) {
		if strings.Contains(e.Message, message) {
			return
		}
	}
	t.Errorf("no %s log with message containing %q; captured: %+v",
		level, message, rec.EntriesAtLevel(level))
}

// AssertLogAttr fails the test unless some captured entry carries the given
// attribute value.
func AssertLogAttr(t *testing.T, rec *LogRecorder, key string, want any) {
	t.Helper()
	for _, e := range rec.Entries() {
		if got, ok := e.Attrs[key]; ok && got == want {
			return
		}
	}
	t.Errorf("no log entry with attribute %s=%v; captured: %+v", key, want, rec.Entries())
}

// AssertNoErrors fails the test when any error-level entry was captured.
func AssertNoErrors(t *testing.T, rec *LogRecorder) {
	t.Helper()
	if errs := rec.EntriesAtLevel(slog.LevelError); len(errs) > 0 {
		t.Errorf("unexpected error logs: %+v", errs)
	}
}
