package logger

import (
	"context"
	"log/slog"
	"sync/atomic"
)

const defaultBufferSize = 1024

// Closer flushes and stops a buffered handler.
type Closer interface {
	Close()
}

// nopCloser is a no-op Closer for synchronous mode.
type nopCloser struct{}

func (nopCloser) Close() {}

// BufferedHandler decouples log emission from encoding: records go
// through a bounded channel drained by one background goroutine. When
// the buffer is full the record is dropped rather than blocking the
// caller.
type BufferedHandler struct {
	inner   slog.Handler
	ch      chan slog.Record
	done    chan struct{}
	dropped *atomic.Int64
}

// NewBufferedHandler wraps inner with a buffer of the given capacity
// and starts the drain goroutine.
func NewBufferedHandler(inner slog.Handler, capacity int) *BufferedHandler {
	h := &BufferedHandler{
		inner:   inner,
		ch:      make(chan slog.Record, capacity),
		done:    make(chan struct{}),
		dropped: &atomic.Int64{},
	}
	go h.drain()
	return h
}

func (h *BufferedHandler) drain() {
	defer close(h.done)
	for rec := range h.ch {
		_ = h.inner.Handle(context.Background(), rec)
	}
}

// Enabled delegates to the inner handler.
func (h *BufferedHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle enqueues the record, dropping it if the buffer is full.
func (h *BufferedHandler) Handle(_ context.Context, rec slog.Record) error { //nolint:gocritic // slog.Handler interface requires value receiver
	select {
	case h.ch <- rec:
	default:
		h.dropped.Add(1)
	}
	return nil
}

// WithAttrs returns a clone sharing the buffer but wrapping a new inner handler.
func (h *BufferedHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &BufferedHandler{
		inner:   h.inner.WithAttrs(attrs),
		ch:      h.ch,
		done:    h.done,
		dropped: h.dropped,
	}
}

// WithGroup returns a clone sharing the buffer but wrapping a new inner handler.
func (h *BufferedHandler) WithGroup(name string) slog.Handler {
	return &BufferedHandler{
		inner:   h.inner.WithGroup(name),
		ch:      h.ch,
		done:    h.done,
		dropped: h.dropped,
	}
}

// Dropped returns the number of records discarded to a full buffer.
func (h *BufferedHandler) Dropped() int64 {
	return h.dropped.Load()
}

// Close stops intake, drains remaining records, and waits for the
// drain goroutine. Call once, on the handler returned by the
// constructor, not on WithAttrs/WithGroup clones.
func (h *BufferedHandler) Close() {
	close(h.ch)
	<-h.done
}
