package notification

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Variant classifies a notification for presentation.
type Variant string

const (
	VariantInfo        Variant = "informational"
	VariantDestructive Variant = "destructive"
)

// Notification is a transient user-facing message. Delivery is fire and
// forget; the state machine never depends on it completing.
type Notification struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Variant     Variant   `json:"variant"`
	At          time.Time `json:"at"`
}

// Sink receives notifications emitted by the conference state machine.
type Sink interface {
	Notify(ctx context.Context, n Notification)
}

// LogSink writes notifications to the service log.
type LogSink struct {
	log *zap.Logger
}

func NewLogSink(log *zap.Logger) *LogSink {
	return &LogSink{log: log.Named("notification")}
}

func (s *LogSink) Notify(_ context.Context, n Notification) {
	fields := []zap.Field{
		zap.String("title", n.Title),
		zap.String("description", n.Description),
	}
	if n.Variant == VariantDestructive {
		s.log.Warn("notification", fields...)
		return
	}
	s.log.Info("notification", fields...)
}

// Buffer keeps the most recent notifications in a bounded ring so the front
// end can poll them. Oldest entries are dropped when the ring is full.
type Buffer struct {
	mu    sync.Mutex
	limit int
	items []Notification
}

func NewBuffer(limit int) *Buffer {
	if limit <= 0 {
		limit = 100
	}
	return &Buffer{limit: limit}
}

func (b *Buffer) Notify(_ context.Context, n Notification) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = append(b.items, n)
	if len(b.items) > b.limit {
		b.items = b.items[len(b.items)-b.limit:]
	}
}

// Drain returns and clears the buffered notifications in arrival order.
func (b *Buffer) Drain() []Notification {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.items
	b.items = nil
	return out
}

// Fanout delivers each notification to every sink.
func Fanout(sinks ...Sink) Sink {
	return fanout(sinks)
}

type fanout []Sink

func (f fanout) Notify(ctx context.Context, n Notification) {
	for _, sink := range f {
		sink.Notify(ctx, n)
	}
}
