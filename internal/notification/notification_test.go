package notification

import (
	"context"
	"fmt"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestBufferDrainReturnsInOrder(t *testing.T) {
	b := NewBuffer(10)
	ctx := context.Background()

	b.Notify(ctx, Notification{Title: "first"})
	b.Notify(ctx, Notification{Title: "second"})

	notes := b.Drain()
	if len(notes) != 2 || notes[0].Title != "first" || notes[1].Title != "second" {
		t.Fatalf("unexpected drain result: %+v", notes)
	}
	if remaining := b.Drain(); len(remaining) != 0 {
		t.Fatalf("expected drained buffer to be empty, got %d", len(remaining))
	}
}

func TestBufferDropsOldestWhenFull(t *testing.T) {
	b := NewBuffer(3)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		b.Notify(ctx, Notification{Title: fmt.Sprintf("n%d", i)})
	}

	notes := b.Drain()
	if len(notes) != 3 {
		t.Fatalf("expected 3 buffered, got %d", len(notes))
	}
	if notes[0].Title != "n2" || notes[2].Title != "n4" {
		t.Fatalf("expected oldest entries dropped, got %+v", notes)
	}
}

func TestLogSinkVariantLevels(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	sink := NewLogSink(zap.New(core))
	ctx := context.Background()

	sink.Notify(ctx, Notification{Title: "ok", Variant: VariantInfo})
	sink.Notify(ctx, Notification{Title: "bad", Variant: VariantDestructive})

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 log entries, got %d", len(entries))
	}
	if entries[0].Level != zapcore.InfoLevel {
		t.Fatalf("informational notification should log at info, got %s", entries[0].Level)
	}
	if entries[1].Level != zapcore.WarnLevel {
		t.Fatalf("destructive notification should log at warn, got %s", entries[1].Level)
	}
}

func TestFanoutDeliversToAllSinks(t *testing.T) {
	a := NewBuffer(10)
	b := NewBuffer(10)
	sink := Fanout(a, b)

	sink.Notify(context.Background(), Notification{Title: "x"})

	if len(a.Drain()) != 1 || len(b.Drain()) != 1 {
		t.Fatalf("expected both sinks to receive the notification")
	}
}
