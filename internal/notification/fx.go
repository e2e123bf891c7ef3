package notification

import (
	"context"

	"github.com/adrianolorenzi02/conferencia-compra/internal/clock"
	"go.uber.org/fx"
)

var Module = fx.Module("notification",
	fx.Provide(func() *Buffer { return NewBuffer(200) }),
	fx.Provide(NewLogSink),
	fx.Provide(func(log *LogSink, buffer *Buffer, clk clock.Clock) Sink {
		return stamped{next: Fanout(log, buffer), clk: clk}
	}),
)

// stamped fills in the emission time before delivery.
type stamped struct {
	next Sink
	clk  clock.Clock
}

func (s stamped) Notify(ctx context.Context, n Notification) {
	if n.At.IsZero() {
		n.At = s.clk.Now()
	}
	s.next.Notify(ctx, n)
}
