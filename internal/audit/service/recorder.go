package service

import (
	"context"
	"time"

	auditdomain "github.com/adrianolorenzi02/conferencia-compra/internal/audit/domain"
	"github.com/adrianolorenzi02/conferencia-compra/internal/clock"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Config controls the event flush loop.
type Config struct {
	BatchSize    int
	PollInterval time.Duration
	QueueSize    int
}

func DefaultConfig() Config {
	return Config{
		BatchSize:    50,
		PollInterval: 2 * time.Second,
		QueueSize:    1024,
	}
}

func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.BatchSize <= 0 {
		c.BatchSize = defaults.BatchSize
	}
	if c.PollInterval <= 0 {
		c.PollInterval = defaults.PollInterval
	}
	if c.QueueSize <= 0 {
		c.QueueSize = defaults.QueueSize
	}
	return c
}

type Params struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	Repo   auditdomain.Repository
	GenID  *snowflake.Node
	Clock  clock.Clock
	Config Config `optional:"true"`
}

// Recorder queues conference events in memory and flushes them to the
// database in batches.
type Recorder struct {
	db    *gorm.DB
	log   *zap.Logger
	repo  auditdomain.Repository
	genID *snowflake.Node
	clk   clock.Clock
	cfg   Config
	queue chan *auditdomain.Event
}

func NewRecorder(p Params) *Recorder {
	cfg := p.Config.withDefaults()
	return &Recorder{
		db:    p.DB,
		log:   p.Log.Named("audit.recorder"),
		repo:  p.Repo,
		genID: p.GenID,
		clk:   p.Clock,
		cfg:   cfg,
		queue: make(chan *auditdomain.Event, cfg.QueueSize),
	}
}

// Record enqueues an event without blocking. Events are dropped when the
// queue is full.
func (r *Recorder) Record(_ context.Context, action string, metadata map[string]any) {
	event := &auditdomain.Event{
		ID:        r.genID.Generate(),
		Action:    action,
		Metadata:  metadata,
		CreatedAt: r.clk.Now().UTC(),
	}
	select {
	case r.queue <- event:
	default:
		r.log.Warn("event queue full, dropping event", zap.String("action", action))
	}
}

// RunForever flushes on an interval until ctx is cancelled, then performs a
// final flush.
func (r *Recorder) RunForever(ctx context.Context) {
	ticker := time.NewTicker(r.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := r.Flush(flushCtx); err != nil {
				r.log.Warn("final event flush failed", zap.Error(err))
			}
			return
		case <-ticker.C:
			if err := r.Flush(ctx); err != nil {
				r.log.Warn("event flush failed", zap.Error(err))
			}
		}
	}
}

// Flush drains the queue into the database in batches.
func (r *Recorder) Flush(ctx context.Context) error {
	for {
		batch := r.drain(r.cfg.BatchSize)
		if len(batch) == 0 {
			return nil
		}
		if err := r.repo.InsertBatch(ctx, r.db, batch); err != nil {
			return err
		}
	}
}

func (r *Recorder) drain(limit int) []*auditdomain.Event {
	batch := make([]*auditdomain.Event, 0, limit)
	for len(batch) < limit {
		select {
		case event := <-r.queue:
			batch = append(batch, event)
		default:
			return batch
		}
	}
	return batch
}
