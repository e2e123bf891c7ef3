package audit

import (
	"context"

	auditdomain "github.com/adrianolorenzi02/conferencia-compra/internal/audit/domain"
	"github.com/adrianolorenzi02/conferencia-compra/internal/audit/repository"
	"github.com/adrianolorenzi02/conferencia-compra/internal/audit/service"
	"github.com/adrianolorenzi02/conferencia-compra/internal/config"
	"go.uber.org/fx"
)

var Module = fx.Module("audit",
	fx.Provide(repository.Provide),
	fx.Provide(func(cfg config.Config) service.Config {
		return service.Config{
			BatchSize:    cfg.Audit.BatchSize,
			PollInterval: cfg.Audit.PollInterval,
		}
	}),
	fx.Provide(service.NewRecorder),
	fx.Provide(func(r *service.Recorder) auditdomain.Recorder { return r }),
	fx.Invoke(runRecorder),
)

func runRecorder(lc fx.Lifecycle, recorder *service.Recorder) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				recorder.RunForever(ctx)
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			<-done
			return nil
		},
	})
}
