package report

import (
	"github.com/adrianolorenzi02/conferencia-compra/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("report",
	fx.Provide(func(cfg config.Config, log *zap.Logger) Saver {
		return NewDiskSaver(cfg.Report.OutputDir, log)
	}),
)
