package observability

import (
	"github.com/adrianolorenzi02/conferencia-compra/internal/config"
	"github.com/adrianolorenzi02/conferencia-compra/internal/observability/logger"
	"github.com/adrianolorenzi02/conferencia-compra/internal/observability/metrics"
	"github.com/adrianolorenzi02/conferencia-compra/internal/observability/tracing"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/fx"
)

var Module = fx.Module("observability",
	logger.Module,
	fx.Invoke(tracing.NewProvider),
	fx.Provide(func() metric.MeterProvider {
		return otel.GetMeterProvider()
	}),
	fx.Provide(func(cfg config.Config, provider metric.MeterProvider) (*metrics.HTTPMetrics, error) {
		return metrics.NewHTTPMetrics(cfg.Tracing.ServiceName, provider)
	}),
	fx.Provide(func(cfg config.Config, provider metric.MeterProvider) (*metrics.ConferenceMetrics, error) {
		return metrics.NewConferenceMetrics(cfg.Tracing.ServiceName, provider)
	}),
)
