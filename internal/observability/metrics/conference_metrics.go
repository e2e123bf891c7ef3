package metrics

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ConferenceMetrics counts workflow activity: accepted and rejected scans and
// completed conference sessions.
type ConferenceMetrics struct {
	scansAccepted metric.Int64Counter
	scansRejected metric.Int64Counter
	sessions      metric.Int64Counter
}

// NewConferenceMetrics creates the workflow metric instruments.
func NewConferenceMetrics(serviceName string, provider metric.MeterProvider) (*ConferenceMetrics, error) {
	name := strings.TrimSpace(serviceName)
	if name == "" {
		name = "conferencia"
	}
	meter := provider.Meter(name + "/conference")

	scansAccepted, err := meter.Int64Counter("conference.scans.accepted")
	if err != nil {
		return nil, err
	}
	scansRejected, err := meter.Int64Counter("conference.scans.rejected")
	if err != nil {
		return nil, err
	}
	sessions, err := meter.Int64Counter("conference.sessions.finished")
	if err != nil {
		return nil, err
	}

	return &ConferenceMetrics{
		scansAccepted: scansAccepted,
		scansRejected: scansRejected,
		sessions:      sessions,
	}, nil
}

// ScanAccepted records a successful product scan with its resulting status.
func (m *ConferenceMetrics) ScanAccepted(ctx context.Context, status string) {
	if m == nil {
		return
	}
	m.scansAccepted.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
}

// ScanRejected records a scan that matched no line item.
func (m *ConferenceMetrics) ScanRejected(ctx context.Context) {
	if m == nil {
		return
	}
	m.scansRejected.Add(ctx, 1)
}

// SessionFinished records a conference reaching the results step.
func (m *ConferenceMetrics) SessionFinished(ctx context.Context) {
	if m == nil {
		return
	}
	m.sessions.Add(ctx, 1)
}
