// Package telemetry exports redemption outcome counters through OpenTelemetry.
package telemetry

import (
	"context"
	"log/slog"

	"github.com/topheroes-tools/redeembot/redeembot/redeemer"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const MeterName = "github.com/topheroes-tools/redeembot"

// Metrics implements redeemer.OutcomeSink.
type Metrics struct {
	outcomes metric.Int64Counter
}

func NewMetrics(meter metric.Meter) (*Metrics, error) {
	outcomes, err := meter.Int64Counter(
		"redeembot.outcomes",
		metric.WithDescription("Per-account redemption and check-in outcomes"),
		metric.WithUnit("{outcome}"),
	)
	if err != nil {
		return nil, err
	}
	return &Metrics{outcomes: outcomes}, nil
}

func (m *Metrics) Record(ctx context.Context, rec redeemer.OutcomeRecord) {
	result := "failure"
	if rec.Succeeded {
		result = "success"
	}
	m.outcomes.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", string(rec.Kind)),
		attribute.String("result", result),
	))
	slog.Debug("Outcome recorded",
		slog.String("type", "upstream"),
		slog.String("account_id", rec.AccountID),
		slog.String("result", result),
	)
}
