package telemetry

import (
	"context"
	"testing"

	"github.com/topheroes-tools/redeembot/redeembot/redeemer"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestMetrics_Record(t *testing.T) {
	ctx := context.Background()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(ctx) })

	m, err := NewMetrics(provider.Meter(MeterName))
	if err != nil {
		t.Fatalf("NewMetrics() error = %v", err)
	}

	m.Record(ctx, redeemer.OutcomeRecord{AccountID: "a", Kind: redeemer.KindRedeem, Succeeded: true})
	m.Record(ctx, redeemer.OutcomeRecord{AccountID: "b", Kind: redeemer.KindRedeem, Succeeded: false})
	m.Record(ctx, redeemer.OutcomeRecord{AccountID: "c", Kind: redeemer.KindRedeem, Succeeded: true})

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	counts := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, md := range sm.Metrics {
			if md.Name != "redeembot.outcomes" {
				continue
			}
			sum, ok := md.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("data type = %T, want metricdata.Sum[int64]", md.Data)
			}
			for _, dp := range sum.DataPoints {
				result, _ := dp.Attributes.Value(attribute.Key("result"))
				counts[result.AsString()] += dp.Value
			}
		}
	}

	if counts["success"] != 2 || counts["failure"] != 1 {
		t.Errorf("counts = %v, want success=2 failure=1", counts)
	}
}

func TestInitMeter_Disabled(t *testing.T) {
	shutdown, err := InitMeter(context.Background(), Config{Enabled: false})
	if err != nil {
		t.Fatalf("InitMeter() error = %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown() error = %v", err)
	}
}

func TestInitTracer_Disabled(t *testing.T) {
	shutdown, err := InitTracer(context.Background(), Config{Enabled: false})
	if err != nil {
		t.Fatalf("InitTracer() error = %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown() error = %v", err)
	}
}
