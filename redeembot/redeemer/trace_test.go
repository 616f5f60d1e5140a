package redeemer_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/topheroes-tools/redeembot/redeembot/redeemer"
	"github.com/topheroes-tools/redeembot/redeembot/upstream"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/mock/gomock"
)

func TestOrchestrator_RunBatchSpan(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec)))
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	m := newMocks(t)
	m.auth.EXPECT().Authenticate(gomock.Any(), "a").Return(cred("a"), nil)
	m.auth.EXPECT().Authenticate(gomock.Any(), "b").Return(cred("b"), nil)
	m.redeem.EXPECT().Redeem(gomock.Any(), cred("a"), "CODE").Return(upstream.Success())
	m.redeem.EXPECT().Redeem(gomock.Any(), cred("b"), "CODE").Return(upstream.Rejected(80006, "limit"))

	o := redeemer.New(m.auth, m.redeem, m.checkIn, redeemer.WithPacer(redeemer.NoDelay{}))
	if _, err := o.RunBatch(context.Background(), []string{"a", "b"}, redeemer.Redeem("CODE")); err != nil {
		t.Fatalf("RunBatch() error = %v", err)
	}

	spans := rec.Ended()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if spans[0].Name() != "batch redeem" {
		t.Errorf("span name = %q", spans[0].Name())
	}

	attrs := make(map[attribute.Key]attribute.Value)
	for _, kv := range spans[0].Attributes() {
		attrs[kv.Key] = kv.Value
	}
	if _, err := uuid.Parse(attrs["redeemer.batch_id"].AsString()); err != nil {
		t.Errorf("batch_id %q is not a uuid: %v", attrs["redeemer.batch_id"].AsString(), err)
	}
	if got := attrs["redeemer.accounts"].AsInt64(); got != 2 {
		t.Errorf("accounts = %d, want 2", got)
	}
	if got := attrs["redeemer.succeeded"].AsInt64(); got != 1 {
		t.Errorf("succeeded = %d, want 1", got)
	}
	if got := attrs["redeemer.target"].AsString(); got != "CODE" {
		t.Errorf("target = %q, want CODE", got)
	}
}
