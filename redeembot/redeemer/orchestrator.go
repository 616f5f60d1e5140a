// Package redeemer runs gift code redemptions and check-ins for a roster of
// accounts, one account at a time.
package redeemer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/topheroes-tools/redeembot/redeembot/logger"
	"github.com/topheroes-tools/redeembot/redeembot/upstream"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/topheroes-tools/redeembot/redeemer"

//go:generate mockgen -destination=mock/upstream.go -package=mock . Authenticator,RedemptionInvoker,CheckInInvoker,OutcomeSink

// ErrNoAccounts is returned by RunBatch for an empty roster.
var ErrNoAccounts = errors.New("no accounts configured")

// InterruptedError is returned by RunBatch when ctx ends between accounts.
// The accounts after Attempted were never tried.
type InterruptedError struct {
	Attempted int
	Total     int
	Err       error
}

func (e *InterruptedError) Error() string {
	return fmt.Sprintf("batch interrupted after %d of %d accounts: %v", e.Attempted, e.Total, e.Err)
}

func (e *InterruptedError) Unwrap() error {
	return e.Err
}

// Skipped is the number of accounts left unattempted.
func (e *InterruptedError) Skipped() int {
	return e.Total - e.Attempted
}

// Skipped reports how many accounts an interrupted batch left unattempted.
func Skipped(err error) (int, bool) {
	var interrupted *InterruptedError
	if errors.As(err, &interrupted) {
		return interrupted.Skipped(), true
	}
	return 0, false
}

type Authenticator interface {
	Authenticate(ctx context.Context, accountID string) (upstream.Credential, error)
}

type RedemptionInvoker interface {
	Redeem(ctx context.Context, cred upstream.Credential, giftCode string) upstream.Outcome
}

type CheckInInvoker interface {
	CheckIn(ctx context.Context, cred upstream.Credential, activityID int) upstream.Outcome
}

// OutcomeSink receives every per-account outcome, e.g. analytics or metrics.
type OutcomeSink interface {
	Record(ctx context.Context, rec OutcomeRecord)
}

type Option func(*Orchestrator)

func WithPacer(p Pacer) Option {
	return func(o *Orchestrator) { o.pacer = p }
}

func WithSinks(sinks ...OutcomeSink) Option {
	return func(o *Orchestrator) { o.sinks = append(o.sinks, sinks...) }
}

func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

type Orchestrator struct {
	auth    Authenticator
	redeem  RedemptionInvoker
	checkIn CheckInInvoker
	pacer   Pacer
	sinks   []OutcomeSink
	now     func() time.Time
}

func New(auth Authenticator, redeem RedemptionInvoker, checkIn CheckInInvoker, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		auth:    auth,
		redeem:  redeem,
		checkIn: checkIn,
		pacer:   DefaultPacer(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// RunBatch applies op to every account in order and returns the accounts
// that succeeded, in input order. A failing account never stops the batch.
// The only errors are ErrNoAccounts for an empty input and *InterruptedError
// when ctx ends while waiting between accounts.
func (o *Orchestrator) RunBatch(ctx context.Context, accountIDs []string, op Operation) ([]string, error) {
	if len(accountIDs) == 0 {
		slog.Warn("No account ids configured, skipping batch",
			slog.String("type", "sys"),
			slog.String("operation", string(op.Kind)),
			slog.String("target", op.Target()),
		)
		return []string{}, ErrNoAccounts
	}

	batchID := uuid.NewString()
	ctx, span := otel.Tracer(tracerName).Start(ctx, "batch "+string(op.Kind), trace.WithAttributes(
		attribute.String("redeemer.batch_id", batchID),
		attribute.String("redeemer.operation", string(op.Kind)),
		attribute.String("redeemer.target", op.Target()),
		attribute.Int("redeemer.accounts", len(accountIDs)),
	))
	defer span.End()

	start := time.Now()
	slog.Info("Batch started",
		slog.String("type", "upstream"),
		slog.String("batch_id", batchID),
		slog.String("operation", string(op.Kind)),
		slog.String("target", op.Target()),
		slog.Int("accounts", len(accountIDs)),
	)

	accounts := unique(accountIDs)
	succeeded := make([]string, 0, len(accounts))

	for i, accountID := range accounts {
		if i > 0 {
			if err := o.pacer.Wait(ctx); err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, "batch interrupted")
				return succeeded, &InterruptedError{Attempted: i, Total: len(accounts), Err: err}
			}
		}

		if o.process(ctx, accountID, op) {
			succeeded = append(succeeded, accountID)
		}
	}

	span.SetAttributes(attribute.Int("redeemer.succeeded", len(succeeded)))
	slog.Info("Batch finished",
		slog.String("type", "upstream"),
		slog.String("batch_id", batchID),
		slog.String("operation", string(op.Kind)),
		slog.String("target", op.Target()),
		slog.Int("accounts", len(accountIDs)),
		slog.Int("succeeded", len(succeeded)),
		slog.Duration("took", time.Since(start)),
	)
	return succeeded, nil
}

// RedeemSingle redeems giftCode for one account.
func (o *Orchestrator) RedeemSingle(ctx context.Context, accountID, giftCode string) bool {
	return o.process(ctx, accountID, Redeem(giftCode))
}

func (o *Orchestrator) process(ctx context.Context, accountID string, op Operation) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Panic while processing account",
				slog.String("type", "error"),
				slog.String("account_id", accountID),
				slog.Any("panic", r),
			)
			o.record(ctx, accountID, op, upstream.TransportFailure(fmt.Errorf("panic: %v", r)))
			ok = false
		}
	}()

	cred, err := o.auth.Authenticate(ctx, accountID)
	if err != nil {
		logger.LogUpstream("Login failed, skipping account", accountID, err,
			slog.String("operation", string(op.Kind)))
		o.record(ctx, accountID, op, upstream.TransportFailure(err))
		return false
	}

	var out upstream.Outcome
	switch op.Kind {
	case KindCheckIn:
		out = o.checkIn.CheckIn(ctx, cred, op.ActivityID)
	default:
		out = o.redeem.Redeem(ctx, cred, op.Code)
	}

	attrs := []any{
		slog.String("type", "upstream"),
		slog.String("account_id", accountID),
		slog.String("operation", string(op.Kind)),
		slog.String("target", op.Target()),
		slog.String("outcome", out.Kind.String()),
	}
	switch out.Kind {
	case upstream.OutcomeSuccess:
		slog.Info("Account processed", attrs...)
	case upstream.OutcomeRejected:
		slog.Warn("Store rejected request", append(attrs,
			slog.Int("code", out.Code),
			slog.String("message", out.Message),
		)...)
	default:
		slog.Warn("Store call failed", append(attrs, slog.Any("error", out.Err))...)
	}

	o.record(ctx, accountID, op, out)
	return out.Succeeded()
}

func (o *Orchestrator) record(ctx context.Context, accountID string, op Operation, out upstream.Outcome) {
	rec := OutcomeRecord{
		AccountID: accountID,
		Kind:      op.Kind,
		Target:    op.Target(),
		Succeeded: out.Succeeded(),
		Reason:    out.Reason(),
		Timestamp: o.now(),
	}
	for _, sink := range o.sinks {
		sink.Record(ctx, rec)
	}
}

// unique drops repeated ids, keeping the first occurrence.
func unique(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
