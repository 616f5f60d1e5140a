package redeemer_test

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/topheroes-tools/redeembot/redeembot/redeemer"
	"github.com/topheroes-tools/redeembot/redeembot/redeemer/mock"
	"github.com/topheroes-tools/redeembot/redeembot/upstream"
	"go.uber.org/mock/gomock"
)

type countingPacer struct {
	mu    sync.Mutex
	waits int
	err   error
}

func (p *countingPacer) Wait(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.waits++
	return p.err
}

type mocks struct {
	auth    *mock.MockAuthenticator
	redeem  *mock.MockRedemptionInvoker
	checkIn *mock.MockCheckInInvoker
}

func newMocks(t *testing.T) mocks {
	ctrl := gomock.NewController(t)
	return mocks{
		auth:    mock.NewMockAuthenticator(ctrl),
		redeem:  mock.NewMockRedemptionInvoker(ctrl),
		checkIn: mock.NewMockCheckInInvoker(ctrl),
	}
}

func cred(id string) upstream.Credential {
	return upstream.Credential{AccountID: id, Token: "token-" + id}
}

func TestOrchestrator_RunBatch(t *testing.T) {
	loginErr := &upstream.AuthError{AccountID: "x", Err: upstream.ErrMissingAuthorization}

	tests := []struct {
		name     string
		accounts []string
		setup    func(m mocks)
		want     []string
		wantErr  error
		waits    int
	}{
		{
			name:     "Empty",
			accounts: nil,
			setup:    func(m mocks) {},
			want:     []string{},
			wantErr:  redeemer.ErrNoAccounts,
			waits:    0,
		},
		{
			name:     "SingleAccount",
			accounts: []string{"a"},
			setup: func(m mocks) {
				m.auth.EXPECT().Authenticate(gomock.Any(), "a").Return(cred("a"), nil)
				m.redeem.EXPECT().Redeem(gomock.Any(), cred("a"), "CODE").Return(upstream.Success())
			},
			want:  []string{"a"},
			waits: 0,
		},
		{
			name:     "MixedOutcomesKeepOrder",
			accounts: []string{"a", "b", "c", "d"},
			setup: func(m mocks) {
				gomock.InOrder(
					m.auth.EXPECT().Authenticate(gomock.Any(), "a").Return(cred("a"), nil),
					m.redeem.EXPECT().Redeem(gomock.Any(), cred("a"), "CODE").Return(upstream.Success()),
					m.auth.EXPECT().Authenticate(gomock.Any(), "b").Return(upstream.Credential{}, loginErr),
					m.auth.EXPECT().Authenticate(gomock.Any(), "c").Return(cred("c"), nil),
					m.redeem.EXPECT().Redeem(gomock.Any(), cred("c"), "CODE").Return(upstream.Rejected(80006, "Maximum limit redemption times reached")),
					m.auth.EXPECT().Authenticate(gomock.Any(), "d").Return(cred("d"), nil),
					m.redeem.EXPECT().Redeem(gomock.Any(), cred("d"), "CODE").Return(upstream.Success()),
				)
			},
			want:  []string{"a", "d"},
			waits: 3,
		},
		{
			name:     "AllLoginsFail",
			accounts: []string{"a", "b", "c"},
			setup: func(m mocks) {
				m.auth.EXPECT().Authenticate(gomock.Any(), gomock.Any()).Return(upstream.Credential{}, loginErr).Times(3)
			},
			want:  []string{},
			waits: 2,
		},
		{
			name:     "TransportFailureDoesNotAbort",
			accounts: []string{"a", "b"},
			setup: func(m mocks) {
				m.auth.EXPECT().Authenticate(gomock.Any(), "a").Return(cred("a"), nil)
				m.redeem.EXPECT().Redeem(gomock.Any(), cred("a"), "CODE").Return(upstream.TransportFailure(errors.New("timeout")))
				m.auth.EXPECT().Authenticate(gomock.Any(), "b").Return(cred("b"), nil)
				m.redeem.EXPECT().Redeem(gomock.Any(), cred("b"), "CODE").Return(upstream.Success())
			},
			want:  []string{"b"},
			waits: 1,
		},
		{
			name:     "DuplicatesProcessedOnce",
			accounts: []string{"a", "a", "b"},
			setup: func(m mocks) {
				m.auth.EXPECT().Authenticate(gomock.Any(), "a").Return(cred("a"), nil)
				m.redeem.EXPECT().Redeem(gomock.Any(), cred("a"), "CODE").Return(upstream.Success())
				m.auth.EXPECT().Authenticate(gomock.Any(), "b").Return(cred("b"), nil)
				m.redeem.EXPECT().Redeem(gomock.Any(), cred("b"), "CODE").Return(upstream.Success())
			},
			want:  []string{"a", "b"},
			waits: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMocks(t)
			tt.setup(m)
			pacer := &countingPacer{}
			o := redeemer.New(m.auth, m.redeem, m.checkIn, redeemer.WithPacer(pacer))

			got, err := o.RunBatch(context.Background(), tt.accounts, redeemer.Redeem("CODE"))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("RunBatch() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("RunBatch() = %v, want %v", got, tt.want)
			}
			if pacer.waits != tt.waits {
				t.Errorf("pacer waits = %d, want %d", pacer.waits, tt.waits)
			}
		})
	}
}

func TestOrchestrator_RunBatchCheckIn(t *testing.T) {
	m := newMocks(t)
	m.auth.EXPECT().Authenticate(gomock.Any(), "a").Return(cred("a"), nil)
	m.checkIn.EXPECT().CheckIn(gomock.Any(), cred("a"), 42).Return(upstream.Success())

	o := redeemer.New(m.auth, m.redeem, m.checkIn, redeemer.WithPacer(redeemer.NoDelay{}))
	got, err := o.RunBatch(context.Background(), []string{"a"}, redeemer.CheckIn(42))
	if err != nil {
		t.Fatalf("RunBatch() error = %v", err)
	}
	if !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("RunBatch() = %v, want [a]", got)
	}
}

func TestOrchestrator_RecordsOutcomes(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newMocks(t)
	sink := mock.NewMockOutcomeSink(ctrl)
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)

	m.auth.EXPECT().Authenticate(gomock.Any(), "a").Return(cred("a"), nil)
	m.redeem.EXPECT().Redeem(gomock.Any(), cred("a"), "CODE").Return(upstream.Success())
	m.auth.EXPECT().Authenticate(gomock.Any(), "b").Return(cred("b"), nil)
	m.redeem.EXPECT().Redeem(gomock.Any(), cred("b"), "CODE").Return(upstream.Rejected(80006, "limit"))

	gomock.InOrder(
		sink.EXPECT().Record(gomock.Any(), redeemer.OutcomeRecord{
			AccountID: "a", Kind: redeemer.KindRedeem, Target: "CODE", Succeeded: true, Timestamp: now,
		}),
		sink.EXPECT().Record(gomock.Any(), redeemer.OutcomeRecord{
			AccountID: "b", Kind: redeemer.KindRedeem, Target: "CODE", Succeeded: false,
			Reason: "rejected (80006): limit", Timestamp: now,
		}),
	)

	o := redeemer.New(m.auth, m.redeem, m.checkIn,
		redeemer.WithPacer(redeemer.NoDelay{}),
		redeemer.WithSinks(sink),
		redeemer.WithClock(func() time.Time { return now }),
	)
	if _, err := o.RunBatch(context.Background(), []string{"a", "b"}, redeemer.Redeem("CODE")); err != nil {
		t.Fatalf("RunBatch() error = %v", err)
	}
}

func TestOrchestrator_PacerInterrupt(t *testing.T) {
	m := newMocks(t)
	m.auth.EXPECT().Authenticate(gomock.Any(), "a").Return(cred("a"), nil)
	m.redeem.EXPECT().Redeem(gomock.Any(), cred("a"), "CODE").Return(upstream.Success())

	pacer := &countingPacer{err: context.Canceled}
	o := redeemer.New(m.auth, m.redeem, m.checkIn, redeemer.WithPacer(pacer))

	got, err := o.RunBatch(context.Background(), []string{"a", "b", "c"}, redeemer.Redeem("CODE"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("RunBatch() error = %v, want context.Canceled", err)
	}
	if !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("RunBatch() = %v, want [a]", got)
	}

	var interrupted *redeemer.InterruptedError
	if !errors.As(err, &interrupted) {
		t.Fatalf("RunBatch() error = %T, want *InterruptedError", err)
	}
	if interrupted.Attempted != 1 || interrupted.Total != 3 {
		t.Errorf("interrupted after %d of %d, want 1 of 3", interrupted.Attempted, interrupted.Total)
	}
	if skipped, ok := redeemer.Skipped(err); !ok || skipped != 2 {
		t.Errorf("Skipped() = %d, %v, want 2, true", skipped, ok)
	}
}

func TestOrchestrator_RedeemSingle(t *testing.T) {
	m := newMocks(t)
	m.auth.EXPECT().Authenticate(gomock.Any(), "a").Return(cred("a"), nil)
	m.redeem.EXPECT().Redeem(gomock.Any(), cred("a"), "CODE").Return(upstream.Success())
	m.auth.EXPECT().Authenticate(gomock.Any(), "b").Return(upstream.Credential{}, &upstream.AuthError{AccountID: "b", Err: upstream.ErrMissingAuthorization})

	o := redeemer.New(m.auth, m.redeem, m.checkIn, redeemer.WithPacer(redeemer.NoDelay{}))
	if !o.RedeemSingle(context.Background(), "a", "CODE") {
		t.Error("RedeemSingle(a) = false, want true")
	}
	if o.RedeemSingle(context.Background(), "b", "CODE") {
		t.Error("RedeemSingle(b) = true, want false")
	}
}

func TestOrchestrator_PanicIsContained(t *testing.T) {
	m := newMocks(t)
	m.auth.EXPECT().Authenticate(gomock.Any(), "a").DoAndReturn(func(context.Context, string) (upstream.Credential, error) {
		panic("boom")
	})
	m.auth.EXPECT().Authenticate(gomock.Any(), "b").Return(cred("b"), nil)
	m.redeem.EXPECT().Redeem(gomock.Any(), cred("b"), "CODE").Return(upstream.Success())

	o := redeemer.New(m.auth, m.redeem, m.checkIn, redeemer.WithPacer(redeemer.NoDelay{}))
	got, err := o.RunBatch(context.Background(), []string{"a", "b"}, redeemer.Redeem("CODE"))
	if err != nil {
		t.Fatalf("RunBatch() error = %v", err)
	}
	if !reflect.DeepEqual(got, []string{"b"}) {
		t.Errorf("RunBatch() = %v, want [b]", got)
	}
}
