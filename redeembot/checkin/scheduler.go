// Package checkin keeps the daily check-in schedule and runs a batch for it
// once per day until the schedule runs out or is stopped.
package checkin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/topheroes-tools/redeembot/redeembot/redeemer"
	"golang.org/x/sync/semaphore"
)

var (
	ErrScheduleActive = errors.New("a check-in schedule is already active")
	ErrNoSchedule     = errors.New("no check-in schedule is active")
	ErrInvalidDays    = errors.New("days must be at least 1")
	ErrTickInProgress = errors.New("a check-in tick is already running")
)

const DefaultTickTimeout = 30 * time.Minute

// BatchRunner is satisfied by *redeemer.Orchestrator.
type BatchRunner interface {
	RunBatch(ctx context.Context, accountIDs []string, op redeemer.Operation) ([]string, error)
}

// AccountSource supplies the roster snapshot for each batch.
type AccountSource interface {
	List(ctx context.Context) ([]string, error)
}

// Schedule is the active check-in plan.
type Schedule struct {
	ActivityID    int
	DaysRemaining int
	StartDate     time.Time
}

// TickReport describes one tick.
type TickReport struct {
	ActivityID    int
	Succeeded     []string
	DaysRemaining int
	Completed     bool
	BatchErr      error
}

type Option func(*Scheduler)

func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

func WithTickTimeout(d time.Duration) Option {
	return func(s *Scheduler) { s.tickTimeout = d }
}

// Scheduler is Idle when schedule is nil and Active otherwise.
type Scheduler struct {
	runner      BatchRunner
	accounts    AccountSource
	trigger     Trigger
	now         func() time.Time
	tickTimeout time.Duration

	mu         sync.Mutex
	schedule   *Schedule
	generation uint64

	// ticking serializes ticks so a batch always finishes before the next one starts.
	ticking *semaphore.Weighted
}

func NewScheduler(runner BatchRunner, accounts AccountSource, trigger Trigger, opts ...Option) *Scheduler {
	s := &Scheduler{
		runner:      runner,
		accounts:    accounts,
		trigger:     trigger,
		now:         time.Now,
		tickTimeout: DefaultTickTimeout,
		ticking:     semaphore.NewWeighted(1),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start activates a schedule for activityID lasting days ticks.
func (s *Scheduler) Start(activityID, days int) (Schedule, error) {
	if days < 1 {
		return Schedule{}, ErrInvalidDays
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.schedule != nil {
		return *s.schedule, ErrScheduleActive
	}

	s.schedule = &Schedule{ActivityID: activityID, DaysRemaining: days, StartDate: s.now()}
	s.generation++
	s.trigger.Arm(s.fire)

	slog.Info("Check-in schedule started",
		slog.String("type", "sys"),
		slog.Int("activity_id", activityID),
		slog.Int("days", days),
	)
	return *s.schedule, nil
}

// Stop returns the schedule it cancelled. A batch already running is left
// to finish.
func (s *Scheduler) Stop() (Schedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.schedule == nil {
		return Schedule{}, ErrNoSchedule
	}

	stopped := *s.schedule
	s.schedule = nil
	s.trigger.Disarm()

	slog.Info("Check-in schedule stopped",
		slog.String("type", "sys"),
		slog.Int("activity_id", stopped.ActivityID),
		slog.Int("days_remaining", stopped.DaysRemaining),
	)
	return stopped, nil
}

// Status returns the active schedule, if any.
func (s *Scheduler) Status() (Schedule, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.schedule == nil {
		return Schedule{}, false
	}
	return *s.schedule, true
}

// Tick runs one check-in batch for the active schedule and decrements it,
// whatever the batch result. It returns ErrNoSchedule when Idle and
// ErrTickInProgress when another tick holds the slot.
func (s *Scheduler) Tick(ctx context.Context) (TickReport, error) {
	if !s.ticking.TryAcquire(1) {
		return TickReport{}, ErrTickInProgress
	}
	defer s.ticking.Release(1)

	s.mu.Lock()
	if s.schedule == nil {
		s.mu.Unlock()
		return TickReport{}, ErrNoSchedule
	}
	activityID := s.schedule.ActivityID
	generation := s.generation
	s.mu.Unlock()

	succeeded, batchErr := s.runBatch(ctx, activityID)
	var interrupted *redeemer.InterruptedError
	switch {
	case errors.Is(batchErr, redeemer.ErrNoAccounts):
		slog.Warn("Check-in tick ran without accounts",
			slog.String("type", "sys"),
			slog.Int("activity_id", activityID),
		)
	case errors.As(batchErr, &interrupted):
		slog.Warn("Check-in batch stopped early",
			slog.String("type", "sys"),
			slog.Int("activity_id", activityID),
			slog.Int("attempted", interrupted.Attempted),
			slog.Int("skipped", interrupted.Skipped()),
			slog.Any("error", batchErr),
		)
	case batchErr != nil:
		slog.Error("Check-in batch failed",
			slog.String("type", "error"),
			slog.Int("activity_id", activityID),
			slog.Any("error", batchErr),
		)
	}

	report := TickReport{ActivityID: activityID, Succeeded: succeeded, BatchErr: batchErr}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Stopped or replaced while the batch ran.
	if s.schedule == nil || s.generation != generation {
		report.Completed = true
		return report, nil
	}

	s.schedule.DaysRemaining--
	report.DaysRemaining = s.schedule.DaysRemaining
	if s.schedule.DaysRemaining <= 0 {
		s.schedule = nil
		s.trigger.Disarm()
		report.Completed = true
		slog.Info("Check-in schedule completed",
			slog.String("type", "sys"),
			slog.Int("activity_id", activityID),
		)
	}
	return report, nil
}

// CheckInNow runs a one-off check-in batch without touching the schedule.
func (s *Scheduler) CheckInNow(ctx context.Context, activityID int) ([]string, error) {
	return s.runBatch(ctx, activityID)
}

func (s *Scheduler) runBatch(ctx context.Context, activityID int) (succeeded []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("check-in batch panicked: %v", r)
		}
	}()

	ids, err := s.accounts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}
	return s.runner.RunBatch(ctx, ids, redeemer.CheckIn(activityID))
}

// fire is the trigger callback. The trigger is re-armed only after the tick
// is done, so ticks cannot pile up.
func (s *Scheduler) fire() {
	ctx, cancel := context.WithTimeout(context.Background(), s.tickTimeout)
	defer cancel()

	report, err := s.Tick(ctx)
	switch {
	case errors.Is(err, ErrTickInProgress):
		slog.Warn("Skipping check-in trigger, previous tick still running",
			slog.String("type", "sys"))
	case errors.Is(err, ErrNoSchedule):
		return
	case err == nil:
		slog.Info("Check-in tick finished",
			slog.String("type", "sys"),
			slog.Int("activity_id", report.ActivityID),
			slog.Int("succeeded", len(report.Succeeded)),
			slog.Int("days_remaining", report.DaysRemaining),
			slog.Bool("completed", report.Completed),
		)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.schedule != nil {
		s.trigger.Arm(s.fire)
	}
}
