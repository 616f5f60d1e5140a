package checkin

import (
	"fmt"
	"sync"
	"time"
)

// Trigger fires a callback once at the next scheduled moment. The scheduler
// re-arms it after every tick.
type Trigger interface {
	Arm(fire func())
	Disarm()
}

// DailyTrigger fires at a fixed time of day in a fixed location.
type DailyTrigger struct {
	hour     int
	minute   int
	location *time.Location
	now      func() time.Time

	mu    sync.Mutex
	timer *time.Timer
}

// NewDailyTrigger parses at as "HH:MM" and tz as an IANA zone name. An
// empty tz means UTC.
func NewDailyTrigger(at, tz string) (*DailyTrigger, error) {
	clock, err := time.Parse("15:04", at)
	if err != nil {
		return nil, fmt.Errorf("invalid check-in time %q: %w", at, err)
	}

	loc := time.UTC
	if tz != "" {
		if loc, err = time.LoadLocation(tz); err != nil {
			return nil, fmt.Errorf("invalid check-in timezone %q: %w", tz, err)
		}
	}

	return &DailyTrigger{
		hour:     clock.Hour(),
		minute:   clock.Minute(),
		location: loc,
		now:      time.Now,
	}, nil
}

// Next returns the first firing moment strictly after from.
func (t *DailyTrigger) Next(from time.Time) time.Time {
	local := from.In(t.location)
	next := time.Date(local.Year(), local.Month(), local.Day(), t.hour, t.minute, 0, 0, t.location)
	if !next.After(local) {
		next = time.Date(local.Year(), local.Month(), local.Day()+1, t.hour, t.minute, 0, 0, t.location)
	}
	return next
}

// Arm replaces any pending firing with one at the next occurrence.
func (t *DailyTrigger) Arm(fire func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
	}
	now := t.now()
	t.timer = time.AfterFunc(t.Next(now).Sub(now), fire)
}

func (t *DailyTrigger) Disarm() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

// Armed reports whether a firing is pending.
func (t *DailyTrigger) Armed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.timer != nil
}
