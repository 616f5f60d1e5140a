package redeemer

import (
	"context"
	"math/rand/v2"
	"time"
)

const (
	DefaultPaceBase   = 1100 * time.Millisecond
	DefaultPaceJitter = 2200 * time.Millisecond
)

// Pacer spaces consecutive accounts of a batch so the store does not flag
// the traffic.
type Pacer interface {
	Wait(ctx context.Context) error
}

// JitterPacer waits Base plus a uniform random share of Jitter.
type JitterPacer struct {
	Base   time.Duration
	Jitter time.Duration
}

func DefaultPacer() JitterPacer {
	return JitterPacer{Base: DefaultPaceBase, Jitter: DefaultPaceJitter}
}

func (p JitterPacer) Delay() time.Duration {
	d := p.Base
	if p.Jitter > 0 {
		d += rand.N(p.Jitter)
	}
	return d
}

func (p JitterPacer) Wait(ctx context.Context) error {
	d := p.Delay()
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// NoDelay never waits.
type NoDelay struct{}

func (NoDelay) Wait(ctx context.Context) error {
	return ctx.Err()
}
