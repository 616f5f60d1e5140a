// Package analytics keeps a bounded in-memory window of redemption outcomes
// for the /stats command.
package analytics

import (
	"context"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru"
	"github.com/topheroes-tools/redeembot/redeembot/redeemer"
)

const DefaultCapacity = 5000

// Stats summarizes a set of outcome records.
type Stats struct {
	Total       int
	Successful  int
	Failed      int
	UniqueCodes int
	UniqueUsers int
}

// SuccessRate is the success percentage with one decimal, "0" when empty.
func (s Stats) SuccessRate() string {
	if s.Total == 0 {
		return "0"
	}
	return fmt.Sprintf("%.1f", float64(s.Successful)/float64(s.Total)*100)
}

// Recorder implements redeemer.OutcomeSink. Once capacity is reached the
// oldest records are evicted.
type Recorder struct {
	mu    sync.Mutex
	cache *lru.Cache
	seq   uint64
}

func NewRecorder(capacity int) (*Recorder, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	cache, err := lru.New(capacity)
	if err != nil {
		return nil, fmt.Errorf("failed to create outcome buffer: %w", err)
	}
	return &Recorder{cache: cache}, nil
}

func (r *Recorder) Record(_ context.Context, rec redeemer.OutcomeRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	r.cache.Add(r.seq, rec)
}

// records returns the buffered records, oldest first.
func (r *Recorder) records() []redeemer.OutcomeRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := r.cache.Keys()
	out := make([]redeemer.OutcomeRecord, 0, len(keys))
	for _, k := range keys {
		if v, ok := r.cache.Peek(k); ok {
			out = append(out, v.(redeemer.OutcomeRecord))
		}
	}
	return out
}

// Stats covers every buffered record.
func (r *Recorder) Stats() Stats {
	return summarize(r.records())
}

// UserStats covers the buffered records of one account.
func (r *Recorder) UserStats(accountID string) Stats {
	var mine []redeemer.OutcomeRecord
	for _, rec := range r.records() {
		if rec.AccountID == accountID {
			mine = append(mine, rec)
		}
	}
	return summarize(mine)
}

// Recent returns up to limit records, newest first.
func (r *Recorder) Recent(limit int) []redeemer.OutcomeRecord {
	recs := r.records()
	out := make([]redeemer.OutcomeRecord, 0, min(limit, len(recs)))
	for i := len(recs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, recs[i])
	}
	return out
}

func summarize(recs []redeemer.OutcomeRecord) Stats {
	codes := make(map[string]struct{})
	users := make(map[string]struct{})
	var s Stats
	for _, rec := range recs {
		s.Total++
		if rec.Succeeded {
			s.Successful++
		}
		codes[string(rec.Kind)+":"+rec.Target] = struct{}{}
		users[rec.AccountID] = struct{}{}
	}
	s.Failed = s.Total - s.Successful
	s.UniqueCodes = len(codes)
	s.UniqueUsers = len(users)
	return s
}
