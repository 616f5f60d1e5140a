// Package roster keeps the set of player account ids the bot redeems for.
package roster

import (
	"context"
	"regexp"
	"strings"
)

// Store is a unique set of account ids, listed in insertion order.
type Store interface {
	Add(ctx context.Context, accountID string) (bool, error)
	Remove(ctx context.Context, accountID string) (bool, error)
	Clear(ctx context.Context) (int, error)
	List(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int, error)
	Has(ctx context.Context, accountID string) (bool, error)
}

var separator = regexp.MustCompile(`\s*,\s*`)

// ParseIDs splits a comma separated list, dropping blanks.
func ParseIDs(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var ids []string
	for _, id := range separator.Split(raw, -1) {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// Seed adds ids to store, skipping ones already present.
func Seed(ctx context.Context, store Store, ids []string) (int, error) {
	added := 0
	for _, id := range ids {
		ok, err := store.Add(ctx, id)
		if err != nil {
			return added, err
		}
		if ok {
			added++
		}
	}
	return added, nil
}
