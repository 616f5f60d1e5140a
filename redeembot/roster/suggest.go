package roster

import (
	"github.com/sahilm/fuzzy"
)

// Suggest ranks ids against query for autocomplete. An empty query returns
// the first limit ids unchanged.
func Suggest(ids []string, query string, limit int) []string {
	if query == "" {
		return ids[:min(limit, len(ids))]
	}

	matches := fuzzy.Find(query, ids)
	out := make([]string, 0, min(limit, len(matches)))
	for _, m := range matches {
		if len(out) == limit {
			break
		}
		out = append(out, m.Str)
	}
	return out
}
