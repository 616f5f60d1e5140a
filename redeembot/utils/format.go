package utils

import (
	"fmt"
	"strings"
)

// FormatIDList renders ids as inline code joined by commas.
func FormatIDList(ids []string) string {
	quoted := make([]string, len(ids))
	for i, id := range ids {
		quoted[i] = "`" + id + "`"
	}
	return strings.Join(quoted, ", ")
}

// NumberedList renders ids as "1. `id`" lines.
func NumberedList(ids []string) []string {
	lines := make([]string, len(ids))
	for i, id := range ids {
		lines[i] = fmt.Sprintf("%d. `%s`", i+1, id)
	}
	return lines
}

// BatchResult is the message posted after a batch redemption.
func BatchResult(verb, giftCode string, succeeded []string) string {
	if len(succeeded) == 0 {
		return fmt.Sprintf("❌ Failed to redeem code `%s` for any users", giftCode)
	}
	return fmt.Sprintf("✅ %s code `%s` for: %s", verb, giftCode, FormatIDList(succeeded))
}

// InterruptedNote is appended to a batch reply when the batch ran out of
// time before reaching every account.
func InterruptedNote(skipped int) string {
	return fmt.Sprintf("\n⚠️ Stopped early: %d account(s) were not attempted", skipped)
}

// ChunkMessages packs header and lines into messages no longer than limit.
// A single line longer than limit is cut.
func ChunkMessages(header string, lines []string, limit int) []string {
	var (
		chunks []string
		b      strings.Builder
	)
	b.WriteString(header)

	for _, line := range lines {
		if len(line) > limit {
			line = line[:limit]
		}
		sep := 0
		if b.Len() > 0 {
			sep = 1
		}
		if b.Len()+sep+len(line) > limit {
			chunks = append(chunks, b.String())
			b.Reset()
			sep = 0
		}
		if sep == 1 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
	}
	if b.Len() > 0 {
		chunks = append(chunks, b.String())
	}
	return chunks
}

// Pages returns how many pages of size per are needed for n items, at least one.
func Pages(n, per int) int {
	if per <= 0 || n <= 0 {
		return 1
	}
	return (n + per - 1) / per
}

// PageBounds returns the slice bounds of page for n items.
func PageBounds(page, per, n int) (int, int) {
	start := min(page*per, n)
	return start, min(start+per, n)
}
