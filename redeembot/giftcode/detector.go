// Package giftcode spots gift code announcements in chat messages.
package giftcode

import "regexp"

var announcement = regexp.MustCompile(`(?i)🎁\s*Gift\s*Code\s+#\s*([0-9A-F]+)\b`)

// Extract returns the hexadecimal token of the first "🎁 Gift Code #<token>"
// phrase in message.
func Extract(message string) (string, bool) {
	m := announcement.FindStringSubmatch(message)
	if m == nil {
		return "", false
	}
	return m[1], true
}
