package utils

import "time"

const (
	ErrorColor   = 0xFF0000
	SuccessColor = 0x00FF00
	InfoColor    = 0x0099FF
	WarningColor = 0xFFAA00
	EmbedColor   = 0x2B2D31
)

const (
	// MaxMessageLength is Discord's hard limit for message content.
	MaxMessageLength = 2000
	ServersInline    = 5
	RecentPerPage    = 10
	AutocompleteMax  = 25
)

const DefaultCommandTimeout = 10 * time.Second

func Ptr[T any](v T) *T {
	return &v
}
