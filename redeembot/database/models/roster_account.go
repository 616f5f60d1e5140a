package models

import (
	"time"

	"github.com/uptrace/bun"
)

type RosterAccount struct {
	bun.BaseModel `bun:"table:roster_accounts,alias:ra"`

	AccountID string    `bun:"account_id,pk"`
	AddedAt   time.Time `bun:"added_at,notnull"`
}
