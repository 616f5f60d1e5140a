package schedule

import (
	"context"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/topheroes-tools/redeembot/redeembot/checkin"
)

var Commands = []discord.ApplicationCommandCreate{
	CheckInStart,
	CheckInStop,
	CheckInNow,
	CheckInStatus,
}

const (
	activityOption = "activity-id"
	daysOption     = "days"
)

// Scheduler is satisfied by *checkin.Scheduler.
type Scheduler interface {
	Start(activityID, days int) (checkin.Schedule, error)
	Stop() (checkin.Schedule, error)
	Status() (checkin.Schedule, bool)
	CheckInNow(ctx context.Context, activityID int) ([]string, error)
}

// NextRun reports when the trigger fires next.
type NextRun func() time.Time
