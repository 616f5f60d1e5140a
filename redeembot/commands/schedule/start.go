package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/topheroes-tools/redeembot/redeembot/checkin"
	"github.com/topheroes-tools/redeembot/redeembot/utils"
)

var CheckInStart = discord.SlashCommandCreate{
	Name:        "checkin-start",
	Description: "Check in every registered user once a day for an activity",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionInt{
			Name:        activityOption,
			Description: "The store activity to check in to",
			Required:    true,
			MinValue:    utils.Ptr(1),
		},
		discord.ApplicationCommandOptionInt{
			Name:        daysOption,
			Description: "How many daily check-ins to run",
			Required:    true,
			MinValue:    utils.Ptr(1),
			MaxValue:    utils.Ptr(365),
		},
	},
}

// StartReply renders the outcome of a start request.
func StartReply(s checkin.Schedule, next time.Time, err error) (string, bool) {
	switch {
	case errors.Is(err, checkin.ErrScheduleActive):
		return fmt.Sprintf("A check-in schedule for activity `%d` is already running with %d day(s) left. Stop it first.",
			s.ActivityID, s.DaysRemaining), false
	case errors.Is(err, checkin.ErrInvalidDays):
		return "Days must be at least 1", false
	case err != nil:
		return fmt.Sprintf("Failed to start the check-in schedule: %v", err), false
	}
	return fmt.Sprintf("📅 Daily check-in started for activity `%d`: %d day(s), next run <t:%d:R>",
		s.ActivityID, s.DaysRemaining, next.Unix()), true
}

func CheckInStartHandler(s Scheduler, next NextRun) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		data := e.SlashCommandInteractionData()
		schedule, err := s.Start(data.Int(activityOption), data.Int(daysOption))

		msg, ok := StartReply(schedule, next(), err)
		if !ok {
			if errors.Is(err, checkin.ErrScheduleActive) {
				return utils.EH.CreateBusinessLogicError(e, msg)
			}
			return utils.EH.CreateUserError(e, msg)
		}
		return e.CreateMessage(discord.MessageCreate{Content: msg})
	}
}
