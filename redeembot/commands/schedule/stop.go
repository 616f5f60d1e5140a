package schedule

import (
	"errors"
	"fmt"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/topheroes-tools/redeembot/redeembot/checkin"
	"github.com/topheroes-tools/redeembot/redeembot/utils"
)

var CheckInStop = discord.SlashCommandCreate{
	Name:        "checkin-stop",
	Description: "Stop the daily check-in schedule",
}

func CheckInStopHandler(s Scheduler) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		stopped, err := s.Stop()
		if errors.Is(err, checkin.ErrNoSchedule) {
			return utils.EH.CreateNotFoundError(e, "Check-in schedule", "active")
		}
		if err != nil {
			return utils.EH.CreateSystemError(e, "Failed to stop the check-in schedule")
		}
		return e.CreateMessage(discord.MessageCreate{
			Content: fmt.Sprintf("🛑 Stopped check-in for activity `%d` with %d day(s) left",
				stopped.ActivityID, stopped.DaysRemaining),
		})
	}
}
