package schedule

import (
	"fmt"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/topheroes-tools/redeembot/redeembot/utils"
)

var CheckInStatus = discord.SlashCommandCreate{
	Name:        "checkin-status",
	Description: "Show the daily check-in schedule",
}

func CheckInStatusHandler(s Scheduler, next NextRun) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		schedule, active := s.Status()
		if !active {
			return utils.EH.CreateEphemeralContent(e, "💤 No check-in schedule is active")
		}

		embed := discord.NewEmbedBuilder().
			SetTitle("📅 Daily Check-in").
			SetColor(utils.InfoColor).
			AddField("Activity", fmt.Sprintf("`%d`", schedule.ActivityID), true).
			AddField("Days left", fmt.Sprintf("%d", schedule.DaysRemaining), true).
			AddField("Started", fmt.Sprintf("<t:%d:f>", schedule.StartDate.Unix()), true).
			AddField("Next run", fmt.Sprintf("<t:%d:R>", next().Unix()), true).
			Build()

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{embed},
			Flags:  discord.MessageFlagEphemeral,
		})
	}
}
