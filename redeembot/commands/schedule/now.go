package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/topheroes-tools/redeembot/redeembot/redeemer"
	"github.com/topheroes-tools/redeembot/redeembot/utils"
)

var CheckInNow = discord.SlashCommandCreate{
	Name:        "checkin-now",
	Description: "Run a one-off check-in for every registered user",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionInt{
			Name:        activityOption,
			Description: "The store activity to check in to",
			Required:    true,
			MinValue:    utils.Ptr(1),
		},
	},
}

// NowReply renders the result of a one-off check-in batch.
func NowReply(activityID int, succeeded []string, err error) string {
	switch {
	case errors.Is(err, redeemer.ErrNoAccounts):
		return "⚠️ No user IDs configured. Use /add-user to add users."
	case err != nil && len(succeeded) == 0:
		return fmt.Sprintf("❌ Error checking in to activity `%d`: %v", activityID, err)
	case len(succeeded) == 0:
		return fmt.Sprintf("❌ Failed to check in to activity `%d` for any users", activityID)
	}
	msg := fmt.Sprintf("✅ Checked in to activity `%d` for: %s", activityID, utils.FormatIDList(succeeded))
	if skipped, ok := redeemer.Skipped(err); ok {
		msg += utils.InterruptedNote(skipped)
	}
	return msg
}

func CheckInNowHandler(s Scheduler, timeout time.Duration) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		activityID := e.SlashCommandInteractionData().Int(activityOption)

		if err := e.DeferCreateMessage(false); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		succeeded, err := s.CheckInNow(ctx, activityID)
		return utils.EH.UpdateContent(e, NowReply(activityID, succeeded, err))
	}
}
