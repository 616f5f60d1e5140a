package accounts

import (
	"context"
	"fmt"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/topheroes-tools/redeembot/redeembot/roster"
	"github.com/topheroes-tools/redeembot/redeembot/utils"
)

var ClearUsers = discord.SlashCommandCreate{
	Name:        "clear-users",
	Description: "Clear all user IDs from the redemption list",
}

func ClearUsersHandler(store roster.Store, timeout time.Duration) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		count, err := store.Clear(ctx)
		if err != nil {
			return utils.EH.CreateSystemError(e, "Failed to clear the user list")
		}
		return utils.EH.CreateEphemeralContent(e, fmt.Sprintf("🧹 Cleared %d user ID(s)", count))
	}
}
