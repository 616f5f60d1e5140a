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

var RemoveUser = discord.SlashCommandCreate{
	Name:        "remove-user",
	Description: "Remove a user ID from the redemption list",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:         accountOption,
			Description:  "The user ID to remove",
			Required:     true,
			Autocomplete: true,
		},
	},
}

func RemoveUserHandler(store roster.Store, timeout time.Duration) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		id := accountID(e)

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		removed, err := store.Remove(ctx, id)
		if err != nil {
			return utils.EH.CreateSystemError(e, "Failed to update the user list")
		}
		if !removed {
			return utils.EH.CreateNotFoundError(e, "User ID", id)
		}

		total, err := store.Count(ctx)
		if err != nil {
			return utils.EH.CreateSystemError(e, "Failed to count users")
		}
		return utils.EH.CreateEphemeralContent(e, fmt.Sprintf("🗑️ Removed user ID: `%s`\nTotal users: %d", id, total))
	}
}
