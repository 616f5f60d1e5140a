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

var AddUser = discord.SlashCommandCreate{
	Name:        "add-user",
	Description: "Add a user ID to the redemption list",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        accountOption,
			Description: "The user ID to add",
			Required:    true,
		},
	},
}

func AddUserHandler(store roster.Store, timeout time.Duration) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		id := accountID(e)
		if id == "" {
			return utils.EH.CreateUserError(e, "Please provide a user ID")
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		added, err := store.Add(ctx, id)
		if err != nil {
			return utils.EH.CreateSystemError(e, "Failed to update the user list")
		}
		if !added {
			return utils.EH.CreateUserError(e, fmt.Sprintf("User ID `%s` already exists!", id))
		}

		total, err := store.Count(ctx)
		if err != nil {
			return utils.EH.CreateSystemError(e, "Failed to count users")
		}
		return utils.EH.CreateEphemeralContent(e, fmt.Sprintf("✅ Added user ID: `%s`\nTotal users: %d", id, total))
	}
}
