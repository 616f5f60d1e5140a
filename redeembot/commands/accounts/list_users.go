package accounts

import (
	"context"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/snowflake/v2"
	"github.com/topheroes-tools/redeembot/redeembot/roster"
	"github.com/topheroes-tools/redeembot/redeembot/utils"
)

var ListUsers = discord.SlashCommandCreate{
	Name:        "list-users",
	Description: "List all current user IDs",
}

// DirectMessenger sends a message to a user's DMs.
type DirectMessenger func(userID snowflake.ID, msg discord.MessageCreate) error

// ListMessages renders the roster as one or more DM-sized messages.
func ListMessages(ids []string) []string {
	if len(ids) == 0 {
		return []string{"📝 No user IDs configured"}
	}
	return utils.ChunkMessages("👥 **Current Users:**", utils.NumberedList(ids), utils.MaxMessageLength)
}

func ListUsersHandler(store roster.Store, dm DirectMessenger, timeout time.Duration) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		ids, err := store.List(ctx)
		if err != nil {
			return utils.EH.CreateSystemError(e, "Failed to load the user list")
		}

		for _, content := range ListMessages(ids) {
			if err := dm(e.User().ID, discord.MessageCreate{Content: content}); err != nil {
				return utils.EH.CreateSystemError(e, "I couldn't DM you. Check that direct messages are open.")
			}
		}
		return utils.EH.CreateEphemeralContent(e, "The list of the users is kept secret. 🤫")
	}
}
