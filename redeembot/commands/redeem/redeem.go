package redeem

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/topheroes-tools/redeembot/redeembot/utils"
)

var Redeem = discord.SlashCommandCreate{
	Name:        "redeem",
	Description: "Manually redeem a gift code for the specified user",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        codeOption,
			Description: "The gift code to redeem",
			Required:    true,
		},
		discord.ApplicationCommandOptionString{
			Name:         accountOption,
			Description:  "The user ID to get rewarded",
			Required:     true,
			Autocomplete: true,
		},
	},
}

// SingleResult is the reply for a one-account redemption.
func SingleResult(code, accountID string, ok bool) string {
	if ok {
		return fmt.Sprintf("✅ Successfully redeemed code `%s` for: %s", code, accountID)
	}
	return fmt.Sprintf("❌ Failed to redeem code `%s` for `%s`", code, accountID)
}

func RedeemHandler(r SingleRedeemer, timeout time.Duration) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		data := e.SlashCommandInteractionData()
		code := normalizeCode(data.String(codeOption))
		accountID := strings.TrimSpace(data.String(accountOption))
		if code == "" || accountID == "" {
			return utils.EH.CreateUserError(e, "Please provide both a gift code and a user ID")
		}

		if err := e.DeferCreateMessage(false); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		return utils.EH.UpdateContent(e, SingleResult(code, accountID, r.RedeemSingle(ctx, accountID, code)))
	}
}
