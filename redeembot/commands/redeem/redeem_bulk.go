package redeem

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

var RedeemBulk = discord.SlashCommandCreate{
	Name:        "redeem-bulk",
	Description: "Manually redeem a gift code for every registered user",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        codeOption,
			Description: "The gift code to redeem",
			Required:    true,
		},
	},
}

// RunBulk redeems code for the whole roster and renders the reply.
func RunBulk(ctx context.Context, accounts AccountLister, runner BatchRunner, code string) string {
	ids, err := accounts.List(ctx)
	if err != nil {
		return fmt.Sprintf("❌ Error redeeming code `%s`: %v", code, err)
	}

	succeeded, err := runner.RunBatch(ctx, ids, redeemer.Redeem(code))
	switch {
	case errors.Is(err, redeemer.ErrNoAccounts):
		return "⚠️ No user IDs configured. Use /add-user to add users."
	case err != nil && len(succeeded) == 0:
		return fmt.Sprintf("❌ Error redeeming code `%s`: %v", code, err)
	}
	msg := utils.BatchResult("Successfully redeemed", code, succeeded)
	if skipped, ok := redeemer.Skipped(err); ok {
		msg += utils.InterruptedNote(skipped)
	}
	return msg
}

func RedeemBulkHandler(accounts AccountLister, runner BatchRunner, timeout time.Duration) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		code := normalizeCode(e.SlashCommandInteractionData().String(codeOption))
		if code == "" {
			return utils.EH.CreateUserError(e, "Please provide a gift code")
		}

		if err := e.DeferCreateMessage(false); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		return utils.EH.UpdateContent(e, RunBulk(ctx, accounts, runner, code))
	}
}
