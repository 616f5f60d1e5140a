package accounts

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/topheroes-tools/redeembot/redeembot/roster"
	"github.com/topheroes-tools/redeembot/redeembot/utils"
)

const accountOption = "user-id"

var Commands = []discord.ApplicationCommandCreate{
	AddUser,
	RemoveUser,
	ClearUsers,
	ListUsers,
}

// AccountAutocomplete suggests roster ids for the user-id option.
func AccountAutocomplete(store roster.Store) handler.AutocompleteHandler {
	return func(e *handler.AutocompleteEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		ids, err := store.List(ctx)
		if err != nil {
			slog.Error("Failed to load roster for autocomplete",
				slog.String("type", "error"),
				slog.Any("error", err),
			)
			return e.AutocompleteResult([]discord.AutocompleteChoice{})
		}

		query := strings.TrimSpace(e.Data.String(accountOption))
		matches := roster.Suggest(ids, query, utils.AutocompleteMax)

		choices := make([]discord.AutocompleteChoice, 0, len(matches))
		for _, id := range matches {
			choices = append(choices, discord.AutocompleteChoiceString{Name: id, Value: id})
		}
		return e.AutocompleteResult(choices)
	}
}

func accountID(e *handler.CommandEvent) string {
	return strings.TrimSpace(e.SlashCommandInteractionData().String(accountOption))
}
