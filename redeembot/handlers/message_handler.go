package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/snowflake/v2"
	"github.com/topheroes-tools/redeembot/redeembot/giftcode"
	"github.com/topheroes-tools/redeembot/redeembot/redeemer"
	"github.com/topheroes-tools/redeembot/redeembot/utils"
)

type BatchRunner interface {
	RunBatch(ctx context.Context, accountIDs []string, op redeemer.Operation) ([]string, error)
}

type AccountLister interface {
	List(ctx context.Context) ([]string, error)
}

// Poster sends content to a channel.
type Poster func(channelID snowflake.ID, content string) error

// AutoRedeemer redeems gift codes announced in the watched channel for every
// roster account.
type AutoRedeemer struct {
	channelID snowflake.ID
	accounts  AccountLister
	runner    BatchRunner
	post      Poster
	timeout   time.Duration
	tasks     *utils.BackgroundTasks
}

// NewAutoRedeemer watches channelID, or every channel when it is zero.
func NewAutoRedeemer(channelID snowflake.ID, accounts AccountLister, runner BatchRunner, post Poster, timeout time.Duration, tasks *utils.BackgroundTasks) *AutoRedeemer {
	return &AutoRedeemer{
		channelID: channelID,
		accounts:  accounts,
		runner:    runner,
		post:      post,
		timeout:   timeout,
		tasks:     tasks,
	}
}

// Listener adapts the redeemer to the gateway. Only the bot's own messages
// are ignored; announcements cross-posted from followed channels arrive with
// a bot author.
func (a *AutoRedeemer) Listener() bot.EventListener {
	return bot.NewListenerFunc(func(e *events.MessageCreate) {
		if e.Message.Author.ID == e.Client().ID() {
			return
		}
		if code, ok := a.Detect(e.ChannelID, e.Message.Content); ok {
			a.Dispatch(e.ChannelID, code)
		}
	})
}

// Detect returns the gift code when content was posted in a watched channel.
func (a *AutoRedeemer) Detect(channelID snowflake.ID, content string) (string, bool) {
	if a.channelID != 0 && channelID != a.channelID {
		return "", false
	}
	return giftcode.Extract(content)
}

// Dispatch runs the batch for code in the background. A code whose batch is
// still running is skipped.
func (a *AutoRedeemer) Dispatch(channelID snowflake.ID, code string) bool {
	return a.tasks.TryStart("auto-redeem:"+code, "auto-redeem "+code, func(ctx context.Context) {
		a.Run(ctx, channelID, code)
	})
}

// Run redeems code for the roster and posts the result to channelID.
func (a *AutoRedeemer) Run(ctx context.Context, channelID snowflake.ID, code string) {
	slog.Info("Gift code detected",
		slog.String("type", "sys"),
		slog.String("code", code),
		slog.String("channel_id", channelID.String()),
	)

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	msg := a.redeem(ctx, code)
	if err := a.post(channelID, msg); err != nil {
		slog.Error("Failed to post auto-redeem result",
			slog.String("type", "error"),
			slog.String("code", code),
			slog.Any("error", err),
		)
	}
}

func (a *AutoRedeemer) redeem(ctx context.Context, code string) string {
	ids, err := a.accounts.List(ctx)
	if err != nil {
		return fmt.Sprintf("❌ Error auto-redeeming code `%s`: %v", code, err)
	}

	succeeded, err := a.runner.RunBatch(ctx, ids, redeemer.Redeem(code))
	switch {
	case errors.Is(err, redeemer.ErrNoAccounts):
		return fmt.Sprintf("❌ Failed to redeem code `%s` for any configured users", code)
	case err != nil && len(succeeded) == 0:
		return fmt.Sprintf("❌ Error auto-redeeming code `%s`: %v", code, err)
	}
	msg := utils.BatchResult("Auto-redeemed", code, succeeded)
	if skipped, ok := redeemer.Skipped(err); ok {
		msg += utils.InterruptedNote(skipped)
	}
	return msg
}

// ChannelPoster posts through the bot's REST client.
func ChannelPoster(client bot.Client) Poster {
	return func(channelID snowflake.ID, content string) error {
		_, err := client.Rest().CreateMessage(channelID, discord.MessageCreate{Content: content})
		return err
	}
}
