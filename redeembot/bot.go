package redeembot

import (
	"context"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/cache"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/gateway"
	"github.com/disgoorg/paginator"
	"github.com/disgoorg/snowflake/v2"
	"github.com/topheroes-tools/redeembot/redeembot/analytics"
	"github.com/topheroes-tools/redeembot/redeembot/checkin"
	"github.com/topheroes-tools/redeembot/redeembot/redeemer"
	"github.com/topheroes-tools/redeembot/redeembot/roster"
)

func New(cfg Config, version, commit, buildTime string) *Bot {
	return &Bot{
		Cfg:       cfg,
		Paginator: paginator.New(),
		Version:   version,
		Commit:    commit,
		BuildTime: buildTime,
	}
}

type Bot struct {
	Cfg       Config
	Client    bot.Client
	Paginator *paginator.Manager
	Version   string
	Commit    string
	BuildTime string
	Roster    roster.Store
	Redeemer  *redeemer.Orchestrator
	Scheduler *checkin.Scheduler
	Analytics *analytics.Recorder
}

func (b *Bot) SetupBot(listeners ...bot.EventListener) error {
	client, err := disgo.New(b.Cfg.Bot.Token,
		bot.WithGatewayConfigOpts(gateway.WithIntents(
			gateway.IntentGuilds,
			gateway.IntentGuildMessages,
			gateway.IntentMessageContent,
			gateway.IntentDirectMessages,
		)),
		bot.WithCacheConfigOpts(cache.WithCaches(cache.FlagGuilds)),
		bot.WithEventListeners(b.Paginator),
		bot.WithEventListeners(listeners...),
	)
	if err != nil {
		return err
	}

	b.Client = client
	return nil
}

func (b *Bot) OnReady(_ *events.Ready) {
	slog.Info("Redeemer bot is now ready",
		slog.String("type", "sys"),
		slog.String("version", b.Version),
		slog.String("commit", b.Commit))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := b.Client.SetPresence(ctx,
		gateway.WithWatchingActivity("for gift codes"),
		gateway.WithOnlineStatus(discord.OnlineStatusOnline)); err != nil {
		slog.Error("Failed to set presence", slog.String("type", "error"), slog.Any("error", err))
	}
}

// SendDM opens a DM channel with userID and posts msg there.
func (b *Bot) SendDM(userID snowflake.ID, msg discord.MessageCreate) error {
	channel, err := b.Client.Rest().CreateDMChannel(userID)
	if err != nil {
		return err
	}
	_, err = b.Client.Rest().CreateMessage(channel.ID(), msg)
	return err
}
