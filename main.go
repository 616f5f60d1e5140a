package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/snowflake/v2"
	"github.com/topheroes-tools/redeembot/redeembot"
	"github.com/topheroes-tools/redeembot/redeembot/analytics"
	"github.com/topheroes-tools/redeembot/redeembot/checkin"
	"github.com/topheroes-tools/redeembot/redeembot/commands"
	"github.com/topheroes-tools/redeembot/redeembot/commands/accounts"
	"github.com/topheroes-tools/redeembot/redeembot/commands/redeem"
	"github.com/topheroes-tools/redeembot/redeembot/commands/schedule"
	"github.com/topheroes-tools/redeembot/redeembot/commands/system"
	"github.com/topheroes-tools/redeembot/redeembot/database"
	"github.com/topheroes-tools/redeembot/redeembot/database/repositories"
	"github.com/topheroes-tools/redeembot/redeembot/handlers"
	"github.com/topheroes-tools/redeembot/redeembot/health"
	"github.com/topheroes-tools/redeembot/redeembot/logger"
	"github.com/topheroes-tools/redeembot/redeembot/redeemer"
	"github.com/topheroes-tools/redeembot/redeembot/roster"
	"github.com/topheroes-tools/redeembot/redeembot/telemetry"
	"github.com/topheroes-tools/redeembot/redeembot/upstream"
	"github.com/topheroes-tools/redeembot/redeembot/utils"
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

func main() {
	slog.SetDefault(slog.New(logger.NewHandler(logger.Options{Level: slog.LevelInfo, Color: true})))

	shouldSyncCommands := flag.Bool("sync-commands", false, "Whether to sync commands to discord")
	path := flag.String("config", "config.toml", "path to config")
	flag.Parse()

	cfg, err := redeembot.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.String("type", "sys"), slog.Any("error", err))
		os.Exit(-1)
	}
	slog.SetDefault(slog.New(logger.NewHandler(cfg.LoggerOptions())))

	logger.LogSystem("Starting Redeemer bot",
		slog.String("version", version),
		slog.String("commit", commit),
		slog.String("build_time", buildTime))

	if err := run(cfg, *shouldSyncCommands); err != nil {
		logger.LogError("Bot exited with error", err)
		os.Exit(-1)
	}
}

func run(cfg *redeembot.Config, syncCommands bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	b := redeembot.New(*cfg, version, commit, buildTime)

	store, closeStore, err := openRoster(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()
	b.Roster = store

	seeded, err := roster.Seed(ctx, store, cfg.Bot.InitialUserIDs)
	if err != nil {
		return fmt.Errorf("failed to seed roster: %w", err)
	}
	if seeded > 0 {
		logger.LogSystem("Roster seeded from INITIAL_USER_IDS", slog.Int("added", seeded))
	}

	shutdownMeter, err := telemetry.InitMeter(ctx, cfg.TelemetryConfig(version))
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownMeter(ctx); err != nil {
			logger.LogError("Failed to flush metrics", err)
		}
	}()

	shutdownTracer, err := telemetry.InitTracer(ctx, cfg.TelemetryConfig(version))
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(ctx); err != nil {
			logger.LogError("Failed to flush traces", err)
		}
	}()

	metrics, err := telemetry.NewMetrics(otel.Meter(telemetry.MeterName))
	if err != nil {
		return err
	}
	b.Analytics, err = analytics.NewRecorder(analytics.DefaultCapacity)
	if err != nil {
		return err
	}

	client := upstream.NewClient(cfg.UpstreamClientConfig(), nil)
	b.Redeemer = redeemer.New(
		upstream.NewAuthenticator(client),
		upstream.NewRedemptionInvoker(client, cfg.Classifier()),
		upstream.NewCheckInInvoker(client, cfg.Classifier()),
		redeemer.WithPacer(cfg.Pacer()),
		redeemer.WithSinks(b.Analytics, metrics),
	)

	trigger, err := checkin.NewDailyTrigger(cfg.CheckIn.Time, cfg.CheckIn.Timezone)
	if err != nil {
		return fmt.Errorf("invalid check-in time: %w", err)
	}
	b.Scheduler = checkin.NewScheduler(b.Redeemer, store, trigger,
		checkin.WithTickTimeout(cfg.CheckIn.TickTimeout.Std()))
	nextRun := func() time.Time { return trigger.Next(time.Now()) }

	cmdTimeout := cfg.CommandTimeout()
	batchTimeout := cfg.Bot.BatchTimeout.Std()
	// The wrapper outlives the batch so the batch's own timeout reports first.
	wrapTimeout := batchTimeout + time.Minute
	admin := cfg.IsAdmin

	h := handler.New()

	h.Command("/add-user", handlers.WrapWithLogging("add-user", cmdTimeout,
		handlers.RequireAdmin(admin, "manage users", accounts.AddUserHandler(store, cmdTimeout))))
	h.Command("/remove-user", handlers.WrapWithLogging("remove-user", cmdTimeout,
		handlers.RequireAdmin(admin, "manage users", accounts.RemoveUserHandler(store, cmdTimeout))))
	h.Autocomplete("/remove-user", accounts.AccountAutocomplete(store))
	h.Command("/clear-users", handlers.WrapWithLogging("clear-users", cmdTimeout,
		handlers.RequireAdmin(admin, "manage users", accounts.ClearUsersHandler(store, cmdTimeout))))
	h.Command("/list-users", handlers.WrapWithLogging("list-users", cmdTimeout,
		handlers.RequireAdmin(admin, "list users", accounts.ListUsersHandler(store, b.SendDM, cmdTimeout))))

	h.Command("/redeem", handlers.WrapWithLogging("redeem", wrapTimeout,
		redeem.RedeemHandler(b.Redeemer, batchTimeout)))
	h.Autocomplete("/redeem", accounts.AccountAutocomplete(store))
	h.Command("/redeem-bulk", handlers.WrapWithLogging("redeem-bulk", wrapTimeout,
		redeem.RedeemBulkHandler(store, b.Redeemer, batchTimeout)))

	h.Command("/checkin-start", handlers.WrapWithLogging("checkin-start", cmdTimeout,
		handlers.RequireAdmin(admin, "schedule check-ins", schedule.CheckInStartHandler(b.Scheduler, nextRun))))
	h.Command("/checkin-stop", handlers.WrapWithLogging("checkin-stop", cmdTimeout,
		handlers.RequireAdmin(admin, "schedule check-ins", schedule.CheckInStopHandler(b.Scheduler))))
	h.Command("/checkin-now", handlers.WrapWithLogging("checkin-now", wrapTimeout,
		handlers.RequireAdmin(admin, "run check-ins", schedule.CheckInNowHandler(b.Scheduler, batchTimeout))))
	h.Command("/checkin-status", handlers.WrapWithLogging("checkin-status", cmdTimeout,
		schedule.CheckInStatusHandler(b.Scheduler, nextRun)))

	h.Command("/version", handlers.WrapWithLogging("version", cmdTimeout, system.VersionHandler(b)))
	h.Command("/servers", handlers.WrapWithLogging("servers", cmdTimeout, system.ServersHandler(b)))
	h.Command("/stats", handlers.WrapWithLogging("stats", cmdTimeout, system.StatsHandler(b)))
	h.Autocomplete("/stats", accounts.AccountAutocomplete(store))

	tasks := utils.NewBackgroundTasks()
	auto := handlers.NewAutoRedeemer(cfg.Bot.ChannelID, store, b.Redeemer, func(channelID snowflake.ID, content string) error {
		return handlers.ChannelPoster(b.Client)(channelID, content)
	}, batchTimeout, tasks)

	if err = b.SetupBot(h, bot.NewListenerFunc(b.OnReady), auto.Listener()); err != nil {
		slog.Error("Failed to setup bot",
			slog.String("type", "sys"),
			slog.Any("error", err),
			slog.String("component", "bot_setup"),
			slog.String("status", "failed"),
		)
		return err
	}

	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		b.Client.Close(ctx)
	}()

	if syncCommands {
		slog.Info("Syncing commands",
			slog.String("type", "sys"),
			slog.Any("guild_ids", cfg.Bot.DevGuilds),
		)
		if err = handler.SyncCommands(b.Client, commands.Commands, cfg.Bot.DevGuilds); err != nil {
			slog.Error("Failed to sync commands",
				slog.String("type", "sys"),
				slog.Any("error", err),
				slog.String("component", "command_sync"),
				slog.String("status", "failed"),
			)
		}
	}

	openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err = b.Client.OpenGateway(openCtx); err != nil {
		slog.Error("Failed to open gateway",
			slog.String("type", "sys"),
			slog.Any("error", err),
			slog.String("component", "gateway"),
			slog.String("status", "failed"),
		)
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	if cfg.Health.Enabled {
		srv := health.NewServer(cfg.Health.Port)
		g.Go(func() error {
			logger.LogSystem("Health endpoint listening", slog.Int("port", cfg.Health.Port))
			return srv.Start()
		})
		g.Go(func() error {
			<-gctx.Done()
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		if _, err := b.Scheduler.Stop(); err != nil && !errors.Is(err, checkin.ErrNoSchedule) {
			return err
		}
		if err := tasks.Shutdown(30 * time.Second); err != nil {
			slog.Warn("Auto-redeem batches still running at shutdown",
				slog.String("type", "sys"),
				slog.Int("running", tasks.Running()))
		}
		return nil
	})

	logger.LogSystem("Bot is running. Press CTRL-C to exit.")
	return g.Wait()
}

// openRoster returns the Postgres roster when a database is configured and
// the in-memory one otherwise.
func openRoster(ctx context.Context, cfg *redeembot.Config) (roster.Store, func(), error) {
	if !cfg.PersistentRoster() {
		logger.LogSystem("No database configured, keeping the roster in memory")
		return roster.NewMemoryStore(), func() {}, nil
	}

	start := time.Now()
	db, err := database.New(ctx, cfg.DatabaseConfig())
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}
	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("database ping failed: %w", err)
	}
	if err := db.InitializeSchema(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to initialize database schema: %w", err)
	}

	slog.Info("Database connected successfully",
		slog.String("type", "db"),
		slog.String("database", cfg.DB.Database),
		slog.Duration("took", time.Since(start)))
	return repositories.NewAccountRepository(db.BunDB()), db.Close, nil
}
