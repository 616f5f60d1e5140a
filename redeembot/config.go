package redeembot

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/topheroes-tools/redeembot/redeembot/checkin"
	"github.com/topheroes-tools/redeembot/redeembot/database"
	"github.com/topheroes-tools/redeembot/redeembot/logger"
	"github.com/topheroes-tools/redeembot/redeembot/redeemer"
	"github.com/topheroes-tools/redeembot/redeembot/roster"
	"github.com/topheroes-tools/redeembot/redeembot/telemetry"
	"github.com/topheroes-tools/redeembot/redeembot/upstream"
	"github.com/topheroes-tools/redeembot/redeembot/utils"
)

var ErrMissingToken = errors.New("bot token is not configured")

// LoadConfig reads the toml file at path, then applies environment overrides.
// A missing file is fine as long as the environment carries the token.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	file, err := os.Open(path)
	switch {
	case err == nil:
		defer file.Close()
		if err := decodeConfig(file, cfg); err != nil {
			return nil, err
		}
	case errors.Is(err, os.ErrNotExist):
		slog.Warn("Config file not found, using defaults and environment",
			slog.String("type", "sys"),
			slog.String("path", path),
		)
	default:
		return nil, fmt.Errorf("failed to open config: %w", err)
	}

	// .env is optional; real environment variables win over it.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if cfg.Bot.Token == "" {
		return nil, ErrMissingToken
	}
	return cfg, nil
}

func decodeConfig(r io.Reader, cfg *Config) error {
	if err := toml.NewDecoder(r).Decode(cfg); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}
	return nil
}

// Duration decodes toml strings such as "1.1s" or "30m".
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

type Config struct {
	Log       LogConfig       `toml:"log"`
	Bot       BotConfig       `toml:"bot"`
	DB        DBConfig        `toml:"db"`
	Upstream  UpstreamConfig  `toml:"upstream"`
	Pacing    PacingConfig    `toml:"pacing"`
	CheckIn   CheckInConfig   `toml:"checkin"`
	Health    HealthConfig    `toml:"health"`
	Telemetry TelemetryConfig `toml:"telemetry"`
}

type LogConfig struct {
	Level string `toml:"level"`
	Color bool   `toml:"color"`
}

type BotConfig struct {
	Token          string         `toml:"token"`
	DevGuilds      []snowflake.ID `toml:"dev_guilds"`
	ChannelID      snowflake.ID   `toml:"channel_id"`
	Admins         []snowflake.ID `toml:"admins"`
	InitialUserIDs []string       `toml:"initial_user_ids"`
	CommandTimeout Duration       `toml:"command_timeout"`
	BatchTimeout   Duration       `toml:"batch_timeout"`
}

type DBConfig struct {
	Host         string   `toml:"host"`
	Port         int      `toml:"port"`
	User         string   `toml:"user"`
	Password     string   `toml:"password"`
	Database     string   `toml:"database"`
	SSLMode      string   `toml:"ssl_mode"`
	PoolSize     int      `toml:"pool_size"`
	MaxIdleConns int      `toml:"max_idle_conns"`
	MaxLifetime  Duration `toml:"max_lifetime"`
}

type UpstreamConfig struct {
	BaseURL      string   `toml:"base_url"`
	LoginPath    string   `toml:"login_path"`
	RedeemPath   string   `toml:"redeem_path"`
	CheckInPath  string   `toml:"checkin_path"`
	SiteID       int      `toml:"site_id"`
	ProjectID    int      `toml:"project_id"`
	Timeout      Duration `toml:"timeout"`
	SuccessCodes []int    `toml:"success_codes"`
}

type PacingConfig struct {
	Base   Duration `toml:"base"`
	Jitter Duration `toml:"jitter"`
}

type CheckInConfig struct {
	Time        string   `toml:"time"`
	Timezone    string   `toml:"timezone"`
	TickTimeout Duration `toml:"tick_timeout"`
}

type HealthConfig struct {
	Enabled bool `toml:"enabled"`
	Port    int  `toml:"port"`
}

type TelemetryConfig struct {
	Enabled      bool     `toml:"enabled"`
	OTLPEndpoint string   `toml:"otlp_endpoint"`
	OTLPInsecure bool     `toml:"otlp_insecure"`
	Interval     Duration `toml:"interval"`
}

func DefaultConfig() *Config {
	up := upstream.DefaultConfig()
	return &Config{
		Log: LogConfig{Level: "info", Color: true},
		Bot: BotConfig{
			CommandTimeout: Duration(utils.DefaultCommandTimeout),
			BatchTimeout:   Duration(14 * time.Minute),
		},
		Upstream: UpstreamConfig{
			BaseURL:     up.BaseURL,
			LoginPath:   up.LoginPath,
			RedeemPath:  up.RedeemPath,
			CheckInPath: up.CheckInPath,
			SiteID:      up.SiteID,
			ProjectID:   up.ProjectID,
			Timeout:     Duration(up.Timeout),
		},
		Pacing: PacingConfig{
			Base:   Duration(redeemer.DefaultPaceBase),
			Jitter: Duration(redeemer.DefaultPaceJitter),
		},
		CheckIn: CheckInConfig{
			Time:        "00:05",
			Timezone:    "UTC",
			TickTimeout: Duration(checkin.DefaultTickTimeout),
		},
		Health: HealthConfig{Enabled: true, Port: 3000},
		Telemetry: TelemetryConfig{
			OTLPEndpoint: "localhost:4318",
			OTLPInsecure: true,
			Interval:     Duration(time.Minute),
		},
	}
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("TOKEN"); ok && v != "" {
		c.Bot.Token = v
	}
	if v, ok := lookup("CHANNEL_ID"); ok && v != "" {
		id, err := snowflake.Parse(v)
		if err != nil {
			return fmt.Errorf("invalid CHANNEL_ID: %w", err)
		}
		c.Bot.ChannelID = id
	}
	if v, ok := lookup("INITIAL_USER_IDS"); ok {
		c.Bot.InitialUserIDs = roster.ParseIDs(v)
	}
	if v, ok := lookup("PORT"); ok && strings.TrimSpace(v) != "" {
		port, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid PORT: %w", err)
		}
		c.Health.Port = port
	}
	return nil
}

// PersistentRoster reports whether a database is configured for the roster.
func (c *Config) PersistentRoster() bool {
	return c.DB.Host != ""
}

func (c *Config) LoggerOptions() logger.Options {
	return logger.Options{Level: logger.ParseLevel(c.Log.Level), Color: c.Log.Color}
}

func (c *Config) DatabaseConfig() database.DBConfig {
	return database.DBConfig{
		Host:         c.DB.Host,
		Port:         c.DB.Port,
		User:         c.DB.User,
		Password:     c.DB.Password,
		Database:     c.DB.Database,
		SSLMode:      c.DB.SSLMode,
		PoolSize:     c.DB.PoolSize,
		MaxIdleConns: c.DB.MaxIdleConns,
		MaxLifetime:  c.DB.MaxLifetime.Std(),
	}
}

func (c *Config) UpstreamClientConfig() upstream.Config {
	return upstream.Config{
		BaseURL:     c.Upstream.BaseURL,
		LoginPath:   c.Upstream.LoginPath,
		RedeemPath:  c.Upstream.RedeemPath,
		CheckInPath: c.Upstream.CheckInPath,
		SiteID:      c.Upstream.SiteID,
		ProjectID:   c.Upstream.ProjectID,
		Timeout:     c.Upstream.Timeout.Std(),
	}
}

// Classifier picks the lenient classifier only when extra success codes are set.
func (c *Config) Classifier() upstream.Classifier {
	if len(c.Upstream.SuccessCodes) == 0 {
		return upstream.DefaultClassifier
	}
	return upstream.LenientClassifier(c.Upstream.SuccessCodes...)
}

func (c *Config) Pacer() redeemer.JitterPacer {
	return redeemer.JitterPacer{Base: c.Pacing.Base.Std(), Jitter: c.Pacing.Jitter.Std()}
}

func (c *Config) TelemetryConfig(version string) telemetry.Config {
	return telemetry.Config{
		Enabled:        c.Telemetry.Enabled,
		ServiceName:    "redeembot",
		ServiceVersion: version,
		OTLPEndpoint:   c.Telemetry.OTLPEndpoint,
		OTLPInsecure:   c.Telemetry.OTLPInsecure,
		Interval:       c.Telemetry.Interval.Std(),
	}
}

// CommandTimeout bounds ordinary commands. A zero or negative setting
// falls back to the default.
func (c *Config) CommandTimeout() time.Duration {
	if d := c.Bot.CommandTimeout.Std(); d > 0 {
		return d
	}
	return utils.DefaultCommandTimeout
}

// IsAdmin reports whether id may run roster and check-in management commands.
// With no admins configured every member is allowed.
func (c *Config) IsAdmin(id snowflake.ID) bool {
	if len(c.Bot.Admins) == 0 {
		return true
	}
	for _, admin := range c.Bot.Admins {
		if admin == id {
			return true
		}
	}
	return false
}
