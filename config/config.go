// Package config reads process settings from the environment, optionally
// seeded from a dotenv file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrInvalidConfig = errors.New("invalid configuration")

const (
	ModePolling = "polling"
	ModeWebhook = "webhook"

	BackendPostgres = "postgres"
	BackendSheets   = "sheets"
	BackendSQLite   = "sqlite"
)

type Config struct {
	Telegram     TelegramConfig
	Store        StoreConfig
	Discord      DiscordConfig
	NATS         NATSConfig
	Log          LogConfig
	HTTPAddr     string
	AdminChatIDs []string
	SessionTTL   time.Duration
}

type TelegramConfig struct {
	Token         string
	Mode          string
	WebhookURL    string
	WebhookSecret string
}

type StoreConfig struct {
	Backend         string
	DatabaseURL     string
	SQLitePath      string
	CredentialsFile string
	SheetID         string
}

type DiscordConfig struct {
	BotToken     string
	ClientID     string
	ClientSecret string
	RedirectURI  string
	ServerID     string
	ChannelID    string
	AdminRoleID  string
}

// Enabled reports whether staff channel alerts are configured.
func (d DiscordConfig) Enabled() bool {
	return len(d.BotToken) != 0 && len(d.ChannelID) != 0
}

// AuthEnabled reports whether the admin API can authenticate Discord users.
func (d DiscordConfig) AuthEnabled() bool {
	return len(d.BotToken) != 0 && len(d.ServerID) != 0 && len(d.AdminRoleID) != 0
}

type NATSConfig struct {
	URL     string
	Subject string
}

type LogConfig struct {
	Level  string
	Format string
}

// Load reads and validates the configuration. envFile may be empty or point
// to a file that does not exist; variables already set in the environment win
// over the file.
func Load(envFile string) (*Config, error) {
	cfg, err := Read(envFile)

	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Read loads the configuration without validating it.
func Read(envFile string) (*Config, error) {
	if len(envFile) != 0 {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %v: %w", envFile, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	return &Config{
		Telegram: TelegramConfig{
			Token:         v.GetString("TELEGRAM_TOKEN"),
			Mode:          strings.ToLower(v.GetString("TELEGRAM_MODE")),
			WebhookURL:    v.GetString("TELEGRAM_WEBHOOK_URL"),
			WebhookSecret: v.GetString("TELEGRAM_WEBHOOK_SECRET"),
		},
		Store: StoreConfig{
			Backend:         strings.ToLower(v.GetString("STORE_BACKEND")),
			DatabaseURL:     v.GetString("DATABASE_URL"),
			SQLitePath:      v.GetString("SQLITE_PATH"),
			CredentialsFile: v.GetString("GOOGLE_CREDENTIALS_FILE"),
			SheetID:         v.GetString("GOOGLE_SHEET_ID"),
		},
		Discord: DiscordConfig{
			BotToken:     v.GetString("DISCORD_BOT_TOKEN"),
			ClientID:     v.GetString("DISCORD_CLIENT_ID"),
			ClientSecret: v.GetString("DISCORD_CLIENT_SECRET"),
			RedirectURI:  v.GetString("DISCORD_REDIRECT_URI"),
			ServerID:     v.GetString("DISCORD_SERVER_ID"),
			ChannelID:    v.GetString("DISCORD_CHANNEL_ID"),
			AdminRoleID:  v.GetString("DISCORD_ADMIN_ROLE_ID"),
		},
		NATS: NATSConfig{
			URL:     v.GetString("NATS_URL"),
			Subject: v.GetString("NATS_SUBJECT"),
		},
		Log: LogConfig{
			Level:  strings.ToLower(v.GetString("LOG_LEVEL")),
			Format: strings.ToLower(v.GetString("LOG_FORMAT")),
		},
		HTTPAddr:     v.GetString("HTTP_ADDR"),
		AdminChatIDs: splitList(v.GetString("ADMIN_CHAT_IDS")),
		SessionTTL:   v.GetDuration("SESSION_TTL"),
	}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("TELEGRAM_MODE", ModePolling)
	v.SetDefault("STORE_BACKEND", BackendPostgres)
	v.SetDefault("SQLITE_PATH", "pitches.db")
	v.SetDefault("NATS_SUBJECT", "booking.created")
	v.SetDefault("HTTP_ADDR", ":9090")
	v.SetDefault("SESSION_TTL", "15m")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
}

// Validate reports every problem at once, each wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	var errs []error

	if len(c.Telegram.Token) == 0 {
		errs = append(errs, missing("TELEGRAM_TOKEN"))
	}

	switch c.Telegram.Mode {
	case ModePolling:
	case ModeWebhook:
		if len(c.Telegram.WebhookURL) == 0 {
			errs = append(errs, missing("TELEGRAM_WEBHOOK_URL"))
		}
		if len(c.Telegram.WebhookSecret) == 0 {
			errs = append(errs, missing("TELEGRAM_WEBHOOK_SECRET"))
		}
	default:
		errs = append(errs, fmt.Errorf("%w: unknown TELEGRAM_MODE %q", ErrInvalidConfig, c.Telegram.Mode))
	}

	if err := c.Store.Validate(); err != nil {
		errs = append(errs, err)
	}

	if len(c.Discord.ChannelID) != 0 && len(c.Discord.BotToken) == 0 {
		errs = append(errs, missing("DISCORD_BOT_TOKEN"))
	}

	if c.SessionTTL < 0 {
		errs = append(errs, fmt.Errorf("%w: SESSION_TTL must not be negative", ErrInvalidConfig))
	}

	if _, err := c.Log.level(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Validate checks only the settings of the selected store backend.
func (s StoreConfig) Validate() error {
	var errs []error

	switch s.Backend {
	case BackendPostgres:
		if len(s.DatabaseURL) == 0 {
			errs = append(errs, missing("DATABASE_URL"))
		}
	case BackendSheets:
		if len(s.CredentialsFile) == 0 {
			errs = append(errs, missing("GOOGLE_CREDENTIALS_FILE"))
		}
		if len(s.SheetID) == 0 {
			errs = append(errs, missing("GOOGLE_SHEET_ID"))
		}
	case BackendSQLite:
		if len(s.SQLitePath) == 0 {
			errs = append(errs, missing("SQLITE_PATH"))
		}
	default:
		errs = append(errs, fmt.Errorf("%w: unknown STORE_BACKEND %q", ErrInvalidConfig, s.Backend))
	}

	return errors.Join(errs...)
}

func missing(key string) error {
	return fmt.Errorf("%w: %v is required", ErrInvalidConfig, key)
}

func splitList(raw string) []string {
	items := []string{}

	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); len(item) != 0 {
			items = append(items, item)
		}
	}

	return items
}
