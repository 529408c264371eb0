package config

import (
	"fmt"
	"time"

	"foxhole/internal/repository"

	"github.com/caarlos0/env/v11"
)

const (
	PublishTargetDiscord  = "discord"
	PublishTargetTelegram = "telegram"
)

type Config struct {
	Repo           repository.Config `envPrefix:"REPO_"`
	DiscordToken   string            `env:"DISCORD_TOKEN,required,notEmpty"`
	DiscordGuildID string            `env:"DISCORD_GUILD_ID" envDefault:""`
	LogLevel       string            `env:"LOGGER_LEVEL" envDefault:"debug"`

	UpdateInterval      time.Duration `env:"UPDATE_INTERVAL" envDefault:"30s"`
	LeaderboardLimit    int           `env:"LEADERBOARD_LIMIT" envDefault:"10"`
	ExternalCallTimeout time.Duration `env:"EXTERNAL_CALL_TIMEOUT" envDefault:"5s"`

	OfficerRoles []string `env:"OFFICER_ROLES" envSeparator:"," envDefault:"officer,офицер"`
	AdminUserIDs []string `env:"ADMIN_USER_IDS" envSeparator:","`

	PublishTarget  string `env:"PUBLISH_TARGET" envDefault:"discord"`
	TelegramToken  string `env:"TELEGRAM_TOKEN" envDefault:""`
	TelegramChatID int64  `env:"TELEGRAM_CHAT_ID" envDefault:"0"`

	GoogleCredentialsPath string `env:"GOOGLE_CREDENTIALS_PATH" envDefault:""`
	SpreadsheetID         string `env:"SPREADSHEET_ID" envDefault:""`
	GoogleOwnerEmail      string `env:"GOOGLE_OWNER_EMAIL" envDefault:""`
}

func ReadEnvConfig(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return err
	}
	return cfg.validate()
}

func (c *Config) validate() error {
	switch c.PublishTarget {
	case PublishTargetDiscord:
	case PublishTargetTelegram:
		if c.TelegramToken == "" || c.TelegramChatID == 0 {
			return fmt.Errorf("PUBLISH_TARGET=telegram requires TELEGRAM_TOKEN and TELEGRAM_CHAT_ID")
		}
	default:
		return fmt.Errorf("unknown PUBLISH_TARGET %q", c.PublishTarget)
	}
	if c.UpdateInterval <= 0 {
		return fmt.Errorf("UPDATE_INTERVAL must be positive")
	}
	return nil
}
