package main

import (
	"context"
	"embed"

	"foxhole/internal/application"
	"foxhole/internal/delivery/discord"
	"foxhole/internal/delivery/telegram"
	"foxhole/internal/repository"
	"foxhole/pkg/config"
	"foxhole/pkg/logger"
	service "foxhole/pkg/services"
	"foxhole/pkg/sheets"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

func main() {
	_ = godotenv.Load()

	cfg := config.Config{}
	if err := config.ReadEnvConfig(&cfg); err != nil {
		panic(err)
	}

	log := logger.NewLogger(&logger.Config{Level: cfg.LogLevel})

	db, err := repository.NewPostgresDB(&cfg.Repo)
	if err != nil {
		log.Error("failed to init db: %s", err.Error())
		return
	}
	defer db.Close()

	log.Info("Running migrations...")
	if err := repository.RunMigrations(db, migrationFS); err != nil {
		log.Error("failed to run migrations: %s", err.Error())
		return
	}
	log.Info("Migrations applied successfully")

	repos := repository.NewRepository(db)

	session, err := discord.NewSession(cfg.DiscordToken)
	if err != nil {
		log.Error("failed to create discord session: %s", err.Error())
		return
	}

	resolver := discord.NewResolver(session, discord.NewIdentityCache(discord.DefaultIdentityTTL))

	var sink application.PublicationSink = discord.NewPublisher(session)
	if cfg.PublishTarget == config.PublishTargetTelegram {
		tg, err := telegram.NewBotPublisher(cfg.TelegramToken, log)
		if err != nil {
			log.Error("failed to init telegram: %s", err.Error())
			return
		}
		sink = tg
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mirror application.LeaderboardMirror
	if cfg.GoogleCredentialsPath != "" {
		client, err := sheets.NewGoogleSheetsClient(ctx, cfg.GoogleCredentialsPath)
		if err != nil {
			log.Error("failed to init google sheets: %s", err.Error())
			return
		}
		sm := application.NewSheetsMirror(client, cfg.SpreadsheetID, cfg.GoogleOwnerEmail)
		url, err := sm.EnsureSheetExists(ctx)
		if err != nil {
			log.Warn("google sheets mirror unavailable: %s", err.Error())
		} else {
			log.Info("Leaderboard mirrored to %s", url)
		}
		mirror = sm
	}

	services := application.NewService(repos, sink, resolver, mirror, application.RefreshOptions{
		Interval:         cfg.UpdateInterval,
		CallTimeout:      cfg.ExternalCallTimeout,
		LeaderboardLimit: cfg.LeaderboardLimit,
	}, log)

	bot := discord.NewBot(&cfg, session, services, log)

	manager := service.NewManager(log)
	manager.AddService(bot, services.RefreshService)

	if err := manager.Run(ctx); err != nil {
		log.Error("failed to start services: %s", err.Error())
		return
	}
	log.Info("Bot Stopped")
}
