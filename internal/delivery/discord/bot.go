package discord

import (
	"context"
	"strconv"
	"strings"

	"foxhole/internal/application"
	"foxhole/pkg/config"

	"github.com/bwmarrin/discordgo"
)

type Bot struct {
	session  *discordgo.Session
	services *application.Service
	logger   application.Logger

	guildID      string
	publishTo    string
	adminIDs     map[string]struct{}
	officerRoles map[string]struct{}

	commands   []*discordgo.ApplicationCommand
	registered []*discordgo.ApplicationCommand
}

func NewSession(token string) (*discordgo.Session, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}
	s.Identify.Intents = discordgo.IntentsGuilds
	return s, nil
}

func NewBot(cfg *config.Config, session *discordgo.Session, services *application.Service, logger application.Logger) *Bot {
	admins := make(map[string]struct{})
	for _, id := range cfg.AdminUserIDs {
		cleanID := strings.TrimSpace(id)
		if cleanID != "" {
			admins[cleanID] = struct{}{}
		}
	}

	roles := make(map[string]struct{})
	for _, name := range cfg.OfficerRoles {
		cleanName := strings.ToLower(strings.TrimSpace(name))
		if cleanName != "" {
			roles[cleanName] = struct{}{}
		}
	}

	// Live messages go to the invoking channel unless another sink is configured.
	publishTo := ""
	if cfg.PublishTarget == config.PublishTargetTelegram {
		publishTo = strconv.FormatInt(cfg.TelegramChatID, 10)
	}

	b := &Bot{
		session:      session,
		services:     services,
		logger:       logger,
		guildID:      cfg.DiscordGuildID,
		publishTo:    publishTo,
		adminIDs:     admins,
		officerRoles: roles,
	}

	b.addCommands(
		b.newStartWarCommand(),
		b.newDestroyCommand(),
		b.newEditDestroyCommand(),
		b.newStatsCommand(),
		b.newHistoryCommand(),
		b.newEditLogCommand(),
		b.newExportWarCommand(),
	)
	return b
}

func (b *Bot) Init() error {
	b.session.AddHandler(b.onInteraction)
	return b.session.Open()
}

func (b *Bot) Run(ctx context.Context) {
	b.logger.Info("Discord Bot Started. Registering slash commands...")

	appID, err := b.applicationID(ctx)
	if err != nil {
		b.logger.Error("Failed to get application id: %v", err)
		return
	}

	registered, err := b.session.ApplicationCommandBulkOverwrite(appID, b.guildID, b.commands, discordgo.WithContext(ctx))
	if err != nil {
		b.logger.Error("Failed to register commands: %v", err)
		return
	}
	b.registered = registered
	b.logger.Info("Slash commands registered successfully (%d)", len(registered))
}

// applicationID falls back to a REST call while the Ready event is still in flight.
func (b *Bot) applicationID(ctx context.Context) (string, error) {
	if b.session.State != nil && b.session.State.User != nil {
		return b.session.State.User.ID, nil
	}
	u, err := b.session.User("@me", discordgo.WithContext(ctx))
	if err != nil {
		return "", err
	}
	return u.ID, nil
}

func (b *Bot) Stop() {
	if err := b.session.Close(); err != nil {
		b.logger.Warn("failed to close discord session: %v", err)
	}
}

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("panic in %s handler: %v", i.ApplicationCommandData().Name, r)
		}
	}()

	switch i.ApplicationCommandData().Name {
	case cmdStartWar:
		b.handleStartWar(s, i.Interaction)
	case cmdDestroy:
		b.handleDestroy(s, i.Interaction)
	case cmdEditDestroy:
		b.handleEditDestroy(s, i.Interaction)
	case cmdStats:
		b.handleStats(s, i.Interaction)
	case cmdHistory:
		b.handleHistory(s, i.Interaction)
	case cmdEditLog:
		b.handleEditLog(s, i.Interaction)
	case cmdExportWar:
		b.handleExportWar(s, i.Interaction)
	}
}
