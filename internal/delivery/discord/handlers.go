package discord

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"foxhole/internal/application"

	"github.com/bwmarrin/discordgo"
)

func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

func (b *Bot) handleStartWar(s *discordgo.Session, i *discordgo.Interaction) {
	number := optionMap(i.ApplicationCommandData().Options).String("number")

	location := b.publishTo
	if location == "" {
		location = i.ChannelID
	}

	b.deferResponse(s, i, true)

	ctx, cancel := requestContext()
	defer cancel()

	war, err := b.services.WarService.StartWar(ctx, number, location)
	if err != nil {
		if errors.Is(err, application.ErrUnreachable) && war.ID != 0 {
			b.logger.Warn("war %s started without live messages: %v", war.Name, err)
			msg := fmt.Sprintf("⚔️ **Начата война Foxhole #%s**\n⚠️ Не удалось создать сообщения лидерборда", war.Name)
			b.editResponse(s, i, &discordgo.WebhookEdit{Content: &msg})
			return
		}
		b.editError(s, i, cmdStartWar, err)
		return
	}

	msg := fmt.Sprintf("⚔️ **Начата война Foxhole #%s**", war.Name)
	b.editResponse(s, i, &discordgo.WebhookEdit{Content: &msg})
}

func (b *Bot) handleDestroy(s *discordgo.Session, i *discordgo.Interaction) {
	opts := optionMap(i.ApplicationCommandData().Options)
	caller := callerID(i)

	ctx, cancel := requestContext()
	defer cancel()

	res, err := b.services.WarService.Destroy(ctx, application.DestroyRequest{
		PlayerID:   caller,
		Vehicle:    opts.String("vehicle"),
		Amount:     opts.Int("amount", 1),
		CustomName: opts.String("custom_name"),
	})
	if err != nil {
		b.respondError(s, i, cmdDestroy, err)
		return
	}

	b.respondMessage(s, i, fmt.Sprintf("✅ %s: **%d × %s** (+%d)",
		resolvedName(i, caller), res.Amount, res.DisplayName, res.Points), false)
}

func (b *Bot) handleEditDestroy(s *discordgo.Session, i *discordgo.Interaction) {
	opts := optionMap(i.ApplicationCommandData().Options)
	target := opts.UserID("user")

	ctx, cancel := requestContext()
	defer cancel()

	entry, err := b.services.WarService.EditDestroy(ctx, application.EditRequest{
		EditorID:   callerID(i),
		TargetID:   target,
		Vehicle:    opts.String("vehicle"),
		Delta:      opts.Int("delta", 0),
		CustomName: opts.String("custom_name"),
	}, b.authorizer(s, i))
	if err != nil {
		b.respondError(s, i, cmdEditDestroy, err)
		return
	}

	b.respondMessage(s, i, fmt.Sprintf("🛠 **Исправление внесено**\n"+
		"Игрок: **%s**\n"+
		"Категория: **%s**\n"+
		"Техника: **%s**\n"+
		"Было: %d → Стало: %d\n"+
		"Очки изменены на: %d",
		resolvedName(i, target), entry.Vehicle, entry.DisplayName,
		entry.BeforeCount, entry.AfterCount, entry.PointsDelta), false)
}

func (b *Bot) handleStats(s *discordgo.Session, i *discordgo.Interaction) {
	opts := optionMap(i.ApplicationCommandData().Options)

	target := opts.UserID("user")
	if target == "" {
		target = callerID(i)
	}

	b.showStats(s, i, application.StatsRequest{
		WarName:  opts.String("war"),
		PlayerID: target,
		Vehicle:  opts.String("vehicle"),
	})
}

func (b *Bot) showStats(s *discordgo.Session, i *discordgo.Interaction, req application.StatsRequest) {
	ctx, cancel := requestContext()
	defer cancel()

	report, err := b.services.WarService.GetStats(ctx, req)
	if err != nil {
		b.respondError(s, i, cmdStats, err)
		return
	}

	if len(report.Stats) == 0 {
		b.respondMessage(s, i, "📭 Нет данных", false)
		return
	}

	name := resolvedName(i, req.PlayerID)
	if report.Vehicle != "" {
		b.respondMessage(s, i, fmt.Sprintf("📊 **%s**\n⚔️ Война #%s\n🚗 **%s**\n%s",
			name, report.War.Name, report.Vehicle, formatStatLines(report.Stats)), false)
		return
	}

	b.respondEmbed(s, i, statsEmbed(name, report), false)
}

func (b *Bot) handleHistory(s *discordgo.Session, i *discordgo.Interaction) {
	data := i.ApplicationCommandData()
	if len(data.Options) == 0 {
		return
	}
	sub := data.Options[0]
	opts := optionMap(sub.Options)

	switch sub.Name {
	case subHistoryList:
		b.handleHistoryList(s, i)
	case subHistoryWar:
		b.showStats(s, i, application.StatsRequest{WarName: opts.String("war"), PlayerID: callerID(i)})
	case subHistoryTop:
		b.handleHistoryTop(s, i, opts.String("war"))
	}
}

func (b *Bot) handleHistoryList(s *discordgo.Session, i *discordgo.Interaction) {
	ctx, cancel := requestContext()
	defer cancel()

	wars, err := b.services.WarService.ListPastWars(ctx)
	if err != nil {
		b.respondError(s, i, cmdHistory, err)
		return
	}

	if len(wars) == 0 {
		b.respondMessage(s, i, "📭 Нет прошлых войн", false)
		return
	}

	embed := &discordgo.MessageEmbed{Title: "📜 Прошлые войны", Color: colorBlue}
	for _, w := range wars {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Война #" + w.Name,
			Value: w.StartedAt.UTC().Format("2006-01-02"),
		})
	}
	b.respondEmbed(s, i, embed, false)
}

func (b *Bot) handleHistoryTop(s *discordgo.Session, i *discordgo.Interaction, war string) {
	b.deferResponse(s, i, false)

	ctx, cancel := requestContext()
	defer cancel()

	top, err := b.services.WarService.GetWarTop(ctx, war)
	if err != nil {
		b.editError(s, i, cmdHistory, err)
		return
	}

	embed := &discordgo.MessageEmbed{
		Title: "🏆 Лидерборд — Война #" + top.War.Name,
		Color: colorGold,
	}
	for _, st := range top.Standings {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%s %d. %s", getMedalEmoji(st.Rank), st.Rank, st.Name),
			Value: fmt.Sprintf("%d", st.DisplayPoints()),
		})
	}
	if len(embed.Fields) == 0 {
		embed.Description = "Нет данных"
	}

	b.editResponse(s, i, &discordgo.WebhookEdit{Embeds: &[]*discordgo.MessageEmbed{embed}})
}

func (b *Bot) handleEditLog(s *discordgo.Session, i *discordgo.Interaction) {
	war := optionMap(i.ApplicationCommandData().Options).String("war")

	ctx, cancel := requestContext()
	defer cancel()

	report, err := b.services.WarService.GetEditLog(ctx, war, callerID(i), b.authorizer(s, i))
	if err != nil {
		b.respondError(s, i, cmdEditLog, err)
		return
	}

	embed := &discordgo.MessageEmbed{
		Title: "🛠 Журнал правок — Война #" + report.War.Name,
		Color: colorRed,
	}
	if len(report.Entries) == 0 {
		embed.Description = "Правок не было"
	} else {
		embed.Description = truncateTo(formatEditLog(report.Entries), maxEmbedDescription, maxEmbedDescription-10)
	}
	b.respondEmbed(s, i, embed, true)
}

func (b *Bot) handleExportWar(s *discordgo.Session, i *discordgo.Interaction) {
	war := optionMap(i.ApplicationCommandData().Options).String("war")

	b.deferResponse(s, i, true)

	ctx, cancel := requestContext()
	defer cancel()

	data, err := b.services.WarService.ExportWar(ctx, war, callerID(i), b.authorizer(s, i))
	if err != nil {
		b.editError(s, i, cmdExportWar, err)
		return
	}

	label := strings.TrimSpace(war)
	if label == "" {
		label = "текущая"
	}

	msg := "Ваш отчет готов!"
	b.editResponse(s, i, &discordgo.WebhookEdit{
		Content: &msg,
		Files: []*discordgo.File{
			{Name: fmt.Sprintf(exportFileName, label), Reader: bytes.NewReader(data)},
		},
	})
}
