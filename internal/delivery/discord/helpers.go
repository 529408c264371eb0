package discord

import (
	"fmt"
	"strings"

	"foxhole/internal/application"
	"foxhole/internal/models"

	"github.com/bwmarrin/discordgo"
)

type options map[string]*discordgo.ApplicationCommandInteractionDataOption

func optionMap(opts []*discordgo.ApplicationCommandInteractionDataOption) options {
	m := make(options, len(opts))
	for _, o := range opts {
		m[o.Name] = o
	}
	return m
}

func (o options) String(name string) string {
	if opt, ok := o[name]; ok {
		return strings.TrimSpace(opt.StringValue())
	}
	return ""
}

func (o options) Int(name string, defaultValue int) int {
	if opt, ok := o[name]; ok {
		return int(opt.IntValue())
	}
	return defaultValue
}

// UserID returns the raw snowflake of a user option.
func (o options) UserID(name string) string {
	if opt, ok := o[name]; ok {
		if id, ok := opt.Value.(string); ok {
			return id
		}
	}
	return ""
}

func interactionUser(i *discordgo.Interaction) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

func callerID(i *discordgo.Interaction) string {
	if u := interactionUser(i); u != nil {
		return u.ID
	}
	return ""
}

func userDisplayName(u *discordgo.User) string {
	if u == nil {
		return ""
	}
	if u.GlobalName != "" {
		return u.GlobalName
	}
	return u.Username
}

// resolvedName prefers the data Discord sent along with the interaction.
func resolvedName(i *discordgo.Interaction, userID string) string {
	if i.Type == discordgo.InteractionApplicationCommand {
		if r := i.ApplicationCommandData().Resolved; r != nil {
			if m, ok := r.Members[userID]; ok && m.Nick != "" {
				return m.Nick
			}
			if u, ok := r.Users[userID]; ok {
				return userDisplayName(u)
			}
		}
	}
	if u := interactionUser(i); u != nil && u.ID == userID {
		if i.Member != nil && i.Member.Nick != "" {
			return i.Member.Nick
		}
		return userDisplayName(u)
	}
	return "<@" + userID + ">"
}

func getMedalEmoji(position int) string {
	switch position {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return "▪️"
	}
}

func truncate(msg string) string {
	return truncateTo(msg, maxMessageLength, maxMessageTruncation)
}

func truncateTo(msg string, limit, cut int) string {
	r := []rune(msg)
	if len(r) <= limit {
		return msg
	}
	return string(r[:cut]) + "\n…"
}

func formatStatLines(stats []models.VehicleStat) string {
	var sb strings.Builder
	for _, st := range stats {
		sb.WriteString(fmt.Sprintf("• %s — %d\n", st.DisplayName, st.Count))
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// statsEmbed groups the report by category in the order the ledger returned it.
func statsEmbed(name string, report *application.PlayerReport) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "📊 " + name,
		Description: "⚔️ Война #" + report.War.Name,
		Color:       colorOrange,
		Footer:      &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Очки: %d", report.Points)},
	}

	var order []string
	grouped := make(map[string][]models.VehicleStat)
	for _, st := range report.Stats {
		if _, ok := grouped[st.Vehicle]; !ok {
			order = append(order, st.Vehicle)
		}
		grouped[st.Vehicle] = append(grouped[st.Vehicle], st)
	}

	for _, vehicle := range order {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "🚗 " + vehicle,
			Value: truncateTo(formatStatLines(grouped[vehicle]), maxEmbedFieldLength, maxEmbedFieldLength-10),
		})
	}
	return embed
}

func formatEditLog(entries []models.EditLogEntry) string {
	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("`%s` <@%s> → <@%s>: **%s** %+d (%d → %d, очки %+d)\n",
			e.CreatedAt.UTC().Format("02.01 15:04"), e.EditorID, e.TargetID,
			e.DisplayName, e.Delta, e.BeforeCount, e.AfterCount, e.PointsDelta))
	}
	return sb.String()
}
