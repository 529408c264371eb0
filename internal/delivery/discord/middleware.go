package discord

import (
	"strings"

	"foxhole/internal/application"

	"github.com/bwmarrin/discordgo"
)

func (b *Bot) isAdmin(userID string) bool {
	_, ok := b.adminIDs[userID]
	return ok
}

// authorizer checks officer rights of the member who sent the interaction.
func (b *Bot) authorizer(s *discordgo.Session, i *discordgo.Interaction) application.Authorizer {
	return func(callerID string) bool {
		if b.isAdmin(callerID) {
			return true
		}
		if i.Member == nil || i.Member.User == nil || i.Member.User.ID != callerID {
			return false
		}
		return hasOfficerRole(b.roleNames(s, i.GuildID, i.Member.Roles), b.officerRoles)
	}
}

// roleNames looks role ids up in the state cache, falling back to one REST call.
func (b *Bot) roleNames(s *discordgo.Session, guildID string, roleIDs []string) []string {
	names := make([]string, 0, len(roleIDs))
	var guildRoles []*discordgo.Role
	fetched := false

	for _, id := range roleIDs {
		if r, err := s.State.Role(guildID, id); err == nil {
			names = append(names, r.Name)
			continue
		}
		if !fetched {
			fetched = true
			roles, err := s.GuildRoles(guildID)
			if err != nil {
				b.logger.Warn("failed to fetch roles of guild %s: %v", guildID, err)
			}
			guildRoles = roles
		}
		for _, r := range guildRoles {
			if r.ID == id {
				names = append(names, r.Name)
				break
			}
		}
	}
	return names
}

func hasOfficerRole(roleNames []string, officerRoles map[string]struct{}) bool {
	for _, name := range roleNames {
		if _, ok := officerRoles[strings.ToLower(strings.TrimSpace(name))]; ok {
			return true
		}
	}
	return false
}

func (b *Bot) respondMessage(s *discordgo.Session, i *discordgo.Interaction, msg string, ephemeral bool) {
	flags := discordgo.MessageFlags(0)
	if ephemeral {
		flags = discordgo.MessageFlagsEphemeral
	}
	err := s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: truncate(msg),
			Flags:   flags,
		},
	})
	if err != nil {
		b.logger.Warn("failed to respond to interaction: %v", err)
	}
}

func (b *Bot) respondEmbed(s *discordgo.Session, i *discordgo.Interaction, embed *discordgo.MessageEmbed, ephemeral bool) {
	flags := discordgo.MessageFlags(0)
	if ephemeral {
		flags = discordgo.MessageFlagsEphemeral
	}
	err := s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  flags,
		},
	})
	if err != nil {
		b.logger.Warn("failed to respond to interaction: %v", err)
	}
}

func (b *Bot) deferResponse(s *discordgo.Session, i *discordgo.Interaction, ephemeral bool) {
	data := &discordgo.InteractionResponseData{}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	err := s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		b.logger.Warn("failed to defer interaction: %v", err)
	}
}

func (b *Bot) editResponse(s *discordgo.Session, i *discordgo.Interaction, edit *discordgo.WebhookEdit) {
	if _, err := s.InteractionResponseEdit(i, edit); err != nil {
		b.logger.Warn("failed to edit interaction response: %v", err)
	}
}

func (b *Bot) respondError(s *discordgo.Session, i *discordgo.Interaction, command string, err error) {
	text, ephemeral, internal := userMessage(err)
	if internal {
		b.logger.Error("%s failed: %v", command, err)
	}
	b.respondMessage(s, i, text, ephemeral)
}

func (b *Bot) editError(s *discordgo.Session, i *discordgo.Interaction, command string, err error) {
	text, _, internal := userMessage(err)
	if internal {
		b.logger.Error("%s failed: %v", command, err)
	}
	b.editResponse(s, i, &discordgo.WebhookEdit{Content: &text})
}
