package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

type messenger interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageEdit(channelID, messageID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Publisher keeps live messages in Discord channels. The location is a
// channel id and the handle is a message id.
type Publisher struct {
	session messenger
}

func NewPublisher(session messenger) *Publisher {
	return &Publisher{session: session}
}

func (p *Publisher) CreateMessage(ctx context.Context, channelID, text string) (string, error) {
	msg, err := p.session.ChannelMessageSend(channelID, truncate(text), discordgo.WithContext(ctx))
	if err != nil {
		return "", mapRESTError("send message", err)
	}
	return msg.ID, nil
}

func (p *Publisher) UpdateMessage(ctx context.Context, channelID, messageID, text string) error {
	_, err := p.session.ChannelMessageEdit(channelID, messageID, truncate(text), discordgo.WithContext(ctx))
	return mapRESTError("edit message", err)
}
