package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"foxhole/internal/application"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const maxMessageLength = 4096

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Publisher keeps live messages in a Telegram chat. The location is the chat
// id and the handle is the message id, both in decimal.
type Publisher struct {
	bot sender
}

func NewBotPublisher(token string, logger application.Logger) (*Publisher, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	logger.Info("Telegram bot authorized on account %s", bot.Self.UserName)
	return NewPublisher(bot), nil
}

func NewPublisher(bot sender) *Publisher {
	return &Publisher{bot: bot}
}

func (p *Publisher) CreateMessage(ctx context.Context, location, text string) (string, error) {
	chatID, err := strconv.ParseInt(location, 10, 64)
	if err != nil {
		return "", fmt.Errorf("%w: invalid chat id %q", application.ErrUsage, location)
	}
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %v", application.ErrUnreachable, err)
	}

	msg, err := p.bot.Send(tgbotapi.NewMessage(chatID, plainText(text)))
	if err != nil {
		return "", mapError("send message", err)
	}
	return strconv.Itoa(msg.MessageID), nil
}

func (p *Publisher) UpdateMessage(ctx context.Context, location, handle, text string) error {
	chatID, err := strconv.ParseInt(location, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: invalid chat id %q", application.ErrUsage, location)
	}
	messageID, err := strconv.Atoi(handle)
	if err != nil {
		return fmt.Errorf("%w: invalid message id %q", application.ErrNotFound, handle)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", application.ErrUnreachable, err)
	}

	_, err = p.bot.Send(tgbotapi.NewEditMessageText(chatID, messageID, plainText(text)))
	return mapError("edit message", err)
}

func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	var apiErr *tgbotapi.Error
	if errors.As(err, &apiErr) {
		msg := strings.ToLower(apiErr.Message)
		switch {
		case strings.Contains(msg, "message is not modified"):
			return nil
		case strings.Contains(msg, "not found"):
			return fmt.Errorf("%w: %s: %v", application.ErrNotFound, op, err)
		}
	}
	return fmt.Errorf("%w: %s: %v", application.ErrUnreachable, op, err)
}

// plainText drops Discord bold markers, Telegram gets the text unformatted.
func plainText(text string) string {
	text = strings.ReplaceAll(text, "**", "")
	r := []rune(text)
	if len(r) > maxMessageLength {
		return string(r[:maxMessageLength-2]) + "\n…"
	}
	return text
}
