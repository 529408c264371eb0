package discord

import (
	"errors"
	"fmt"
	"net/http"

	"foxhole/internal/application"

	"github.com/bwmarrin/discordgo"
)

// mapRESTError converts a discordgo failure into an application error kind.
func mapRESTError(op string, err error) error {
	if err == nil {
		return nil
	}
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Response != nil && restErr.Response.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s: %v", application.ErrNotFound, op, err)
	}
	return fmt.Errorf("%w: %s: %v", application.ErrUnreachable, op, err)
}

// userMessage returns the text shown to the caller for err. Internal errors
// are not caused by the caller and get logged.
func userMessage(err error) (text string, ephemeral bool, internal bool) {
	switch {
	case errors.Is(err, application.ErrNoActiveWar):
		return "❌ Нет активной войны", true, false
	case errors.Is(err, application.ErrWarExists):
		return "❌ Война с таким номером уже существует", true, false
	case errors.Is(err, application.ErrWarNotFound):
		return "❌ Война не найдена", true, false
	case errors.Is(err, application.ErrEmptyWarName):
		return "❌ Укажите номер войны", true, false
	case errors.Is(err, application.ErrUnknownVehicle):
		return "❌ Неизвестная категория техники", true, false
	case errors.Is(err, application.ErrInvalidAmount):
		return "❌ Количество должно быть положительным числом", true, false
	case errors.Is(err, application.ErrUsage):
		return "❌ Неверная команда", true, false
	case errors.Is(err, application.ErrForbidden):
		return "❌ У тебя нет прав офицера", true, false
	case errors.Is(err, application.ErrUnreachable):
		return "⚠️ Discord временно недоступен, попробуйте позже", true, true
	default:
		return "⚠️ Произошла ошибка, попробуйте позже", true, true
	}
}
