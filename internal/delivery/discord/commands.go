package discord

import (
	"foxhole/internal/models"

	"github.com/bwmarrin/discordgo"
)

const (
	cmdStartWar    = "start_war"
	cmdDestroy     = "destroy"
	cmdEditDestroy = "edit_destroy"
	cmdStats       = "stats"
	cmdHistory     = "history"
	cmdEditLog     = "edit_log"
	cmdExportWar   = "export_war"

	subHistoryList = "list"
	subHistoryWar  = "war"
	subHistoryTop  = "top"
)

func (b *Bot) addCommands(commands ...*discordgo.ApplicationCommand) {
	b.commands = append(b.commands, commands...)
}

func vehicleChoices() []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(models.Vehicles))
	for _, v := range models.Vehicles {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: v.Name, Value: v.Name})
	}
	return choices
}

func vehicleOption(required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "vehicle",
		Description: "Категория техники",
		Required:    required,
		Choices:     vehicleChoices(),
	}
}

func warOption(required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "war",
		Description: "Номер войны",
		Required:    required,
	}
}

func (b *Bot) newStartWarCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        cmdStartWar,
		Description: "Начать новую войну",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionString, Name: "number", Description: "Номер войны", Required: true},
		},
	}
}

func (b *Bot) newDestroyCommand() *discordgo.ApplicationCommand {
	minAmount := 1.0
	return &discordgo.ApplicationCommand{
		Name:        cmdDestroy,
		Description: "Отметить уничтоженную технику",
		Options: []*discordgo.ApplicationCommandOption{
			vehicleOption(true),
			{Type: discordgo.ApplicationCommandOptionInteger, Name: "amount", Description: "Количество", Required: false, MinValue: &minAmount},
			{Type: discordgo.ApplicationCommandOptionString, Name: "custom_name", Description: "Кастомное название техники (опционально)", Required: false},
		},
	}
}

func (b *Bot) newEditDestroyCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        cmdEditDestroy,
		Description: "[Офицеры] Исправить запись уничтоженной техники",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionUser, Name: "user", Description: "Игрок, чью статистику нужно исправить", Required: true},
			vehicleOption(true),
			{Type: discordgo.ApplicationCommandOptionInteger, Name: "delta", Description: "На сколько изменить значение (может быть отрицательным)", Required: true},
			{Type: discordgo.ApplicationCommandOptionString, Name: "custom_name", Description: "Кастомное название техники (опционально)", Required: false},
		},
	}
}

func (b *Bot) newStatsCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        cmdStats,
		Description: "Статистика игрока",
		Options: []*discordgo.ApplicationCommandOption{
			warOption(false),
			{Type: discordgo.ApplicationCommandOptionUser, Name: "user", Description: "Игрок", Required: false},
			vehicleOption(false),
		},
	}
}

func (b *Bot) newHistoryCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        cmdHistory,
		Description: "История войн",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionSubCommand, Name: subHistoryList, Description: "Прошлые войны"},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        subHistoryWar,
				Description: "Моя статистика за войну",
				Options:     []*discordgo.ApplicationCommandOption{warOption(true)},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        subHistoryTop,
				Description: "Лидерборд войны",
				Options:     []*discordgo.ApplicationCommandOption{warOption(true)},
			},
		},
	}
}

func (b *Bot) newEditLogCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        cmdEditLog,
		Description: "[Офицеры] Журнал исправлений",
		Options:     []*discordgo.ApplicationCommandOption{warOption(false)},
	}
}

func (b *Bot) newExportWarCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        cmdExportWar,
		Description: "[Офицеры] Экспорт войны в Excel",
		Options:     []*discordgo.ApplicationCommandOption{warOption(false)},
	}
}
