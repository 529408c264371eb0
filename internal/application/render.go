package application

import (
	"fmt"
	"strings"
	"time"

	"foxhole/internal/models"
)

func RenderLeaderboard(war models.War, standings []Standing, now time.Time) string {
	var sb strings.Builder
	for _, st := range standings {
		sb.WriteString(fmt.Sprintf("**%d. %s** — %d\n", st.Rank, st.Name, displayPoints(st.Points)))
	}

	body := strings.TrimSuffix(sb.String(), "\n")
	if body == "" {
		body = emptyBoardText
	}
	return fmt.Sprintf("🏆 **Лидерборд — Война #%s**\n\n%s\n\n⏱ %s", war.Name, body, now.UTC().Format(timestampLayout))
}

func RenderVehicles(war models.War, totals []models.VehicleTotal, now time.Time) string {
	lines := make([]string, 0, len(totals))
	for _, t := range totals {
		lines = append(lines, fmt.Sprintf("**%s** — %d", t.Vehicle, t.Total))
	}

	body := strings.Join(lines, "\n")
	if body == "" {
		body = emptyBoardText
	}
	return fmt.Sprintf("🚗 **Техника — Война #%s**\n\n%s\n\n⏱ %s", war.Name, body, now.UTC().Format(timestampLayout))
}

func standingsRows(standings []Standing) [][]interface{} {
	rows := [][]interface{}{{"Место", "Игрок", "Очки"}}
	for _, st := range standings {
		rows = append(rows, []interface{}{st.Rank, st.Name, displayPoints(st.Points)})
	}
	return rows
}
