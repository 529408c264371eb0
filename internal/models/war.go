package models

import "time"

type War struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Active    bool      `json:"active" db:"active"`
	StartedAt time.Time `json:"started_at" db:"started_at"`
}

type LivePublication struct {
	WarID          int64  `json:"war_id" db:"war_id"`
	ChannelID      string `json:"channel_id" db:"channel_id"`
	LeaderboardMsg string `json:"leaderboard_msg" db:"leaderboard_msg"`
	VehiclesMsg    string `json:"vehicles_msg" db:"vehicles_msg"`
}
