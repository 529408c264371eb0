package models

import "time"

type ScoreEntry struct {
	PlayerID string `json:"player_id" db:"player_id"`
	WarID    int64  `json:"war_id" db:"war_id"`
	Points   int    `json:"points" db:"points"`
}

type Destruction struct {
	PlayerID    string `json:"player_id"`
	WarID       int64  `json:"war_id"`
	Vehicle     string `json:"vehicle"`
	DisplayName string `json:"display_name"`
	Amount      int    `json:"amount"`
}

type Correction struct {
	EditorID    string `json:"editor_id"`
	TargetID    string `json:"target_id"`
	WarID       int64  `json:"war_id"`
	Vehicle     string `json:"vehicle"`
	DisplayName string `json:"display_name"`
	Delta       int    `json:"delta"`
}

type VehicleStat struct {
	Vehicle     string `json:"vehicle" db:"vehicle"`
	DisplayName string `json:"display_name" db:"display_name"`
	Count       int    `json:"count" db:"count"`
}

type VehicleTotal struct {
	Vehicle string `json:"vehicle" db:"vehicle"`
	Total   int    `json:"total" db:"total"`
}

type EditLogEntry struct {
	ID          int64     `json:"id" db:"id"`
	WarID       int64     `json:"war_id" db:"war_id"`
	EditorID    string    `json:"editor_id" db:"editor_id"`
	TargetID    string    `json:"target_id" db:"target_id"`
	Vehicle     string    `json:"vehicle" db:"vehicle"`
	DisplayName string    `json:"display_name" db:"display_name"`
	Delta       int       `json:"delta" db:"delta"`
	BeforeCount int       `json:"before_count" db:"before_count"`
	AfterCount  int       `json:"after_count" db:"after_count"`
	PointsDelta int       `json:"points_delta" db:"points_delta"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// ApplyCorrection returns the new count and the points change for a signed
// correction. The count never drops below zero, while the points change always
// follows the requested delta.
func ApplyCorrection(current, delta, weight int) (after, pointsDelta int) {
	after = current + delta
	if after < 0 {
		after = 0
	}
	return after, weight * delta
}
