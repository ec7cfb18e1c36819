package models

import "time"

// RoundScore is append-only: one row per active player per finished round,
// never updated afterwards.
type RoundScore struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	SessionID   uint      `gorm:"index" json:"session_id"`
	PlayerUID   string    `gorm:"index" json:"player_uid"`
	RoundNumber int       `json:"round_number"`
	Score       int       `json:"score"`
	CreatedAt   time.Time `json:"created_at"`
}
