package models

import "time"

type Player struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SessionID  uint      `gorm:"index" json:"session_id"`
	UID        string    `gorm:"uniqueIndex" json:"uid"` // session-scoped player identity
	Name       string    `json:"name"`
	Seat       int       `json:"seat"`
	Active     bool      `json:"active"`
	TotalScore int       `json:"total_score"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
