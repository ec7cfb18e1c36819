package models

import (
	"time"

	"gorm.io/datatypes"
)

type Session struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Code      string         `gorm:"uniqueIndex" json:"code"`
	Locked    bool           `json:"locked"`
	Round     int            `json:"round"`
	Status    string         `json:"status"` // waiting | in_progress | paused
	StateJSON datatypes.JSON `json:"-"`      // serialized game.State, source of truth for rehydration
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
