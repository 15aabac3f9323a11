package model

import "time"

// UnlockEvent is an audit row persisted asynchronously by the worker that
// drains the unlock queue.
type UnlockEvent struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	AchievementID uint      `gorm:"not null;index" json:"achievement_id"`
	UnlockedAt    int64     `gorm:"not null" json:"unlocked_at"`
	CreatedAt     time.Time `json:"created_at"`
}
