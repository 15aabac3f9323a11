package model

// UserAchievement records an unlock. The composite primary key makes the
// unlock upsert a single atomic replace per (user, achievement) pair.
type UserAchievement struct {
	UserID        uint  `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	AchievementID uint  `gorm:"primaryKey;autoIncrement:false" json:"achievement_id"`
	Unlocked      bool  `gorm:"not null" json:"unlocked"`
	TimeUnlocked  int64 `gorm:"not null" json:"time_unlocked"`
}

// UnlockedAchievement is the read shape for a user's unlocked list: the
// unlock row joined with its catalog entry. Not a table.
type UnlockedAchievement struct {
	Name         string `json:"name"`
	Image        string `json:"image"`
	Unlocked     bool   `json:"unlocked"`
	TimeUnlocked int64  `json:"time_unlocked"`
}
