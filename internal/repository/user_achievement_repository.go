package repository

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gophertrophy/internal/model"
)

type UserAchievementRepository struct {
	db *gorm.DB
}

func NewUserAchievementRepository(db *gorm.DB) *UserAchievementRepository {
	return &UserAchievementRepository{db: db}
}

// Upsert writes the unlock row, replacing any existing row for the same
// (user_id, achievement_id). One atomic statement, so concurrent unlocks of
// the same pair cannot duplicate rows or hit a constraint violation.
func (r *UserAchievementRepository) Upsert(row *model.UserAchievement) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "achievement_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"unlocked", "time_unlocked"}),
	}).Create(row).Error
	if err != nil {
		return fmt.Errorf("upsert user achievement failed: %w", err)
	}
	return nil
}

func (r *UserAchievementRepository) ListUnlockedByUserID(userID uint) ([]model.UnlockedAchievement, error) {
	var rows []model.UnlockedAchievement
	err := r.db.
		Table("user_achievements").
		Select("achievements.name, achievements.image, user_achievements.unlocked, user_achievements.time_unlocked").
		Joins("INNER JOIN achievements ON achievements.id = user_achievements.achievement_id").
		Where("user_achievements.user_id = ? AND user_achievements.unlocked = ?", userID, true).
		Order("user_achievements.time_unlocked ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list unlocked achievements failed: %w", err)
	}
	return rows, nil
}
