package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"gophertrophy/internal/model"
)

type AchievementRepository struct {
	db *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) *AchievementRepository {
	return &AchievementRepository{db: db}
}

func (r *AchievementRepository) Create(achievement *model.Achievement) error {
	if err := r.db.Create(achievement).Error; err != nil {
		return fmt.Errorf("create achievement failed: %w", err)
	}
	return nil
}

func (r *AchievementRepository) GetByID(id uint) (*model.Achievement, error) {
	var achievement model.Achievement
	if err := r.db.First(&achievement, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query achievement by id failed: %w", err)
	}
	return &achievement, nil
}

func (r *AchievementRepository) List(limit int) ([]model.Achievement, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var achievements []model.Achievement
	if err := r.db.Order("id ASC").Limit(limit).Find(&achievements).Error; err != nil {
		return nil, fmt.Errorf("list achievements failed: %w", err)
	}
	return achievements, nil
}
