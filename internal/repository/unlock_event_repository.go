package repository

import (
	"fmt"

	"gorm.io/gorm"

	"gophertrophy/internal/model"
)

type UnlockEventRepository struct {
	db *gorm.DB
}

func NewUnlockEventRepository(db *gorm.DB) *UnlockEventRepository {
	return &UnlockEventRepository{db: db}
}

func (r *UnlockEventRepository) Create(event *model.UnlockEvent) error {
	if err := r.db.Create(event).Error; err != nil {
		return fmt.Errorf("create unlock event failed: %w", err)
	}
	return nil
}
