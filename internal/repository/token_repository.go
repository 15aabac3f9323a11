package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gophertrophy/internal/model"
)

type TokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

// Replace upserts the token row keyed by username in a single statement, so
// re-authenticating overwrites the previous token atomically. Concurrent
// logins for one username settle last-write-wins.
func (r *TokenRepository) Replace(token *model.Token) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}},
		DoUpdates: clause.AssignmentColumns([]string{"token", "updated_at"}),
	}).Create(token).Error
	if err != nil {
		return fmt.Errorf("replace token failed: %w", err)
	}
	return nil
}

func (r *TokenRepository) GetByToken(token string) (*model.Token, error) {
	var row model.Token
	if err := r.db.Where("token = ?", token).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query token failed: %w", err)
	}
	return &row, nil
}
