package app

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"gophertrophy/internal/model"
)

var ErrAchievementNotFound = errors.New("achievement not found")

const catalogListLimit = 50

type AchievementStore interface {
	Create(achievement *model.Achievement) error
	GetByID(id uint) (*model.Achievement, error)
	List(limit int) ([]model.Achievement, error)
}

type UserAchievementStore interface {
	Upsert(row *model.UserAchievement) error
	ListUnlockedByUserID(userID uint) ([]model.UnlockedAchievement, error)
}

type UnlockEventPublisher interface {
	Publish(ctx context.Context, event model.UnlockEvent) error
}

type CatalogCache interface {
	GetCatalog(ctx context.Context) ([]model.Achievement, bool, error)
	SetCatalog(ctx context.Context, achievements []model.Achievement) error
	Invalidate(ctx context.Context) error
}

type AchievementService struct {
	achievements     AchievementStore
	userAchievements UserAchievementStore
	publisher        UnlockEventPublisher
	catalogCache     CatalogCache

	now func() int64
}

type RegisterAchievementInput struct {
	Name  string
	Image string
}

func NewAchievementService(
	achievements AchievementStore,
	userAchievements UserAchievementStore,
	publisher UnlockEventPublisher,
	catalogCache CatalogCache,
) *AchievementService {
	return &AchievementService{
		achievements:     achievements,
		userAchievements: userAchievements,
		publisher:        publisher,
		catalogCache:     catalogCache,
		now:              func() int64 { return time.Now().Unix() },
	}
}

func (s *AchievementService) ListAchievements(ctx context.Context) ([]model.Achievement, error) {
	if s.catalogCache != nil {
		if cached, hit, err := s.catalogCache.GetCatalog(ctx); err == nil && hit {
			return cached, nil
		}
	}

	achievements, err := s.achievements.List(catalogListLimit)
	if err != nil {
		return nil, err
	}
	if s.catalogCache != nil {
		_ = s.catalogCache.SetCatalog(ctx, achievements)
	}
	return achievements, nil
}

func (s *AchievementService) GetAchievement(id uint) (*model.Achievement, error) {
	if id == 0 {
		return nil, ErrAchievementNotFound
	}
	achievement, err := s.achievements.GetByID(id)
	if err != nil {
		return nil, err
	}
	if achievement == nil {
		return nil, ErrAchievementNotFound
	}
	return achievement, nil
}

func (s *AchievementService) RegisterAchievement(ctx context.Context, input RegisterAchievementInput) (*model.Achievement, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidInput
	}

	achievement := &model.Achievement{
		Name:  name,
		Image: input.Image,
	}
	if err := s.achievements.Create(achievement); err != nil {
		return nil, err
	}
	if s.catalogCache != nil {
		_ = s.catalogCache.Invalidate(ctx)
	}
	return achievement, nil
}

// Unlock records the achievement for the user. Repeated unlocks of the same
// pair never error and never add rows; the stored timestamp moves to the
// latest call. The audit event is published after the upsert and is
// best-effort: the unlock already succeeded, so a broker hiccup only logs.
func (s *AchievementService) Unlock(ctx context.Context, userID, achievementID uint) error {
	if userID == 0 {
		return ErrInvalidInput
	}

	achievement, err := s.achievements.GetByID(achievementID)
	if err != nil {
		return err
	}
	if achievement == nil {
		return ErrAchievementNotFound
	}

	unlockedAt := s.now()
	if err := s.userAchievements.Upsert(&model.UserAchievement{
		UserID:        userID,
		AchievementID: achievement.ID,
		Unlocked:      true,
		TimeUnlocked:  unlockedAt,
	}); err != nil {
		return err
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, model.UnlockEvent{
			UserID:        userID,
			AchievementID: achievement.ID,
			UnlockedAt:    unlockedAt,
		}); err != nil {
			log.Printf("publish unlock event failed: %v", err)
		}
	}
	return nil
}

func (s *AchievementService) ListUnlocked(userID uint) ([]model.UnlockedAchievement, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	return s.userAchievements.ListUnlockedByUserID(userID)
}
