package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gophertrophy/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Token{},
		&model.Achievement{},
		&model.UserAchievement{},
		&model.UnlockEvent{},
	))
	return db
}

func TestUserRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	user := &model.User{Username: "alice", HashedPassword: "hash"}
	require.NoError(t, repo.Create(user))
	require.NotZero(t, user.ID)

	found, err := repo.GetByUsername("alice")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, user.ID, found.ID)
	assert.False(t, found.IsAdmin)

	missing, err := repo.GetByUsername("nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)

	byID, err := repo.GetByID(user.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "alice", byID.Username)

	missingByID, err := repo.GetByID(9999)
	require.NoError(t, err)
	assert.Nil(t, missingByID)
}

func TestTokenRepositoryReplaceKeyedByUsername(t *testing.T) {
	db := newTestDB(t)
	repo := NewTokenRepository(db)

	require.NoError(t, repo.Replace(&model.Token{Username: "alice", Token: "token-one"}))
	require.NoError(t, repo.Replace(&model.Token{Username: "alice", Token: "token-two"}))

	var count int64
	require.NoError(t, db.Model(&model.Token{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "re-issuing must not accumulate stale tokens")

	old, err := repo.GetByToken("token-one")
	require.NoError(t, err)
	assert.Nil(t, old, "superseded token must stop resolving")

	current, err := repo.GetByToken("token-two")
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, "alice", current.Username)
}

func TestTokenRepositoryDistinctUsers(t *testing.T) {
	db := newTestDB(t)
	repo := NewTokenRepository(db)

	require.NoError(t, repo.Replace(&model.Token{Username: "alice", Token: "token-alice"}))
	require.NoError(t, repo.Replace(&model.Token{Username: "bob", Token: "token-bob"}))

	var count int64
	require.NoError(t, db.Model(&model.Token{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestAchievementRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewAchievementRepository(db)

	for i := 1; i <= 3; i++ {
		require.NoError(t, repo.Create(&model.Achievement{
			Name:  fmt.Sprintf("achievement-%d", i),
			Image: fmt.Sprintf("image-%d", i),
		}))
	}

	found, err := repo.GetByID(2)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "achievement-2", found.Name)

	missing, err := repo.GetByID(9999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	all, err := repo.List(50)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	limited, err := repo.List(2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestUserAchievementUpsertIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserAchievementRepository(db)

	require.NoError(t, repo.Upsert(&model.UserAchievement{
		UserID: 7, AchievementID: 1, Unlocked: true, TimeUnlocked: 100,
	}))
	require.NoError(t, repo.Upsert(&model.UserAchievement{
		UserID: 7, AchievementID: 1, Unlocked: true, TimeUnlocked: 200,
	}))

	var count int64
	require.NoError(t, db.Model(&model.UserAchievement{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "repeated unlocks must not duplicate rows")

	var row model.UserAchievement
	require.NoError(t, db.Where("user_id = ? AND achievement_id = ?", 7, 1).First(&row).Error)
	assert.True(t, row.Unlocked)
	assert.Equal(t, int64(200), row.TimeUnlocked, "timestamp must follow the latest unlock")
}

func TestListUnlockedByUserID(t *testing.T) {
	db := newTestDB(t)
	achievementRepo := NewAchievementRepository(db)
	repo := NewUserAchievementRepository(db)

	first := &model.Achievement{Name: "First Steps", Image: "first.png"}
	second := &model.Achievement{Name: "Night Owl", Image: "owl.png"}
	require.NoError(t, achievementRepo.Create(first))
	require.NoError(t, achievementRepo.Create(second))

	require.NoError(t, repo.Upsert(&model.UserAchievement{
		UserID: 7, AchievementID: first.ID, Unlocked: true, TimeUnlocked: 100,
	}))
	require.NoError(t, repo.Upsert(&model.UserAchievement{
		UserID: 8, AchievementID: second.ID, Unlocked: true, TimeUnlocked: 150,
	}))

	unlocked, err := repo.ListUnlockedByUserID(7)
	require.NoError(t, err)
	require.Len(t, unlocked, 1)
	assert.Equal(t, "First Steps", unlocked[0].Name)
	assert.Equal(t, "first.png", unlocked[0].Image)
	assert.True(t, unlocked[0].Unlocked)
	assert.Equal(t, int64(100), unlocked[0].TimeUnlocked)

	empty, err := repo.ListUnlockedByUserID(9999)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestUnlockEventRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewUnlockEventRepository(db)

	require.NoError(t, repo.Create(&model.UnlockEvent{
		UserID: 7, AchievementID: 1, UnlockedAt: 100,
	}))

	var count int64
	require.NoError(t, db.Model(&model.UnlockEvent{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
