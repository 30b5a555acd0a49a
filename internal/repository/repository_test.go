package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"edu_analytics_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Badge{}, &model.StudentPreference{}))
	return db
}

func TestBadgeRepositoryCreateIfAbsent(t *testing.T) {
	repo := NewBadgeRepository(newTestDB(t))
	ctx := context.Background()
	at := time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)

	first := &model.Badge{ID: model.GenerateUUID(), StudentID: "s1", BadgeType: model.BadgeFirstQuiz, Name: "Premier Quiz", EarnedAt: at}
	created, err := repo.CreateIfAbsent(ctx, first)
	require.NoError(t, err)
	assert.True(t, created)

	again := &model.Badge{ID: model.GenerateUUID(), StudentID: "s1", BadgeType: model.BadgeFirstQuiz, Name: "Premier Quiz", EarnedAt: at.Add(time.Hour)}
	created, err = repo.CreateIfAbsent(ctx, again)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, again.ID)

	other := &model.Badge{ID: model.GenerateUUID(), StudentID: "s2", BadgeType: model.BadgeFirstQuiz, Name: "Premier Quiz", EarnedAt: at}
	created, err = repo.CreateIfAbsent(ctx, other)
	require.NoError(t, err)
	assert.True(t, created)

	badges, err := repo.FindByStudentID(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, badges, 1)
	assert.True(t, at.Equal(badges[0].EarnedAt))
}

func TestBadgeRepositoryRepeatAwardIssuesNoFailingInsert(t *testing.T) {
	db := newTestDB(t)
	var insertErrors []error
	require.NoError(t, db.Callback().Create().After("gorm:create").Register("test:record_errors", func(tx *gorm.DB) {
		if tx.Error != nil {
			insertErrors = append(insertErrors, tx.Error)
		}
	}))
	repo := NewBadgeRepository(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		badge := &model.Badge{ID: model.GenerateUUID(), StudentID: "s1", BadgeType: model.BadgePerfectScore, Name: "Score Parfait", EarnedAt: time.Now()}
		created, err := repo.CreateIfAbsent(ctx, badge)
		require.NoError(t, err)
		assert.Equal(t, i == 0, created)
	}

	assert.Empty(t, insertErrors)

	var count int64
	db.Model(&model.Badge{}).Where("student_id = ?", "s1").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestBadgeRepositoryFindEmpty(t *testing.T) {
	repo := NewBadgeRepository(newTestDB(t))

	badges, err := repo.FindByStudentID(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, badges)
	assert.Empty(t, badges)
}

func TestPreferenceRepositoryRoundTrip(t *testing.T) {
	repo := NewPreferenceRepository(newTestDB(t))
	ctx := context.Background()

	blob, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, blob)

	require.NoError(t, repo.Save(ctx, "s1", `{"theme":"dark"}`))
	require.NoError(t, repo.Save(ctx, "s1", `{"theme":"light"}`))

	blob, err = repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, `{"theme":"light"}`, blob)

	var count int64
	repo.DB.Model(&model.StudentPreference{}).Count(&count)
	assert.Equal(t, int64(1), count)
}
