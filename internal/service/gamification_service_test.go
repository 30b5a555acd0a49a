package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"edu_analytics_backend/internal/fallback"
	"edu_analytics_backend/internal/model"
	"edu_analytics_backend/internal/upstream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGamification(src *fakeSource, store *fakeBadgeStore) *GamificationService {
	svc := NewGamificationService(src, store, fallback.New(nil, nil), nil)
	svc.Now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func badgeState(summary GamificationSummary, t model.BadgeType) model.BadgeProgress {
	for _, bp := range summary.Badges {
		if bp.Type == t {
			return bp
		}
	}
	return model.BadgeProgress{}
}

func TestGamificationSummaryAwardsOnce(t *testing.T) {
	src := &fakeSource{records: []model.ActivityRecord{{Subject: "maths", Score: 100, TimeSpent: 60, Completed: true}}}
	store := &fakeBadgeStore{}
	svc := newGamification(src, store)
	q := upstream.Query{StudentID: "s1"}

	summary := svc.Summary(context.Background(), q)

	assert.False(t, summary.Degraded)
	assert.Equal(t, 3, store.creates)
	for _, bt := range []model.BadgeType{model.BadgeFirstQuiz, model.BadgePerfectScore, model.BadgeSpeedLearner} {
		bp := badgeState(summary, bt)
		assert.True(t, bp.IsEarned, bt)
		require.NotNil(t, bp.EarnedAt, bt)
	}
	assert.False(t, badgeState(summary, model.BadgeConsistency).IsEarned)

	// 3*25 + speed_demon 50 + accuracy_master 75
	assert.Equal(t, 200, summary.Level.TotalPoints)
	assert.Equal(t, 3, summary.Level.Level)

	again := svc.Summary(context.Background(), q)
	assert.Equal(t, 3, store.creates)
	assert.Equal(t, summary.Level, again.Level)
}

func TestGamificationSummaryStickyBadges(t *testing.T) {
	earnedAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	store := &fakeBadgeStore{badges: []model.Badge{{ID: "b1", StudentID: "s1", BadgeType: model.BadgeTopicMaster, EarnedAt: earnedAt}}}
	src := &fakeSource{progress: []model.TopicProgress{{Topic: "algèbre", CurrentLevel: 6}}}

	summary := newGamification(src, store).Summary(context.Background(), upstream.Query{StudentID: "s1"})

	master := badgeState(summary, model.BadgeTopicMaster)
	assert.True(t, master.IsEarned)
	assert.Zero(t, master.Progress)
	assert.Equal(t, 25, summary.Level.TotalPoints)
}

func TestGamificationSummaryDegraded(t *testing.T) {
	src := &fakeSource{recordsErr: errUpstream, progressErr: errUpstream}
	store := &fakeBadgeStore{}

	summary := newGamification(src, store).Summary(context.Background(), upstream.Query{StudentID: "s1"})

	assert.True(t, summary.Degraded)
	assert.Len(t, summary.Badges, 6)
	assert.NotNil(t, summary.Achievements)
	assert.Equal(t, model.GamificationLevel{Level: 1, Title: "Débutant", NextLevel: 2}, summary.Level)
	assert.Zero(t, store.creates)
}

func TestGamificationSummaryLedgerUnavailable(t *testing.T) {
	src := &fakeSource{records: []model.ActivityRecord{{Score: 100, TimeSpent: 60}}}
	store := &fakeBadgeStore{findErr: errors.New("db down")}

	summary := newGamification(src, store).Summary(context.Background(), upstream.Query{StudentID: "s1"})

	assert.True(t, summary.Degraded)
	assert.Zero(t, store.creates)
	assert.False(t, badgeState(summary, model.BadgeFirstQuiz).IsEarned)
	assert.Equal(t, 1.0, badgeState(summary, model.BadgeFirstQuiz).Progress)
}

func TestGamificationSummarySaveFailure(t *testing.T) {
	src := &fakeSource{records: []model.ActivityRecord{{Score: 100, TimeSpent: 60}}}
	store := &fakeBadgeStore{saveErr: errors.New("constraint")}

	summary := newGamification(src, store).Summary(context.Background(), upstream.Query{StudentID: "s1"})

	assert.False(t, summary.Degraded)
	assert.False(t, badgeState(summary, model.BadgeFirstQuiz).IsEarned)
	assert.Equal(t, 125, summary.Level.TotalPoints)
}
