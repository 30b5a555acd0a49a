package gamification

import (
	"testing"
	"time"

	"edu_analytics_backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func progressByType(t *testing.T, list []model.BadgeProgress) map[model.BadgeType]model.BadgeProgress {
	t.Helper()
	out := make(map[model.BadgeType]model.BadgeProgress, len(list))
	for _, bp := range list {
		out[bp.Type] = bp
	}
	require.Len(t, out, len(catalog))
	return out
}

func TestCatalogInvariants(t *testing.T) {
	seen := map[model.BadgeType]bool{}
	for _, def := range Catalog() {
		assert.GreaterOrEqual(t, def.MaxProgress, 1, def.Type)
		assert.False(t, seen[def.Type], "duplicate type %s", def.Type)
		seen[def.Type] = true
	}
	assert.Len(t, seen, 6)

	def, ok := Definition(model.BadgeConsistency)
	require.True(t, ok)
	assert.Equal(t, 5, def.MaxProgress)

	_, ok = Definition("unknown")
	assert.False(t, ok)
}

func TestComputeBadgeProgressEmpty(t *testing.T) {
	got := ComputeBadgeProgress(nil, nil, nil)

	require.Len(t, got, 6)
	for _, bp := range got {
		assert.Zero(t, bp.Progress, bp.Type)
		assert.False(t, bp.IsEarned, bp.Type)
		assert.Nil(t, bp.EarnedAt, bp.Type)
	}
}

func TestComputeBadgeProgressEmptyKeepsEarned(t *testing.T) {
	at := time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC)
	earned := []model.Badge{{StudentID: "s1", BadgeType: model.BadgeTopicMaster, EarnedAt: at}}

	got := progressByType(t, ComputeBadgeProgress(earned, nil, nil))

	master := got[model.BadgeTopicMaster]
	assert.True(t, master.IsEarned)
	require.NotNil(t, master.EarnedAt)
	assert.Equal(t, at, *master.EarnedAt)
	assert.Zero(t, master.Progress)
	assert.False(t, got[model.BadgeFirstQuiz].IsEarned)
}

func TestComputeBadgeProgressSingleResultScenario(t *testing.T) {
	history := []model.ActivityRecord{{Subject: "maths", Score: 100, TimeSpent: 60, Completed: true}}

	got := progressByType(t, ComputeBadgeProgress(nil, history, nil))

	assert.Equal(t, 1.0, got[model.BadgeFirstQuiz].Progress)
	assert.Equal(t, 1.0, got[model.BadgePerfectScore].Progress)
	assert.Equal(t, 1.0, got[model.BadgeSpeedLearner].Progress)
	assert.Equal(t, 0.0, got[model.BadgeTopicMaster].Progress)
	assert.Equal(t, 1.0, got[model.BadgeConsistency].Progress)
	assert.Equal(t, 0.0, got[model.BadgeImprovement].Progress)
}

func TestComputeBadgeProgressClampsButKeepsRaw(t *testing.T) {
	var history []model.ActivityRecord
	for i := 0; i < 7; i++ {
		history = append(history, model.ActivityRecord{Score: 100, TimeSpent: 300})
	}
	progress := []model.TopicProgress{
		{Topic: "a", CurrentLevel: 10, Improvement: 2.5},
		{Topic: "b", CurrentLevel: 10, Improvement: -4},
		{Topic: "c", CurrentLevel: 4, Improvement: 1},
	}

	got := progressByType(t, ComputeBadgeProgress(nil, history, progress))

	perfect := got[model.BadgePerfectScore]
	assert.Equal(t, 1.0, perfect.Progress)
	assert.Equal(t, 7.0, perfect.RawProgress)

	assert.Equal(t, 0.0, got[model.BadgeSpeedLearner].Progress)
	assert.Equal(t, 1.0, got[model.BadgeTopicMaster].Progress)
	assert.Equal(t, 2.0, got[model.BadgeTopicMaster].RawProgress)
	assert.Equal(t, 5.0, got[model.BadgeConsistency].Progress)
	assert.Equal(t, 3.0, got[model.BadgeImprovement].Progress)
	assert.Equal(t, 3.5, got[model.BadgeImprovement].RawProgress)
}

func TestComputeBadgeProgressIgnoresMalformed(t *testing.T) {
	history := []model.ActivityRecord{{Score: 150, TimeSpent: 10}, {Score: 100, TimeSpent: -1}}

	got := progressByType(t, ComputeBadgeProgress(nil, history, nil))

	assert.Zero(t, got[model.BadgeFirstQuiz].Progress)
	assert.Zero(t, got[model.BadgeSpeedLearner].Progress)
}

func TestNewlyEarned(t *testing.T) {
	history := []model.ActivityRecord{{Score: 100, TimeSpent: 60}}
	earned := []model.Badge{{BadgeType: model.BadgeFirstQuiz, EarnedAt: time.Now()}}

	defs := NewlyEarned(ComputeBadgeProgress(earned, history, nil))

	var types []model.BadgeType
	for _, d := range defs {
		types = append(types, d.Type)
	}
	assert.Equal(t, []model.BadgeType{model.BadgePerfectScore, model.BadgeSpeedLearner}, types)
}

func TestNewlyEarnedNone(t *testing.T) {
	defs := NewlyEarned(ComputeBadgeProgress(nil, nil, nil))
	assert.NotNil(t, defs)
	assert.Empty(t, defs)
}

func TestNewBadge(t *testing.T) {
	def, _ := Definition(model.BadgeSpeedLearner)
	at := time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)

	b := NewBadge("s42", def, at)

	assert.Len(t, b.ID, 36)
	assert.Equal(t, "s42", b.StudentID)
	assert.Equal(t, model.BadgeSpeedLearner, b.BadgeType)
	assert.Equal(t, def.Name, b.Name)
	assert.Equal(t, at, b.EarnedAt)
	assert.JSONEq(t, `{"condition":"Terminer un quiz en moins de 2 minutes","maxProgress":1}`, b.Metadata)
}

func TestComputeBadgeProgressIdempotent(t *testing.T) {
	history := []model.ActivityRecord{{Score: 90, TimeSpent: 100}, {Score: 100, TimeSpent: 200}}
	progress := []model.TopicProgress{{Topic: "x", CurrentLevel: 10, Improvement: 1}}

	assert.Equal(t, ComputeBadgeProgress(nil, history, progress), ComputeBadgeProgress(nil, history, progress))
}
