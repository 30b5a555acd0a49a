package gamification

import (
	"encoding/json"
	"time"

	"edu_analytics_backend/internal/model"
)

// ComputeBadgeProgress evaluates every catalog entry against the history.
// Earned status comes only from the earned list; a badge is never revoked.
func ComputeBadgeProgress(earned []model.Badge, history []model.ActivityRecord, progress []model.TopicProgress) []model.BadgeProgress {
	// 同类型多条记录时取最早的一条
	earnedByType := make(map[model.BadgeType]model.Badge, len(earned))
	for _, b := range earned {
		if prev, ok := earnedByType[b.BadgeType]; ok && !b.EarnedAt.Before(prev.EarnedAt) {
			continue
		}
		earnedByType[b.BadgeType] = b
	}

	valid := validRecords(history)
	result := make([]model.BadgeProgress, 0, len(catalog))
	for _, def := range catalog {
		raw := rawProgress(def.Type, valid, progress)
		bp := model.BadgeProgress{
			BadgeDefinition: def,
			RawProgress:     raw,
			Progress:        clamp(raw, 0, float64(def.MaxProgress)),
		}
		if b, ok := earnedByType[def.Type]; ok {
			earnedAt := b.EarnedAt
			bp.IsEarned = true
			bp.EarnedAt = &earnedAt
		}
		result = append(result, bp)
	}
	return result
}

func rawProgress(t model.BadgeType, history []model.ActivityRecord, progress []model.TopicProgress) float64 {
	switch t {
	case model.BadgeFirstQuiz:
		if len(history) > 0 {
			return 1
		}
		return 0
	case model.BadgePerfectScore:
		return float64(countRecords(history, func(r model.ActivityRecord) bool {
			return r.Score == perfectPercentage
		}))
	case model.BadgeSpeedLearner:
		return float64(countRecords(history, func(r model.ActivityRecord) bool {
			return r.TimeSpent < speedLearnerSeconds
		}))
	case model.BadgeTopicMaster:
		return float64(countTopics(progress, topicMasterLevel))
	case model.BadgeConsistency:
		return float64(min(consistencyTarget, len(history)))
	case model.BadgeImprovement:
		var sum float64
		for _, p := range progress {
			sum += max(0, p.Improvement)
		}
		return sum
	default:
		return 0
	}
}

// NewlyEarned returns the definitions whose progress reached the maximum but
// that have no earned record yet.
func NewlyEarned(progress []model.BadgeProgress) []model.BadgeDefinition {
	defs := []model.BadgeDefinition{}
	for _, bp := range progress {
		if !bp.IsEarned && bp.Progress >= float64(bp.MaxProgress) {
			defs = append(defs, bp.BadgeDefinition)
		}
	}
	return defs
}

// NewBadge builds the earned record for def.
func NewBadge(studentID string, def model.BadgeDefinition, at time.Time) model.Badge {
	meta, _ := json.Marshal(map[string]any{
		"condition":   def.Condition,
		"maxProgress": def.MaxProgress,
	})
	return model.Badge{
		ID:          model.GenerateUUID(),
		StudentID:   studentID,
		BadgeType:   def.Type,
		Name:        def.Name,
		Description: def.Description,
		Icon:        def.Icon,
		EarnedAt:    at,
		Metadata:    string(meta),
	}
}

func validRecords(history []model.ActivityRecord) []model.ActivityRecord {
	valid := make([]model.ActivityRecord, 0, len(history))
	for _, r := range history {
		if r.Valid() {
			valid = append(valid, r)
		}
	}
	return valid
}

func countRecords(history []model.ActivityRecord, pred func(model.ActivityRecord) bool) int {
	n := 0
	for _, r := range history {
		if pred(r) {
			n++
		}
	}
	return n
}

func countTopics(progress []model.TopicProgress, level float64) int {
	n := 0
	for _, p := range progress {
		if p.CurrentLevel >= level {
			n++
		}
	}
	return n
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}
