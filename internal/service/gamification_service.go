package service

import (
	"context"
	"time"

	"edu_analytics_backend/internal/fallback"
	"edu_analytics_backend/internal/gamification"
	"edu_analytics_backend/internal/model"
	"edu_analytics_backend/internal/upstream"
	"edu_analytics_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// BadgeStore is the earned-badge ledger.
type BadgeStore interface {
	FindByStudentID(ctx context.Context, studentID string) ([]model.Badge, error)
	CreateIfAbsent(ctx context.Context, badge *model.Badge) (bool, error)
}

type GamificationSummary struct {
	Badges       []model.BadgeProgress   `json:"badges"`
	Achievements []model.Achievement     `json:"achievements"`
	Level        model.GamificationLevel `json:"level"`
	Degraded     bool                    `json:"degraded"`
}

type GamificationService struct {
	Source   upstream.Source
	Badges   BadgeStore
	Fallback *fallback.Orchestrator
	Log      *zap.Logger
	Now      func() time.Time
}

func NewGamificationService(source upstream.Source, badges BadgeStore, fb *fallback.Orchestrator, log *zap.Logger) *GamificationService {
	if log == nil {
		log = zap.NewNop()
	}
	return &GamificationService{
		Source:   source,
		Badges:   badges,
		Fallback: fb,
		Log:      log,
		Now:      time.Now,
	}
}

// Summary computes badges, achievements and level in one pass. Badges whose
// progress reached the maximum are recorded in the ledger before the level is
// computed.
func (s *GamificationService) Summary(ctx context.Context, q upstream.Query) GamificationSummary {
	records, err := s.Source.FetchRecords(ctx, q)
	records, recordsDegraded := s.Fallback.Records(q.StudentID, records, err)

	progress, err := s.Source.FetchProgress(ctx, q)
	progress, progressDegraded := s.Fallback.Progress(q.StudentID, progress, err)

	earned, err := s.Badges.FindByStudentID(ctx, q.StudentID)
	earned, badgesDegraded := s.Fallback.Badges(q.StudentID, earned, err)

	badgeProgress := gamification.ComputeBadgeProgress(earned, records, progress)
	if !badgesDegraded {
		if awarded := s.award(ctx, q.StudentID, gamification.NewlyEarned(badgeProgress)); len(awarded) > 0 {
			earned = append(earned, awarded...)
			badgeProgress = gamification.ComputeBadgeProgress(earned, records, progress)
		}
	}

	achievements := gamification.GenerateAchievements(records, progress)
	return GamificationSummary{
		Badges:       badgeProgress,
		Achievements: achievements,
		Level:        gamification.ComputeLevel(earned, achievements),
		Degraded:     recordsDegraded || progressDegraded || badgesDegraded,
	}
}

func (s *GamificationService) award(ctx context.Context, studentID string, defs []model.BadgeDefinition) []model.Badge {
	var awarded []model.Badge
	now := s.Now()
	for _, def := range defs {
		badge := gamification.NewBadge(studentID, def, now)
		created, err := s.Badges.CreateIfAbsent(ctx, &badge)
		if err != nil {
			s.Log.Error("failed to record earned badge",
				zap.String("student_id", studentID),
				zap.String("badge_type", string(def.Type)),
				zap.Error(err))
			continue
		}
		if created {
			monitoring.BadgesAwarded.WithLabelValues(string(def.Type)).Inc()
			s.Log.Info("badge earned",
				zap.String("student_id", studentID),
				zap.String("badge_type", string(def.Type)))
		}
		awarded = append(awarded, badge)
	}
	return awarded
}
