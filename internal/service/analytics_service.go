package service

import (
	"context"
	"sync/atomic"

	"edu_analytics_backend/internal/analytics"
	"edu_analytics_backend/internal/fallback"
	"edu_analytics_backend/internal/model"
	"edu_analytics_backend/internal/upstream"
)

// AnalyticsService resolves a snapshot from upstream and runs the progress
// and recommendation computations on it.
type AnalyticsService struct {
	Source      upstream.Source
	Fallback    *fallback.Orchestrator
	DefaultTier model.Tier

	thresholds atomic.Pointer[analytics.ThresholdTable]
}

func NewAnalyticsService(source upstream.Source, fb *fallback.Orchestrator, table *analytics.ThresholdTable, defaultTier string) *AnalyticsService {
	s := &AnalyticsService{
		Source:      source,
		Fallback:    fb,
		DefaultTier: analytics.ParseTier(defaultTier),
	}
	if table == nil {
		table = analytics.NewThresholdTable(nil, nil)
	}
	s.thresholds.Store(table)
	return s
}

// SetThresholds swaps the threshold table, e.g. after a config reload.
func (s *AnalyticsService) SetThresholds(table *analytics.ThresholdTable) {
	if table != nil {
		s.thresholds.Store(table)
	}
}

// Thresholds returns the thresholds for tier (empty means the default tier)
// and subject.
func (s *AnalyticsService) Thresholds(tier, subject string) model.Thresholds {
	t := s.DefaultTier
	if tier != "" {
		t = analytics.ParseTier(tier)
	}
	return s.thresholds.Load().Lookup(t, subject)
}

// Progress returns the progress snapshot and whether it was synthesized.
func (s *AnalyticsService) Progress(ctx context.Context, q upstream.Query, tier string) (model.ProgressMetrics, bool) {
	records, err := s.Source.FetchRecords(ctx, q)
	return s.Fallback.Metrics(q.StudentID, q.Subject, records, err, s.Thresholds(tier, q.Subject))
}

func (s *AnalyticsService) Recommendations(ctx context.Context, q upstream.Query, tier string) (model.PersonalizedRecommendations, bool) {
	metrics, degraded := s.Progress(ctx, q, tier)
	return analytics.BuildRecommendations(metrics), degraded
}
