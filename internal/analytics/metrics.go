package analytics

import (
	"math"
	"sort"

	"edu_analytics_backend/internal/model"
)

// ScoreWindow is the number of most recent attempts averaged into the current
// score (and, before them, into the previous score).
const ScoreWindow = 5

// DefaultThresholds are used when the caller does not know the student's tier.
var DefaultThresholds = baseThresholds[model.TierIntermediate]

type topicAggregate struct {
	first, last float64
	completed   int
	timeSpent   float64
}

// ComputeProgressMetrics aggregates a student's history for one subject.
// Records failing Valid are ignored.
func ComputeProgressMetrics(history []model.ActivityRecord, th model.Thresholds) model.ProgressMetrics {
	records := validChronological(history)

	metrics := model.ProgressMetrics{
		Trend:            model.TrendStable,
		WeakAreaProgress: []model.WeakAreaProgress{},
	}
	if len(records) == 0 {
		return metrics
	}

	scores := make([]float64, len(records))
	topics := make(map[string]*topicAggregate)
	var studyTime float64
	for i, r := range records {
		scores[i] = r.Score
		studyTime += r.TimeSpent
		if r.Completed {
			metrics.QuizzesCompleted++
		}

		agg, ok := topics[r.TopicName()]
		if !ok {
			agg = &topicAggregate{first: r.Score}
			topics[r.TopicName()] = agg
		}
		agg.last = r.Score
		agg.timeSpent += r.TimeSpent
		if r.Completed {
			agg.completed++
		}
	}

	metrics.StudyTimeLogged = roundSeconds(studyTime)
	metrics.Subject = records[len(records)-1].Subject
	metrics.LastUpdated = records[len(records)-1].Timestamp
	metrics.CurrentScore, metrics.PreviousScore = windowScores(scores)
	metrics.ImprovementRate = metrics.CurrentScore - metrics.PreviousScore

	trend := AnalyzeTrend(scores)
	metrics.Trend = trend.Trend
	metrics.TrendSlope = trend.Slope
	metrics.TrendConfidence = trend.Confidence

	metrics.WeakAreaProgress = weakAreas(topics, th)
	return metrics
}

func validChronological(history []model.ActivityRecord) []model.ActivityRecord {
	records := make([]model.ActivityRecord, 0, len(history))
	for _, r := range history {
		if r.Valid() {
			records = append(records, r)
		}
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.Before(records[j].Timestamp)
	})
	return records
}

// windowScores returns the mean of the last window and of the window before it.
func windowScores(scores []float64) (current, previous float64) {
	n := len(scores)
	start := max(0, n-ScoreWindow)
	current = mean(scores[start:])

	if start == 0 {
		return current, current
	}
	prevStart := max(0, start-ScoreWindow)
	return current, mean(scores[prevStart:start])
}

func weakAreas(topics map[string]*topicAggregate, th model.Thresholds) []model.WeakAreaProgress {
	areas := []model.WeakAreaProgress{}
	for topic, agg := range topics {
		improvement := agg.last - agg.first
		status := topicStatus(improvement, th.ImprovementThreshold)
		if agg.last >= th.WeakAreaThreshold && status != model.StatusDeclining {
			continue
		}
		areas = append(areas, model.WeakAreaProgress{
			Topic:              topic,
			InitialScore:       agg.first,
			CurrentScore:       agg.last,
			Improvement:        improvement,
			Status:             status,
			ExercisesCompleted: agg.completed,
			TimeSpent:          roundSeconds(agg.timeSpent),
		})
	}
	sort.Slice(areas, func(i, j int) bool {
		return areas[i].Topic < areas[j].Topic
	})
	return areas
}

func topicStatus(improvement, threshold float64) model.WeakAreaStatus {
	switch {
	case improvement >= threshold:
		return model.StatusImproved
	case improvement <= -threshold:
		return model.StatusDeclining
	default:
		return model.StatusStable
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// roundSeconds converts a summed duration to whole seconds.
func roundSeconds(s float64) int {
	return int(math.Round(s))
}
