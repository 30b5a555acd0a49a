package fallback

import (
	"edu_analytics_backend/internal/analytics"
	"edu_analytics_backend/internal/model"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Sources reported in logs and in the fallback counter.
const (
	SourceRecords     = "records"
	SourceProgress    = "progress"
	SourceBadges      = "badges"
	SourcePreferences = "preferences"
)

const (
	defaultCurrentScore  = 65.0
	defaultPreviousScore = 60.0
	defaultWeakTopic     = "Révision générale"
)

// Orchestrator substitutes deterministic defaults when a source fails. It
// holds no state besides its logger and counter.
type Orchestrator struct {
	log     *zap.Logger
	counter *prometheus.CounterVec
}

// New creates an orchestrator. counter must carry a single "source" label and
// may be nil.
func New(log *zap.Logger, counter *prometheus.CounterVec) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{log: log, counter: counter}
}

// DefaultProgressMetrics is the synthetic snapshot shown while upstream is
// unavailable.
func DefaultProgressMetrics(studentID, subject string) model.ProgressMetrics {
	return model.ProgressMetrics{
		StudentID:       studentID,
		Subject:         subject,
		CurrentScore:    defaultCurrentScore,
		PreviousScore:   defaultPreviousScore,
		ImprovementRate: defaultCurrentScore - defaultPreviousScore,
		Trend:           model.TrendStable,
		WeakAreaProgress: []model.WeakAreaProgress{{
			Topic:        defaultWeakTopic,
			InitialScore: defaultPreviousScore,
			CurrentScore: defaultCurrentScore,
			Improvement:  defaultCurrentScore - defaultPreviousScore,
			Status:       model.StatusStable,
		}},
	}
}

// DefaultRecommendations are built from DefaultProgressMetrics.
func DefaultRecommendations(studentID, subject string) model.PersonalizedRecommendations {
	return analytics.BuildRecommendations(DefaultProgressMetrics(studentID, subject))
}

// DefaultPreferences 偏好不存在或无法读取时使用
func DefaultPreferences() model.Preferences {
	return model.Preferences{
		ShowNotifications: true,
		SoundEnabled:      true,
		Theme:             model.ThemeSystem,
	}
}

// Records returns the fetched records, or an empty list when err is set.
func (o *Orchestrator) Records(studentID string, records []model.ActivityRecord, err error) ([]model.ActivityRecord, bool) {
	return resolve(o, SourceRecords, studentID, records, err, func() []model.ActivityRecord {
		return []model.ActivityRecord{}
	})
}

func (o *Orchestrator) Progress(studentID string, progress []model.TopicProgress, err error) ([]model.TopicProgress, bool) {
	return resolve(o, SourceProgress, studentID, progress, err, func() []model.TopicProgress {
		return []model.TopicProgress{}
	})
}

func (o *Orchestrator) Badges(studentID string, badges []model.Badge, err error) ([]model.Badge, bool) {
	return resolve(o, SourceBadges, studentID, badges, err, func() []model.Badge {
		return []model.Badge{}
	})
}

// Preferences returns p, or the defaults when p is nil or err is set.
func (o *Orchestrator) Preferences(studentID string, p *model.Preferences, err error) (model.Preferences, bool) {
	if err == nil && p == nil {
		return DefaultPreferences(), false
	}
	out, degraded := resolve(o, SourcePreferences, studentID, p, err, func() *model.Preferences {
		d := DefaultPreferences()
		return &d
	})
	return *out, degraded
}

// Metrics computes the snapshot from records, or returns the synthetic one
// when the records could not be fetched.
func (o *Orchestrator) Metrics(studentID, subject string, records []model.ActivityRecord, err error, th model.Thresholds) (model.ProgressMetrics, bool) {
	if err != nil {
		o.record(SourceRecords, studentID, err)
		return DefaultProgressMetrics(studentID, subject), true
	}
	m := analytics.ComputeProgressMetrics(records, th)
	m.StudentID = studentID
	if m.Subject == "" {
		m.Subject = subject
	}
	return m, false
}

func resolve[T any](o *Orchestrator, source, studentID string, value T, err error, fallback func() T) (T, bool) {
	if err != nil {
		o.record(source, studentID, err)
		return fallback(), true
	}
	if isNil(value) {
		return fallback(), false
	}
	return value, false
}

func (o *Orchestrator) record(source, studentID string, err error) {
	o.log.Warn("upstream unavailable, using defaults",
		zap.String("source", source),
		zap.String("student_id", studentID),
		zap.Error(err))
	if o.counter != nil {
		o.counter.WithLabelValues(source).Inc()
	}
}

func isNil(v any) bool {
	switch x := v.(type) {
	case []model.ActivityRecord:
		return x == nil
	case []model.TopicProgress:
		return x == nil
	case []model.Badge:
		return x == nil
	case *model.Preferences:
		return x == nil
	default:
		return false
	}
}
