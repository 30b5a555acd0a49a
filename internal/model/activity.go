package model

import (
	"math"
	"time"
)

// DefaultTopic 未指定主题时使用的主题名
const DefaultTopic = "général"

// ActivityRecord is one completed exercise or quiz attempt as delivered by the
// upstream API. Score doubles as the result percentage.
type ActivityRecord struct {
	Subject   string    `json:"subject"`
	Topic     string    `json:"topic"`
	Score     float64   `json:"score"`
	TimeSpent float64   `json:"timeSpent"` // seconds, may be fractional
	Timestamp time.Time `json:"timestamp"`
	Completed bool      `json:"completed"`
}

// Valid reports whether the numeric fields can take part in aggregates.
func (r ActivityRecord) Valid() bool {
	if math.IsNaN(r.Score) || math.IsInf(r.Score, 0) || math.IsNaN(r.TimeSpent) || math.IsInf(r.TimeSpent, 0) {
		return false
	}
	return r.Score >= 0 && r.Score <= 100 && r.TimeSpent >= 0
}

// TopicName returns the topic, or DefaultTopic when the record has none.
func (r ActivityRecord) TopicName() string {
	if r.Topic == "" {
		return DefaultTopic
	}
	return r.Topic
}

// TopicProgress is a per-topic progress record (fetch-progress capability).
type TopicProgress struct {
	Topic        string  `json:"topic"`
	CurrentLevel float64 `json:"currentLevel"` // 0..10
	Improvement  float64 `json:"improvement"`
}
