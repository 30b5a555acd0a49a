package model

import "time"

type Trend string

const (
	TrendImproving Trend = "improving"
	TrendDeclining Trend = "declining"
	TrendStable    Trend = "stable"
)

type WeakAreaStatus string

const (
	StatusImproved  WeakAreaStatus = "improved"
	StatusStable    WeakAreaStatus = "stable"
	StatusDeclining WeakAreaStatus = "declining"
)

// ProgressMetrics 学生在某学科上的进度快照
type ProgressMetrics struct {
	StudentID        string             `json:"studentId"`
	Subject          string             `json:"subject"`
	CurrentScore     float64            `json:"currentScore"`
	PreviousScore    float64            `json:"previousScore"`
	ImprovementRate  float64            `json:"improvementRate"`
	Trend            Trend              `json:"trend"`
	TrendSlope       float64            `json:"trendSlope"`
	TrendConfidence  float64            `json:"trendConfidence"`
	WeakAreaProgress []WeakAreaProgress `json:"weakAreaProgress"`
	StudyTimeLogged  int                `json:"studyTimeLogged"` // seconds
	QuizzesCompleted int                `json:"quizzesCompleted"`
	LastUpdated      time.Time          `json:"lastUpdated"`
}

// WeakAreaProgress 单个薄弱主题的进度
type WeakAreaProgress struct {
	Topic              string         `json:"topic"`
	InitialScore       float64        `json:"initialScore"`
	CurrentScore       float64        `json:"currentScore"`
	Improvement        float64        `json:"improvement"`
	Status             WeakAreaStatus `json:"status"`
	ExercisesCompleted int            `json:"exercisesCompleted"`
	TimeSpent          int            `json:"timeSpent"`
}
