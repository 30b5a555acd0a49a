package model

import "time"

type BadgeType string

const (
	BadgeFirstQuiz    BadgeType = "first_quiz"
	BadgePerfectScore BadgeType = "perfect_score"
	BadgeSpeedLearner BadgeType = "speed_learner"
	BadgeTopicMaster  BadgeType = "topic_master"
	BadgeConsistency  BadgeType = "consistency"
	BadgeImprovement  BadgeType = "improvement"
)

// BadgeDefinition is a static catalog entry.
type BadgeDefinition struct {
	Type        BadgeType `json:"type"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Condition   string    `json:"condition"`
	MaxProgress int       `json:"maxProgress"`
}

// Badge 已获得的徽章，每个学生每种徽章只记录一次
type Badge struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	StudentID   string    `gorm:"size:64;not null;uniqueIndex:idx_student_badge" json:"studentId"`
	BadgeType   BadgeType `gorm:"size:50;not null;uniqueIndex:idx_student_badge" json:"badgeType"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Description string    `gorm:"size:255" json:"description"`
	Icon        string    `gorm:"size:32" json:"icon"`
	EarnedAt    time.Time `json:"earnedAt"`
	Metadata    string    `gorm:"type:text" json:"metadata,omitempty"`
}

func (Badge) TableName() string {
	return "earned_badges"
}

// BadgeProgress is the recomputed state of one catalog entry.
type BadgeProgress struct {
	BadgeDefinition
	Progress    float64    `json:"progress"`
	RawProgress float64    `json:"rawProgress"`
	IsEarned    bool       `json:"isEarned"`
	EarnedAt    *time.Time `json:"earnedAt,omitempty"`
}
