package model

type Tier string

const (
	TierBeginner     Tier = "beginner"
	TierIntermediate Tier = "intermediate"
	TierAdvanced     Tier = "advanced"
)

// Thresholds are the per-tier, per-subject sensitivity values.
type Thresholds struct {
	WeakAreaThreshold    float64 `json:"weakAreaThreshold"`
	ImprovementThreshold float64 `json:"improvementThreshold"`
	MasteryThreshold     float64 `json:"masteryThreshold"`
}
