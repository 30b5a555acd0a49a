package model

type AchievementCategory string

const (
	CategorySpeed       AchievementCategory = "speed"
	CategoryAccuracy    AchievementCategory = "accuracy"
	CategoryConsistency AchievementCategory = "consistency"
	CategoryMastery     AchievementCategory = "mastery"
)

type Achievement struct {
	ID           string              `json:"id"`
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	Icon         string              `json:"icon"`
	Category     AchievementCategory `json:"category"`
	Progress     float64             `json:"progress"`
	MaxProgress  float64             `json:"maxProgress"`
	RewardPoints int                 `json:"rewardPoints"`
	IsUnlocked   bool                `json:"isUnlocked"`
}

// GamificationLevel 由积分换算出的等级
type GamificationLevel struct {
	Level       int    `json:"level"`
	Title       string `json:"title"`
	Progress    int    `json:"progress"`
	NextLevel   int    `json:"nextLevel"`
	TotalPoints int    `json:"totalPoints"`
}
