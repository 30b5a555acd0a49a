package gamification

import "edu_analytics_backend/internal/model"

const (
	pointsPerBadge = 25
	pointsPerLevel = 100
)

var levelTitles = [...]string{
	"Débutant",
	"Apprenti",
	"Initié",
	"Compétent",
	"Confirmé",
	"Expert",
	"Maître",
	"Grand Maître",
	"Légende",
	"Divin",
}

// ComputeLevel 根据已获得徽章和已解锁成就计算等级
func ComputeLevel(earned []model.Badge, achievements []model.Achievement) model.GamificationLevel {
	total := len(earned) * pointsPerBadge
	for _, a := range achievements {
		if a.IsUnlocked {
			total += a.RewardPoints
		}
	}

	level := total/pointsPerLevel + 1
	return model.GamificationLevel{
		Level:       level,
		Title:       levelTitles[min(level-1, len(levelTitles)-1)],
		Progress:    total % pointsPerLevel,
		NextLevel:   level + 1,
		TotalPoints: total,
	}
}
