package gamification

import "edu_analytics_backend/internal/model"

const (
	speedDemonSeconds     = 180.0
	accuracyMasterPercent = 85.0
	consistencyKingMin    = 10
	consistencyKingMax    = 20
	domainMasterLevel     = 8
	domainMasterMax       = 3
)

// GenerateAchievements returns the unlocked achievements only; locked ones are
// omitted rather than reported with IsUnlocked false.
func GenerateAchievements(history []model.ActivityRecord, progress []model.TopicProgress) []model.Achievement {
	valid := validRecords(history)
	achievements := []model.Achievement{}

	if len(valid) > 0 {
		meanTime := meanOf(valid, func(r model.ActivityRecord) float64 { return r.TimeSpent })
		if meanTime < speedDemonSeconds {
			achievements = append(achievements, model.Achievement{
				ID:           "speed_demon",
				Title:        "Éclair",
				Description:  "Temps moyen inférieur à 3 minutes par quiz.",
				Icon:         "🏎️",
				Category:     model.CategorySpeed,
				Progress:     max(0, speedDemonSeconds-meanTime),
				MaxProgress:  speedDemonSeconds,
				RewardPoints: 50,
				IsUnlocked:   true,
			})
		}

		meanScore := meanOf(valid, func(r model.ActivityRecord) float64 { return r.Score })
		if meanScore >= accuracyMasterPercent {
			achievements = append(achievements, model.Achievement{
				ID:           "accuracy_master",
				Title:        "Précision Absolue",
				Description:  "Score moyen d'au moins 85 %.",
				Icon:         "🎯",
				Category:     model.CategoryAccuracy,
				Progress:     meanScore,
				MaxProgress:  100,
				RewardPoints: 75,
				IsUnlocked:   true,
			})
		}
	}

	if len(valid) >= consistencyKingMin {
		achievements = append(achievements, model.Achievement{
			ID:           "consistency_king",
			Title:        "Roi de la Régularité",
			Description:  "Au moins 10 quiz terminés.",
			Icon:         "🔥",
			Category:     model.CategoryConsistency,
			Progress:     float64(min(consistencyKingMax, len(valid))),
			MaxProgress:  consistencyKingMax,
			RewardPoints: 100,
			IsUnlocked:   true,
		})
	}

	if mastered := countTopics(progress, domainMasterLevel); mastered > 0 {
		achievements = append(achievements, model.Achievement{
			ID:           "domain_master",
			Title:        "Maître du Domaine",
			Description:  "Niveau 8 atteint sur au moins un sujet.",
			Icon:         "🧠",
			Category:     model.CategoryMastery,
			Progress:     float64(mastered),
			MaxProgress:  domainMasterMax,
			RewardPoints: 150,
			IsUnlocked:   true,
		})
	}

	return achievements
}

func meanOf(records []model.ActivityRecord, value func(model.ActivityRecord) float64) float64 {
	if len(records) == 0 {
		return 0
	}
	var sum float64
	for _, r := range records {
		sum += value(r)
	}
	return sum / float64(len(records))
}
