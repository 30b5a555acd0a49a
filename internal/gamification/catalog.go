package gamification

import "edu_analytics_backend/internal/model"

const (
	perfectPercentage = 100.0
	// speedLearnerSeconds 快速完成的时间上限（秒）
	speedLearnerSeconds = 120
	topicMasterLevel    = 10
	consistencyTarget   = 5
)

// catalog 固定的徽章目录，顺序即展示顺序
var catalog = []model.BadgeDefinition{
	{
		Type:        model.BadgeFirstQuiz,
		Name:        "Premier Quiz",
		Description: "Tu as terminé ton tout premier quiz.",
		Icon:        "🎯",
		Condition:   "Terminer un quiz",
		MaxProgress: 1,
	},
	{
		Type:        model.BadgePerfectScore,
		Name:        "Score Parfait",
		Description: "Tu as obtenu 100 % à un quiz.",
		Icon:        "💯",
		Condition:   "Obtenir 100 % à un quiz",
		MaxProgress: 1,
	},
	{
		Type:        model.BadgeSpeedLearner,
		Name:        "Apprenant Rapide",
		Description: "Tu as terminé un quiz en moins de deux minutes.",
		Icon:        "⚡",
		Condition:   "Terminer un quiz en moins de 2 minutes",
		MaxProgress: 1,
	},
	{
		Type:        model.BadgeTopicMaster,
		Name:        "Maître du Sujet",
		Description: "Tu as atteint le niveau maximal sur un sujet.",
		Icon:        "👑",
		Condition:   "Atteindre le niveau 10 sur un sujet",
		MaxProgress: 1,
	},
	{
		Type:        model.BadgeConsistency,
		Name:        "Régularité",
		Description: "Tu as terminé cinq quiz.",
		Icon:        "📅",
		Condition:   "Terminer 5 quiz",
		MaxProgress: 5,
	},
	{
		Type:        model.BadgeImprovement,
		Name:        "Progression",
		Description: "Tes niveaux ont progressé de trois points au total.",
		Icon:        "📈",
		Condition:   "Gagner 3 points de progression",
		MaxProgress: 3,
	},
}

// Catalog returns a copy of the badge catalog.
func Catalog() []model.BadgeDefinition {
	return append([]model.BadgeDefinition(nil), catalog...)
}

// Definition looks up a catalog entry by type.
func Definition(t model.BadgeType) (model.BadgeDefinition, bool) {
	for _, def := range catalog {
		if def.Type == t {
			return def, true
		}
	}
	return model.BadgeDefinition{}, false
}
