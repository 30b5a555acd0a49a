package analytics

import (
	"fmt"

	"edu_analytics_backend/internal/model"
)

const (
	minDifficulty = 1
	maxDifficulty = 10

	// remediationImprovement 低于该提升幅度的薄弱主题仍需优先练习
	remediationImprovement = 10.0

	scheduleSplit = 60.0
)

type scoreBand struct {
	name       string
	difficulty int
	areas      []string
	tips       []string
	narrow     bool
}

var (
	foundationalBand = scoreBand{
		name:       "foundational",
		difficulty: 3,
		areas:      []string{"Notions fondamentales", "Révision des bases", "Exercices guidés"},
		tips: []string{
			"Chaque petit pas compte : concentre-toi sur les bases avant d'aller plus loin.",
			"Des séances courtes et régulières valent mieux qu'une longue séance isolée.",
		},
	}
	consolidationBand = scoreBand{
		name:       "consolidation",
		difficulty: 5,
		areas:      []string{"Consolidation des acquis", "Exercices d'application"},
		tips: []string{
			"Tu es sur la bonne voie : consolide tes acquis sur tes points faibles.",
			"Reprends les exercices manqués pour transformer tes erreurs en réussites.",
		},
		narrow: true,
	}
	advancedBand = scoreBand{
		name:       "advanced",
		difficulty: 7,
		areas:      []string{"Approfondissement", "Problèmes complexes"},
		tips: []string{
			"Excellent niveau ! Relève des défis plus difficiles pour continuer à progresser.",
			"Explique une notion à quelqu'un d'autre : c'est la meilleure façon de la maîtriser.",
		},
		narrow: true,
	}
)

var trendTips = map[model.Trend]string{
	model.TrendImproving: "Tes résultats progressent, garde ce rythme !",
	model.TrendDeclining: "Tes derniers résultats baissent : ralentis et reviens sur les notions clés.",
	model.TrendStable:    "Tes résultats sont stables, fixe-toi un nouvel objectif pour la semaine.",
}

// BuildRecommendations turns progress metrics into a complete recommendation
// set. Every slice in the result is non-empty.
func BuildRecommendations(m model.ProgressMetrics) model.PersonalizedRecommendations {
	band := selectBand(m.CurrentScore)

	areas := band.areas
	if band.narrow {
		if narrowed := priorityWeakAreas(m.WeakAreaProgress); len(narrowed) > 0 {
			areas = narrowed
		}
	}
	areas = append([]string(nil), areas...)

	difficulty := adjustDifficulty(band.difficulty, m.Trend)

	tips := append([]string(nil), band.tips...)
	if tip, ok := trendTips[m.Trend]; ok {
		tips = append(tips, tip)
	}

	return model.PersonalizedRecommendations{
		StudentID:          m.StudentID,
		Subject:            m.Subject,
		PriorityAreas:      areas,
		StudySchedule:      buildSchedule(m.CurrentScore, areas),
		AdaptiveDifficulty: difficulty,
		SpecificExercises:  buildExercises(areas, difficulty),
		MotivationTips:     tips,
	}
}

func selectBand(score float64) scoreBand {
	switch {
	case score < 50:
		return foundationalBand
	case score < 70:
		return consolidationBand
	default:
		return advancedBand
	}
}

func priorityWeakAreas(weak []model.WeakAreaProgress) []string {
	var areas []string
	for _, w := range weak {
		if w.Status == model.StatusDeclining || w.Improvement < remediationImprovement {
			areas = append(areas, w.Topic)
		}
	}
	return areas
}

func adjustDifficulty(base int, trend model.Trend) int {
	switch trend {
	case model.TrendImproving:
		return min(maxDifficulty, base+1)
	case model.TrendDeclining:
		return max(minDifficulty, base-1)
	default:
		return base
	}
}

func buildSchedule(score float64, areas []string) model.StudySchedule {
	schedule := model.StudySchedule{
		DailyTimeMinutes: 30,
		WeeklySessions:   3,
		FocusAreas:       append([]string(nil), areas...),
		RestDays:         []string{"Sunday"},
		PeakHours:        []string{"10:00-12:00", "16:00-18:00"},
	}
	if score < scheduleSplit {
		schedule.DailyTimeMinutes = 45
		schedule.WeeklySessions = 5
		schedule.PeakHours = []string{"09:00-11:00", "14:00-16:00"}
	}
	return schedule
}

func buildExercises(areas []string, difficulty int) []string {
	exercises := make([]string, 0, len(areas))
	for _, area := range areas {
		exercises = append(exercises, fmt.Sprintf("%s : série de 5 exercices (difficulté %d/10)", area, difficulty))
	}
	return exercises
}
