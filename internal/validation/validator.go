package validation

import (
	"fmt"
	"math"

	"edu_analytics_backend/internal/model"
)

const (
	// ValidScore is the minimum batch score of a valid set.
	ValidScore = 7

	improveBelow = 8
	optionsBelow = 6
)

// DuplicateKey identifies a question within a batch.
func DuplicateKey(q model.GeneratedQuestion) string {
	topic := q.Topic
	if topic == "" {
		topic = model.DefaultTopic
	}
	return q.Question + "-" + topic
}

// Validate checks a generated batch for duplicates and structural quality.
// Every repeated occurrence after the first is listed in Duplicates.
func Validate(batch []model.GeneratedQuestion) model.QuestionValidationResult {
	result := model.QuestionValidationResult{
		Duplicates:     []string{},
		Suggestions:    []string{},
		Warnings:       []string{},
		QuestionScores: make([]int, 0, len(batch)),
	}
	if len(batch) == 0 {
		result.Warnings = append(result.Warnings, "Le lot de questions est vide.")
		result.Suggestions = append(result.Suggestions, "Générer au moins une question avant validation.")
		return result
	}

	seen := make(map[string]struct{}, len(batch))
	total := 0
	for i, q := range batch {
		key := DuplicateKey(q)
		if _, ok := seen[key]; ok {
			result.Duplicates = append(result.Duplicates, key)
		}
		seen[key] = struct{}{}

		score, failed := Score(q)
		total += score
		result.QuestionScores = append(result.QuestionScores, score)
		for _, msg := range failed {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Question %d : %s", i+1, msg))
		}
	}

	result.QualityScore = int(math.Round(float64(total) / float64(len(batch))))

	if n := len(result.Duplicates); n > 0 {
		result.Suggestions = append(result.Suggestions,
			fmt.Sprintf("%d question(s) en double détectée(s) : reformuler ou remplacer les doublons.", n))
	}
	if result.QualityScore < improveBelow {
		result.Suggestions = append(result.Suggestions,
			"Améliorer la longueur des énoncés et la qualité des explications.")
	}
	if result.QualityScore < optionsBelow {
		result.Suggestions = append(result.Suggestions,
			"Vérifier que chaque question propose 4 options avec une bonne réponse valide.")
	}

	result.IsValid = len(result.Duplicates) == 0 && result.QualityScore >= ValidScore
	return result
}
