package validation

import (
	"strings"
	"unicode/utf8"

	"edu_analytics_backend/internal/model"
)

const (
	expectedOptions      = 4
	minQuestionLength    = 20
	minExplanationLength = 30
	minDifficulty        = 1
	maxDifficulty        = 10

	// MaxRubricScore is the score of a question passing every rule.
	MaxRubricScore = 10
)

// Rule is one weighted structural check of the quality rubric.
type Rule struct {
	Name    string
	Weight  int
	Check   func(q model.GeneratedQuestion) bool
	Message string
}

// rubric is evaluated in order; weights sum to MaxRubricScore.
var rubric = []Rule{
	{
		Name:    "question_length",
		Weight:  2,
		Check:   func(q model.GeneratedQuestion) bool { return utf8.RuneCountInString(q.Question) >= minQuestionLength },
		Message: "énoncé trop court (moins de 20 caractères)",
	},
	{
		Name:    "option_count",
		Weight:  2,
		Check:   func(q model.GeneratedQuestion) bool { return len(q.Options) == expectedOptions },
		Message: "nombre d'options différent de 4",
	},
	{
		Name:   "correct_index",
		Weight: 2,
		Check: func(q model.GeneratedQuestion) bool {
			return q.CorrectAnswerIndex >= 0 && q.CorrectAnswerIndex < expectedOptions
		},
		Message: "index de la bonne réponse invalide",
	},
	{
		Name:    "explanation_length",
		Weight:  2,
		Check:   func(q model.GeneratedQuestion) bool { return utf8.RuneCountInString(q.Explanation) >= minExplanationLength },
		Message: "explication trop courte (moins de 30 caractères)",
	},
	{
		Name:    "difficulty_range",
		Weight:  1,
		Check:   func(q model.GeneratedQuestion) bool { return q.Difficulty >= minDifficulty && q.Difficulty <= maxDifficulty },
		Message: "difficulté hors de l'intervalle 1-10",
	},
	{
		Name:    "learning_objective",
		Weight:  1,
		Check:   func(q model.GeneratedQuestion) bool { return strings.TrimSpace(q.LearningObjective) != "" },
		Message: "objectif pédagogique manquant",
	},
}

// Rubric returns a copy of the ordered rules.
func Rubric() []Rule {
	return append([]Rule(nil), rubric...)
}

// Score applies the rubric to one question and returns the score together
// with the names of the failed rules.
func Score(q model.GeneratedQuestion) (int, []string) {
	score := 0
	var failed []string
	for _, r := range rubric {
		if r.Check(q) {
			score += r.Weight
		} else {
			failed = append(failed, r.Message)
		}
	}
	return score, failed
}
