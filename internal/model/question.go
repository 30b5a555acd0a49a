package model

// GeneratedQuestion is a multiple-choice question produced by the external
// generator. It is validated, never mutated.
type GeneratedQuestion struct {
	Question           string   `json:"question" yaml:"question"`
	Options            []string `json:"options" yaml:"options"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex" yaml:"correctAnswerIndex"`
	Explanation        string   `json:"explanation" yaml:"explanation"`
	Difficulty         int      `json:"difficulty" yaml:"difficulty"`
	Topic              string   `json:"topic" yaml:"topic"`
	LearningObjective  string   `json:"learningObjective" yaml:"learningObjective"`
}

// QuestionValidationResult 题目批次的校验结果
type QuestionValidationResult struct {
	IsValid        bool     `json:"isValid"`
	Duplicates     []string `json:"duplicates"`
	QualityScore   int      `json:"qualityScore"`
	Suggestions    []string `json:"suggestions"`
	Warnings       []string `json:"warnings"`
	QuestionScores []int    `json:"questionScores"`
}
