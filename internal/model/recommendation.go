package model

// PersonalizedRecommendations 个性化学习建议
type PersonalizedRecommendations struct {
	StudentID          string        `json:"studentId"`
	Subject            string        `json:"subject"`
	PriorityAreas      []string      `json:"priorityAreas"`
	StudySchedule      StudySchedule `json:"studySchedule"`
	AdaptiveDifficulty int           `json:"adaptiveDifficulty"`
	SpecificExercises  []string      `json:"specificExercises"`
	MotivationTips     []string      `json:"motivationTips"`
}

type StudySchedule struct {
	DailyTimeMinutes int      `json:"dailyTimeMinutes"`
	WeeklySessions   int      `json:"weeklySessions"`
	FocusAreas       []string `json:"focusAreas"`
	RestDays         []string `json:"restDays"`
	PeakHours        []string `json:"peakHours"`
}
