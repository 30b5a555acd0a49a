package model

type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// Preferences is the per-student preference blob.
type Preferences struct {
	ShowNotifications bool  `json:"showNotifications"`
	SoundEnabled      bool  `json:"soundEnabled"`
	Theme             Theme `json:"theme"`
}

// StudentPreference stores the blob opaquely, one row per student.
type StudentPreference struct {
	BaseModel
	StudentID string `gorm:"size:64;not null;uniqueIndex" json:"studentId"`
	Blob      string `gorm:"type:text" json:"blob"`
}

func (StudentPreference) TableName() string {
	return "student_preferences"
}
