package repository

import (
	"context"
	"errors"

	"edu_analytics_backend/internal/model"

	"gorm.io/gorm"
)

// PreferenceRepository stores the preference blob opaquely.
type PreferenceRepository struct {
	DB *gorm.DB
}

func NewPreferenceRepository(db *gorm.DB) *PreferenceRepository {
	return &PreferenceRepository{DB: db}
}

// Get returns the stored blob, or "" when the student has none.
func (r *PreferenceRepository) Get(ctx context.Context, studentID string) (string, error) {
	var pref model.StudentPreference
	err := r.DB.WithContext(ctx).Where("student_id = ?", studentID).First(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return pref.Blob, nil
}

func (r *PreferenceRepository) Save(ctx context.Context, studentID, blob string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pref model.StudentPreference
		err := tx.Where("student_id = ?", studentID).First(&pref).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(&model.StudentPreference{StudentID: studentID, Blob: blob}).Error
		}
		if err != nil {
			return err
		}
		return tx.Model(&pref).Update("blob", blob).Error
	})
}
