package repository

import (
	"context"

	"edu_analytics_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BadgeRepository is the earned-badge ledger. Rows are only ever inserted.
type BadgeRepository struct {
	DB *gorm.DB
}

func NewBadgeRepository(db *gorm.DB) *BadgeRepository {
	return &BadgeRepository{DB: db}
}

func (r *BadgeRepository) FindByStudentID(ctx context.Context, studentID string) ([]model.Badge, error) {
	badges := []model.Badge{}
	err := r.DB.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("earned_at asc").
		Find(&badges).Error
	if err != nil {
		return nil, err
	}
	return badges, nil
}

// CreateIfAbsent inserts badge unless the student already holds that badge
// type. It reports whether a row was inserted; otherwise badge is replaced by
// the stored record.
func (r *BadgeRepository) CreateIfAbsent(ctx context.Context, badge *model.Badge) (bool, error) {
	db := r.DB.WithContext(ctx)
	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}, {Name: "badge_type"}},
		DoNothing: true,
	}).Create(badge)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected > 0 {
		return true, nil
	}

	// 唯一索引冲突，读取已有记录
	var existing model.Badge
	err := db.Where("student_id = ? AND badge_type = ?", badge.StudentID, badge.BadgeType).First(&existing).Error
	if err != nil {
		return false, err
	}
	*badge = existing
	return false, nil
}
