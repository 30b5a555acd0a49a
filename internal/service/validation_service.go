package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"time"

	"edu_analytics_backend/internal/model"
	"edu_analytics_backend/internal/util"
	"edu_analytics_backend/internal/validation"
	"edu_analytics_backend/pkg/monitoring"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReportStore archives validation reports.
type ReportStore interface {
	Put(ctx context.Context, name string, body []byte, contentType string) (string, error)
	Read(ctx context.Context, name string) ([]byte, error)
}

// ValidationReport is the archived form of one validation call.
type ValidationReport struct {
	ID            string                         `json:"id"`
	StudentID     string                         `json:"studentId"`
	CreatedAt     time.Time                      `json:"createdAt"`
	QuestionCount int                            `json:"questionCount"`
	Result        model.QuestionValidationResult `json:"result"`
	ReportURL     string                         `json:"reportUrl,omitempty"`
}

type ValidationService struct {
	Store ReportStore
	Log   *zap.Logger
	Now   func() time.Time
}

func NewValidationService(store ReportStore, log *zap.Logger) *ValidationService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ValidationService{Store: store, Log: log, Now: time.Now}
}

func reportName(id string) string {
	return fmt.Sprintf("%s/%s.json", util.ReportPrefix, id)
}

// Validate scores the batch and archives the report. An archive failure is
// logged and leaves ReportURL empty; it never changes the verdict.
func (s *ValidationService) Validate(ctx context.Context, studentID string, batch []model.GeneratedQuestion) (ValidationReport, error) {
	if len(batch) > util.MaxQuestionsBatch {
		return ValidationReport{}, fmt.Errorf("%w: %d questions (max %d)", util.ErrBatchTooLarge, len(batch), util.MaxQuestionsBatch)
	}

	result := validation.Validate(batch)
	monitoring.ValidationResults.WithLabelValues(strconv.FormatBool(result.IsValid)).Inc()

	report := ValidationReport{
		ID:            uuid.NewString(),
		StudentID:     studentID,
		CreatedAt:     s.Now().UTC(),
		QuestionCount: len(batch),
		Result:        result,
	}

	if s.Store == nil {
		return report, nil
	}
	body, err := json.Marshal(report)
	if err != nil {
		return report, err
	}
	url, err := s.Store.Put(ctx, reportName(report.ID), body, util.MimeJSON)
	if err != nil {
		s.Log.Warn("failed to archive validation report",
			zap.String("report_id", report.ID),
			zap.Error(err))
		return report, nil
	}
	report.ReportURL = url
	return report, nil
}

// Report loads an archived report.
func (s *ValidationService) Report(ctx context.Context, id string) (ValidationReport, error) {
	if s.Store == nil {
		return ValidationReport{}, util.ErrStorageUnavailable
	}
	body, err := s.Store.Read(ctx, reportName(id))
	if errors.Is(err, fs.ErrNotExist) {
		return ValidationReport{}, util.ErrReportNotFound
	}
	if err != nil {
		return ValidationReport{}, fmt.Errorf("%w: %v", util.ErrStorageUnavailable, err)
	}

	var report ValidationReport
	if err := json.Unmarshal(body, &report); err != nil {
		return ValidationReport{}, fmt.Errorf("decode report %s: %w", id, err)
	}
	return report, nil
}
