package service

import (
	"context"
	"encoding/json"
	"fmt"

	"edu_analytics_backend/internal/fallback"
	"edu_analytics_backend/internal/model"
	"edu_analytics_backend/internal/schema"
	"edu_analytics_backend/internal/util"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// PreferenceStore holds one opaque blob per student.
type PreferenceStore interface {
	Get(ctx context.Context, studentID string) (string, error)
	Save(ctx context.Context, studentID, blob string) error
}

type PreferenceService struct {
	Store    PreferenceStore
	Fallback *fallback.Orchestrator

	shape *jsonschema.Schema
}

func NewPreferenceService(store PreferenceStore, fb *fallback.Orchestrator) *PreferenceService {
	return &PreferenceService{
		Store:    store,
		Fallback: fb,
		shape:    schema.MustCompile("preferences", schema.Preferences),
	}
}

// Get returns the stored preferences merged over the defaults. The bool
// reports whether the defaults replaced an unreadable blob.
func (s *PreferenceService) Get(ctx context.Context, studentID string) (model.Preferences, bool) {
	blob, err := s.Store.Get(ctx, studentID)
	var prefs *model.Preferences
	if err == nil && blob != "" {
		prefs, err = s.decode([]byte(blob), fallback.DefaultPreferences())
	}
	return s.Fallback.Preferences(studentID, prefs, err)
}

// Update applies a partial update and stores the result.
func (s *PreferenceService) Update(ctx context.Context, studentID string, raw []byte) (model.Preferences, error) {
	current, _ := s.Get(ctx, studentID)
	prefs, err := s.decode(raw, current)
	if err != nil {
		return model.Preferences{}, err
	}

	blob, err := json.Marshal(prefs)
	if err != nil {
		return model.Preferences{}, err
	}
	if err := s.Store.Save(ctx, studentID, string(blob)); err != nil {
		return model.Preferences{}, err
	}
	return *prefs, nil
}

func (s *PreferenceService) decode(raw []byte, base model.Preferences) (*model.Preferences, error) {
	if err := schema.ValidateJSON(s.shape, raw); err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrInvalidPreferences, err)
	}
	prefs := base
	if err := json.Unmarshal(raw, &prefs); err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrInvalidPreferences, err)
	}
	return &prefs, nil
}
