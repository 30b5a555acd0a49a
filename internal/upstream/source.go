// Package upstream fetches activity snapshots from the learning API.
package upstream

import (
	"context"

	"edu_analytics_backend/internal/model"
)

// Query identifies a snapshot. Token is forwarded as the bearer credential.
type Query struct {
	StudentID string
	Subject   string
	Token     string
}

// Source is the fetch side of the transport collaborator.
type Source interface {
	FetchRecords(ctx context.Context, q Query) ([]model.ActivityRecord, error)
	FetchProgress(ctx context.Context, q Query) ([]model.TopicProgress, error)
}
