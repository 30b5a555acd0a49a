package service

import (
	"context"
	"errors"
	"io/fs"
	"sync"

	"edu_analytics_backend/internal/model"
	"edu_analytics_backend/internal/upstream"
)

type fakeSource struct {
	records     []model.ActivityRecord
	progress    []model.TopicProgress
	recordsErr  error
	progressErr error
	queries     []upstream.Query
}

func (f *fakeSource) FetchRecords(_ context.Context, q upstream.Query) ([]model.ActivityRecord, error) {
	f.queries = append(f.queries, q)
	return f.records, f.recordsErr
}

func (f *fakeSource) FetchProgress(_ context.Context, q upstream.Query) ([]model.TopicProgress, error) {
	f.queries = append(f.queries, q)
	return f.progress, f.progressErr
}

type fakeBadgeStore struct {
	mu      sync.Mutex
	badges  []model.Badge
	findErr error
	saveErr error
	creates int
}

func (f *fakeBadgeStore) FindByStudentID(_ context.Context, studentID string) ([]model.Badge, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	var out []model.Badge
	for _, b := range f.badges {
		if b.StudentID == studentID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBadgeStore) CreateIfAbsent(_ context.Context, badge *model.Badge) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return false, f.saveErr
	}
	for _, b := range f.badges {
		if b.StudentID == badge.StudentID && b.BadgeType == badge.BadgeType {
			*badge = b
			return false, nil
		}
	}
	f.creates++
	f.badges = append(f.badges, *badge)
	return true, nil
}

type memoryReports struct {
	mu     sync.Mutex
	data   map[string][]byte
	putErr error
}

func newMemoryReports() *memoryReports {
	return &memoryReports{data: map[string][]byte{}}
}

func (m *memoryReports) Put(_ context.Context, name string, body []byte, _ string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.putErr != nil {
		return "", m.putErr
	}
	m.data[name] = body
	return "/uploads/" + name, nil
}

func (m *memoryReports) Read(_ context.Context, name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data[name]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return b, nil
}

type memoryPreferences struct {
	blobs  map[string]string
	getErr error
}

func (m *memoryPreferences) Get(_ context.Context, studentID string) (string, error) {
	if m.getErr != nil {
		return "", m.getErr
	}
	return m.blobs[studentID], nil
}

func (m *memoryPreferences) Save(_ context.Context, studentID, blob string) error {
	if m.blobs == nil {
		m.blobs = map[string]string{}
	}
	m.blobs[studentID] = blob
	return nil
}

var errUpstream = errors.New("dial tcp: connection refused")
