package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"edu_analytics_backend/internal/middleware"
	"edu_analytics_backend/internal/model"
	"edu_analytics_backend/internal/service"
	"edu_analytics_backend/internal/upstream"
	"edu_analytics_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAnalytics struct {
	degraded bool
	lastQ    upstream.Query
	lastTier string
}

func (s *stubAnalytics) Progress(_ context.Context, q upstream.Query, tier string) (model.ProgressMetrics, bool) {
	s.lastQ, s.lastTier = q, tier
	return model.ProgressMetrics{StudentID: q.StudentID, Subject: q.Subject, CurrentScore: 72}, s.degraded
}

func (s *stubAnalytics) Recommendations(_ context.Context, q upstream.Query, tier string) (model.PersonalizedRecommendations, bool) {
	s.lastQ, s.lastTier = q, tier
	return model.PersonalizedRecommendations{StudentID: q.StudentID, AdaptiveDifficulty: 3}, s.degraded
}

type stubGamification struct{ summary service.GamificationSummary }

func (s *stubGamification) Summary(context.Context, upstream.Query) service.GamificationSummary {
	return s.summary
}

type stubValidator struct {
	reports map[string]service.ValidationReport
	err     error
}

func (s *stubValidator) Validate(_ context.Context, studentID string, batch []model.GeneratedQuestion) (service.ValidationReport, error) {
	if s.err != nil {
		return service.ValidationReport{}, s.err
	}
	return service.ValidationReport{ID: "r-1", StudentID: studentID, QuestionCount: len(batch)}, nil
}

func (s *stubValidator) Report(_ context.Context, id string) (service.ValidationReport, error) {
	if s.err != nil {
		return service.ValidationReport{}, s.err
	}
	r, ok := s.reports[id]
	if !ok {
		return service.ValidationReport{}, util.ErrReportNotFound
	}
	return r, nil
}

type stubPreferences struct {
	prefs model.Preferences
}

func (s *stubPreferences) Get(context.Context, string) (model.Preferences, bool) {
	return s.prefs, false
}

func (s *stubPreferences) Update(_ context.Context, _ string, raw []byte) (model.Preferences, error) {
	if !json.Valid(raw) {
		return model.Preferences{}, util.ErrInvalidPreferences
	}
	if err := json.Unmarshal(raw, &s.prefs); err != nil {
		return model.Preferences{}, fmt.Errorf("%w: %v", util.ErrInvalidPreferences, err)
	}
	return s.prefs, nil
}

// withStudent 模拟鉴权中间件写入的上下文
func withStudent(id string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(util.ContextStudentKey, &util.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: id}})
		c.Set(middleware.ContextTokenKey, "tok-"+id)
		c.Next()
	}
}

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestGetProgressForwardsQuery(t *testing.T) {
	stub := &stubAnalytics{}
	r := newEngine()
	r.GET("/progress", withStudent("s-1"), NewAnalyticsController(stub).GetProgress)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/progress?subject=maths&tier=advanced", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "false", w.Header().Get(DegradedHeader))
	assert.Equal(t, upstream.Query{StudentID: "s-1", Subject: "maths", Token: "tok-s-1"}, stub.lastQ)
	assert.Equal(t, "advanced", stub.lastTier)

	data := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, false, data["degraded"])
	assert.Equal(t, float64(72), data["result"].(map[string]interface{})["currentScore"])
}

func TestGetRecommendationsDegraded(t *testing.T) {
	r := newEngine()
	r.GET("/rec", withStudent("s-1"), NewAnalyticsController(&stubAnalytics{degraded: true}).GetRecommendations)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rec", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "true", w.Header().Get(DegradedHeader))
	assert.Equal(t, true, decode(t, w)["data"].(map[string]interface{})["degraded"])
}

func TestAnalyticsRequiresStudent(t *testing.T) {
	r := newEngine()
	r.GET("/progress", NewAnalyticsController(&stubAnalytics{}).GetProgress)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/progress", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGamificationViews(t *testing.T) {
	stub := &stubGamification{summary: service.GamificationSummary{
		Badges:       []model.BadgeProgress{{BadgeDefinition: model.BadgeDefinition{Type: model.BadgeFirstQuiz}, IsEarned: true}},
		Achievements: []model.Achievement{},
		Level:        model.GamificationLevel{Level: 1, Title: "Débutant"},
	}}
	ctrl := NewGamificationController(stub)
	r := newEngine()
	g := r.Group("/g", withStudent("s-1"))
	g.GET("/badges", ctrl.GetBadges)
	g.GET("/achievements", ctrl.GetAchievements)
	g.GET("/level", ctrl.GetLevel)
	g.GET("/summary", ctrl.GetSummary)

	for _, path := range []string{"/g/badges", "/g/achievements", "/g/level", "/g/summary"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/g/level", nil))
	result := decode(t, w)["data"].(map[string]interface{})["result"].(map[string]interface{})
	assert.Equal(t, "Débutant", result["title"])
}

func TestValidateQuestions(t *testing.T) {
	r := newEngine()
	r.POST("/validate", withStudent("s-9"), NewValidationController(&stubValidator{}).Validate)

	body := `{"questions":[{"question":"Combien font 2+2 ?","options":["1","2","3","4"],"correctAnswerIndex":3}]}`
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/validate", bytes.NewBufferString(body)))

	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "s-9", data["studentId"])
	assert.Equal(t, float64(1), data["questionCount"])
}

func TestValidateRejectsBadInput(t *testing.T) {
	r := newEngine()
	r.POST("/validate", withStudent("s-9"), NewValidationController(&stubValidator{}).Validate)
	r.POST("/too-large", withStudent("s-9"), NewValidationController(&stubValidator{err: util.ErrBatchTooLarge}).Validate)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/validate", bytes.NewBufferString("{")))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/too-large", bytes.NewBufferString(`{"questions":[]}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetReport(t *testing.T) {
	id := uuid.NewString()
	stub := &stubValidator{reports: map[string]service.ValidationReport{id: {ID: id, QuestionCount: 4}}}
	r := newEngine()
	r.GET("/reports/:id", NewValidationController(stub).GetReport)
	r.GET("/offline/:id", NewValidationController(&stubValidator{err: util.ErrStorageUnavailable}).GetReport)

	cases := []struct {
		path string
		code int
	}{
		{"/reports/" + id, http.StatusOK},
		{"/reports/" + uuid.NewString(), http.StatusNotFound},
		{"/reports/not-a-uuid", http.StatusBadRequest},
		{"/offline/" + id, http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))
		assert.Equal(t, tc.code, w.Code, tc.path)
	}
}

func TestPreferences(t *testing.T) {
	stub := &stubPreferences{prefs: model.Preferences{ShowNotifications: true, SoundEnabled: true, Theme: model.ThemeSystem}}
	ctrl := NewPreferenceController(stub)
	r := newEngine()
	r.GET("/prefs", withStudent("s-1"), ctrl.Get)
	r.PUT("/prefs", withStudent("s-1"), ctrl.Update)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/prefs", bytes.NewBufferString(`{"theme":"dark"}`)))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "dark", decode(t, w)["data"].(map[string]interface{})["theme"])

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/prefs", bytes.NewBufferString(`not json`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/prefs", nil))
	require.Equal(t, http.StatusOK, w.Code)
	result := decode(t, w)["data"].(map[string]interface{})["result"].(map[string]interface{})
	assert.Equal(t, "dark", result["theme"])
}
