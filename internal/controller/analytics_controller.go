package controller

import (
	"context"

	"edu_analytics_backend/internal/model"
	"edu_analytics_backend/internal/upstream"

	"github.com/gin-gonic/gin"
)

type AnalyticsProvider interface {
	Progress(ctx context.Context, q upstream.Query, tier string) (model.ProgressMetrics, bool)
	Recommendations(ctx context.Context, q upstream.Query, tier string) (model.PersonalizedRecommendations, bool)
}

type AnalyticsController struct {
	AnalyticsService AnalyticsProvider
}

func NewAnalyticsController(analyticsService AnalyticsProvider) *AnalyticsController {
	return &AnalyticsController{AnalyticsService: analyticsService}
}

// @Summary 获取学习进度
// @Description 根据上游活动记录计算进度快照，上游不可用时返回降级数据
// @Tags 分析
// @Produce json
// @Security BearerAuth
// @Param subject query string false "学科"
// @Param tier query string false "水平 beginner|intermediate|advanced"
// @Success 200 {object} util.Response
// @Router /api/analytics/progress [get]
func (c *AnalyticsController) GetProgress(ctx *gin.Context) {
	q, ok := studentQuery(ctx)
	if !ok {
		return
	}

	metrics, degraded := c.AnalyticsService.Progress(ctx.Request.Context(), q, ctx.Query("tier"))
	respond(ctx, metrics, degraded)
}

// @Summary 获取个性化学习建议
// @Tags 分析
// @Produce json
// @Security BearerAuth
// @Param subject query string false "学科"
// @Param tier query string false "水平"
// @Success 200 {object} util.Response
// @Router /api/analytics/recommendations [get]
func (c *AnalyticsController) GetRecommendations(ctx *gin.Context) {
	q, ok := studentQuery(ctx)
	if !ok {
		return
	}

	rec, degraded := c.AnalyticsService.Recommendations(ctx.Request.Context(), q, ctx.Query("tier"))
	respond(ctx, rec, degraded)
}
