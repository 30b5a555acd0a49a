package controller

import (
	"context"

	"edu_analytics_backend/internal/service"
	"edu_analytics_backend/internal/upstream"

	"github.com/gin-gonic/gin"
)

type GamificationProvider interface {
	Summary(ctx context.Context, q upstream.Query) service.GamificationSummary
}

type GamificationController struct {
	GamificationService GamificationProvider
}

func NewGamificationController(gamificationService GamificationProvider) *GamificationController {
	return &GamificationController{GamificationService: gamificationService}
}

func (c *GamificationController) summary(ctx *gin.Context) (service.GamificationSummary, bool) {
	q, ok := studentQuery(ctx)
	if !ok {
		return service.GamificationSummary{}, false
	}
	return c.GamificationService.Summary(ctx.Request.Context(), q), true
}

// @Summary 获取徽章进度
// @Description 新达成的徽章会在此时记录
// @Tags 激励
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/gamification/badges [get]
func (c *GamificationController) GetBadges(ctx *gin.Context) {
	s, ok := c.summary(ctx)
	if !ok {
		return
	}
	respond(ctx, s.Badges, s.Degraded)
}

// @Summary 获取已解锁成就
// @Tags 激励
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/gamification/achievements [get]
func (c *GamificationController) GetAchievements(ctx *gin.Context) {
	s, ok := c.summary(ctx)
	if !ok {
		return
	}
	respond(ctx, s.Achievements, s.Degraded)
}

// @Summary 获取等级
// @Tags 激励
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/gamification/level [get]
func (c *GamificationController) GetLevel(ctx *gin.Context) {
	s, ok := c.summary(ctx)
	if !ok {
		return
	}
	respond(ctx, s.Level, s.Degraded)
}

// @Summary 获取激励概览
// @Tags 激励
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/gamification/summary [get]
func (c *GamificationController) GetSummary(ctx *gin.Context) {
	s, ok := c.summary(ctx)
	if !ok {
		return
	}
	respond(ctx, s, s.Degraded)
}
