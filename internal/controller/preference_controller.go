package controller

import (
	"context"
	"errors"
	"io"

	"edu_analytics_backend/internal/model"
	"edu_analytics_backend/internal/util"

	"github.com/gin-gonic/gin"
)

const maxPreferenceBody = 4 << 10

type PreferenceManager interface {
	Get(ctx context.Context, studentID string) (model.Preferences, bool)
	Update(ctx context.Context, studentID string, raw []byte) (model.Preferences, error)
}

type PreferenceController struct {
	PreferenceService PreferenceManager
}

func NewPreferenceController(preferenceService PreferenceManager) *PreferenceController {
	return &PreferenceController{PreferenceService: preferenceService}
}

// @Summary 获取偏好设置
// @Tags 偏好
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/preferences [get]
func (c *PreferenceController) Get(ctx *gin.Context) {
	claims := util.GetStudentFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	prefs, degraded := c.PreferenceService.Get(ctx.Request.Context(), claims.StudentID())
	respond(ctx, prefs, degraded)
}

// @Summary 更新偏好设置
// @Description 支持部分更新
// @Tags 偏好
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/preferences [put]
func (c *PreferenceController) Update(ctx *gin.Context) {
	claims := util.GetStudentFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	raw, err := io.ReadAll(io.LimitReader(ctx.Request.Body, maxPreferenceBody))
	if err != nil {
		util.BadRequest(ctx, "invalid request body")
		return
	}

	prefs, err := c.PreferenceService.Update(ctx.Request.Context(), claims.StudentID(), raw)
	if errors.Is(err, util.ErrInvalidPreferences) {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, prefs)
}
