package controller

import (
	"context"
	"errors"

	"edu_analytics_backend/internal/model"
	"edu_analytics_backend/internal/service"
	"edu_analytics_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type QuestionValidator interface {
	Validate(ctx context.Context, studentID string, batch []model.GeneratedQuestion) (service.ValidationReport, error)
	Report(ctx context.Context, id string) (service.ValidationReport, error)
}

type ValidationController struct {
	ValidationService QuestionValidator
}

func NewValidationController(validationService QuestionValidator) *ValidationController {
	return &ValidationController{ValidationService: validationService}
}

type ValidateQuestionsRequest struct {
	Questions []model.GeneratedQuestion `json:"questions"`
}

// @Summary 校验生成的题目
// @Description 检测重复并评估结构质量，校验不通过同样返回 200
// @Tags 题目
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ValidateQuestionsRequest true "题目批次"
// @Success 200 {object} util.Response
// @Router /api/questions/validate [post]
func (c *ValidationController) Validate(ctx *gin.Context) {
	claims := util.GetStudentFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req ValidateQuestionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "invalid request body: "+err.Error())
		return
	}

	report, err := c.ValidationService.Validate(ctx.Request.Context(), claims.StudentID(), req.Questions)
	if errors.Is(err, util.ErrBatchTooLarge) {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, report)
}

// @Summary 获取归档的校验报告
// @Tags 题目
// @Produce json
// @Security BearerAuth
// @Param id path string true "报告ID"
// @Success 200 {object} util.Response
// @Router /api/questions/reports/{id} [get]
func (c *ValidationController) GetReport(ctx *gin.Context) {
	id := ctx.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		util.BadRequest(ctx, "invalid report id")
		return
	}

	report, err := c.ValidationService.Report(ctx.Request.Context(), id)
	switch {
	case errors.Is(err, util.ErrReportNotFound):
		util.NotFound(ctx)
		return
	case errors.Is(err, util.ErrStorageUnavailable):
		util.ServiceUnavailable(ctx, "report storage unavailable")
		return
	case err != nil:
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, report)
}
