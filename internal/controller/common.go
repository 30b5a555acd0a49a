package controller

import (
	"strconv"

	"edu_analytics_backend/internal/middleware"
	"edu_analytics_backend/internal/upstream"
	"edu_analytics_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// DegradedHeader is set on responses built from fallback defaults.
const DegradedHeader = "X-Analytics-Degraded"

// studentQuery builds the upstream query for the authenticated student. It
// writes the 401 response itself when the context carries no claims.
func studentQuery(ctx *gin.Context) (upstream.Query, bool) {
	claims := util.GetStudentFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return upstream.Query{}, false
	}
	return upstream.Query{
		StudentID: claims.StudentID(),
		Subject:   ctx.Query("subject"),
		Token:     ctx.GetString(middleware.ContextTokenKey),
	}, true
}

func respond(ctx *gin.Context, data interface{}, degraded bool) {
	ctx.Header(DegradedHeader, strconv.FormatBool(degraded))
	util.SuccessDegraded(ctx, data, degraded)
}
