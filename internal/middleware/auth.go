package middleware

import (
	"strings"

	"edu_analytics_backend/internal/util"
	"edu_analytics_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContextTokenKey holds the raw bearer token, forwarded to upstream.
const ContextTokenKey = "token"

// AuthMiddleware accepts tokens issued by the external auth service and puts
// the claims in the context.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if tokenString == "" {
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, secret)
		if err != nil {
			logger.Log.Debug("JWT解析错误", zap.Error(err))
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set(util.ContextStudentKey, claims)
		c.Set(ContextTokenKey, tokenString)
		c.Next()
	}
}

// StudentKey groups rate limiting by authenticated student, falling back to
// the client IP.
func StudentKey(c *gin.Context) string {
	if claims := util.GetStudentFromContext(c); claims != nil {
		return "student:" + claims.StudentID()
	}
	return "ip:" + c.ClientIP()
}
