package middleware

import (
	"net/http"

	"sankofa/internal/logger"
	appErrors "sankofa/pkg/errors"
	"sankofa/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandler renders the last error a handler attached with c.Error as the
// standard failure envelope.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status := appErrors.StatusOf(err)
		if status >= http.StatusInternalServerError {
			logger.WithRequestID(GetRequestID(c)).Error("unhandled error",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
				zap.Error(err),
			)
		}

		utils.ErrorResponse(c, status, appErrors.MessageOf(err))
	}
}
