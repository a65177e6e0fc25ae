package middleware

import (
	"errors"
	"net/http"

	"candidate-pipeline-backend/internal/delivery/http/response"
	"candidate-pipeline-backend/pkg/apperror"
	"candidate-pipeline-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler translates errors appended to the gin context into the JSON
// envelope. Domain errors keep their status and message; anything else is
// logged server-side and surfaced as a generic 500 so internals never leak.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Err != nil {
				logger.With("http").Error("request failed",
					"path", c.Request.URL.Path, "status", appErr.Code, "error", appErr.Err)
			}
			response.Error(c, appErr.Code, appErr.Message, nil)
			return
		}

		logger.With("http").Error("unhandled error", "path", c.Request.URL.Path, "error", err)
		response.Error(c, http.StatusInternalServerError,
			"An unexpected error occurred. Please try again later.", nil)
	}
}
