package middleware

import (
	"errors"
	"net/http"

	"go-matching-backend/internal/delivery/http/response"
	"go-matching-backend/internal/domain"
	"go-matching-backend/pkg/apperror"
	"go-matching-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			// Never expose internal error details to clients.
			logger.Log.Errorw("Internal server error",
				"error", err,
				"path", c.FullPath(),
				"request_id", c.GetString(string(domain.KeyRequestID)),
			)
			response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
			return
		}

		if appErr.Code >= http.StatusInternalServerError {
			logger.Log.Warnw("Request failed",
				"status", appErr.Code,
				"message", appErr.Message,
				"error", appErr.Err,
				"path", c.FullPath(),
				"request_id", c.GetString(string(domain.KeyRequestID)),
			)
		}

		var detail interface{}
		if apperror.IsRetryable(appErr) {
			detail = gin.H{"retryable": true}
		}
		response.Error(c, appErr.Code, appErr.Message, detail)
	}
}
