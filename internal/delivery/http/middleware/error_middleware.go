package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"jobboard-backend/internal/delivery/http/response"
	"jobboard-backend/pkg/apperror"
	"jobboard-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler maps errors attached to the context onto the standard JSON
// envelope. Unclassified errors are logged server-side and replaced with a
// generic message so internal detail never reaches the client.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Code == http.StatusInternalServerError {
				log(c).Error("internal error", "error", appErr.Err)
			}
			response.Error(c, appErr.Code, appErr.Message, nil)
			return
		}

		log(c).Error("unhandled error", "error", err)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
	}
}

func log(c *gin.Context) *slog.Logger {
	l := logger.Log
	if l == nil {
		l = slog.Default()
	}
	if reqID := c.GetString("RequestID"); reqID != "" {
		l = l.With("request_id", reqID)
	}
	return l
}
