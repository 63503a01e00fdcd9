package middleware

import (
	"errors"
	"net/http"

	"matchmakr-backend/internal/delivery/http/response"
	"matchmakr-backend/pkg/apperror"
	"matchmakr-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// fieldErrors is the error payload of a validation failure
type fieldErrors struct {
	Fields []apperror.FieldError `json:"fields"`
}

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code < http.StatusInternalServerError {
			var detail interface{}
			if len(appErr.Fields) > 0 {
				detail = fieldErrors{Fields: appErr.Fields}
			}
			response.Error(c, appErr.Code, appErr.Message, detail)
			return
		}

		// Never expose internal error details to clients
		logger.Log.Error("Internal Server Error",
			"error", err,
			"method", c.Request.Method,
			"path", c.FullPath(),
			"request_id", c.GetString("RequestID"),
		)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
	}
}
