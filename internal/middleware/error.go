package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	apperrors "github.com/agendaclinic/scheduling-api/pkg/errors"
)

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Code    int                    `json:"code"`
	Message string                 `json:"message"`
	Fields  []apperrors.FieldError `json:"fields,omitempty"`
	TraceID string                 `json:"trace_id,omitempty"`
}

// ErrorHandler translates service failures attached to the gin context into
// HTTP responses. Persistence details are never exposed to the caller.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		requestID := c.GetString(ContextRequestID)

		for _, e := range c.Errors {
			log.Error().
				Err(e.Err).
				Str("request_id", requestID).
				Str("path", c.Request.URL.Path).
				Str("method", c.Request.Method).
				Msg("request error")
		}

		lastErr := c.Errors.Last()
		status := http.StatusInternalServerError
		message := lastErr.Error()
		var fields []apperrors.FieldError

		if appErr, ok := apperrors.AsAppError(lastErr.Err); ok {
			status = appErr.StatusCode()
			message = appErr.Message
			fields = appErr.Fields
		} else if status == http.StatusInternalServerError {
			message = "internal error"
		}

		c.JSON(status, ErrorResponse{
			Code:    status,
			Message: message,
			Fields:  fields,
			TraceID: requestID,
		})
	}
}
