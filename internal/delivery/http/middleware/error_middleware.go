package middleware

import (
	"errors"
	"strings"

	"lunarai-web/internal/delivery/http/response"
	"lunarai-web/pkg/apperror"
	"lunarai-web/pkg/logger"

	"github.com/gin-gonic/gin"
)

// PageRenderer writes an error as an HTML page for browser requests outside /v1
type PageRenderer func(c *gin.Context, err *apperror.AppError)

// ErrorHandler renders errors attached with c.Error as the JSON envelope
func ErrorHandler() gin.HandlerFunc {
	return ErrorHandlerWithPages(nil)
}

// ErrorHandlerWithPages is ErrorHandler, except that requests preferring
// text/html outside the /v1 API are handed to pages when it is set.
func ErrorHandlerWithPages(pages PageRenderer) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Err != nil {
				logger.Log.Warn("request failed",
					"status", appErr.Code,
					"path", c.FullPath(),
					"request_id", response.RequestID(c),
					"error", appErr.Err,
				)
			}
		} else {
			// SECURITY: Never expose internal error details to clients
			logger.Log.Error("internal server error",
				"path", c.FullPath(),
				"request_id", response.RequestID(c),
				"error", err,
			)
			appErr = apperror.Internal(err)
			appErr.Message = "An unexpected error occurred. Please try again later."
		}

		if pages != nil && wantsPage(c) {
			pages(c, appErr)
			return
		}
		response.Error(c, appErr.Code, appErr.Message, appErr.Details)
	}
}

func wantsPage(c *gin.Context) bool {
	if strings.HasPrefix(c.Request.URL.Path, "/v1/") {
		return false
	}
	return c.NegotiateFormat(gin.MIMEJSON, gin.MIMEHTML) == gin.MIMEHTML
}

// abortWith attaches err for ErrorHandler and stops the chain
func abortWith(c *gin.Context, err *apperror.AppError) {
	_ = c.Error(err)
	c.Abort()
}
