package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
)

// errorResponse is the uniform envelope every failure is translated into.
type errorResponse struct {
	ErrorHandler bool   `json:"errorHandler"`
	Message      string `json:"message"`
}

// HTTPErrorHandler translates any error escaping a handler into the uniform
// status-coded envelope. Errors without a status become 500s and are logged.
func HTTPErrorHandler(logger *log.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		code := http.StatusInternalServerError
		message := err.Error()
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			if m, ok := he.Message.(string); ok {
				message = m
			} else {
				message = fmt.Sprintf("%v", he.Message)
			}
		}
		if code >= http.StatusInternalServerError {
			logger.WithError(err).Error("request failed")
		}
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		if writeErr := c.JSON(code, errorResponse{ErrorHandler: true, Message: message}); writeErr != nil {
			logger.WithError(writeErr).Error("writing error response")
		}
	}
}
