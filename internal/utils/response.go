// internal/utils/response.go
package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/shopyangu/backend/internal/apperrors"
)

// Success bodies carry a message plus the affected resource under its own key,
// e.g. {"message": "Shop added successfully!", "shop": {...}}.

func OKResponse(c *gin.Context, body gin.H) {
	c.JSON(http.StatusOK, body)
}

func CreatedResponse(c *gin.Context, body gin.H) {
	c.JSON(http.StatusCreated, body)
}

// ListResponse writes a bare JSON array, matching the list-endpoint contract.
func ListResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// ErrorResponse is the single catch boundary for route handlers: classified
// errors map to their status with the message surfaced verbatim, anything
// else becomes a logged 500.
func ErrorResponse(c *gin.Context, err error) {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		body := gin.H{"message": appErr.Message}
		for k, v := range appErr.Details {
			body[k] = v
		}
		c.JSON(apperrors.StatusOf(appErr), body)
		return
	}

	logrus.WithError(err).WithFields(logrus.Fields{
		"method": c.Request.Method,
		"path":   c.Request.URL.Path,
	}).Error("Unhandled error")

	c.JSON(http.StatusInternalServerError, gin.H{
		"message": "An unexpected error occurred",
	})
}
