package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/khrees2412/cvforge/internal/app"
)

// errorStatus maps an error to its HTTP status code
func errorStatus(err error) int {
	switch app.Classify(err) {
	case app.ErrValidation:
		return http.StatusBadRequest
	case app.ErrNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes {error, details?}. details carries the error chain in development only.
func (s *Server) respondError(c *gin.Context, err error) {
	status := errorStatus(err)
	body := gin.H{"error": publicMessage(err)}
	if s.dev && status == http.StatusInternalServerError {
		body["details"] = err.Error()
	}

	s.log.Warn("request failed",
		"request_id", c.GetString(requestIDKey),
		"path", c.Request.URL.Path,
		"status", status,
		"error", err,
	)
	c.AbortWithStatusJSON(status, body)
}

// publicMessage strips internal wrapping from client-facing messages
func publicMessage(err error) string {
	switch app.Classify(err) {
	case app.ErrValidation:
		return strings.TrimPrefix(err.Error(), app.ErrValidation.Error()+": ")
	case app.ErrNotFound:
		return "Template not found"
	case app.ErrConfiguration:
		return "Server is not configured for job search"
	case app.ErrProvider:
		return "Failed to fetch jobs from Jooble"
	default:
		return "Internal server error"
	}
}

func ok(c *gin.Context, payload gin.H) {
	payload["success"] = true
	c.JSON(http.StatusOK, payload)
}
