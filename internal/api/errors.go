package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"notodo/internal/service"
)

var statusByKind = map[service.Kind]int{
	service.KindValidation:  http.StatusBadRequest,
	service.KindAuth:        http.StatusUnauthorized,
	service.KindNotFound:    http.StatusNotFound,
	service.KindConflict:    http.StatusConflict,
	service.KindUnavailable: http.StatusServiceUnavailable,
	service.KindInternal:    http.StatusInternalServerError,
}

// StatusFor maps a service error to its HTTP status.
func StatusFor(err error) int {
	return statusByKind[service.KindOf(err)]
}

// fail writes err as {"message": ...}. Internal causes are logged, never sent.
func (h *Handlers) fail(c *gin.Context, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "path", c.FullPath(), "error", err)
	}
	c.Error(err)
	c.AbortWithStatusJSON(status, gin.H{"message": service.Message(err)})
}

// bind decodes the JSON body into dest, answering 400 when it is malformed.
func (h *Handlers) bind(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return false
	}
	return true
}
