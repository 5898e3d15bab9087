package transport

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dowdarts/spectators-videochat/internal/errors"
	"github.com/dowdarts/spectators-videochat/spectators"
)

var statusByCode = map[errors.Code]int{
	spectators.ErrInvalidCredential:  http.StatusUnauthorized,
	spectators.ErrRoomNotFound:       http.StatusNotFound,
	spectators.ErrSessionNotFound:    http.StatusNotFound,
	spectators.ErrInvalidState:       http.StatusConflict,
	spectators.ErrBackendUnavailable: http.StatusServiceUnavailable,
	spectators.ErrPersistence:        http.StatusInternalServerError,
}

// statusOf maps a service error to its HTTP status and public message.
func statusOf(err error) (int, string) {
	code, ok := errors.CodeOf(err)
	if !ok {
		return http.StatusInternalServerError, "internal error"
	}
	if status, ok := statusByCode[code]; ok {
		return status, string(code)
	}
	return http.StatusInternalServerError, string(code)
}

func abortWithError(c *gin.Context, err error) {
	status, message := statusOf(err)
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"error":   message,
	})
}
