package transport

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dowdarts/spectators-videochat/internal/jwt"
	"github.com/dowdarts/spectators-videochat/internal/log"
	"github.com/dowdarts/spectators-videochat/internal/validation"
)

const (
	ctxKeySession = "session"

	accessTokenQuery = "access_token"
)

func bearerToken(req *http.Request) string {
	if h := req.Header.Get("Authorization"); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return token
		}
		return h
	}
	// browsers cannot set headers on websocket upgrades
	return req.URL.Query().Get(accessTokenQuery)
}

// verifySession checks that token was issued for sessionID. On refusal it
// returns the HTTP status and public message to answer with.
func (r *Router) verifySession(sessionID, token string) (*jwt.Payload, int, string) {
	payload, err := r.auth.Verify(token)
	if err != nil {
		r.logger.Debug("rejected access token", log.SessionID(sessionID), log.Error(err))
		return nil, http.StatusUnauthorized, "access token required"
	}

	if subtle.ConstantTimeCompare([]byte(sessionID), []byte(payload.SessionID)) != 1 {
		r.logger.Warn("access token for another session",
			log.SessionID(sessionID),
			log.String("tokenSessionId", payload.SessionID))
		return nil, http.StatusForbidden, "access denied"
	}
	return payload, http.StatusOK, ""
}

// requireSession admits requests carrying an access token issued for the
// session named in the path.
func (r *Router) requireSession(c *gin.Context) {
	var uri SessionURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Validation failed",
			"details": validation.FormatValidationError(err),
		})
		return
	}

	payload, status, message := r.verifySession(uri.SessionID, bearerToken(c.Request))
	if payload == nil {
		c.AbortWithStatusJSON(status, gin.H{
			"success": false,
			"error":   message,
		})
		return
	}

	c.Set(ctxKeySession, payload)
	c.Next()
}

func sessionPayload(c *gin.Context) *jwt.Payload {
	return c.MustGet(ctxKeySession).(*jwt.Payload)
}
