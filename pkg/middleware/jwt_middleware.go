package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jelajah/pkg/utils"
)

const (
	SessionCookieName = "jelajah_session"
	SessionIDKey      = "session_id"
)

// SessionMiddleware attaches a planner session to every request. The id comes
// from the session cookie or a Bearer token; without a valid one a new
// session is issued and the cookie set.
func SessionMiddleware(tokens *utils.SessionTokens, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sessionID, ok := sessionFromRequest(c, tokens); ok {
			c.Set(SessionIDKey, sessionID)
			c.Next()
			return
		}

		sessionID, token, err := tokens.CreateToken()
		if err != nil {
			logger.Error("issue session token", zap.Error(err))
			utils.RespondError(c, http.StatusInternalServerError, "Could not start a planner session")
			c.Abort()
			return
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookieName, token, int(tokens.TTL().Seconds()), "/", "", c.Request.TLS != nil, true)
		c.Header("X-Session-Token", token)
		c.Set(SessionIDKey, sessionID)
		c.Next()
	}
}

func sessionFromRequest(c *gin.Context, tokens *utils.SessionTokens) (string, bool) {
	if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		if id, err := tokens.ValidateToken(strings.TrimPrefix(authHeader, "Bearer ")); err == nil {
			return id, true
		}
	}
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
		if id, err := tokens.ValidateToken(cookie); err == nil {
			return id, true
		}
	}
	return "", false
}

// SessionID reads the id set by SessionMiddleware.
func SessionID(c *gin.Context) string {
	return c.GetString(SessionIDKey)
}
