// internal/middleware/session.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	cartSessionCookie = "cart_session"
	cartSessionKey    = "cart_session_id"
)

// CartSession assigns every visitor an anonymous cart session. The session ID
// lives in a cookie so the cart follows the browser across page loads; a
// missing or malformed cookie gets a fresh UUID.
func CartSession(cookieMaxAge int, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(cartSessionCookie)
		if err != nil || !isValidSessionID(sessionID) {
			sessionID = uuid.New().String()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cartSessionCookie, sessionID, cookieMaxAge, "/", "", secure, true)
		}

		c.Set(cartSessionKey, sessionID)
		c.Next()
	}
}

func isValidSessionID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
