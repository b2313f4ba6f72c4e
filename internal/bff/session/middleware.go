package session

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// CookieName is where the SPA's auth provider stores the session token.
const CookieName = "gatherly_session"

// Middleware resolves the caller identity and stashes it on the request
// context. It never rejects: resolvers decide per operation whether a
// missing identity is an error.
func Middleware(v *Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := tokenFromRequest(c)

		if raw != "" {
			id, err := v.Verify(raw)

			if err == nil {
				c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), id))
			}
		}

		c.Next()
	}
}

func tokenFromRequest(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")

	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
	}

	cookie, err := c.Cookie(CookieName)

	if err == nil {
		return cookie
	}

	return ""
}
