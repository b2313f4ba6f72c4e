package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORSMiddleware admits the SPA origins. The session rides in a cookie, so
// responses carry Allow-Credentials and the allowlist must name exact
// origins; a wildcard would be rejected by browsers in credentialed mode.
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(allowedOrigins))

	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}

	return func(ctx *gin.Context) {
		// caches must key on the origin either way
		ctx.Header("Vary", "Origin")

		if origin := ctx.GetHeader("Origin"); allowed[origin] {
			ctx.Header("Access-Control-Allow-Origin", origin)
			ctx.Header("Access-Control-Allow-Credentials", "true")
			ctx.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, If-None-Match")
			ctx.Header("Access-Control-Expose-Headers", "ETag, X-Request-Id")
			ctx.Header("Access-Control-Max-Age", "600")
		}

		if ctx.Request.Method == http.MethodOptions {
			ctx.AbortWithStatus(http.StatusNoContent)
			return
		}

		ctx.Next()
	}
}
