package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORSMiddleware adds CORS headers for cross-origin API calls, e.g. from a
// separately hosted frontend posting to /v1/contact.
//
// SECURITY: Strict origin whitelist:
// - Production domains and extra configured origins are always allowed
// - localhost only outside production
// - Vercel previews only for lunarai-* subdomains
func CORSMiddleware(extraOrigins []string, production bool) gin.HandlerFunc {
	allowed := map[string]bool{
		"https://lunarai.agency":     true,
		"https://www.lunarai.agency": true,
	}
	for _, o := range extraOrigins {
		allowed[strings.TrimSuffix(o, "/")] = true
	}

	devOrigins := map[string]bool{
		"http://localhost:3000": true,
		"http://127.0.0.1:3000": true,
		"http://localhost:5173": true,
		"http://localhost:8080": true,
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		isAllowed := origin == "" || allowed[origin]
		if !isAllowed && !production && devOrigins[origin] {
			isAllowed = true
		}
		if !isAllowed && strings.HasPrefix(origin, "https://") && strings.HasSuffix(origin, ".vercel.app") {
			subdomain := strings.TrimSuffix(strings.TrimPrefix(origin, "https://"), ".vercel.app")
			if strings.HasPrefix(subdomain, "lunarai") || strings.Contains(subdomain, "-lunarai-") {
				isAllowed = true
			}
		}

		if isAllowed && origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, X-Request-ID, accept, origin, Cache-Control, X-Requested-With")
			c.Header("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			c.Header("Access-Control-Max-Age", "86400")
		}
		c.Header("Vary", "Origin")

		if c.Request.Method == http.MethodOptions {
			if isAllowed {
				c.AbortWithStatus(http.StatusNoContent)
			} else {
				c.AbortWithStatus(http.StatusForbidden)
			}
			return
		}

		c.Next()
	}
}
