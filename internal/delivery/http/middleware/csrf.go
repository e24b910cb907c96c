package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"time"

	"lunarai-web/internal/delivery/http/response"
	"lunarai-web/pkg/apperror"
	"lunarai-web/pkg/eventlog"

	"github.com/gin-gonic/gin"
)

const (
	// CSRFTokenCookieName is the name of the cookie that stores the CSRF token
	CSRFTokenCookieName = "csrf_token"
	// CSRFTokenHeaderName is the header API clients echo the token in
	CSRFTokenHeaderName = "X-CSRF-Token"
	// CSRFTokenFormField is the hidden input server-rendered forms echo the token in
	CSRFTokenFormField = "csrf_token"
	// CSRFTokenLength is the length of the generated token in bytes (32 bytes = 64 hex chars)
	CSRFTokenLength = 32
	// CSRFTokenExpiry is how long the token is valid
	CSRFTokenExpiry = 24 * time.Hour

	csrfContextKey = "csrf_token"
)

// CSRFConfig configures CSRFMiddleware
type CSRFConfig struct {
	// Secure marks the cookie HTTPS-only
	Secure bool
	// ExemptPaths skip validation but still receive a cookie
	ExemptPaths []string
	Events      *eventlog.Logger
}

// generateCSRFToken creates a cryptographically secure random token
func generateCSRFToken() (string, error) {
	bytes := make([]byte, CSRFTokenLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// CSRFToken returns the token for the current request, for embedding in a form
func CSRFToken(c *gin.Context) string {
	return c.GetString(csrfContextKey)
}

// CSRFMiddleware implements the double-submit cookie pattern.
//
// Every request gets a csrf_token cookie if it has none. State-changing
// requests must echo the cookie value in the X-CSRF-Token header or, for
// server-rendered forms, in the csrf_token form field.
//
// The public JSON contact endpoints are exempt: they are called cross-origin
// and are covered by the contact rate limit instead.
func CSRFMiddleware(cfg CSRFConfig) gin.HandlerFunc {
	exempt := make(map[string]bool, len(cfg.ExemptPaths))
	for _, p := range cfg.ExemptPaths {
		exempt[p] = true
	}

	return func(c *gin.Context) {
		token, err := c.Cookie(CSRFTokenCookieName)
		if err != nil || token == "" {
			token, err = generateCSRFToken()
			if err != nil {
				abortWith(c, apperror.Internal(err))
				return
			}
			// SameSite=Lax: sent on top-level navigations, not cross-site subrequests
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(CSRFTokenCookieName, token, int(CSRFTokenExpiry.Seconds()), "/", "", cfg.Secure, false)
		}
		c.Set(csrfContextKey, token)

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}
		if exempt[c.Request.URL.Path] {
			c.Next()
			return
		}

		submitted := c.GetHeader(CSRFTokenHeaderName)
		if submitted == "" {
			submitted = c.PostForm(CSRFTokenFormField)
		}

		if submitted == "" {
			cfg.Events.LogCSRFViolation(c.Request.Context(), c.ClientIP(), c.GetHeader("User-Agent"), response.RequestID(c), "missing")
			abortWith(c, apperror.Forbidden("Missing CSRF token"))
			return
		}
		if subtle.ConstantTimeCompare([]byte(submitted), []byte(token)) != 1 {
			cfg.Events.LogCSRFViolation(c.Request.Context(), c.ClientIP(), c.GetHeader("User-Agent"), response.RequestID(c), "mismatch")
			abortWith(c, apperror.Forbidden("Invalid CSRF token"))
			return
		}

		c.Next()
	}
}
