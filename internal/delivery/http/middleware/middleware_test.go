package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"runtime"
	"strings"
	"testing"
	"time"

	"lunarai-web/pkg/apperror"
	"lunarai-web/pkg/eventlog"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), ErrorHandler())
	r.Use(mw...)
	ok := func(c *gin.Context) { c.String(http.StatusOK, "ok") }
	r.GET("/", ok)
	r.POST("/contact", ok)
	r.POST("/v1/contact", ok)
	return r
}

func observedEvents() (*eventlog.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return eventlog.NewWithZap(zap.New(core), "lunarai-web", "test"), logs
}

func TestRateLimitInMemory(t *testing.T) {
	events, logs := observedEvents()
	r := newEngine(RateLimitMiddleware(RateLimitConfig{Limit: 2, Window: time.Minute, Events: events}))

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), `"message":"Rate limit exceeded. Please try again later."`)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, 1, logs.FilterMessage(string(eventlog.EventRateLimitTriggered)).Len())
}

func TestRateLimitRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := ContactRateLimitConfig(1, time.Minute)
	cfg.Redis = client
	r := newEngine(RateLimitMiddleware(cfg))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	keys := mr.Keys()
	require.Len(t, keys, 1)
	assert.True(t, strings.HasPrefix(keys[0], "rl:contact:"))
	assert.Greater(t, mr.TTL(keys[0]), time.Duration(0), "window TTL set on first hit")

	// Window expiry resets the counter
	mr.FastForward(time.Minute + time.Second)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimitRedisDownFailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	cfg := DefaultRateLimitConfig(1, time.Minute)
	cfg.Redis = client
	r := newEngine(RateLimitMiddleware(cfg))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code, "in-memory fallback still limits")
}

func TestRateLimitRedisDownFailsClosed(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	r := newEngine(RateLimitMiddleware(RateLimitConfig{Limit: 5, Window: time.Minute, Redis: client, FailClosed: true}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "Service temporarily unavailable")
}

func TestRateLimitSweepDropsExpiredEntries(t *testing.T) {
	now := time.Now()
	rl := &rateLimiter{config: RateLimitConfig{Limit: 5, Window: time.Minute}}
	rl.lastSweep.Store(now.Add(-sweepInterval - time.Second).UnixNano())

	rl.checkInMemory("stale", now.Add(-2*time.Minute))
	rl.checkInMemory("fresh", now)

	rl.maybeSweep(now)
	_, stale := rl.store.Load("stale")
	_, fresh := rl.store.Load("fresh")
	assert.False(t, stale)
	assert.True(t, fresh)

	// Within the interval nothing is swept
	rl.checkInMemory("stale", now.Add(-2*time.Minute))
	rl.maybeSweep(now.Add(time.Minute))
	_, stale = rl.store.Load("stale")
	assert.True(t, stale)
}

func TestRateLimitStartsNoGoroutines(t *testing.T) {
	before := runtime.NumGoroutine()
	for i := 0; i < 50; i++ {
		_ = RateLimitMiddleware(DefaultRateLimitConfig(10, time.Minute))
	}
	assert.LessOrEqual(t, runtime.NumGoroutine(), before+2)
}

func csrfEngine(events *eventlog.Logger) *gin.Engine {
	return newEngine(CSRFMiddleware(CSRFConfig{
		ExemptPaths: []string{"/v1/contact"},
		Events:      events,
	}))
}

func TestCSRFIssuesCookieOnGet(t *testing.T) {
	r := csrfEngine(nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CSRFTokenCookieName, cookies[0].Name)
	assert.Len(t, cookies[0].Value, CSRFTokenLength*2)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
}

func TestCSRFValidation(t *testing.T) {
	const token = "abc123"

	tests := []struct {
		name        string
		header      string
		formToken   string
		wantStatus  int
		wantReason  string
		wantMessage string
	}{
		{"header matches", token, "", http.StatusOK, "", ""},
		{"form field matches", "", token, http.StatusOK, "", ""},
		{"missing", "", "", http.StatusForbidden, "missing", "Missing CSRF token"},
		{"mismatch", "other", "", http.StatusForbidden, "mismatch", "Invalid CSRF token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, logs := observedEvents()
			r := csrfEngine(events)

			form := url.Values{"firstName": {"John"}}
			if tt.formToken != "" {
				form.Set(CSRFTokenFormField, tt.formToken)
			}
			req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			req.AddCookie(&http.Cookie{Name: CSRFTokenCookieName, Value: token})
			if tt.header != "" {
				req.Header.Set(CSRFTokenHeaderName, tt.header)
			}

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)

			violations := logs.FilterMessage(string(eventlog.EventCSRFViolation)).All()
			if tt.wantReason == "" {
				assert.Empty(t, violations)
				return
			}
			require.Len(t, violations, 1)
			assert.Contains(t, violations[0].ContextMap()["details"], tt.wantReason)
			assert.Contains(t, w.Body.String(), tt.wantMessage)
		})
	}
}

func TestCSRFExemptPath(t *testing.T) {
	r := csrfEngine(nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/contact", strings.NewReader("{}")))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestID(t *testing.T) {
	r := newEngine()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(RequestIDHeader)
	assert.Len(t, generated, 36)

	const incoming = "7d444840-9dc0-11d1-b245-5ffdce74fad2"
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, incoming)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, incoming, w.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "<script>")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEqual(t, "<script>", w.Header().Get(RequestIDHeader))
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name       string
		origin     string
		production bool
		allowed    bool
	}{
		{"production domain", "https://lunarai.agency", true, true},
		{"configured origin", "https://partner.example", true, true},
		{"localhost in dev", "http://localhost:5173", false, true},
		{"localhost in production", "http://localhost:5173", true, false},
		{"vercel preview", "https://lunarai-git-main.vercel.app", true, true},
		{"lookalike vercel", "https://evil-lunarai.vercel.app", true, false},
		{"unknown", "https://evil.example", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newEngine(CORSMiddleware([]string{"https://partner.example/"}, tt.production))

			req := httptest.NewRequest(http.MethodOptions, "/v1/contact", nil)
			req.Header.Set("Origin", tt.origin)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if tt.allowed {
				assert.Equal(t, http.StatusNoContent, w.Code)
				assert.Equal(t, tt.origin, w.Header().Get("Access-Control-Allow-Origin"))
			} else {
				assert.Equal(t, http.StatusForbidden, w.Code)
				assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), ErrorHandler())
	r.GET("/app", func(c *gin.Context) {
		_ = c.Error(apperror.BadRequest("Invalid request body").WithDetails(map[string]string{"email": "Email is required"}))
	})
	r.GET("/raw", func(c *gin.Context) {
		_ = c.Error(errors.New("pq: password authentication failed"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/app", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"email":"Email is required"`)
	assert.Contains(t, w.Body.String(), `"request_id":"`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/raw", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestErrorHandlerWithPages(t *testing.T) {
	var rendered []int
	pages := func(c *gin.Context, err *apperror.AppError) {
		rendered = append(rendered, err.Code)
		c.Data(err.Code, "text/html; charset=utf-8", []byte("<p>"+err.Message+"</p>"))
	}

	r := gin.New()
	r.Use(RequestID(), ErrorHandlerWithPages(pages))
	r.POST("/contact", func(c *gin.Context) {
		_ = c.Error(apperror.Forbidden("Invalid CSRF token"))
	})
	r.POST("/v1/contact", func(c *gin.Context) {
		_ = c.Error(apperror.Forbidden("Invalid CSRF token"))
	})
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(errors.New("pq: password authentication failed"))
	})

	send := func(method, path, accept string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, nil)
		req.Header.Set("Accept", accept)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}
	const browser = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"

	w := send(http.MethodPost, "/contact", browser)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")

	w = send(http.MethodPost, "/contact", "application/json")
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

	w = send(http.MethodPost, "/v1/contact", browser)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

	w = send(http.MethodGet, "/boom", browser)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "password")

	assert.Equal(t, []int{http.StatusForbidden, http.StatusInternalServerError}, rendered)
}

func TestSecurityHeaders(t *testing.T) {
	r := newEngine(SecurityHeadersMiddleware(true))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.NotEmpty(t, w.Header().Get("Strict-Transport-Security"))
	assert.Contains(t, w.Header().Get("Content-Security-Policy"), "form-action 'self'")
}
