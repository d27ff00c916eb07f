package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patelhettt/vulninsights/internal/config"
	"github.com/patelhettt/vulninsights/internal/ctxkeys"
	"github.com/patelhettt/vulninsights/internal/metrics"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(ok, mw("first"), mw("second"), mw("third"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestConfigIsSanitized(t *testing.T) {
	cfg := &config.Config{AppName: "VulnInsights", GitHubToken: "ghp_secret", SentryDSN: "https://key@sentry.io/1"}

	var got *config.Config
	h := Config(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = ctxkeys.Config(r.Context())
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotNil(t, got)
	assert.Equal(t, "VulnInsights", got.AppName)
	assert.Empty(t, got.GitHubToken)
	assert.Empty(t, got.SentryDSN)
}

func TestNonceReachesTemplAndCSP(t *testing.T) {
	var templNonce string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		templNonce = templ.GetNonce(r.Context())
	})

	rec := httptest.NewRecorder()
	Chain(inner, NonceMiddleware, SecurityHeaders).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotEmpty(t, templNonce)
	csp := rec.Header().Get("Content-Security-Policy")
	assert.Contains(t, csp, "'nonce-"+templNonce+"'")
	assert.Contains(t, csp, "frame-src https://tryhackme.com")
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Empty(t, rec.Header().Get("Strict-Transport-Security"))
}

func TestSecurityHeadersAnalyticsHosts(t *testing.T) {
	cfg := &config.Config{AppEnv: "production", PlausibleDomain: "vulninsights.com", PlausibleHost: "plausible.io"}

	rec := httptest.NewRecorder()
	Chain(ok, Config(cfg), SecurityHeaders).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	csp := rec.Header().Get("Content-Security-Policy")
	assert.Contains(t, csp, "https://plausible.io")
	assert.NotContains(t, csp, "googletagmanager")
	assert.NotEmpty(t, rec.Header().Get("Strict-Transport-Security"))
}

func TestRequestLoggingSetsRequestID(t *testing.T) {
	var ctxID string
	h := RequestLogging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = ctxkeys.RequestID(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/blogs", nil))

	id := rec.Header().Get("X-Request-ID")
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, ctxID)
	assert.Equal(t, http.StatusTeapot, rec.Code)

	incoming := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/blogs", nil)
	req.Header.Set("X-Request-ID", incoming)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, incoming, rec.Header().Get("X-Request-ID"))

	req = httptest.NewRequest(http.MethodGet, "/blogs", nil)
	req.Header.Set("X-Request-ID", "<script>")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.NotEqual(t, "<script>", rec.Header().Get("X-Request-ID"))
}

func TestRequestLoggingSkipsAssets(t *testing.T) {
	rec := httptest.NewRecorder()
	RequestLogging(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/css/output.css", nil))
	assert.Empty(t, rec.Header().Get("X-Request-ID"))
}

func TestWithURLPath(t *testing.T) {
	var path string
	h := WithURLPath(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = ctxkeys.URLPath(r.Context())
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/tools?category=web", nil))
	assert.Equal(t, "/tools", path)
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	defer rl.Stop()

	h := rl.Middleware(ok)
	do := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/blogs", nil)
		req.RemoteAddr = ip + ":40000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, do("203.0.113.7").Code)
	assert.Equal(t, http.StatusOK, do("203.0.113.7").Code)

	rec := do("203.0.113.7")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	assert.True(t, strings.Contains(rec.Body.String(), "Too many requests"))

	assert.Equal(t, http.StatusOK, do("198.51.100.1").Code, "other clients are unaffected")
}

func TestRateLimiterWindowExpires(t *testing.T) {
	rl := NewRateLimiter(1, 20*time.Millisecond)
	defer rl.Stop()

	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))
	time.Sleep(30 * time.Millisecond)
	assert.True(t, rl.Allow("a"))

	rl.cleanup()
	rl.mu.Lock()
	assert.Len(t, rl.requests, 1)
	rl.mu.Unlock()
}

func TestGetClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:54321"
	assert.Equal(t, "192.0.2.1", getClientIP(req, false))
	assert.Equal(t, "192.0.2.1", getClientIP(req, true), "no forwarding headers")

	req.Header.Set("X-Real-IP", " 192.0.2.9 ")
	assert.Equal(t, "192.0.2.1", getClientIP(req, false))
	assert.Equal(t, "192.0.2.9", getClientIP(req, true))

	req.Header.Set("X-Forwarded-For", "203.0.113.50, 198.51.100.7")
	assert.Equal(t, "192.0.2.1", getClientIP(req, false))
	assert.Equal(t, "198.51.100.7", getClientIP(req, true))

	req.RemoteAddr = "[2001:db8::1]:443"
	assert.Equal(t, "2001:db8::1", getClientIP(req, false))
}

func TestRateLimiterIgnoresSpoofedForwardedFor(t *testing.T) {
	direct := NewRateLimiter(1, time.Minute)
	defer direct.Stop()
	proxied := NewRateLimiter(1, time.Minute).TrustProxy(true)
	defer proxied.Stop()

	do := func(h http.Handler, spoofed string) int {
		req := httptest.NewRequest(http.MethodGet, "/blogs", nil)
		req.RemoteAddr = "127.0.0.1:50000"
		req.Header.Add("X-Forwarded-For", spoofed+", 203.0.113.7")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	for _, rl := range []*RateLimiter{direct, proxied} {
		h := rl.Middleware(ok)
		assert.Equal(t, http.StatusOK, do(h, "10.0.0.1"))
		assert.Equal(t, http.StatusTooManyRequests, do(h, "10.0.0.2"), "a new leftmost entry is not a new client")
	}
}

func TestMetricsMiddleware(t *testing.T) {
	m := metrics.New()
	notFound := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	Metrics(m)(ok).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/blogs/some-post", nil))
	Metrics(m)(notFound).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("/blogs/{slug}", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("other", "GET", "404")))
}
