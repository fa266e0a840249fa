package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/PolyGraph-Intelligence/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/PolyGraph-Intelligence/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	r.ServeHTTP(w, req)
	return w
}

func okRouter(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/bad", func(c *gin.Context) { c.String(http.StatusNotFound, "no") })
	r.GET("/boom", func(c *gin.Context) { c.String(http.StatusInternalServerError, "boom") })
	r.GET("/slow", func(c *gin.Context) {
		time.Sleep(20 * time.Millisecond)
		c.String(http.StatusOK, "slow")
	})
	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/records/:idx", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

// ─────────────────────────────────────────────────────────────────────────────
// CORS
// ─────────────────────────────────────────────────────────────────────────────

func TestCORS(t *testing.T) {
	cfg := DefaultCORSConfig()
	cfg.AllowedOrigins = []string{"https://app.example.com", "*.lab.org"}
	cfg.AllowWildcard = true
	r := okRouter(CORS(cfg))

	tests := []struct {
		name       string
		method     string
		origin     string
		wantOrigin string
		wantCode   int
	}{
		{"exact", http.MethodGet, "https://app.example.com", "https://app.example.com", http.StatusOK},
		{"case insensitive", http.MethodGet, "https://APP.example.com", "https://APP.example.com", http.StatusOK},
		{"subdomain", http.MethodGet, "https://viz.lab.org", "https://viz.lab.org", http.StatusOK},
		{"disallowed", http.MethodGet, "https://evil.com", "", http.StatusOK},
		{"no origin", http.MethodGet, "", "", http.StatusOK},
		{"preflight", http.MethodOptions, "https://app.example.com", "https://app.example.com", http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{}
			if tt.origin != "" {
				headers["Origin"] = tt.origin
			}
			w := serve(r, tt.method, "/ok", headers)
			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantOrigin, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}

	w := serve(r, http.MethodOptions, "/ok", map[string]string{"Origin": "https://app.example.com"})
	assert.Equal(t, "GET, HEAD, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "86400", w.Header().Get("Access-Control-Max-Age"))
	assert.Contains(t, w.Header().Values("Vary"), "Origin")

	w = serve(r, http.MethodGet, "/ok", map[string]string{"Origin": "https://app.example.com"})
	assert.Equal(t, HeaderRequestID, w.Header().Get("Access-Control-Expose-Headers"))
}

func TestCORS_WildcardAndCredentials(t *testing.T) {
	cfg := DefaultCORSConfig()
	cfg.AllowedOrigins = []string{"*"}

	w := serve(okRouter(CORS(cfg)), http.MethodGet, "/ok", map[string]string{"Origin": "https://x.io"})
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))

	cfg.AllowCredentials = true
	w = serve(okRouter(CORS(cfg)), http.MethodGet, "/ok", map[string]string{"Origin": "https://x.io"})
	assert.Equal(t, "https://x.io", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

// ─────────────────────────────────────────────────────────────────────────────
// Request id and logging
// ─────────────────────────────────────────────────────────────────────────────

func TestRequestID(t *testing.T) {
	r := okRouter(RequestID())

	w := serve(r, http.MethodGet, "/ok", map[string]string{HeaderRequestID: "req-1"})
	assert.Equal(t, "req-1", w.Header().Get(HeaderRequestID))

	w = serve(r, http.MethodGet, "/ok", nil)
	assert.Len(t, w.Header().Get(HeaderRequestID), 36)
}

func TestRequestLogging_Levels(t *testing.T) {
	logger := testutil.NewMockLogger()
	cfg := DefaultLoggingConfig()
	cfg.SlowThreshold = 10 * time.Millisecond
	r := okRouter(RequestID(), RequestLogging(logger, cfg))

	serve(r, http.MethodGet, "/ok?page=2", map[string]string{HeaderRequestID: "abc"})
	serve(r, http.MethodGet, "/bad", nil)
	serve(r, http.MethodGet, "/boom", nil)
	serve(r, http.MethodGet, "/slow", nil)
	serve(r, http.MethodGet, "/healthz", nil)

	assert.True(t, logger.HasMessage("INFO", "HTTP request completed"))
	assert.True(t, logger.HasMessage("WARN", "HTTP request completed with client error"))
	assert.True(t, logger.HasMessage("ERROR", "HTTP request completed with server error"))
	assert.True(t, logger.HasMessage("WARN", "HTTP request completed (slow)"))
	assert.Len(t, logger.GetMessages(), 4)

	path, ok := logger.FieldValue("INFO", "HTTP request completed", "path")
	require.True(t, ok)
	assert.Equal(t, "/ok?page=2", path)
	id, ok := logger.FieldValue("INFO", "HTTP request completed", "request_id")
	require.True(t, ok)
	assert.Equal(t, "abc", id)
}

// ─────────────────────────────────────────────────────────────────────────────
// Metrics
// ─────────────────────────────────────────────────────────────────────────────

func TestMetrics_ByRoute(t *testing.T) {
	c, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{Namespace: "test", Subsystem: "http"}, nil)
	require.NoError(t, err)
	r := okRouter(Metrics(prometheus.NewFeaturizeMetrics(c)))

	serve(r, http.MethodGet, "/records/1", nil)
	serve(r, http.MethodGet, "/records/2", nil)
	serve(r, http.MethodGet, "/nowhere", nil)

	w := httptest.NewRecorder()
	c.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := w.Body.String()
	assert.Contains(t, body, `test_http_http_requests_total{method="GET",route="/records/:idx",status="200"} 2`)
	assert.Contains(t, body, `test_http_http_requests_total{method="GET",route="unmatched",status="404"} 1`)
	assert.False(t, strings.Contains(body, `route="/records/1"`))
}

func TestMetrics_NilSafe(t *testing.T) {
	w := serve(okRouter(Metrics(nil)), http.MethodGet, "/ok", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

//Personal.AI order the ending
