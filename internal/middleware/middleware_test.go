package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/placement-portal/internal/metrics"
	"github.com/lshigami/placement-portal/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type tokenTable map[string]*model.User

func (t tokenTable) Authenticate(_ context.Context, token string) (*model.User, error) {
	if user, ok := t[token]; ok {
		return user, nil
	}
	return nil, errors.New("unknown token")
}

var (
	approvedStudent = &model.User{ID: 1, Name: "approved", Role: model.RoleStudent, IsApproved: true}
	pendingStudent  = &model.User{ID: 2, Name: "pending", Role: model.RoleStudent}
	admin           = &model.User{ID: 3, Name: "admin", Role: model.RoleAdmin}
)

func newProtectedEngine() *gin.Engine {
	tokens := tokenTable{"student": approvedStudent, "pending": pendingStudent, "admin": admin}
	r := gin.New()
	student := r.Group("/student", AuthJWT(tokens), RequireRole(model.RoleStudent), RequireApproved())
	student.GET("/ping", func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, user.Name)
	})
	adminGroup := r.Group("/admin", AuthJWT(tokens), RequireRole(model.RoleAdmin))
	adminGroup.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "admin") })
	return r
}

func TestAuthChain(t *testing.T) {
	r := newProtectedEngine()

	cases := []struct {
		name   string
		path   string
		header string
		status int
		body   string
	}{
		{"missing header", "/student/ping", "", http.StatusUnauthorized, "Authorization header is required"},
		{"wrong scheme", "/student/ping", "Basic abc", http.StatusUnauthorized, "Bearer {token}"},
		{"empty token", "/student/ping", "Bearer   ", http.StatusUnauthorized, "Bearer {token}"},
		{"unknown token", "/student/ping", "Bearer nope", http.StatusUnauthorized, "Invalid or expired token"},
		{"approved student", "/student/ping", "Bearer student", http.StatusOK, "approved"},
		{"scheme is case insensitive", "/student/ping", "bearer student", http.StatusOK, "approved"},
		{"pending student", "/student/ping", "Bearer pending", http.StatusForbidden, "pending approval"},
		{"admin on student routes", "/student/ping", "Bearer admin", http.StatusForbidden, "do not have access"},
		{"student on admin routes", "/admin/ping", "Bearer student", http.StatusForbidden, "do not have access"},
		{"pending student still blocked from admin", "/admin/ping", "Bearer pending", http.StatusForbidden, "do not have access"},
		{"admin", "/admin/ping", "Bearer admin", http.StatusOK, "admin"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.status, w.Code)
			assert.Contains(t, w.Body.String(), tc.body)
		})
	}
}

func TestRequireRoleWithoutUser(t *testing.T) {
	r := gin.New()
	r.GET("/x", RequireRole(model.RoleAdmin), func(c *gin.Context) { c.Status(http.StatusOK) })
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRateLimitByIP(t *testing.T) {
	rl := NewIPRateLimiter(1, 2, time.Minute)
	t.Cleanup(rl.Stop)

	r := gin.New()
	r.POST("/chat", RateLimitByIP(rl), func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/chat", nil)
		req.RemoteAddr = ip + ":1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1"))
	assert.Equal(t, http.StatusOK, send("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1"))
	assert.Equal(t, http.StatusOK, send("10.0.0.2"))

	rl.Stop()
	rl.Stop()
}

func TestRateLimitByIPCustomBody(t *testing.T) {
	rl := NewIPRateLimiter(1, 1, time.Minute)
	t.Cleanup(rl.Stop)

	limited := func(c *gin.Context) {
		c.JSON(http.StatusTooManyRequests, gin.H{"mode": "offline"})
	}
	handled := 0
	r := gin.New()
	r.POST("/chat", RateLimitByIP(rl, limited), func(c *gin.Context) {
		handled++
		c.Status(http.StatusOK)
	})

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/chat", nil)
		req.RemoteAddr = "10.0.0.9:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	require.Equal(t, http.StatusOK, send().Code)
	w := send()
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"mode":"offline"}`, w.Body.String())
	assert.Equal(t, 1, handled)
}

func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(SecurityHeaders())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "strict-origin-when-cross-origin", w.Header().Get("Referrer-Policy"))
}

func TestMetricsUsesRouteTemplate(t *testing.T) {
	m := metrics.NewMetrics(metrics.NewRegistry())
	r := gin.New()
	r.Use(RequestLogger(), Metrics(m))
	r.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/items/1", "/items/2", "/missing"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	}

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `placement_portal_http_requests_total{method="GET",route="/items/:id",status="200"} 2`)
	assert.Contains(t, body, `placement_portal_http_requests_total{method="GET",route="unmatched",status="404"} 1`)
}
