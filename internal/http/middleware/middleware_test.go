package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"transitbook/internal/auth"
	"transitbook/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("middleware-secret")

func init() { gin.SetMode(gin.TestMode) }

func protectedRouter() *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), Authenticate(testSecret))
	r.GET("/staff", RequireRoles(domain.RoleAdmin, domain.RoleOperator), func(c *gin.Context) {
		claims, _ := CurrentUser(c)
		c.String(http.StatusOK, claims.Username)
	})
	r.GET("/admin", RequireRoles(domain.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	r.GET("/public", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})
	return r
}

func bearer(t *testing.T, role domain.Role) string {
	t.Helper()
	token, _, err := auth.Issue(testSecret, 1, "ops", role, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func serve(r http.Handler, path, authz string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireRoles(t *testing.T) {
	r := protectedRouter()

	assert.Equal(t, http.StatusUnauthorized, serve(r, "/staff", "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, "/staff", "Bearer nope").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, "/staff", "Basic abc").Code)

	w := serve(r, "/staff", bearer(t, domain.RoleOperator))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ops", w.Body.String())

	assert.Equal(t, http.StatusForbidden, serve(r, "/admin", bearer(t, domain.RoleOperator)).Code)
	assert.Equal(t, http.StatusNoContent, serve(r, "/admin", bearer(t, domain.RoleAdmin)).Code)
}

func TestPublicRouteIgnoresMissingToken(t *testing.T) {
	w := serve(protectedRouter(), "/public", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, w.Header().Get("X-Request-ID"), w.Body.String())
	assert.NotEmpty(t, w.Body.String())
}

func TestRequestIDKeepsClientValue(t *testing.T) {
	r := protectedRouter()

	req := httptest.NewRequest(http.MethodGet, "/public", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/public", nil)
	req.Header.Set("X-Request-ID", strings.Repeat("x", 65))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Len(t, w.Body.String(), 36)
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	current := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return current }

	r := gin.New()
	r.POST("/api/bookings", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusCreated) })

	post := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/bookings", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusCreated, post().Code)
	w := post()
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))

	current = current.Add(time.Second)
	assert.Equal(t, http.StatusCreated, post().Code)
}

func TestRateLimiterDisabled(t *testing.T) {
	rl := NewRateLimiter(0, 0)
	r := gin.New()
	r.GET("/", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, serve(r, "/", "").Code)
	}
}
