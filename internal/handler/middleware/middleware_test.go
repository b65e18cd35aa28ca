package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ourhour/weddinghub/internal/config"
	jwtpkg "ourhour/weddinghub/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, path, token, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if ip != "" {
		req.RemoteAddr = ip + ":40000"
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func ok(c *gin.Context) { c.Status(http.StatusOK) }

func TestJWTAuth(t *testing.T) {
	manager := jwtpkg.NewManager("secret", "ourhour", time.Minute, time.Hour)
	r := gin.New()
	r.GET("/p", JWTAuth(manager), ok)

	access, err := manager.GenerateAccessToken(uuid.New(), "USER")
	require.NoError(t, err)
	refresh, _, err := manager.GenerateRefreshToken(uuid.New())
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, serve(r, "/p", "", "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, "/p", "not.a.jwt", "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, "/p", refresh, "").Code, "refresh tokens are not bearer credentials")
	assert.Equal(t, http.StatusOK, serve(r, "/p", access, "").Code)
}

func TestAdminAuth(t *testing.T) {
	manager := jwtpkg.NewManager("secret", "ourhour", time.Minute, time.Hour)
	r := gin.New()
	r.GET("/admin", JWTAuth(manager), AdminAuth(), ok)

	user, err := manager.GenerateAccessToken(uuid.New(), "USER")
	require.NoError(t, err)
	admin, err := manager.GenerateAccessToken(uuid.New(), "ADMIN")
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, serve(r, "/admin", user, "").Code)
	assert.Equal(t, http.StatusOK, serve(r, "/admin", admin, "").Code)
}

func TestAdminAuthWithoutClaims(t *testing.T) {
	r := gin.New()
	r.GET("/admin", AdminAuth(), ok)

	assert.Equal(t, http.StatusUnauthorized, serve(r, "/admin", "", "").Code)
}

func TestRateLimiterPerClientIP(t *testing.T) {
	limiter := NewRateLimiter(0.001, 2, zap.NewNop())
	r := gin.New()
	r.GET("/submit", limiter.Handler(), ok)

	assert.Equal(t, http.StatusOK, serve(r, "/submit", "", "192.0.2.10").Code)
	assert.Equal(t, http.StatusOK, serve(r, "/submit", "", "192.0.2.10").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(r, "/submit", "", "192.0.2.10").Code)

	// another client has its own bucket
	assert.Equal(t, http.StatusOK, serve(r, "/submit", "", "192.0.2.20").Code)
}

func TestRateLimiterCleanup(t *testing.T) {
	limiter := NewRateLimiter(1, 1, zap.NewNop())
	limiter.getLimiter("192.0.2.1")
	limiter.visitors["192.0.2.1"].lastSeen = time.Now().Add(-time.Hour)
	limiter.getLimiter("192.0.2.2")

	limiter.Cleanup()

	assert.NotContains(t, limiter.visitors, "192.0.2.1")
	assert.Contains(t, limiter.visitors, "192.0.2.2")
}

func TestRecoveryAnswers500(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(zap.NewNop()))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := serve(r, "/boom", "", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"code":500,"message":"internal server error"}`, w.Body.String())
}

func TestCORSAllowsConfiguredOrigins(t *testing.T) {
	r := gin.New()
	r.Use(CORS(config.CORSConfig{
		AllowedOrigins: []string{"http://localhost:3000", "https://*.ourhour.kr"},
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:         time.Hour,
	}))
	r.GET("/p", ok)

	get := func(origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/p", nil)
		req.Header.Set("Origin", origin)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := get("http://localhost:3000")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	w = get("https://kim-lee.ourhour.kr")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://kim-lee.ourhour.kr", w.Header().Get("Access-Control-Allow-Origin"))

	w = get("https://evil.example.com")
	assert.Equal(t, http.StatusForbidden, w.Code)
}
