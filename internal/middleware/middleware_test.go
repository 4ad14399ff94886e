package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/config"
	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/database/repository"
	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/database/service"
	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/logger"
	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type authSetup struct {
	auth   service.AuthService
	facade service.Facade
	mw     *middleware.AuthMiddleware
}

func newAuthSetup(t *testing.T) authSetup {
	t.Helper()
	repos := repository.NewMemoryRepositories()
	f := service.NewFacade(repos, logger.Discard())
	cfg := &config.Config{JWTSecret: "secret", AccessTokenExpiration: 60, RefreshTokenExpiration: 3600}
	auth := service.NewAuthService(f, repos.Tokens, cfg, logger.Discard())
	return authSetup{auth: auth, facade: f, mw: middleware.NewAuthMiddleware(auth, logger.Discard())}
}

func (s authSetup) token(t *testing.T, email string, admin bool) string {
	t.Helper()
	_, err := s.facade.CreateUser(service.UserInput{Email: email, Password: "pw", IsAdmin: admin})
	require.NoError(t, err)
	_, tokens, err := s.auth.Login(email, "pw")
	require.NoError(t, err)
	return tokens.AccessToken
}

func whoAmI(c *gin.Context) {
	principal, ok := middleware.PrincipalFromContext(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"user_id": ""})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_id": principal.UserID, "user_id_key": c.GetString("userID")})
}

func TestRequireAuth(t *testing.T) {
	s := newAuthSetup(t)
	valid := s.token(t, "user@example.com", false)

	router := gin.New()
	router.GET("/protected", s.mw.RequireAuth(), whoAmI)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"valid token", "Bearer " + valid, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + valid, http.StatusUnauthorized},
		{"malformed", "Bearer", http.StatusUnauthorized},
		{"invalid token", "Bearer not-a-token", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Contains(t, w.Body.String(), "user_id_key")
			} else {
				assert.Contains(t, w.Body.String(), "error")
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	s := newAuthSetup(t)
	valid := s.token(t, "optional@example.com", false)

	router := gin.New()
	router.GET("/maybe", s.mw.OptionalAuth(), whoAmI)

	req := httptest.NewRequest(http.MethodGet, "/maybe", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id": ""}`, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/maybe", nil)
	req.Header.Set("Authorization", "Bearer "+valid)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), `"user_id":""`)

	// A bad token degrades to anonymous
	req = httptest.NewRequest(http.MethodGet, "/maybe", nil)
	req.Header.Set("Authorization", "Bearer junk")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	s := newAuthSetup(t)
	admin := s.token(t, "admin@example.com", true)
	user := s.token(t, "plain@example.com", false)

	router := gin.New()
	router.POST("/admin", s.mw.RequireAuth(), s.mw.RequireAdmin(), whoAmI)

	for token, want := range map[string]int{admin: http.StatusOK, user: http.StatusForbidden} {
		req := httptest.NewRequest(http.MethodPost, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code)
	}
}

func newRedisLimiter(t *testing.T, limit int64) (middleware.RateLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	limiter := middleware.NewRateLimiter(client, &config.Config{LoginRateLimit: limit, LoginRateWindow: 60}, logger.Discard())
	t.Cleanup(func() { _ = limiter.Close() })
	return limiter, mr
}

func TestRedisRateLimiter_Allow(t *testing.T) {
	limiter, mr := newRedisLimiter(t, 2)
	ctx := context.Background()

	allowed, count, err := limiter.Allow(ctx, "rate:login:1.2.3.4")
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, time.Minute, mr.TTL("rate:login:1.2.3.4"))

	allowed, _, err = limiter.Allow(ctx, "rate:login:1.2.3.4")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, count, err = limiter.Allow(ctx, "rate:login:1.2.3.4")
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Equal(t, int64(3), count)

	// Other clients have their own budget
	allowed, _, err = limiter.Allow(ctx, "rate:login:5.6.7.8")
	require.NoError(t, err)
	assert.True(t, allowed)

	// A new window starts once the key expires
	mr.FastForward(61 * time.Second)
	allowed, count, err = limiter.Allow(ctx, "rate:login:1.2.3.4")
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, int64(1), count)
}

func TestRedisRateLimiter_RestoresMissingExpiry(t *testing.T) {
	limiter, mr := newRedisLimiter(t, 5)

	// A counter stranded without a TTL must not lock the client out forever
	require.NoError(t, mr.Set("rate:login:9.9.9.9", "3"))
	require.Zero(t, mr.TTL("rate:login:9.9.9.9"))

	allowed, count, err := limiter.Allow(context.Background(), "rate:login:9.9.9.9")
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, int64(4), count)
	assert.Equal(t, time.Minute, mr.TTL("rate:login:9.9.9.9"))

	// An existing window is not extended by later attempts
	mr.FastForward(30 * time.Second)
	_, _, err = limiter.Allow(context.Background(), "rate:login:9.9.9.9")
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, mr.TTL("rate:login:9.9.9.9"))
}

func TestRedisRateLimiter_Unlimited(t *testing.T) {
	limiter, _ := newRedisLimiter(t, 0)

	for i := 0; i < 5; i++ {
		allowed, _, err := limiter.Allow(context.Background(), "k")
		require.NoError(t, err)
		assert.True(t, allowed)
	}
}

func TestLimitLogin(t *testing.T) {
	limiter, _ := newRedisLimiter(t, 1)

	router := gin.New()
	router.POST("/login", middleware.LimitLogin(limiter, logger.Discard()), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, send().Code)

	w := send()
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "Too many login attempts")
}

func TestLimitLogin_RedisDownFailsOpen(t *testing.T) {
	limiter, mr := newRedisLimiter(t, 1)
	mr.Close()

	router := gin.New()
	router.POST("/login", middleware.LimitLogin(limiter, logger.Discard()), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestNoOpRateLimiter(t *testing.T) {
	limiter := middleware.NewNoOpRateLimiter(logger.Discard())

	allowed, _, err := limiter.Allow(context.Background(), "anything")
	assert.NoError(t, err)
	assert.True(t, allowed)
	assert.NoError(t, limiter.Close())
}
