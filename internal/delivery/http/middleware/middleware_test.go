package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"matchmakr-backend/internal/domain"
	"matchmakr-backend/pkg/apperror"
	"matchmakr-backend/pkg/audit"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRateLimiterInMemory(t *testing.T) {
	limiter := NewRateLimiter(nil, audit.NewNop())
	r := gin.New()
	r.POST("/login", limiter.Middleware(AuthRateLimitConfig(2, time.Minute)), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		codes = append(codes, w.Code)
		if i == 2 {
			assert.NotEmpty(t, w.Header().Get("Retry-After"))
			assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
		}
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimiterWindowResets(t *testing.T) {
	limiter := NewRateLimiter(nil, audit.NewNop())
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }
	cfg := AuthRateLimitConfig(1, time.Minute)

	count, _ := limiter.checkInMemory("k", cfg)
	assert.Equal(t, 1, count)
	count, _ = limiter.checkInMemory("k", cfg)
	assert.Equal(t, 2, count)

	now = now.Add(2 * time.Minute)
	count, _ = limiter.checkInMemory("k", cfg)
	assert.Equal(t, 1, count)

	now = now.Add(2 * time.Minute)
	limiter.sweep(now)
	_, ok := limiter.store.Load("k")
	assert.False(t, ok)
}

func TestErrorHandlerRendersFields(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), ErrorHandler())
	r.GET("/invalid", func(c *gin.Context) {
		c.Error(apperror.Validation("Invalid input", apperror.FieldError{Field: "salary_min", Message: "too big"}))
	})
	r.GET("/boom", func(c *gin.Context) {
		c.Error(errors.New("db exploded"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/invalid", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"fields":[{"field":"salary_min","message":"too big"}]`)
	assert.Contains(t, w.Body.String(), `"request_id"`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "db exploded")
}

type stubVerifier struct {
	userID int64
	err    error
}

func (s stubVerifier) Verify(string) (int64, error) { return s.userID, s.err }

type stubAuth struct {
	domain.AuthUsecase
	caller domain.Caller
}

func (s stubAuth) ResolveCaller(context.Context, int64) (domain.Caller, error) {
	return s.caller, nil
}

func TestAuthMiddlewareStoresCaller(t *testing.T) {
	want := domain.Caller{UserID: 7, Username: "alice"}
	r := gin.New()
	r.Use(ErrorHandler(), AuthMiddleware(stubVerifier{userID: 7}, stubAuth{caller: want}, audit.NewNop()))
	r.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, CallerFrom(c))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer good")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"alice"`)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Token good")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
