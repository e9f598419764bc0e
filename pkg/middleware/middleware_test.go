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
	"go.uber.org/zap/zaptest"

	"jelajah/pkg/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestTraceIDMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(TraceIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("trace_id")) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := rec.Header().Get(TraceIDHeader)
	_, err := uuid.Parse(generated)
	require.NoError(t, err)
	assert.Equal(t, generated, rec.Body.String())

	inbound := uuid.New().String()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(TraceIDHeader, inbound)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, inbound, rec.Header().Get(TraceIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(TraceIDHeader, "<script>")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.NotEqual(t, "<script>", rec.Header().Get(TraceIDHeader))
}

func sessionRouter(tokens *utils.SessionTokens, t *testing.T) *gin.Engine {
	r := gin.New()
	r.Use(SessionMiddleware(tokens, zaptest.NewLogger(t)))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, SessionID(c)) })
	return r
}

func TestSessionMiddleware_IssuesAndReusesCookie(t *testing.T) {
	tokens := utils.NewSessionTokens("secret", time.Hour)
	r := sessionRouter(tokens, t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	first := rec.Body.String()
	_, err := uuid.Parse(first)
	require.NoError(t, err)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, first, rec.Body.String())
	assert.Empty(t, rec.Result().Cookies(), "valid cookie is not reissued")
}

func TestSessionMiddleware_BearerToken(t *testing.T) {
	tokens := utils.NewSessionTokens("secret", time.Hour)
	sessionID, token, err := tokens.CreateToken()
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	sessionRouter(tokens, t).ServeHTTP(rec, req)

	assert.Equal(t, sessionID, rec.Body.String())
}

func TestSessionMiddleware_ForgedCookieGetsNewSession(t *testing.T) {
	_, forged, err := utils.NewSessionTokens("attacker", time.Hour).CreateToken()
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: forged})
	rec := httptest.NewRecorder()
	sessionRouter(utils.NewSessionTokens("secret", time.Hour), t).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, rec.Result().Cookies(), 1)
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware())
	r.POST("/api", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(60, 2)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("1.1.1.1"))
	assert.True(t, rl.Allow("1.1.1.1"))
	assert.False(t, rl.Allow("1.1.1.1"), "burst spent")
	assert.True(t, rl.Allow("2.2.2.2"), "other clients have their own bucket")

	now = now.Add(time.Second)
	assert.True(t, rl.Allow("1.1.1.1"), "one token per second at 60/min")

	now = now.Add(time.Hour)
	rl.Allow("3.3.3.3")
	rl.mu.Lock()
	assert.Len(t, rl.visitors, 1, "idle visitors are swept")
	rl.mu.Unlock()
}

func TestRateLimiter_Middleware(t *testing.T) {
	r := gin.New()
	r.Use(TraceIDMiddleware())
	r.POST("/plan", NewRateLimiter(1, 1).Limit(), func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/plan", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/plan", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestRateLimiter_LimitWith(t *testing.T) {
	r := gin.New()
	reached := 0
	r.POST("/plan", NewRateLimiter(1, 1).LimitWith(func(c *gin.Context) {
		c.String(http.StatusTooManyRequests, "slow down")
	}), func(c *gin.Context) {
		reached++
		c.Status(http.StatusOK)
	})

	for i := 0; i < 2; i++ {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/plan", nil))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/plan", nil))

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "slow down", rec.Body.String())
	assert.Equal(t, 1, reached, "rejected requests never reach the handler")
}

func TestRateLimiter_Disabled(t *testing.T) {
	rl := NewRateLimiter(0, 0)
	for i := 0; i < 100; i++ {
		require.True(t, rl.Allow("1.1.1.1"))
	}
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger(zaptest.NewLogger(t)), Recovery(zaptest.NewLogger(t)))
	r.GET("/", func(c *gin.Context) { panic("boom") })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
