package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sessionCapture struct {
	ginValue string
	ctxValue string
}

func sessionTestRouter() (*gin.Engine, *sessionCapture) {
	gin.SetMode(gin.TestMode)

	var seen sessionCapture
	r := gin.New()
	r.Use(SessionMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		seen.ginValue = c.GetString(SessionKey)
		seen.ctxValue = GetSessionID(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r, &seen
}

func TestSessionMiddleware(t *testing.T) {
	t.Run("reuses the caller's session id", func(t *testing.T) {
		r, seen := sessionTestRouter()

		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Session-Id", "abc123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "abc123", seen.ginValue)
		assert.Equal(t, "abc123", seen.ctxValue)
		assert.Equal(t, "abc123", w.Header().Get("X-Session-Id"))
	})

	t.Run("mints an id when the header is missing", func(t *testing.T) {
		r, seen := sessionTestRouter()

		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.NotEmpty(t, seen.ginValue)
		assert.Equal(t, seen.ginValue, w.Header().Get("X-Session-Id"))
	})

	t.Run("a blank header is treated as missing", func(t *testing.T) {
		r, seen := sessionTestRouter()

		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Session-Id", "   ")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.NotEqual(t, "   ", seen.ginValue)
		assert.NotEmpty(t, seen.ginValue)
	})
}
