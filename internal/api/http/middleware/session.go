package middleware

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// sessionIDKey is the key used to store the session ID in context
type sessionIDKey struct{}

// SessionKey is the gin context key for the browser session ID.
const SessionKey = "session_id"

// SessionMiddleware scopes every request to a browser session, the unit the
// project store is partitioned by.
// - Reads X-Session-Id header if present
// - Otherwise mints a new one
// - Stores it in both Gin context and standard context as "session_id"
// - Echoes it back in response header X-Session-Id
// - Logs request details (method, path, status, latency)
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := c.GetHeader("X-Session-Id")
		if strings.TrimSpace(sid) == "" {
			sid = newSessionID()
		}

		c.Set(SessionKey, sid)

		ctx := context.WithValue(c.Request.Context(), sessionIDKey{}, sid)
		c.Request = c.Request.WithContext(ctx)

		c.Writer.Header().Set("X-Session-Id", sid)

		start := time.Now()
		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		log.Printf(
			"[req] session=%s method=%s path=%s status=%d latency=%s",
			sid,
			c.Request.Method,
			c.Request.URL.Path,
			status,
			latency,
		)
	}
}

// GetSessionID extracts the session ID from a standard context
func GetSessionID(ctx context.Context) string {
	if sid, ok := ctx.Value(sessionIDKey{}).(string); ok {
		return sid
	}
	return ""
}

func newSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err == nil {
		return hex.EncodeToString(b)
	}
	// fallback (should be rare)
	return time.Now().Format("20060102T150405.000000000")
}
