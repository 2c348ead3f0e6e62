package middleware

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tofrito/till-api/internal/domain/repository"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyKeyTTL is how long keys are valid
	IdempotencyKeyTTL = 24 * time.Hour

	idempotencyKeyPrefix = "idempotency:"
)

// storedResponse is the cached response kept under an idempotency key.
type storedResponse struct {
	Code      int       `json:"code"`
	Body      string    `json:"body"`
	Endpoint  string    `json:"endpoint"`
	ExpiresAt time.Time `json:"expires_at"`
}

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency prevents a double-tapped confirm from producing two
// transactions: a repeated Idempotency-Key replays the stored response
// instead of re-running the handler. Cached responses live in the same
// KV store as the ledger.
func Idempotency(store repository.KVStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != "POST" && c.Request.Method != "PUT" && c.Request.Method != "PATCH" {
			c.Next()
			return
		}

		idempotencyKey := c.GetHeader(IdempotencyKeyHeader)
		if idempotencyKey == "" {
			// No idempotency key provided, proceed normally
			c.Next()
			return
		}

		storeKey := idempotencyKeyPrefix + idempotencyKey
		ctx := c.Request.Context()

		if data, found, err := store.Get(ctx, storeKey); err == nil && found {
			var cached storedResponse
			if err := json.Unmarshal(data, &cached); err == nil && time.Now().Before(cached.ExpiresAt) {
				c.Header("X-Idempotency-Replayed", "true")
				c.Data(cached.Code, "application/json", []byte(cached.Body))
				c.Abort()
				return
			}
		}

		// Capture the response
		blw := &responseWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		// Only successful responses are cached. A failed confirm (empty
		// cart, checkout not ready) must stay retryable under the same
		// tap id once the precondition is fixed.
		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			return
		}

		cached := storedResponse{
			Code:      status,
			Body:      blw.body.String(),
			Endpoint:  c.Request.Method + " " + c.FullPath(),
			ExpiresAt: time.Now().Add(IdempotencyKeyTTL),
		}
		if data, err := json.Marshal(cached); err == nil {
			_ = store.Set(ctx, storeKey, data)
		}
	}
}
