package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/DannielJohn120/Employee-Leave-Management-Project/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// IdempotentResponse is what handlers cache under the idempotency key so a
// replay can reproduce the original status and payload.
type IdempotentResponse struct {
	Status int             `json:"status"`
	Body   json.RawMessage `json:"body"`
}

// Idempotency replays the cached response for a repeated Idempotency-Key and
// rejects a key whose first request is still in flight.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		userID := c.GetString("user_id_validated")

		if rdb == nil || idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), userID, idempKey)
		lockKey := cacheKey + ":lock"

		val, err := rdb.Get(c.Request.Context(), cacheKey).Result()
		if err == nil {
			var cached IdempotentResponse
			// An unreadable entry falls through to normal processing
			if jsonErr := json.Unmarshal([]byte(val), &cached); jsonErr == nil && cached.Status != 0 {
				response.Success(c, cached.Status, cached.Body, nil)
				c.Abort()
				return
			}
		}

		// Short expiry so a crashed server releases the lock on its own
		isNew, _ := rdb.SetNX(c.Request.Context(), lockKey, "locked", 30*time.Second).Result()

		if !isNew {
			response.Error(c, http.StatusConflict, "PROCESSING",
				"Your request is still being processed, please wait.", nil)
			c.Abort()
			return
		}

		// Handler deletes the lock and fills the cache once it finishes
		c.Set("idempotency_cache_key", cacheKey)
		c.Set("idempotency_lock_key", lockKey)

		c.Next()
	}
}
