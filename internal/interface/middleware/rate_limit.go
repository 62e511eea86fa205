package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/employee-hierarchy-api/pkg/response"
)

// KeyFunc derives the bucket a request is counted in.
type KeyFunc func(c *gin.Context) string

// AllowFunc returns true to skip counting the request.
type AllowFunc func(*gin.Context) bool

func clientIP(c *gin.Context) string {
	if ip := c.GetString(CtxRealIPKey); ip != "" {
		return ip
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}

func routeOf(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return c.Request.URL.Path
}

func KeyByIP() KeyFunc {
	return func(c *gin.Context) string { return "rl:ip:" + clientIP(c) }
}

// KeyByIPAndPath keeps a separate bucket per route, so a noisy login client does
// not drain the allowance of other endpoints.
func KeyByIPAndPath() KeyFunc {
	return func(c *gin.Context) string { return "rl:route:" + routeOf(c) + ":ip:" + clientIP(c) }
}

// KeyByUserID counts authenticated callers by subject and falls back to the IP.
func KeyByUserID() KeyFunc {
	return func(c *gin.Context) string {
		if uid := c.GetString(CtxUserIDKey); uid != "" {
			return "rl:user:" + uid
		}
		return "rl:user:anon:ip:" + clientIP(c)
	}
}

// hitScript returns {count, remaining window in ms} after counting one hit.
var hitScript = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if n == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {n, redis.call("PTTL", KEYS[1])}
`)

type window struct {
	count int64
	reset time.Duration
}

func hit(c *gin.Context, rdb *redis.Client, key string, size time.Duration) (window, error) {
	vals, err := hitScript.Run(c.Request.Context(), rdb, []string{key}, size.Milliseconds()).Int64Slice()
	if err != nil {
		return window{}, err
	}
	w := window{count: vals[0]}
	if len(vals) > 1 && vals[1] > 0 {
		w.reset = time.Duration(vals[1]) * time.Millisecond
	}
	return w, nil
}

// RateLimit allows limit requests per key in fixed windows kept in redis. A nil client
// disables limiting and redis errors let the request through.
func RateLimit(rdb *redis.Client, limit int, size time.Duration, keyFn KeyFunc, allow AllowFunc) gin.HandlerFunc {
	if rdb == nil || limit <= 0 || size <= 0 || keyFn == nil {
		return func(c *gin.Context) { c.Next() }
	}
	allowed := int64(limit)
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions || (allow != nil && allow(c)) {
			c.Next()
			return
		}

		w, err := hit(c, rdb, keyFn(c), size)
		if err != nil {
			c.Next()
			return
		}

		resetSec := int(w.reset.Round(time.Second) / time.Second)
		c.Header("X-RateLimit-Limit", strconv.FormatInt(allowed, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(max(allowed-w.count, 0), 10))
		c.Header("X-RateLimit-Reset", strconv.Itoa(resetSec))

		if w.count > allowed {
			if resetSec > 0 {
				c.Header("Retry-After", strconv.Itoa(resetSec))
			}
			response.Error(c, http.StatusTooManyRequests, "rate limit exceeded", nil)
			return
		}
		c.Next()
	}
}
