package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// CtxRealIPKey holds the resolved client address.
const CtxRealIPKey = "real_ip"

// proxyHeaders are checked in order; for lists the left-most entry is the client.
var proxyHeaders = []string{"CF-Connecting-IP", "X-Forwarded-For", "X-Real-IP"}

func firstValidIP(v string) (string, bool) {
	first, _, _ := strings.Cut(v, ",")
	ip := net.ParseIP(strings.TrimSpace(first))
	if ip == nil {
		return "", false
	}
	return ip.String(), true
}

// RealIP stores the caller address used for rate limit keys and request logs.
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		for _, h := range proxyHeaders {
			if v, ok := firstValidIP(c.GetHeader(h)); ok {
				ip = v
				break
			}
		}
		c.Set(CtxRealIPKey, ip)
		c.Next()
	}
}
