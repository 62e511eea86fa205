package middleware

import (
	"net"

	"github.com/gin-gonic/gin"
)

// AllowPrivateIP skips limiting for loopback and private network callers such as
// container health probes.
func AllowPrivateIP() AllowFunc {
	return func(c *gin.Context) bool {
		ip := net.ParseIP(clientIP(c))
		return ip != nil && (ip.IsLoopback() || ip.IsPrivate())
	}
}
