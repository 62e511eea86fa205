package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/employee-hierarchy-api/pkg/helpers"
	"github.com/oksasatya/employee-hierarchy-api/pkg/response"
)

const (
	CtxUserIDKey   = "userID"
	CtxUsernameKey = "userName"
	CtxEmailKey    = "userEmail"
)

// Auth validates the bearer access token and sets userID, userName and userEmail in
// the Gin context on success.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			c.Header("WWW-Authenticate", `Bearer`)
			response.Error(c, http.StatusUnauthorized, "missing bearer token", nil)
			return
		}
		claims, err := jwt.Parse(strings.TrimSpace(token))
		if err != nil {
			c.Header("WWW-Authenticate", `Bearer error="invalid_token"`)
			response.Error(c, http.StatusUnauthorized, "invalid access token", nil)
			return
		}
		c.Set(CtxUserIDKey, claims.Subject)
		c.Set(CtxUsernameKey, claims.UniqueName)
		c.Set(CtxEmailKey, claims.Email)
		c.Next()
	}
}
