package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"

	apperr "vaultchat-backend/pkg/errors"
	"vaultchat-backend/pkg/response"
)

// RequireAdmin gates a route group behind a static bearer token. If
// adminToken is empty the admin surface is treated as unconfigured and
// every request is rejected with 503, distinguishing "nobody set this up"
// from "you guessed wrong".
func RequireAdmin(adminToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if adminToken == "" {
			response.Error(c, apperr.ServiceUnavailable("admin access is not configured"))
			c.Abort()
			return
		}

		header := c.GetHeader("Authorization")
		const prefix = "Bearer "
		if !strings.HasPrefix(header, prefix) {
			response.Error(c, apperr.Unauthorized("missing bearer token"))
			c.Abort()
			return
		}

		token := strings.TrimPrefix(header, prefix)
		if subtle.ConstantTimeCompare([]byte(token), []byte(adminToken)) != 1 {
			response.Error(c, apperr.Unauthorized("invalid admin token"))
			c.Abort()
			return
		}

		c.Next()
	}
}
