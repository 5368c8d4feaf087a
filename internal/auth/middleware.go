package auth

import (
	"crypto/subtle"

	"github.com/aibutsu/server/internal/errors"
	"github.com/gin-gonic/gin"
)

// header carrying the administrative token
const adminTokenHeader = "X-ADMIN-TOKEN"

// AdminMiddleware guards administrative routes with a static token.
// End users never authenticate with this service directly; identity
// arrives as an opaque user id issued upstream.
func AdminMiddleware(adminToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader(adminTokenHeader)

		if subtle.ConstantTimeCompare([]byte(provided), []byte(adminToken)) != 1 {
			errors.Unauthorized(c, "admin token required")
			c.Abort()
			return
		}

		c.Next()
	}
}
