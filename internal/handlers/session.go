package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const sessionUserKey = "username"

// RequireAdmin gates mutating admin routes. No redirect on failure: the
// caller gets a plain 403.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if sessions.Default(c).Get(sessionUserKey) == nil {
			c.String(http.StatusForbidden, "forbidden")
			c.Abort()
			return
		}
		c.Next()
	}
}

func currentAdmin(c *gin.Context) (string, bool) {
	v := sessions.Default(c).Get(sessionUserKey)
	name, ok := v.(string)
	return name, ok
}
