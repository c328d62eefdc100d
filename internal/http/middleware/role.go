package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RequireRoles only lets through sessions whose role is listed. It expects
// LoadSession to have stored the role under "userRole".
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[strings.ToLower(strings.TrimSpace(r))] = struct{}{}
	}

	return func(c *gin.Context) {
		role := strings.ToLower(strings.TrimSpace(c.GetString(userRoleKey)))
		if role == "" {
			c.Redirect(http.StatusSeeOther, LoginURL(ReturnPath(c)))
			c.Abort()
			return
		}
		if _, ok := allowed[role]; !ok {
			c.String(http.StatusForbidden, "Pristup odbijen. Samo administratori mogu pristupiti.")
			c.Abort()
			return
		}
		c.Next()
	}
}
