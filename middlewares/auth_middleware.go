package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/intranet-portal/utils"
)

// SessionAuth admits requests carrying a valid session cookie whose system
// may reach the route. Browsers without a session are sent to the login
// page; sessions of another system get 403.
func SessionAuth(secret []byte, access *AccessEnforcer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(utils.SessionCookieName)
		if err != nil || token == "" {
			redirectToLogin(c)
			return
		}

		claims, err := utils.ParseSessionToken(secret, token)
		if err != nil {
			utils.InfoLogger.Debugf("Rejected session on %s: %v", c.Request.URL.Path, err)
			redirectToLogin(c)
			return
		}

		allowed, err := access.Allow(claims.System, c.Request.URL.Path, c.Request.Method)
		if err != nil {
			utils.ErrorLogger.Printf("Error checking access for %s: %v", claims.System, err)
			c.String(http.StatusInternalServerError, "Erro ao verificar permissões.")
			c.Abort()
			return
		}
		if !allowed {
			c.String(http.StatusForbidden, "Acesso negado.")
			c.Abort()
			return
		}

		c.Set("system", claims.System)
		c.Next()
	}
}

func redirectToLogin(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/login")
	c.Abort()
}
