package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// gin context key holding the logged-in username once the guard has run.
const ctxUserKey = "username"

// RequireSession resolves the session cookie to a username and aborts to
// the login page when there is no valid session. Stale cookies are cleared
// on the way out.
func (h *Handlers) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}

		userName, err := h.users.SessionUser(c.Request.Context(), token)
		if err != nil {
			clearSessionCookie(c)
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}

		c.Set(ctxUserKey, userName)
		c.Next()
	}
}

// currentUser returns the logged-in username outside the guarded group,
// or "" when the request carries no usable session.
func (h *Handlers) currentUser(c *gin.Context) string {
	token, err := c.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	userName, err := h.users.SessionUser(c.Request.Context(), token)
	if err != nil {
		return ""
	}
	return userName
}

func setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetCookie(SessionCookie, token, maxAge, "/", "", false, true)
}

func clearSessionCookie(c *gin.Context) {
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
}
