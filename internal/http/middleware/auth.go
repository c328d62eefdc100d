package middleware

import (
	"net/http"
	"net/url"

	"admin/internal/session"
	"admin/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	sessionKey   = "session"
	sessionIDKey = "sessionID"
	userRoleKey  = "userRole"
)

// SessionCookie describes the cookie that carries the opaque session id.
type SessionCookie struct {
	Name   string
	MaxAge int
	Secure bool
}

func (sc SessionCookie) Set(c *gin.Context, id string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sc.Name, id, sc.MaxAge, "/", "", sc.Secure, true)
}

func (sc SessionCookie) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sc.Name, "", -1, "/", "", sc.Secure, true)
}

// LoadSession restores the session named by the cookie and makes it
// available to handlers and to the API client through the request context.
func LoadSession(m *session.Manager, cookie SessionCookie) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := c.Cookie(cookie.Name)
		s := m.Restore(c.Request.Context(), id)
		if id != "" && !s.IsAuthenticated() {
			cookie.Clear(c)
		}
		c.Set(sessionKey, s)
		if s.IsAuthenticated() {
			c.Set(sessionIDKey, s.ID())
			c.Set(userRoleKey, s.User().Role)
		}
		c.Request = c.Request.WithContext(session.WithSession(c.Request.Context(), s))
		c.Next()
	}
}

// CurrentSession returns the session loaded for this request.
func CurrentSession(c *gin.Context) *session.Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(*session.Session); ok {
			return s
		}
	}
	return session.NewAnonymous()
}

// SessionID is the id the session had when the request arrived. It stays
// available after the session is invalidated mid-request.
func SessionID(c *gin.Context) string {
	return c.GetString(sessionIDKey)
}

// RequireSession redirects anonymous visitors to the login page, remembering
// where they were going.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentSession(c).IsAuthenticated() {
			c.Next()
			return
		}
		c.Redirect(http.StatusSeeOther, LoginURL(ReturnPath(c)))
		c.Abort()
	}
}

// LoginURL builds /prijava?from=<path>.
func LoginURL(from string) string {
	if from == "" || from == "/" {
		return "/prijava"
	}
	return "/prijava?from=" + url.QueryEscape(from)
}

// ReturnPath is where the user should land after signing in. Non-GET
// requests cannot be replayed, so they fall back to the local page that
// posted them, or to "/".
func ReturnPath(c *gin.Context) string {
	if c.Request.Method == http.MethodGet {
		return c.Request.URL.RequestURI()
	}
	ref, err := url.Parse(c.Request.Referer())
	if err != nil || ref.Path == "" {
		return "/"
	}
	if ref.RawQuery != "" {
		return utils.SafeLocalPath(ref.Path+"?"+ref.RawQuery, "/")
	}
	return utils.SafeLocalPath(ref.Path, "/")
}
