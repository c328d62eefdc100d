package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	flashCookie = "viveo_flash"
	flashKey    = "flash"
)

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Kind    string
	Message string
}

// SetFlash stores a message for the next request.
func SetFlash(c *gin.Context, kind, message string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, url.QueryEscape(kind+"|"+message), 60, "/", "", false, true)
}

// Flashes moves the flash cookie into the context and clears it.
func Flashes() gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw, err := c.Cookie(flashCookie); err == nil && raw != "" {
			if v, err := url.QueryUnescape(raw); err == nil {
				kind, msg, _ := strings.Cut(v, "|")
				c.Set(flashKey, &Flash{Kind: kind, Message: msg})
			}
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(flashCookie, "", -1, "/", "", false, true)
		}
		c.Next()
	}
}

func GetFlash(c *gin.Context) *Flash {
	if v, ok := c.Get(flashKey); ok {
		if f, ok := v.(*Flash); ok {
			return f
		}
	}
	return nil
}
