package handlers

import (
	"net/http"

	"admin/internal/nav"
	"admin/internal/utils"

	"github.com/gin-gonic/gin"
)

// ToggleNavGroup flips a sidebar group and returns to the page it was
// clicked on.
func (h *Handlers) ToggleNavGroup(c *gin.Context) {
	key := c.Param("group")
	back := utils.SafeLocalPath(c.PostForm("from"), "/")
	if !h.Nav.HasGroup(key) {
		h.redirect(c, back)
		return
	}
	raw, _ := c.Cookie(nav.CookieName)
	set := nav.Toggle(h.Nav.ParseCollapsed(raw), key)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(nav.CookieName, nav.EncodeCollapsed(set), 365*24*3600, "/", "", h.Cookie.Secure, true)
	h.redirect(c, back)
}
