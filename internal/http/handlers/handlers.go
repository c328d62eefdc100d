package handlers

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"admin/internal/domain"
	"admin/internal/http/middleware"
	"admin/internal/nav"
	"admin/internal/repositories"
	"admin/internal/screen"
	"admin/internal/services"
	"admin/internal/session"
	"admin/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Deps is everything the handlers need. There is no package state.
type Deps struct {
	Log      zerolog.Logger
	Sessions *session.Manager
	Cookie   middleware.SessionCookie
	Repos    repositories.Repositories
	Screens  *screen.Registry
	Nav      nav.Table
	PageSize int
	Debounce time.Duration
}

type Handlers struct {
	Deps
	exports services.ExportService
}

func New(d Deps) *Handlers {
	if d.PageSize <= 0 {
		d.PageSize = 20
	}
	return &Handlers{
		Deps: d,
		exports: services.ExportService{
			VideoOrders:   d.Repos.VideoOrders,
			MerchOrders:   d.Repos.MerchOrders,
			DigitalOrders: d.Repos.DigitalOrders,
		},
	}
}

// page renders a full page inside the dashboard layout.
func (h *Handlers) page(c *gin.Context, status int, name, title string, content any) {
	s := middleware.CurrentSession(c)
	user := s.User()
	navCookie, _ := c.Cookie(nav.CookieName)
	c.HTML(status, name, Layout{
		Title:     title,
		User:      user,
		Initial:   utils.Initial(user.FullName, user.Email),
		Nav:       h.Nav.Render(c.Request.URL.Path, h.Nav.ParseCollapsed(navCookie)),
		Path:      c.Request.URL.Path,
		Flash:     middleware.GetFlash(c),
		RequestID: middleware.GetRequestID(c),
		Content:   content,
	})
}

func (h *Handlers) redirect(c *gin.Context, to string) {
	c.Redirect(http.StatusSeeOther, to)
}

func (h *Handlers) flashRedirect(c *gin.Context, to, kind, message string) {
	middleware.SetFlash(c, kind, message)
	h.redirect(c, to)
}

// sessionID is the registry key of the current browser session.
func sessionID(c *gin.Context) string {
	return middleware.SessionID(c)
}

func ctxOf(c *gin.Context) context.Context {
	return c.Request.Context()
}

func pageParam(c *gin.Context) int {
	n, err := strconv.Atoi(c.Query("page"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// listURL rebuilds a list URL keeping search and filter.
func listURL(path string, search, filterName, filter string, page int) string {
	q := url.Values{}
	if search != "" {
		q.Set("q", search)
	}
	if filterName != "" && filter != "" {
		q.Set(filterName, filter)
	}
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

func idParam(c *gin.Context) domain.ID {
	return c.Param("id")
}

func requestID(c *gin.Context) string {
	return middleware.GetRequestID(c)
}

// logger returns the request-scoped logger bound by middleware.RequestID.
func (h *Handlers) logger(c *gin.Context) *zerolog.Logger {
	if l := zerolog.Ctx(c.Request.Context()); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &h.Log
}
