package handlers

import (
	"errors"
	"net/http"
	"strings"

	"admin/internal/domain"
	"admin/internal/domain/models"
	"admin/internal/http/middleware"
	"admin/internal/utils"

	"github.com/gin-gonic/gin"
)

func (h *Handlers) loginPage(c *gin.Context, status int, v LoginView) {
	c.HTML(status, "login", Layout{
		Title:     "Prijava",
		Flash:     middleware.GetFlash(c),
		RequestID: middleware.GetRequestID(c),
		Content:   v,
	})
}

// LoginForm shows the login page, or skips it for an active session.
func (h *Handlers) LoginForm(c *gin.Context) {
	from := utils.SafeLocalPath(c.Query("from"), "/")
	if middleware.CurrentSession(c).IsAuthenticated() {
		h.redirect(c, from)
		return
	}
	h.loginPage(c, http.StatusOK, LoginView{From: from})
}

// Login authenticates against the API and, for admins only, opens a session.
func (h *Handlers) Login(c *gin.Context) {
	from := utils.SafeLocalPath(c.PostForm("from"), "/")
	var creds models.Credentials
	if err := c.ShouldBind(&creds); err != nil {
		h.loginPage(c, http.StatusUnprocessableEntity, LoginView{
			From:  from,
			Email: strings.TrimSpace(c.PostForm("email")),
			Error: "Unesite email i lozinku.",
		})
		return
	}

	s := middleware.CurrentSession(c)
	if err := h.Sessions.Login(ctxOf(c), s, creds); err != nil {
		status := http.StatusUnauthorized
		switch {
		case domain.IsForbidden(err):
			status = http.StatusForbidden
		case domain.IsTransport(err):
			status = http.StatusBadGateway
		}
		h.Cookie.Clear(c)
		h.logger(c).Warn().Err(err).Str("email", creds.Email).Msg("login failed")
		h.loginPage(c, status, LoginView{From: from, Email: creds.Email, Error: loginMessage(err)})
		return
	}

	h.Cookie.Set(c, s.ID())
	h.logger(c).Info().Str("user_id", s.User().ID).Msg("admin logged in")
	h.redirect(c, from)
}

func loginMessage(err error) string {
	var unauthorized domain.UnauthorizedError
	switch {
	case domain.IsForbidden(err), domain.IsValidation(err), domain.IsRejected(err):
		return err.Error()
	case errors.As(err, &unauthorized):
		if unauthorized.Msg != "" {
			return unauthorized.Msg
		}
		return "Pogrešan email ili lozinka."
	}
	return errorMessage(err)
}

// Logout ends the session locally even when the API cannot be reached.
func (h *Handlers) Logout(c *gin.Context) {
	h.Screens.Drop(sessionID(c))
	h.Sessions.Logout(ctxOf(c), middleware.CurrentSession(c))
	h.Cookie.Clear(c)
	h.redirect(c, "/prijava")
}
