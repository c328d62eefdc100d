package handlers

import (
	"errors"
	"net/http"

	"admin/internal/domain"
	"admin/internal/http/middleware"
	"admin/internal/screen"

	"github.com/gin-gonic/gin"
)

// errorMessage is the text shown to the admin for err.
func errorMessage(err error) string {
	var (
		unauthorized domain.UnauthorizedError
		forbidden    domain.ForbiddenError
		transport    domain.TransportError
		internal     domain.InternalError
	)
	switch {
	case errors.Is(err, screen.ErrBusy):
		return "Izmena je već u toku. Sačekajte da se završi."
	case errors.Is(err, screen.ErrNoChange):
		return "Nema izmena, vrednost je već postavljena."
	case errors.As(err, &unauthorized):
		return "Sesija je istekla. Prijavite se ponovo."
	case errors.As(err, &forbidden):
		return forbidden.Error()
	case errors.As(err, &transport):
		return "Server nije dostupan. Pokušajte ponovo."
	case errors.As(err, &internal):
		return internal.Error()
	case domain.IsNotFound(err):
		return "Traženi zapis ne postoji."
	default:
		return err.Error()
	}
}

// inline reports whether err is shown next to the form that caused it rather
// than replacing the page.
func inline(err error) bool {
	return domain.IsValidation(err) || domain.IsRejected(err) ||
		screen.IsBlocked(err) || errors.Is(err, screen.ErrBusy)
}

func inlineStatus(err error) int {
	if errors.Is(err, screen.ErrBusy) {
		return http.StatusConflict
	}
	return http.StatusUnprocessableEntity
}

// fail maps an error that ends the request to a full response. An expired
// session sends the admin to login and back to where they were afterwards.
func (h *Handlers) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	title := "Greška"
	switch {
	case domain.IsUnauthorized(err):
		h.endSession(c)
		h.redirect(c, middleware.LoginURL(middleware.ReturnPath(c)))
		return
	case domain.IsForbidden(err):
		status, title = http.StatusForbidden, "Zabranjeno"
	case domain.IsNotFound(err):
		status, title = http.StatusNotFound, "Nije pronađeno"
	case inline(err):
		status, title = inlineStatus(err), "Zahtev odbijen"
	case domain.IsTransport(err):
		status, title = http.StatusBadGateway, "Server nije dostupan"
	}
	ev := h.logger(c).Warn()
	if status >= 500 {
		ev = h.logger(c).Error()
	}
	ev.Err(err).Str("path", c.Request.URL.Path).Msg("request failed")

	h.page(c, status, "error", title, ErrorView{
		Status:  status,
		Title:   title,
		Message: errorMessage(err),
		BackURL: "/",
	})
}

// failFragment is fail for live search responses, which the browser script
// swaps into the page.
func (h *Handlers) failFragment(c *gin.Context, err error) {
	if domain.IsUnauthorized(err) {
		h.endSession(c)
		c.Header("X-Redirect", middleware.LoginURL(middleware.ReturnPath(c)))
		c.Status(http.StatusUnauthorized)
		return
	}
	c.HTML(http.StatusOK, "results", ListView{Error: errorMessage(err)})
}

func (h *Handlers) notFound(c *gin.Context, back string) {
	h.page(c, http.StatusNotFound, "error", "Nije pronađeno", ErrorView{
		Status:  http.StatusNotFound,
		Title:   "Nije pronađeno",
		Message: "Traženi zapis ne postoji ili je obrisan.",
		BackURL: back,
	})
}

// NoRoute renders the not-found page for unknown paths.
func (h *Handlers) NoRoute(c *gin.Context) {
	h.notFound(c, "/")
}

// endSession closes the session's screens and clears its cookie. The record
// itself was already removed by the manager when the API rejected the token.
func (h *Handlers) endSession(c *gin.Context) {
	h.Screens.Drop(sessionID(c))
	h.Cookie.Clear(c)
}
