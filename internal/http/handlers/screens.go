package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"admin/internal/domain"
	"admin/internal/screen"

	"github.com/gin-gonic/gin"
)

// listSpec describes one paginated list page and its live search endpoint.
type listSpec[T any] struct {
	path        string
	title       string
	placeholder string
	columns     []string
	filterName  string
	filterLabel string
	filters     func(ctx context.Context) ([]Option, error)
	fetch       screen.Fetcher[T]
	row         func(T) Row
}

func (s listSpec[T]) open(h *Handlers, c *gin.Context, search, filter string) *screen.List[T] {
	return screen.Open(h.Screens, sessionID(c), "list:"+s.path, func() *screen.List[T] {
		l := screen.NewList(ctxOf(c), s.fetch, h.Debounce)
		l.Seed(search, filter)
		return l
	})
}

func (s listSpec[T]) filterValue(c *gin.Context) string {
	if s.filterName == "" {
		return ""
	}
	return c.Query(s.filterName)
}

func (s listSpec[T]) view(st screen.ListState[T]) ListView {
	v := ListView{
		Title:             s.title,
		Path:              s.path,
		SearchURL:         s.path + "/pretraga",
		Search:            st.SearchTerm,
		SearchPlaceholder: s.placeholder,
		FilterName:        s.filterName,
		FilterLabel:       s.filterLabel,
		Table:             Table{Columns: s.columns, Rows: make([]Row, 0, len(st.Items))},
		Loading:           st.Loading,
		Pager: Pager{
			Show:       st.ShowPagination(),
			Page:       st.Page,
			TotalPages: st.TotalPages,
		},
	}
	for _, it := range st.Items {
		v.Table.Rows = append(v.Table.Rows, s.row(it))
	}
	if st.CanPrev() {
		v.Pager.PrevURL = listURL(s.path, st.SearchTerm, s.filterName, st.FilterValue, st.Page-1)
	}
	if st.CanNext() {
		v.Pager.NextURL = listURL(s.path, st.SearchTerm, s.filterName, st.FilterValue, st.Page+1)
	}
	if st.Err != nil {
		v.Error = errorMessage(st.Err)
	}
	return v
}

// serveList renders the list page for the criteria in the URL.
func serveList[T any](h *Handlers, s listSpec[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		search, filter := c.Query("q"), s.filterValue(c)
		l := s.open(h, c, search, filter)
		st := l.Apply(ctxOf(c), search, filter, pageParam(c))
		if domain.IsUnauthorized(st.Err) {
			h.fail(c, st.Err)
			return
		}
		v := s.view(st)
		if s.filters != nil {
			opts, err := s.filters(ctxOf(c))
			if domain.IsUnauthorized(err) {
				h.fail(c, err)
				return
			}
			if err != nil && v.Error == "" {
				v.Error = errorMessage(err)
			}
			v.Filters = selectOption(opts, st.FilterValue)
		}
		h.page(c, http.StatusOK, "list", s.title, v)
	}
}

// serveSearch answers a live search keystroke with the results fragment once
// typing pauses. Keystrokes superseded by later ones get 204.
func serveSearch[T any](h *Handlers, s listSpec[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		l := s.open(h, c, "", s.filterValue(c))
		st, ok := l.Type(ctxOf(c), c.Query("q"))
		if !ok {
			c.Status(http.StatusNoContent)
			return
		}
		if domain.IsUnauthorized(st.Err) {
			h.failFragment(c, st.Err)
			return
		}
		c.HTML(http.StatusOK, "results", s.view(st))
	}
}

func selectOption(opts []Option, value string) []Option {
	out := make([]Option, len(opts))
	for i, o := range opts {
		o.Selected = o.Value == value
		out[i] = o
	}
	return out
}

// detailSpec describes one detail page, its mutations and its delete flow.
type detailSpec[D any] struct {
	path  string
	title string
	load  func(ctx context.Context, id domain.ID) (D, error)
	view  func(c *gin.Context, st screen.DetailState[D]) DetailView

	// Delete support; remove is nil for families that cannot be deleted.
	remove          func(ctx context.Context, id domain.ID) error
	name            func(D) string
	dependents      func(D) int
	dependentsLabel string
	// afterDelete is the list the admin lands on; cancel defaults to the
	// detail page.
	afterDelete string
	cancel      string
	// afterMutate overrides the detail page as the target after a
	// successful mutation.
	afterMutate string
}

func (s detailSpec[D]) key(id domain.ID) string {
	return "detail:" + s.path + "/" + id
}

func (s detailSpec[D]) url(id domain.ID) string {
	return s.path + "/" + id
}

func (s detailSpec[D]) open(h *Handlers, c *gin.Context) *screen.Detail[D] {
	id := idParam(c)
	return screen.Open(h.Screens, sessionID(c), s.key(id), func() *screen.Detail[D] {
		return screen.NewDetail(func(ctx context.Context) (D, error) {
			return s.load(ctx, id)
		})
	})
}

// loaded returns the screen state, fetching the entity when the screen is
// new. It writes the response and returns false when nothing can be shown.
func (s detailSpec[D]) loaded(h *Handlers, c *gin.Context, d *screen.Detail[D], refresh bool) (screen.DetailState[D], bool) {
	st := d.State()
	if refresh || !st.Loaded {
		st = d.Load(ctxOf(c))
	}
	switch {
	case st.NotFound:
		h.notFound(c, s.path)
		return st, false
	case domain.IsUnauthorized(st.Err), !st.Loaded && st.Err != nil:
		h.fail(c, st.Err)
		return st, false
	}
	return st, true
}

func serveDetail[D any](h *Handlers, s detailSpec[D]) gin.HandlerFunc {
	return func(c *gin.Context) {
		st, ok := s.loaded(h, c, s.open(h, c), true)
		if !ok {
			return
		}
		v := s.view(c, st)
		if st.Err != nil {
			v.Error = errorMessage(st.Err)
		}
		h.page(c, http.StatusOK, "detail", v.Title, v)
	}
}

// mutation is one POST action on a detail screen.
type mutation[D any] func(c *gin.Context, d *screen.Detail[D], st screen.DetailState[D]) (screen.DetailState[D], error)

// serveMutation runs m and redirects back to the detail page with a flash.
// Errors the admin can fix are shown inline on the re-rendered page.
func serveMutation[D any](h *Handlers, s detailSpec[D], done string, m mutation[D]) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := idParam(c)
		d := s.open(h, c)
		st, ok := s.loaded(h, c, d, false)
		if !ok {
			return
		}
		st, err := m(c, d, st)
		to := s.afterMutate
		if to == "" {
			to = s.url(id)
		}
		switch {
		case err == nil:
			h.logger(c).Info().Str("entity", s.url(id)).Msg(done)
			h.flashRedirect(c, to, "ok", done)
		case errors.Is(err, screen.ErrNoChange):
			h.flashRedirect(c, to, "info", errorMessage(err))
		case errors.Is(err, screen.ErrClosed):
			h.redirect(c, s.url(id))
		case domain.IsNotFound(err):
			h.notFound(c, s.path)
		case inline(err):
			v := s.view(c, st)
			v.Error = errorMessage(err)
			h.page(c, inlineStatus(err), "detail", v.Title, v)
		default:
			h.fail(c, err)
		}
	}
}

func (s detailSpec[D]) deleteRequest(st screen.DetailState[D], confirmed bool) screen.DeleteRequest {
	req := screen.DeleteRequest{Confirmed: confirmed, DependentsLabel: s.dependentsLabel}
	if s.name != nil {
		req.Name = s.name(st.Entity)
	}
	if s.dependents != nil {
		req.Dependents = s.dependents(st.Entity)
	}
	return req
}

func (s detailSpec[D]) confirmView(id domain.ID, req screen.DeleteRequest) ConfirmView {
	cancel := s.cancel
	if cancel == "" {
		cancel = s.url(id)
	}
	v := ConfirmView{
		Title:     "Brisanje",
		Message:   fmt.Sprintf("Da li ste sigurni da želite da obrišete \"%s\"? Ova akcija se ne može poništiti.", req.Name),
		ActionURL: s.url(id) + "/obrisi",
		CancelURL: cancel,
	}
	if req.Dependents > 0 {
		v.Blocked = true
		v.Error = screen.BlockedError{Name: req.Name, Dependents: req.Dependents, Label: req.DependentsLabel}.Error()
	}
	return v
}

// serveConfirmDelete shows the confirmation page, or explains why the entity
// cannot be deleted yet.
func serveConfirmDelete[D any](h *Handlers, s detailSpec[D]) gin.HandlerFunc {
	return func(c *gin.Context) {
		st, ok := s.loaded(h, c, s.open(h, c), true)
		if !ok {
			return
		}
		h.page(c, http.StatusOK, "confirm", "Brisanje", s.confirmView(idParam(c), s.deleteRequest(st, false)))
	}
}

// serveDelete performs a confirmed delete and sends the admin to the list.
func serveDelete[D any](h *Handlers, s detailSpec[D]) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := idParam(c)
		d := s.open(h, c)
		st, ok := s.loaded(h, c, d, false)
		if !ok {
			return
		}
		req := s.deleteRequest(st, c.PostForm("confirm") == "yes")
		err := d.Delete(ctxOf(c), req, func(ctx context.Context) error {
			return s.remove(ctx, id)
		})
		switch {
		case err == nil:
			h.Screens.Forget(sessionID(c), s.key(id))
			h.logger(c).Info().Str("entity", s.url(id)).Msg("deleted")
			h.flashRedirect(c, s.afterDelete, "ok", fmt.Sprintf("\"%s\" je obrisan.", req.Name))
		case errors.Is(err, screen.ErrNotConfirmed):
			h.redirect(c, s.url(id)+"/obrisi")
		case errors.Is(err, screen.ErrClosed):
			h.redirect(c, s.afterDelete)
		case domain.IsNotFound(err):
			h.notFound(c, s.afterDelete)
		case inline(err):
			v := s.confirmView(id, req)
			if v.Error == "" {
				v.Error = errorMessage(err)
			}
			h.page(c, inlineStatus(err), "confirm", "Brisanje", v)
		default:
			h.fail(c, err)
		}
	}
}

// routes registers list, search, detail and delete routes of one family.
// Mutations are registered by the family itself.
func routes[T, D any](g gin.IRoutes, h *Handlers, ls listSpec[T], ds detailSpec[D]) {
	base := ls.path
	g.GET(base, serveList(h, ls))
	g.GET(base+"/pretraga", serveSearch(h, ls))
	g.GET(base+"/:id", serveDetail(h, ds))
	if ds.remove != nil {
		g.GET(base+"/:id/obrisi", serveConfirmDelete(h, ds))
		g.POST(base+"/:id/obrisi", serveDelete(h, ds))
	}
}
