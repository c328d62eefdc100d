package handlers

import (
	"context"
	"net/http"
	"strings"

	"admin/internal/domain"
	"admin/internal/domain/models"
	"admin/internal/repositories"
	"admin/internal/screen"
	"admin/internal/utils"

	"github.com/gin-gonic/gin"
)

// taxonomyPages serves one category list: a single page with a create form,
// inline edit forms and guarded deletes.
type taxonomyPages struct {
	h     *Handlers
	path  string
	title string
	tax   repositories.Taxonomy
}

func (t taxonomyPages) open(c *gin.Context) *screen.List[models.Category] {
	return screen.Open(t.h.Screens, sessionID(c), "list:"+t.path, func() *screen.List[models.Category] {
		return screen.NewList(ctxOf(c), func(ctx context.Context, _ screen.Query) (domain.Paginated[models.Category], error) {
			return t.tax.Page(ctx)
		}, t.h.Debounce)
	})
}

func (t taxonomyPages) view(st screen.ListState[models.Category]) CategoriesView {
	v := CategoriesView{Title: t.title, Path: t.path, CreateURL: t.path}
	for _, cat := range st.Items {
		v.Rows = append(v.Rows, CategoryRow{
			ID:         cat.ID,
			Name:       cat.Name,
			Icon:       cat.Icon,
			Slug:       cat.Slug,
			Dependents: count(cat.Dependents()) + " " + t.tax.DependentsLabel(),
			Created:    utils.FormatDate(cat.CreatedAt),
			EditURL:    t.path + "/" + cat.ID,
			DeleteURL:  t.path + "/" + cat.ID + "/obrisi",
		})
	}
	if st.Err != nil {
		v.Error = errorMessage(st.Err)
	}
	return v
}

func (t taxonomyPages) index(c *gin.Context) {
	st := t.open(c).Apply(ctxOf(c), "", "", 1)
	if domain.IsUnauthorized(st.Err) {
		t.h.fail(c, st.Err)
		return
	}
	t.h.page(c, http.StatusOK, "categories", t.title, t.view(st))
}

func (t taxonomyPages) create(c *gin.Context) {
	var in models.CategoryInput
	err := c.ShouldBind(&in)
	if err != nil {
		err = domain.ValidationError{Field: "name", Msg: "naziv i ikonica su obavezni", Err: err}
	} else {
		_, err = t.tax.Create(ctxOf(c), in)
	}
	switch {
	case err == nil:
		t.h.logger(c).Info().Str("taxonomy", t.path).Str("name", in.Name).Msg("category created")
		t.h.flashRedirect(c, t.path, "ok", "Kategorija je dodata.")
	case inline(err):
		st := t.open(c).State()
		v := t.view(st)
		v.Name, v.Icon = in.Name, in.Icon
		v.Error = errorMessage(err)
		t.h.page(c, inlineStatus(err), "categories", t.title, v)
	default:
		t.h.fail(c, err)
	}
}

func (t taxonomyPages) detail() detailSpec[models.Category] {
	return detailSpec[models.Category]{
		path:            t.path,
		title:           t.title,
		load:            t.tax.Get,
		remove:          t.tax.Remove,
		name:            func(cat models.Category) string { return cat.Name },
		dependents:      models.Category.Dependents,
		dependentsLabel: t.tax.DependentsLabel(),
		afterDelete:     t.path,
		cancel:          t.path,
		afterMutate:     t.path,
		view: func(c *gin.Context, st screen.DetailState[models.Category]) DetailView {
			cat := st.Entity
			base := t.path + "/" + idParam(c)
			return DetailView{
				Title:     strings.TrimSpace(cat.Icon + " " + cat.Name),
				Subtitle:  cat.Slug,
				BackURL:   t.path,
				BackLabel: t.title,
				DeleteURL: base + "/obrisi",
				Busy:      st.Busy,
				Sections: []Section{{Fields: []Field{
					{Label: "Povezano", Value: count(cat.Dependents()) + " " + t.tax.DependentsLabel()},
					{Label: "Kreirano", Value: utils.FormatDateTime(cat.CreatedAt)},
				}}},
				Forms: []Form{{
					Title:  "Izmena",
					URL:    base,
					Submit: "Sačuvaj",
					Fields: []FormField{
						{Name: "icon", Label: "Ikona", Type: "text", Value: cat.Icon, Required: true},
						{Name: "name", Label: "Naziv", Type: "text", Value: cat.Name, Required: true},
					},
				}},
			}
		},
	}
}

// categoryPatch keeps only submitted fields that differ from cur.
func categoryPatch(c *gin.Context, cur models.Category) models.CategoryPatch {
	var p models.CategoryPatch
	if name, ok := c.GetPostForm("name"); ok && strings.TrimSpace(name) != cur.Name {
		p.Name = domain.Ptr(strings.TrimSpace(name))
	}
	if icon, ok := c.GetPostForm("icon"); ok && strings.TrimSpace(icon) != cur.Icon {
		p.Icon = domain.Ptr(strings.TrimSpace(icon))
	}
	return p
}

func (h *Handlers) registerTaxonomy(g gin.IRoutes, path, title string, tax repositories.Taxonomy) {
	t := taxonomyPages{h: h, path: path, title: title, tax: tax}
	ds := t.detail()

	g.GET(path, t.index)
	g.POST(path, t.create)
	g.GET(path+"/:id", serveDetail(h, ds))
	g.POST(path+"/:id", serveMutation(h, ds, "Kategorija je sačuvana.",
		func(c *gin.Context, d *screen.Detail[models.Category], st screen.DetailState[models.Category]) (screen.DetailState[models.Category], error) {
			id := idParam(c)
			p := categoryPatch(c, st.Entity)
			if p.Name == nil && p.Icon == nil {
				return st, screen.ErrNoChange
			}
			return d.Mutate(ctxOf(c), func(ctx context.Context) (models.Category, error) {
				return tax.Update(ctx, id, p)
			})
		}))
	g.GET(path+"/:id/obrisi", serveConfirmDelete(h, ds))
	g.POST(path+"/:id/obrisi", serveDelete(h, ds))
}
