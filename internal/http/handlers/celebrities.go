package handlers

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"admin/internal/domain"
	"admin/internal/domain/models"
	"admin/internal/screen"
	"admin/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func (h *Handlers) celebrityList() listSpec[models.CelebrityListItem] {
	return listSpec[models.CelebrityListItem]{
		path:        "/zvezde",
		title:       "Zvezde",
		placeholder: "Pretraži zvezde...",
		columns:     []string{"Zvezda", "Cena", "Ocena", "Narudžbine", "Zarada", "Verifikacija", "Zahtevi"},
		filterName:  "category",
		filterLabel: "Kategorija",
		filters:     categoryOptions(h.Repos.Categories.All),
		fetch: func(ctx context.Context, q screen.Query) (domain.Paginated[models.CelebrityListItem], error) {
			return h.Repos.Celebrities.Find(ctx, models.CelebrityFilter{Page: q.Page, PageSize: h.PageSize, Search: q.Search, Category: q.Filter})
		},
		row: func(c models.CelebrityListItem) Row {
			return Row{Href: "/zvezde/" + c.ID, Cells: []Cell{
				{Text: c.Name, Sub: c.CategoryName, Image: image(&c.Image, c.Name)},
				{Text: utils.FormatPrice(c.Price)},
				{Text: fmt.Sprintf("%.1f", c.Rating), Sub: count(c.ReviewCount) + " recenzija"},
				{Text: count(c.TotalOrders)},
				{Text: utils.FormatPrice(c.TotalEarnings)},
				flagCell(c.Verified, "Verifikovan", "Nije verifikovan"),
				flagCell(c.AcceptingRequests, "Aktivan", "Neaktivan"),
			}}
		},
	}
}

func (h *Handlers) celebrityDetail() detailSpec[models.CelebrityDetail] {
	return detailSpec[models.CelebrityDetail]{
		path:        "/zvezde",
		title:       "Zvezde",
		load:        h.Repos.Celebrities.Get,
		remove:      h.Repos.Celebrities.Remove,
		name:        func(c models.CelebrityDetail) string { return c.Name },
		afterDelete: "/zvezde",
		view: func(c *gin.Context, st screen.DetailState[models.CelebrityDetail]) DetailView {
			celeb := st.Entity
			base := "/zvezde/" + idParam(c)

			videoTypes := &Table{Columns: []string{"Tip", "Povod"}}
			for _, vt := range celeb.VideoTypes {
				videoTypes.Rows = append(videoTypes.Rows, Row{Cells: []Cell{
					{Text: strings.TrimSpace(vt.Emoji + " " + vt.Title)},
					{Text: vt.Occasion},
				}})
			}
			orders := &Table{Columns: []string{"Kupac", "Datum", "Status"}}
			for _, o := range celeb.RecentOrders {
				orders.Rows = append(orders.Rows, Row{Href: "/narudzbine/" + o.ID, Cells: []Cell{
					{Text: o.BuyerName, Sub: o.VideoType},
					{Text: utils.FormatDate(o.CreatedAt)},
					statusCell(o.Status, models.VideoOrderStatusLabels),
				}})
			}

			badge, kind := "Nije verifikovan", ""
			if celeb.Verified {
				badge, kind = "Verifikovan", "ok"
			}
			return DetailView{
				Title:     celeb.Name,
				Subtitle:  "/" + celeb.Slug + " · " + celeb.CategoryName,
				Image:     image(&celeb.Image, celeb.Name),
				Badge:     badge,
				BadgeKind: kind,
				BackURL:   "/zvezde",
				BackLabel: "Zvezde",
				DeleteURL: base + "/obrisi",
				Busy:      st.Busy,
				Sections: []Section{
					{Title: "Statistika", Fields: []Field{
						{Label: "Ukupna zarada", Value: utils.FormatPrice(celeb.TotalEarnings)},
						{Label: "Narudžbine", Value: count(celeb.TotalOrders)},
						{Label: "Prosečan rejting", Value: fmt.Sprintf("%.1f", celeb.Rating)},
						{Label: "Recenzije", Value: count(celeb.ReviewCount)},
					}},
					{Title: "Profil", Fields: []Field{
						{Label: "Cena", Value: utils.FormatPrice(celeb.Price)},
						{Label: "Prima zahteve", Value: yesNo(celeb.AcceptingRequests)},
						{Label: "Vreme odgovora", Value: strconv.Itoa(celeb.ResponseTime) + " h"},
						{Label: "Tagovi", Value: strings.Join(celeb.Tags, ", ")},
						{Label: "Bio", Value: celeb.Bio, Multiline: true},
						{Label: "Opširnije", Value: celeb.ExtendedBio, Multiline: true},
						{Label: "Kreirano", Value: utils.FormatDateTime(celeb.CreatedAt)},
					}},
					{Title: "Video tipovi", Table: videoTypes},
					{Title: "Poslednje narudžbine", Table: orders},
				},
				ActionGroups: []ActionGroup{{
					Title: "Status profila",
					URL:   base + "/prekidac",
					Actions: []Action{
						toggleAction("verified", celeb.Verified, "Verifikuj", "Ukloni verifikaciju", st.Busy),
						toggleAction("acceptingRequests", celeb.AcceptingRequests, "Uključi zahteve", "Isključi zahteve", st.Busy),
					},
				}},
				Forms: []Form{h.celebrityForm(c, base, celeb)},
			}
		},
	}
}

func (h *Handlers) celebrityForm(c *gin.Context, base string, celeb models.CelebrityDetail) Form {
	categories := []Option{{Value: celeb.CategoryID, Label: celeb.CategoryName, Selected: true}}
	if all, err := h.Repos.Categories.All(ctxOf(c)); err == nil {
		categories = categories[:0]
		for _, cat := range all {
			categories = append(categories, Option{Value: cat.ID, Label: cat.Icon + " " + cat.Name, Selected: cat.ID == celeb.CategoryID})
		}
	}
	return Form{
		Title:  "Izmena profila",
		URL:    base + "/izmena",
		Submit: "Sačuvaj",
		Fields: []FormField{
			{Name: "name", Label: "Ime", Type: "text", Value: celeb.Name, Required: true},
			{Name: "categoryId", Label: "Kategorija", Type: "select", Options: categories},
			{Name: "price", Label: "Cena (RSD)", Type: "number", Value: celeb.Price.String(), Required: true},
			{Name: "responseTime", Label: "Vreme odgovora (h)", Type: "number", Value: strconv.Itoa(celeb.ResponseTime)},
			{Name: "tags", Label: "Tagovi", Type: "text", Value: strings.Join(celeb.Tags, ", "), Placeholder: "muzika, pop"},
			{Name: "bio", Label: "Bio", Type: "textarea", Value: celeb.Bio},
			{Name: "extendedBio", Label: "Opširnije", Type: "textarea", Value: celeb.ExtendedBio},
		},
	}
}

// celebrityPatch compares the submitted form with the loaded profile and
// keeps only the fields that changed.
func celebrityPatch(c *gin.Context, cur models.CelebrityDetail) (models.CelebrityPatch, error) {
	var p models.CelebrityPatch
	if name := utils.NormalizeSpace(c.PostForm("name")); name != "" && name != cur.Name {
		p.Name = &name
	}
	if bio := strings.TrimSpace(c.PostForm("bio")); bio != cur.Bio {
		p.Bio = &bio
	}
	if ext := strings.TrimSpace(c.PostForm("extendedBio")); ext != cur.ExtendedBio {
		p.ExtendedBio = &ext
	}
	if raw := strings.TrimSpace(c.PostForm("price")); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			return p, domain.ValidationError{Field: "price", Msg: "neispravna cena"}
		}
		if !price.Equal(cur.Price) {
			p.Price = &price
		}
	}
	if cat := strings.TrimSpace(c.PostForm("categoryId")); cat != "" && cat != cur.CategoryID {
		p.CategoryID = &cat
	}
	if raw := strings.TrimSpace(c.PostForm("responseTime")); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil {
			return p, domain.ValidationError{Field: "responseTime", Msg: "neispravno vreme odgovora"}
		}
		if hours != cur.ResponseTime {
			p.ResponseTime = &hours
		}
	}
	if tags := utils.SplitTags(c.PostForm("tags")); !slices.Equal(tags, cur.Tags) {
		p.Tags = &tags
	}
	return p, nil
}

func (h *Handlers) registerCelebrities(g gin.IRoutes) {
	ls, ds := h.celebrityList(), h.celebrityDetail()
	routes(g, h, ls, ds)

	g.POST("/zvezde/:id/prekidac", serveMutation(h, ds, "Profil je ažuriran.",
		func(c *gin.Context, d *screen.Detail[models.CelebrityDetail], st screen.DetailState[models.CelebrityDetail]) (screen.DetailState[models.CelebrityDetail], error) {
			field, target, err := flagTarget(c, "verified", "acceptingRequests")
			if err != nil {
				return st, err
			}
			id := idParam(c)
			return screen.Toggle(ctxOf(c), d,
				func(cur models.CelebrityDetail) bool {
					if field == "verified" {
						return cur.Verified
					}
					return cur.AcceptingRequests
				},
				target,
				func(ctx context.Context, v bool) (models.CelebrityDetail, error) {
					var p models.CelebrityPatch
					if field == "verified" {
						p.Verified = &v
					} else {
						p.AcceptingRequests = &v
					}
					return h.Repos.Celebrities.Edit(ctx, id, p)
				})
		}))

	g.POST("/zvezde/:id/izmena", serveMutation(h, ds, "Izmene su sačuvane.",
		func(c *gin.Context, d *screen.Detail[models.CelebrityDetail], st screen.DetailState[models.CelebrityDetail]) (screen.DetailState[models.CelebrityDetail], error) {
			p, err := celebrityPatch(c, st.Entity)
			if err != nil {
				d.SetError(err)
				return d.State(), err
			}
			if p == (models.CelebrityPatch{}) {
				return st, screen.ErrNoChange
			}
			return h.editCelebrity(c, d, p)
		}))
}

func (h *Handlers) editCelebrity(c *gin.Context, d *screen.Detail[models.CelebrityDetail], p models.CelebrityPatch) (screen.DetailState[models.CelebrityDetail], error) {
	id := idParam(c)
	return d.Mutate(ctxOf(c), func(ctx context.Context) (models.CelebrityDetail, error) {
		return h.Repos.Celebrities.Edit(ctx, id, p)
	})
}
