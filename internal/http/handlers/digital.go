package handlers

import (
	"context"

	"admin/internal/domain"
	"admin/internal/domain/models"
	"admin/internal/screen"
	"admin/internal/services"
	"admin/internal/utils"

	"github.com/gin-gonic/gin"
)

var digitalOrderControl = screen.NewStatusControl(models.DigitalOrderStatuses, models.DigitalOrderStatusLabels)

func (h *Handlers) digitalProductList() listSpec[models.DigitalProductListItem] {
	return listSpec[models.DigitalProductListItem]{
		path:        "/digitalni-proizvodi",
		title:       "Digitalni proizvodi",
		placeholder: "Pretraži digitalne proizvode...",
		columns:     []string{"Proizvod", "Zvezda", "Tip", "Cena", "Preuzimanja", "Prihod", "Status"},
		filterName:  "category",
		filterLabel: "Kategorija",
		filters:     categoryOptions(h.Repos.DigitalCategories.All),
		fetch: func(ctx context.Context, q screen.Query) (domain.Paginated[models.DigitalProductListItem], error) {
			return h.Repos.DigitalProducts.Find(ctx, models.DigitalProductFilter{Page: q.Page, PageSize: h.PageSize, Search: q.Search, Category: q.Filter})
		},
		row: func(p models.DigitalProductListItem) Row {
			return Row{Href: "/digitalni-proizvodi/" + p.ID, Cells: []Cell{
				{Text: p.Name, Sub: utils.Deref(p.CategoryName, "Bez kategorije"), Image: image(p.PreviewImageURL, p.Name)},
				{Text: p.CelebrityName},
				{Text: p.FileType, Mono: true},
				{Text: utils.FormatPrice(p.Price)},
				{Text: count(p.DownloadCount)},
				{Text: utils.FormatPrice(p.TotalRevenue)},
				flagCell(p.IsActive, "Aktivan", "Neaktivan"),
			}}
		},
	}
}

func (h *Handlers) digitalProductDetail() detailSpec[models.DigitalProductDetail] {
	return detailSpec[models.DigitalProductDetail]{
		path:        "/digitalni-proizvodi",
		title:       "Digitalni proizvodi",
		load:        h.Repos.DigitalProducts.Get,
		remove:      h.Repos.DigitalProducts.Remove,
		name:        func(p models.DigitalProductDetail) string { return p.Name },
		afterDelete: "/digitalni-proizvodi",
		view: func(c *gin.Context, st screen.DetailState[models.DigitalProductDetail]) DetailView {
			p := st.Entity
			base := "/digitalni-proizvodi/" + idParam(c)
			orders := &Table{Columns: []string{"Kupac", "Iznos", "Status", "Datum"}}
			for _, o := range p.RecentOrders {
				orders.Rows = append(orders.Rows, Row{Href: "/digitalne-narudzbine/" + o.ID, Cells: []Cell{
					{Text: o.BuyerName, Sub: o.BuyerEmail},
					{Text: utils.FormatPrice(o.Price)},
					statusCell(o.Status, models.DigitalOrderStatusLabels),
					{Text: utils.FormatDate(o.CreatedAt)},
				}})
			}
			badge, kind := "Neaktivan", ""
			if p.IsActive {
				badge, kind = "Aktivan", "ok"
			}
			return DetailView{
				Title:     p.Name,
				Subtitle:  p.CelebrityName + " · " + utils.Deref(p.CategoryName, "Bez kategorije"),
				Image:     image(p.PreviewImageURL, p.Name),
				Badge:     badge,
				BadgeKind: kind,
				BackURL:   "/digitalni-proizvodi",
				BackLabel: "Digitalni proizvodi",
				DeleteURL: base + "/obrisi",
				Busy:      st.Busy,
				Sections: []Section{
					{Title: "Pregled", Fields: []Field{
						{Label: "Cena", Value: utils.FormatPrice(p.Price)},
						{Label: "Narudžbine", Value: count(p.TotalOrders)},
						{Label: "Prihod", Value: utils.FormatPrice(p.TotalRevenue)},
						{Label: "Preuzimanja", Value: count(p.DownloadCount)},
						{Label: "Izdvojen", Value: yesNo(p.Featured)},
						{Label: "Opis", Value: p.Description, Multiline: true},
					}},
					{Title: "Fajl", Fields: []Field{
						{Label: "Naziv", Value: p.FileName},
						{Label: "Tip", Value: p.FileType},
						{Label: "Veličina", Value: utils.FormatFileSize(p.FileSize)},
						{Label: "Ažurirano", Value: utils.FormatDateTime(p.UpdatedAt)},
					}},
					{Title: "Poslednje narudžbine", Table: orders},
				},
				ActionGroups: []ActionGroup{{
					Title: "Vidljivost",
					URL:   base + "/prekidac",
					Actions: []Action{
						toggleAction("isActive", p.IsActive, "Aktiviraj", "Deaktiviraj", st.Busy),
						toggleAction("featured", p.Featured, "Izdvoji", "Ukloni iz izdvojenih", st.Busy),
					},
				}},
			}
		},
	}
}

func (h *Handlers) digitalOrderList() listSpec[models.DigitalOrderListItem] {
	return listSpec[models.DigitalOrderListItem]{
		path:        "/digitalne-narudzbine",
		title:       "Digitalne narudžbine",
		placeholder: "Pretraži po kupcu ili proizvodu...",
		columns:     []string{"ID", "Kupac", "Proizvod", "Iznos", "Preuzimanja", "Status", "Datum"},
		filterName:  "status",
		filterLabel: "Status",
		filters:     staticOptions("Svi statusi", models.DigitalOrderStatuses, models.DigitalOrderStatusLabels),
		fetch: func(ctx context.Context, q screen.Query) (domain.Paginated[models.DigitalOrderListItem], error) {
			return h.Repos.DigitalOrders.Find(ctx, models.StatusFilter{Page: q.Page, PageSize: h.PageSize, Search: q.Search, Status: q.Filter})
		},
		row: func(o models.DigitalOrderListItem) Row {
			return Row{Href: "/digitalne-narudzbine/" + o.ID, Cells: []Cell{
				{Text: utils.ShortID(o.ID), Mono: true},
				{Text: o.BuyerName, Sub: o.BuyerEmail},
				{Text: o.ProductName, Sub: o.CelebrityName},
				{Text: utils.FormatPrice(o.Price)},
				{Text: count(o.DownloadCount)},
				statusCell(o.Status, models.DigitalOrderStatusLabels),
				{Text: utils.FormatDate(o.CreatedAt)},
			}}
		},
	}
}

func (h *Handlers) digitalOrderDetail() detailSpec[models.DigitalOrderDetail] {
	return detailSpec[models.DigitalOrderDetail]{
		path:  "/digitalne-narudzbine",
		title: "Digitalne narudžbine",
		load:  h.Repos.DigitalOrders.Get,
		view: func(c *gin.Context, st screen.DetailState[models.DigitalOrderDetail]) DetailView {
			o := st.Entity
			base := "/digitalne-narudzbine/" + idParam(c)
			return DetailView{
				Title:     "Digitalna narudžbina " + utils.ShortID(o.ID),
				Subtitle:  utils.FormatDateTime(o.CreatedAt),
				Badge:     digitalOrderControl.Label(o.Status),
				BadgeKind: badgeKind(o.Status),
				BackURL:   "/digitalne-narudzbine",
				BackLabel: "Digitalne narudžbine",
				PDFURL:    base + "/pdf",
				Busy:      st.Busy,
				Sections: []Section{
					{Title: "Proizvod", Fields: []Field{
						{Label: "Proizvod", Value: o.ProductName},
						{Label: "Zvezda", Value: o.CelebrityName},
						{Label: "Tip fajla", Value: o.FileType},
						{Label: "Cena", Value: utils.FormatPrice(o.Price)},
					}},
					{Title: "Kupac", Fields: []Field{
						{Label: "Ime", Value: o.BuyerName},
						{Label: "Email", Value: o.BuyerEmail},
						{Label: "Telefon", Value: utils.Deref(o.BuyerPhone, "—")},
					}},
					{Title: "Preuzimanje", Fields: []Field{
						{Label: "Broj preuzimanja", Value: count(o.DownloadCount)},
						{Label: "Token", Value: utils.Deref(o.DownloadToken, "—")},
						{Label: "Token ističe", Value: utils.FormatOptionalDateTime(o.DownloadTokenExpiresAt)},
						{Label: "Potvrđeno", Value: utils.FormatOptionalDateTime(o.ConfirmedAt)},
						{Label: "Završeno", Value: utils.FormatOptionalDateTime(o.CompletedAt)},
						{Label: "Ažurirano", Value: utils.FormatDateTime(o.UpdatedAt)},
					}},
				},
				ActionGroups: []ActionGroup{{
					Title:   "Promeni status",
					URL:     base + "/status",
					Name:    "status",
					Actions: statusActions(digitalOrderControl, o.Status, st.Busy),
				}},
			}
		},
	}
}

func (h *Handlers) registerDigital(g gin.IRoutes) {
	pls, pds := h.digitalProductList(), h.digitalProductDetail()
	routes(g, h, pls, pds)
	g.POST("/digitalni-proizvodi/:id/prekidac", serveMutation(h, pds, "Proizvod je ažuriran.",
		func(c *gin.Context, d *screen.Detail[models.DigitalProductDetail], _ screen.DetailState[models.DigitalProductDetail]) (screen.DetailState[models.DigitalProductDetail], error) {
			id := idParam(c)
			return productFlag(c, d,
				func(p models.DigitalProductDetail) (bool, bool) { return p.IsActive, p.Featured },
				func(ctx context.Context, patch models.ProductPatch) (models.DigitalProductDetail, error) {
					return h.Repos.DigitalProducts.SetFlags(ctx, id, patch)
				})
		}))

	ols, ods := h.digitalOrderList(), h.digitalOrderDetail()
	routes(g, h, ols, ods)
	g.POST("/digitalne-narudzbine/:id/status", serveMutation(h, ods, "Status je promenjen.",
		func(c *gin.Context, d *screen.Detail[models.DigitalOrderDetail], _ screen.DetailState[models.DigitalOrderDetail]) (screen.DetailState[models.DigitalOrderDetail], error) {
			id := idParam(c)
			return screen.Transition(ctxOf(c), digitalOrderControl, d,
				func(o models.DigitalOrderDetail) domain.Status { return o.Status },
				domain.Status(c.PostForm("status")),
				func(ctx context.Context, target domain.Status) (models.DigitalOrderDetail, error) {
					return h.Repos.DigitalOrders.UpdateStatus(ctx, id, target)
				})
		}))
	g.GET("/digitalne-narudzbine/:id/pdf", h.pdf(services.ExportService.DigitalOrderPDF))
}
