package handlers

import (
	"context"
	"strings"

	"admin/internal/domain"
	"admin/internal/domain/models"
	"admin/internal/screen"
	"admin/internal/services"
	"admin/internal/utils"

	"github.com/gin-gonic/gin"
)

var merchOrderControl = screen.NewStatusControl(models.MerchOrderStatuses, models.MerchOrderStatusLabels)

func (h *Handlers) productList() listSpec[models.ProductListItem] {
	return listSpec[models.ProductListItem]{
		path:        "/proizvodi",
		title:       "Proizvodi",
		placeholder: "Pretraži proizvode...",
		columns:     []string{"Proizvod", "Zvezda", "Cena", "Varijante", "Narudžbine", "Prihod", "Status"},
		filterName:  "category",
		filterLabel: "Kategorija",
		filters:     categoryOptions(h.Repos.ProductCategories.All),
		fetch: func(ctx context.Context, q screen.Query) (domain.Paginated[models.ProductListItem], error) {
			return h.Repos.Products.Find(ctx, models.ProductFilter{Page: q.Page, PageSize: h.PageSize, Search: q.Search, Category: q.Filter})
		},
		row: func(p models.ProductListItem) Row {
			return Row{Href: "/proizvodi/" + p.ID, Cells: []Cell{
				{Text: p.Name, Sub: utils.Deref(p.CategoryName, "Bez kategorije"), Image: image(p.ImageURL, p.Name)},
				{Text: p.CelebrityName},
				{Text: utils.FormatPrice(p.Price)},
				{Text: count(p.VariantCount)},
				{Text: count(p.TotalOrders)},
				{Text: utils.FormatPrice(p.TotalRevenue)},
				flagCell(p.IsActive, "Aktivan", "Neaktivan"),
			}}
		},
	}
}

func (h *Handlers) productDetail() detailSpec[models.ProductDetail] {
	return detailSpec[models.ProductDetail]{
		path:        "/proizvodi",
		title:       "Proizvodi",
		load:        h.Repos.Products.Get,
		remove:      h.Repos.Products.Remove,
		name:        func(p models.ProductDetail) string { return p.Name },
		afterDelete: "/proizvodi",
		view: func(c *gin.Context, st screen.DetailState[models.ProductDetail]) DetailView {
			p := st.Entity
			base := "/proizvodi/" + idParam(c)

			variants := &Table{Columns: []string{"Varijanta", "SKU", "Cena", "Zaliha", "Status"}}
			for _, v := range p.Variants {
				price := utils.FormatPrice(p.Price)
				if v.PriceOverride != nil {
					price = utils.FormatPrice(*v.PriceOverride)
				}
				variants.Rows = append(variants.Rows, Row{Cells: []Cell{
					{Text: v.Name},
					{Text: utils.Deref(v.SKU, "—"), Mono: true},
					{Text: price},
					{Text: count(v.Stock)},
					flagCell(v.IsActive, "Aktivna", "Neaktivna"),
				}})
			}
			orders := &Table{Columns: []string{"Kupac", "Količina", "Iznos", "Status", "Datum"}}
			for _, o := range p.RecentOrders {
				orders.Rows = append(orders.Rows, Row{Href: "/merch-narudzbine/" + o.ID, Cells: []Cell{
					{Text: o.BuyerName, Sub: utils.Deref(o.VariantName, "")},
					{Text: count(o.Quantity)},
					{Text: utils.FormatPrice(o.TotalPrice)},
					statusCell(o.Status, models.MerchOrderStatusLabels),
					{Text: utils.FormatDate(o.CreatedAt)},
				}})
			}
			images := make([]string, 0, len(p.Images))
			for _, img := range p.Images {
				images = append(images, img.URL)
			}

			badge, kind := "Neaktivan", ""
			if p.IsActive {
				badge, kind = "Aktivan", "ok"
			}
			return DetailView{
				Title:     p.Name,
				Subtitle:  p.CelebrityName + " · " + utils.Deref(p.CategoryName, "Bez kategorije"),
				Image:     image(p.ImageURL, p.Name),
				Badge:     badge,
				BadgeKind: kind,
				BackURL:   "/proizvodi",
				BackLabel: "Proizvodi",
				DeleteURL: base + "/obrisi",
				Busy:      st.Busy,
				Sections: []Section{
					{Title: "Pregled", Fields: []Field{
						{Label: "Cena", Value: utils.FormatPrice(p.Price)},
						{Label: "Narudžbine", Value: count(p.TotalOrders)},
						{Label: "Prihod", Value: utils.FormatPrice(p.TotalRevenue)},
						{Label: "Izdvojen", Value: yesNo(p.Featured)},
						{Label: "Slug", Value: p.Slug},
						{Label: "Opis", Value: p.Description, Multiline: true},
						{Label: "Slike", Value: strings.Join(images, "\n"), Multiline: true},
						{Label: "Ažurirano", Value: utils.FormatDateTime(p.UpdatedAt)},
					}},
					{Title: "Varijante", Table: variants},
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

// productFlag applies the pressed visibility toggle. Asking for the value the
// product already has sends nothing.
func productFlag[D any](c *gin.Context, d *screen.Detail[D], flags func(D) (active, featured bool), set func(ctx context.Context, p models.ProductPatch) (D, error)) (screen.DetailState[D], error) {
	field, target, err := flagTarget(c, "isActive", "featured")
	if err != nil {
		return d.State(), err
	}
	current := func(e D) bool {
		active, featured := flags(e)
		if field == "isActive" {
			return active
		}
		return featured
	}
	return screen.Toggle(ctxOf(c), d, current, target, func(ctx context.Context, v bool) (D, error) {
		var p models.ProductPatch
		if field == "isActive" {
			p.IsActive = &v
		} else {
			p.Featured = &v
		}
		return set(ctx, p)
	})
}

func merchOrderRow(o models.MerchOrderListItem) Row {
	product := o.ProductName
	if o.VariantName != nil && *o.VariantName != "" {
		product += " (" + *o.VariantName + ")"
	}
	return Row{Href: "/merch-narudzbine/" + o.ID, Cells: []Cell{
		{Text: utils.ShortID(o.ID), Mono: true},
		{Text: o.BuyerName, Sub: o.BuyerEmail},
		{Text: product, Sub: o.CelebrityName},
		{Text: count(o.Quantity)},
		{Text: utils.FormatPrice(o.TotalPrice)},
		statusCell(o.Status, models.MerchOrderStatusLabels),
		{Text: utils.FormatDate(o.CreatedAt)},
	}}
}

func (h *Handlers) merchOrderList() listSpec[models.MerchOrderListItem] {
	return listSpec[models.MerchOrderListItem]{
		path:        "/merch-narudzbine",
		title:       "Merch narudžbine",
		placeholder: "Pretraži po kupcu ili proizvodu...",
		columns:     []string{"ID", "Kupac", "Proizvod", "Kol.", "Iznos", "Status", "Datum"},
		filterName:  "status",
		filterLabel: "Status",
		filters:     staticOptions("Svi statusi", models.MerchOrderStatuses, models.MerchOrderStatusLabels),
		fetch: func(ctx context.Context, q screen.Query) (domain.Paginated[models.MerchOrderListItem], error) {
			return h.Repos.MerchOrders.Find(ctx, models.StatusFilter{Page: q.Page, PageSize: h.PageSize, Search: q.Search, Status: q.Filter})
		},
		row: merchOrderRow,
	}
}

func (h *Handlers) merchOrderDetail() detailSpec[models.MerchOrderDetail] {
	return detailSpec[models.MerchOrderDetail]{
		path:  "/merch-narudzbine",
		title: "Merch narudžbine",
		load:  h.Repos.MerchOrders.Get,
		view: func(c *gin.Context, st screen.DetailState[models.MerchOrderDetail]) DetailView {
			o := st.Entity
			base := "/merch-narudzbine/" + idParam(c)
			timeline := []Field{{Label: "Kreirano", Value: utils.FormatDateTime(o.CreatedAt)}}
			for _, step := range []struct {
				label string
				at    *string
			}{
				{"Potvrđeno", o.ConfirmedAt},
				{"Poslato", o.ShippedAt},
				{"Isporučeno", o.DeliveredAt},
				{"Otkazano", o.CancelledAt},
			} {
				if step.at != nil {
					timeline = append(timeline, Field{Label: step.label, Value: utils.FormatOptionalDateTime(step.at)})
				}
			}
			return DetailView{
				Title:     "Merch narudžbina " + utils.ShortID(o.ID),
				Subtitle:  utils.FormatDateTime(o.CreatedAt),
				Badge:     merchOrderControl.Label(o.Status),
				BadgeKind: badgeKind(o.Status),
				BackURL:   "/merch-narudzbine",
				BackLabel: "Merch narudžbine",
				PDFURL:    base + "/pdf",
				Busy:      st.Busy,
				Sections: []Section{
					{Title: "Proizvod", Fields: []Field{
						{Label: "Proizvod", Value: o.ProductName},
						{Label: "Varijanta", Value: utils.Deref(o.VariantName, "—")},
						{Label: "Zvezda", Value: o.CelebrityName},
						{Label: "Količina", Value: count(o.Quantity)},
						{Label: "Cena po komadu", Value: utils.FormatPrice(o.UnitPrice)},
						{Label: "Ukupno", Value: utils.FormatPrice(o.TotalPrice)},
					}},
					{Title: "Kupac", Fields: []Field{
						{Label: "Ime", Value: o.BuyerName},
						{Label: "Email", Value: o.BuyerEmail},
						{Label: "Telefon", Value: utils.Deref(o.BuyerPhone, "—")},
					}},
					{Title: "Dostava", Fields: []Field{
						{Label: "Primalac", Value: o.ShippingName},
						{Label: "Adresa", Value: o.ShippingAddress},
						{Label: "Grad", Value: o.ShippingPostal + " " + o.ShippingCity},
						{Label: "Napomena", Value: utils.Deref(o.ShippingNote, "—"), Multiline: true},
						{Label: "Broj pošiljke", Value: utils.Deref(o.TrackingNumber, "—")},
					}},
					{Title: "Istorija", Fields: timeline},
				},
				ActionGroups: []ActionGroup{{
					Title:   "Promeni status",
					Note:    "Broj pošiljke se šalje samo uz status \"Poslato\".",
					URL:     base + "/status",
					Name:    "status",
					Actions: statusActions(merchOrderControl, o.Status, st.Busy),
					Extra: []FormField{{
						Name:        "trackingNumber",
						Label:       "Broj pošiljke",
						Type:        "text",
						Value:       utils.Deref(o.TrackingNumber, ""),
						Placeholder: "npr. RR123456789RS",
					}},
				}},
			}
		},
	}
}

func (h *Handlers) registerMerch(g gin.IRoutes) {
	pls, pds := h.productList(), h.productDetail()
	routes(g, h, pls, pds)
	g.POST("/proizvodi/:id/prekidac", serveMutation(h, pds, "Proizvod je ažuriran.",
		func(c *gin.Context, d *screen.Detail[models.ProductDetail], _ screen.DetailState[models.ProductDetail]) (screen.DetailState[models.ProductDetail], error) {
			id := idParam(c)
			return productFlag(c, d,
				func(p models.ProductDetail) (bool, bool) { return p.IsActive, p.Featured },
				func(ctx context.Context, patch models.ProductPatch) (models.ProductDetail, error) {
					return h.Repos.Products.SetFlags(ctx, id, patch)
				})
		}))

	ols, ods := h.merchOrderList(), h.merchOrderDetail()
	routes(g, h, ols, ods)
	g.POST("/merch-narudzbine/:id/status", serveMutation(h, ods, "Status je promenjen.",
		func(c *gin.Context, d *screen.Detail[models.MerchOrderDetail], _ screen.DetailState[models.MerchOrderDetail]) (screen.DetailState[models.MerchOrderDetail], error) {
			id := idParam(c)
			tracking := c.PostForm("trackingNumber")
			return screen.Transition(ctxOf(c), merchOrderControl, d,
				func(o models.MerchOrderDetail) domain.Status { return o.Status },
				domain.Status(c.PostForm("status")),
				func(ctx context.Context, target domain.Status) (models.MerchOrderDetail, error) {
					return h.Repos.MerchOrders.UpdateStatus(ctx, id, target, tracking)
				})
		}))
	g.GET("/merch-narudzbine/:id/pdf", h.pdf(services.ExportService.MerchPackingSlip))
}
