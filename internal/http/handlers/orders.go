package handlers

import (
	"context"
	"net/http"

	"admin/internal/domain"
	"admin/internal/domain/models"
	"admin/internal/screen"
	"admin/internal/services"
	"admin/internal/utils"

	"github.com/gin-gonic/gin"
)

var videoOrderControl = screen.NewStatusControl(models.VideoOrderStatuses, models.VideoOrderStatusLabels)

func videoOrderRow(o models.VideoOrderListItem) Row {
	return Row{Href: "/narudzbine/" + o.ID, Cells: []Cell{
		{Text: utils.ShortID(o.ID), Mono: true},
		{Text: o.BuyerName, Sub: o.BuyerEmail},
		{Text: o.CelebrityName},
		{Text: o.VideoType},
		{Text: utils.FormatPrice(o.Price)},
		statusCell(o.Status, models.VideoOrderStatusLabels),
		{Text: utils.FormatDate(o.CreatedAt)},
	}}
}

var videoOrderColumns = []string{"ID", "Kupac", "Zvezda", "Tip", "Cena", "Status", "Datum"}

func (h *Handlers) videoOrderList() listSpec[models.VideoOrderListItem] {
	return listSpec[models.VideoOrderListItem]{
		path:        "/narudzbine",
		title:       "Video narudžbine",
		placeholder: "Pretraži po kupcu ili zvezdi...",
		columns:     videoOrderColumns,
		filterName:  "status",
		filterLabel: "Status",
		filters:     staticOptions("Svi statusi", models.VideoOrderStatuses, models.VideoOrderStatusLabels),
		fetch: func(ctx context.Context, q screen.Query) (domain.Paginated[models.VideoOrderListItem], error) {
			return h.Repos.VideoOrders.Find(ctx, models.StatusFilter{Page: q.Page, PageSize: h.PageSize, Search: q.Search, Status: q.Filter})
		},
		row: videoOrderRow,
	}
}

func (h *Handlers) videoOrderDetail() detailSpec[models.VideoOrderDetail] {
	return detailSpec[models.VideoOrderDetail]{
		path:  "/narudzbine",
		title: "Video narudžbine",
		load:  h.Repos.VideoOrders.Get,
		view: func(c *gin.Context, st screen.DetailState[models.VideoOrderDetail]) DetailView {
			o := st.Entity
			base := "/narudzbine/" + idParam(c)
			video := "Nije otpremljen"
			if o.VideoURL != nil && *o.VideoURL != "" {
				video = *o.VideoURL
			}
			return DetailView{
				Title:     "Narudžbina " + utils.ShortID(o.ID),
				Subtitle:  o.VideoType + " · " + utils.FormatDateTime(o.CreatedAt),
				Badge:     videoOrderControl.Label(o.Status),
				BadgeKind: badgeKind(o.Status),
				BackURL:   "/narudzbine",
				BackLabel: "Narudžbine",
				PDFURL:    base + "/pdf",
				Busy:      st.Busy,
				Sections: []Section{
					{Title: "Kupac", Fields: []Field{
						{Label: "Ime", Value: o.BuyerName, Href: "/korisnici/" + o.BuyerID},
						{Label: "Email", Value: o.BuyerEmail},
					}},
					{Title: "Zvezda", Fields: []Field{
						{Label: "Ime", Value: o.CelebrityName, Href: "/zvezde/" + o.CelebrityID},
						{Label: "Tip videa", Value: o.VideoType},
						{Label: "Cena", Value: utils.FormatPrice(o.Price)},
					}},
					{Title: "Detalji", Fields: []Field{
						{Label: "Za", Value: o.RecipientName},
						{Label: "Instrukcije", Value: o.Instructions, Multiline: true},
						{Label: "Rok", Value: utils.FormatDate(o.Deadline)},
						{Label: "Video", Value: video},
						{Label: "Ažurirano", Value: utils.FormatDateTime(o.UpdatedAt)},
					}},
				},
				ActionGroups: []ActionGroup{{
					Title:   "Promeni status",
					URL:     base + "/status",
					Name:    "status",
					Actions: statusActions(videoOrderControl, o.Status, st.Busy),
				}},
			}
		},
	}
}

func (h *Handlers) registerVideoOrders(g gin.IRoutes) {
	ls, ds := h.videoOrderList(), h.videoOrderDetail()
	routes(g, h, ls, ds)
	g.POST("/narudzbine/:id/status", serveMutation(h, ds, "Status je promenjen.",
		func(c *gin.Context, d *screen.Detail[models.VideoOrderDetail], _ screen.DetailState[models.VideoOrderDetail]) (screen.DetailState[models.VideoOrderDetail], error) {
			id := idParam(c)
			return screen.Transition(ctxOf(c), videoOrderControl, d,
				func(o models.VideoOrderDetail) domain.Status { return o.Status },
				domain.Status(c.PostForm("status")),
				func(ctx context.Context, target domain.Status) (models.VideoOrderDetail, error) {
					return h.Repos.VideoOrders.UpdateStatus(ctx, id, target)
				})
		}))
	g.GET("/narudzbine/:id/pdf", h.pdf(services.ExportService.VideoOrderPDF))
}

// pdf streams a generated document inline.
func (h *Handlers) pdf(render func(s services.ExportService, ctx context.Context, id domain.ID) ([]byte, string, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		svc := h.exports
		svc.RequestID = requestID(c)
		data, filename, err := render(svc, ctxOf(c), idParam(c))
		if err != nil {
			if domain.IsNotFound(err) {
				h.notFound(c, "/")
				return
			}
			h.fail(c, err)
			return
		}
		c.Header("Content-Disposition", "inline; filename=\""+filename+"\"")
		c.Data(http.StatusOK, "application/pdf", data)
	}
}
