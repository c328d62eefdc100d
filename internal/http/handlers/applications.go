package handlers

import (
	"context"

	"admin/internal/domain"
	"admin/internal/domain/models"
	"admin/internal/screen"
	"admin/internal/utils"

	"github.com/gin-gonic/gin"
)

var applicationControl = screen.NewStatusControl(models.ApplicationDecisions, map[domain.Status]string{
	models.ApplicationApproved: "Odobri",
	models.ApplicationRejected: "Odbij",
})

func applicationRow(a models.ApplicationListItem) Row {
	return Row{Href: "/prijave/" + a.ID, Cells: []Cell{
		{Text: a.FullName, Sub: a.Email},
		{Text: a.Category},
		{Text: a.Followers},
		statusCell(a.Status, models.ApplicationStatusLabels),
		{Text: utils.FormatDate(a.CreatedAt)},
	}}
}

var applicationColumns = []string{"Kandidat", "Kategorija", "Pratioci", "Status", "Datum"}

func (h *Handlers) applicationList() listSpec[models.ApplicationListItem] {
	return listSpec[models.ApplicationListItem]{
		path:        "/prijave",
		title:       "Prijave",
		placeholder: "Pretraži prijave...",
		columns:     applicationColumns,
		filterName:  "status",
		filterLabel: "Status",
		filters:     staticOptions("Svi statusi", models.ApplicationStatuses, models.ApplicationStatusLabels),
		fetch: func(ctx context.Context, q screen.Query) (domain.Paginated[models.ApplicationListItem], error) {
			return h.Repos.Applications.Find(ctx, models.StatusFilter{Page: q.Page, PageSize: h.PageSize, Search: q.Search, Status: q.Filter})
		},
		row: applicationRow,
	}
}

func (h *Handlers) applicationDetail() detailSpec[models.ApplicationDetail] {
	return detailSpec[models.ApplicationDetail]{
		path:  "/prijave",
		title: "Prijave",
		load:  h.Repos.Applications.Get,
		view: func(c *gin.Context, st screen.DetailState[models.ApplicationDetail]) DetailView {
			a := st.Entity
			v := DetailView{
				Title:     a.FullName,
				Subtitle:  a.Email,
				Badge:     models.ApplicationStatusLabels[a.Status],
				BadgeKind: badgeKind(a.Status),
				BackURL:   "/prijave",
				BackLabel: "Prijave",
				Busy:      st.Busy,
				Sections: []Section{
					{Title: "Kontakt", Fields: []Field{
						{Label: "Email", Value: a.Email},
						{Label: "Telefon", Value: a.Phone},
						{Label: "Društvene mreže", Value: a.SocialMedia},
						{Label: "Pratioci", Value: a.Followers},
						{Label: "Kategorija", Value: a.Category},
					}},
					{Title: "O kandidatu", Fields: []Field{
						{Label: "Bio", Value: a.Bio, Multiline: true},
						{Label: "Motivacija", Value: a.Motivation, Multiline: true},
						{Label: "Podneto", Value: utils.FormatDateTime(a.CreatedAt)},
						{Label: "Pregledano", Value: utils.FormatOptionalDateTime(a.ReviewedAt)},
					}},
				},
			}
			decision := ActionGroup{Title: "Odluka", URL: "/prijave/" + idParam(c) + "/status", Name: "status"}
			switch a.Status {
			case models.ApplicationPending:
				decision.Actions = statusActions(applicationControl, a.Status, st.Busy)
			case models.ApplicationApproved:
				decision.Note = "Ova prijava je već odobrena."
			default:
				decision.Note = "Ova prijava je već odbijena."
			}
			v.ActionGroups = []ActionGroup{decision}
			return v
		},
	}
}

func (h *Handlers) registerApplications(g gin.IRoutes) {
	ls, ds := h.applicationList(), h.applicationDetail()
	routes(g, h, ls, ds)
	g.POST("/prijave/:id/status", serveMutation(h, ds, "Odluka je sačuvana.",
		func(c *gin.Context, d *screen.Detail[models.ApplicationDetail], _ screen.DetailState[models.ApplicationDetail]) (screen.DetailState[models.ApplicationDetail], error) {
			id := idParam(c)
			return screen.Transition(ctxOf(c), applicationControl, d,
				func(a models.ApplicationDetail) domain.Status { return a.Status },
				domain.Status(c.PostForm("status")),
				func(ctx context.Context, target domain.Status) (models.ApplicationDetail, error) {
					return h.Repos.Applications.Decide(ctx, id, target)
				})
		}))
}
