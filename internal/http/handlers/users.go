package handlers

import (
	"context"

	"admin/internal/domain"
	"admin/internal/domain/models"
	"admin/internal/screen"
	"admin/internal/utils"

	"github.com/gin-gonic/gin"
)

var roleControl = screen.NewStatusControl(models.UserRoles, models.UserRoleLabels)

func (h *Handlers) userList() listSpec[models.UserListItem] {
	return listSpec[models.UserListItem]{
		path:        "/korisnici",
		title:       "Korisnici",
		placeholder: "Pretraži po imenu ili emailu...",
		columns:     []string{"Korisnik", "Uloga", "Registrovan"},
		filterName:  "role",
		filterLabel: "Uloga",
		filters:     staticOptions("Sve uloge", models.UserRoles, models.UserRoleLabels),
		fetch: func(ctx context.Context, q screen.Query) (domain.Paginated[models.UserListItem], error) {
			return h.Repos.Users.Find(ctx, models.UserFilter{Page: q.Page, PageSize: h.PageSize, Search: q.Search, Role: q.Filter})
		},
		row: func(u models.UserListItem) Row {
			return Row{Href: "/korisnici/" + u.ID, Cells: []Cell{
				{Text: u.FullName, Sub: u.Email, Image: image(u.AvatarURL, u.FullName)},
				statusCell(domain.Status(u.Role), models.UserRoleLabels),
				{Text: utils.FormatDate(u.CreatedAt)},
			}}
		},
	}
}

func (h *Handlers) userDetail() detailSpec[models.UserDetail] {
	return detailSpec[models.UserDetail]{
		path:  "/korisnici",
		title: "Korisnici",
		load:  h.Repos.Users.Get,
		view: func(c *gin.Context, st screen.DetailState[models.UserDetail]) DetailView {
			u := st.Entity
			info := Section{Title: "Podaci", Fields: []Field{
				{Label: "Email", Value: u.Email},
				{Label: "Registrovan", Value: utils.FormatDateTime(u.CreatedAt)},
				{Label: "Broj narudžbina", Value: count(u.OrdersCount)},
				{Label: "Ukupno potrošeno", Value: utils.FormatPrice(u.TotalSpent)},
			}}
			if u.Celebrity != nil {
				info.Fields = append(info.Fields, Field{
					Label: "Profil zvezde",
					Value: u.Celebrity.Name,
					Href:  "/zvezde/" + u.Celebrity.ID,
				})
			}
			return DetailView{
				Title:     u.FullName,
				Subtitle:  u.Email,
				Image:     image(u.AvatarURL, u.FullName),
				Badge:     roleControl.Label(domain.Status(u.Role)),
				BadgeKind: badgeKind(domain.Status(u.Role)),
				BackURL:   "/korisnici",
				BackLabel: "Korisnici",
				Busy:      st.Busy,
				Sections:  []Section{info},
				ActionGroups: []ActionGroup{{
					Title:   "Uloga",
					URL:     "/korisnici/" + idParam(c) + "/uloga",
					Name:    "role",
					Actions: statusActions(roleControl, domain.Status(u.Role), st.Busy),
				}},
			}
		},
	}
}

func (h *Handlers) registerUsers(g gin.IRoutes) {
	ls, ds := h.userList(), h.userDetail()
	routes(g, h, ls, ds)
	g.POST("/korisnici/:id/uloga", serveMutation(h, ds, "Uloga je promenjena.",
		func(c *gin.Context, d *screen.Detail[models.UserDetail], _ screen.DetailState[models.UserDetail]) (screen.DetailState[models.UserDetail], error) {
			id := idParam(c)
			return screen.Transition(ctxOf(c), roleControl, d,
				func(u models.UserDetail) domain.Status { return domain.Status(u.Role) },
				domain.Status(c.PostForm("role")),
				func(ctx context.Context, target domain.Status) (models.UserDetail, error) {
					return h.Repos.Users.UpdateRole(ctx, id, string(target))
				})
		}))
}
