package handlers

import (
	"net/http"

	"admin/internal/domain"
	"admin/internal/utils"

	"github.com/gin-gonic/gin"
)

// Dashboard shows the figures computed by /admin/stats.
func (h *Handlers) Dashboard(c *gin.Context) {
	stats, err := h.Repos.Stats.Get(ctxOf(c))
	if domain.IsUnauthorized(err) {
		h.fail(c, err)
		return
	}
	v := DashboardView{
		Orders:       Table{Columns: videoOrderColumns},
		Applications: Table{Columns: applicationColumns},
	}
	if err != nil {
		v.Error = errorMessage(err)
		h.page(c, http.StatusOK, "dashboard", "Pregled", v)
		return
	}

	v.Cards = []StatCard{
		{Label: "Korisnici", Value: count(stats.TotalUsers), Href: "/korisnici"},
		{Label: "Zvezde", Value: count(stats.TotalCelebrities), Href: "/zvezde"},
		{Label: "Video narudžbine", Value: count(stats.TotalOrders), Href: "/narudzbine"},
		{Label: "Prihod ovog meseca", Value: utils.FormatPrice(stats.MonthlyRevenue), Href: "/narudzbine"},
		{Label: "Prijave na čekanju", Value: count(stats.PendingApplications), Href: "/prijave?status=pending"},
		{Label: "Proizvodi", Value: count(stats.TotalProducts), Href: "/proizvodi"},
		{Label: "Merch narudžbine", Value: count(stats.TotalMerchOrders), Href: "/merch-narudzbine"},
		{Label: "Merch prihod", Value: utils.FormatPrice(stats.MonthlyMerchRevenue), Href: "/merch-narudzbine"},
		{Label: "Digitalni proizvodi", Value: count(stats.TotalDigitalProducts), Href: "/digitalni-proizvodi"},
		{Label: "Digitalne narudžbine", Value: count(stats.TotalDigitalOrders), Href: "/digitalne-narudzbine"},
		{Label: "Digitalni prihod", Value: utils.FormatPrice(stats.MonthlyDigitalRevenue), Href: "/digitalne-narudzbine"},
	}
	for _, o := range stats.RecentOrders {
		v.Orders.Rows = append(v.Orders.Rows, videoOrderRow(o))
	}
	for _, a := range stats.RecentApplications {
		v.Applications.Rows = append(v.Applications.Rows, applicationRow(a))
	}
	peak := stats.MaxDaily()
	for _, d := range stats.DailyOrders {
		pct := 0
		if peak > 0 {
			pct = d.Count * 100 / peak
		}
		v.Daily = append(v.Daily, Bar{Label: utils.FormatDate(d.Date), Count: d.Count, Percent: pct})
	}
	h.page(c, http.StatusOK, "dashboard", "Pregled", v)
}
