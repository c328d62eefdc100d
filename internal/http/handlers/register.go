package handlers

import "github.com/gin-gonic/gin"

// Register mounts every dashboard screen on g, which must already require an
// admin session.
func (h *Handlers) Register(g gin.IRoutes) {
	g.GET("/", h.Dashboard)
	g.POST("/odjava", h.Logout)
	g.POST("/nav/:group/toggle", h.ToggleNavGroup)

	h.registerUsers(g)
	h.registerCelebrities(g)
	h.registerVideoOrders(g)
	h.registerApplications(g)
	h.registerTaxonomy(g, "/kategorije", "Kategorije", h.Repos.Categories)
	h.registerMerch(g)
	h.registerTaxonomy(g, "/kategorije-proizvoda", "Kategorije proizvoda", h.Repos.ProductCategories)
	h.registerDigital(g)
	h.registerTaxonomy(g, "/digitalne-kategorije", "Digitalne kategorije", h.Repos.DigitalCategories)
}
