package api

import (
	stdhttp "net/http"

	"admin/internal/config"
	h "admin/internal/http/handlers"
	"admin/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds the dashboard server. metrics receives the HTTP
// histograms and is served on /metrics.
func NewRouter(env config.Env, deps h.Deps, metrics *prometheus.Registry) (*gin.Engine, error) {
	renderer, err := h.NewRenderer()
	if err != nil {
		return nil, err
	}
	handlers := h.New(deps)

	r := gin.New()
	r.HTMLRender = renderer
	r.Use(
		middleware.RequestID(deps.Log),
		middleware.Logger(deps.Log),
		gin.Recovery(),
		middleware.CORS(env.CORSAllowedOrigins),
		middleware.Metrics(metrics),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		deps.Log.Warn().Err(err).Msg("failed to set trusted proxies")
	}

	r.GET("/healthz", h.Health)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics, promhttp.HandlerOpts{})))
	r.StaticFS("/static", stdhttp.FS(h.Static()))

	web := r.Group("/", middleware.Flashes(), middleware.LoadSession(deps.Sessions, deps.Cookie))
	web.GET("/prijava", handlers.LoginForm)
	web.POST("/prijava", handlers.Login)

	admin := web.Group("/", middleware.RequireSession(), middleware.RequireRoles("admin"))
	handlers.Register(admin)

	r.NoRoute(middleware.Flashes(), middleware.LoadSession(deps.Sessions, deps.Cookie), handlers.NoRoute)
	return r, nil
}
