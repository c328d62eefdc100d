package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestIDEchoesOrGenerates(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(zerolog.Nop()))
	r.GET("/", func(c *gin.Context) {
		assert.NotNil(t, zerolog.Ctx(c.Request.Context()))
		c.String(http.StatusOK, GetRequestID(c))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := serve(r, req)
	assert.Equal(t, "abc-123", w.Body.String())
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))

	w = serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, w.Body.String(), 36)
	assert.Equal(t, w.Body.String(), w.Header().Get("X-Request-ID"))
}

func TestRequireRoles(t *testing.T) {
	withRole := func(role string) *gin.Engine {
		r := gin.New()
		r.Use(func(c *gin.Context) {
			if role != "" {
				c.Set(userRoleKey, role)
			}
		}, RequireRoles("admin"))
		r.GET("/zvezde", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
		return r
	}

	w := serve(withRole(""), httptest.NewRequest(http.MethodGet, "/zvezde?page=2", nil))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/prijava?from=%2Fzvezde%3Fpage%3D2", w.Header().Get("Location"))

	w = serve(withRole("fan"), httptest.NewRequest(http.MethodGet, "/zvezde", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = serve(withRole("Admin"), httptest.NewRequest(http.MethodGet, "/zvezde", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireSessionRemembersReplayablePage(t *testing.T) {
	r := gin.New()
	r.Use(RequireSession(), RequireRoles("admin"))
	r.GET("/zvezde/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/zvezde/:id/prekidac", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/zvezde/x?tab=1", nil))
	assert.Equal(t, "/prijava?from=%2Fzvezde%2Fx%3Ftab%3D1", w.Header().Get("Location"))

	cases := []struct {
		name    string
		referer string
		want    string
	}{
		{"local referer", "http://admin.test/zvezde/x", "/prijava?from=%2Fzvezde%2Fx"},
		{"no referer", "", "/prijava"},
		{"foreign path", "http://evil.test//evil.test/x", "/prijava"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/zvezde/x/prekidac", nil)
			if tc.referer != "" {
				req.Header.Set("Referer", tc.referer)
			}
			w := serve(r, req)
			assert.Equal(t, http.StatusSeeOther, w.Code)
			assert.Equal(t, tc.want, w.Header().Get("Location"))
		})
	}
}

func TestLoginURL(t *testing.T) {
	assert.Equal(t, "/prijava", LoginURL(""))
	assert.Equal(t, "/prijava", LoginURL("/"))
	assert.Equal(t, "/prijava?from=%2Fkorisnici", LoginURL("/korisnici"))
}

func TestFlashIsShownOnce(t *testing.T) {
	r := gin.New()
	r.Use(Flashes())
	r.POST("/save", func(c *gin.Context) {
		SetFlash(c, "success", "Sačuvano | ok")
		c.Status(http.StatusSeeOther)
	})
	r.GET("/show", func(c *gin.Context) {
		if f := GetFlash(c); f != nil {
			c.String(http.StatusOK, f.Kind+":"+f.Message)
			return
		}
		c.String(http.StatusOK, "none")
	})

	w := serve(r, httptest.NewRequest(http.MethodPost, "/save", nil))
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)

	req := httptest.NewRequest(http.MethodGet, "/show", nil)
	req.AddCookie(cookies[0])
	w = serve(r, req)
	assert.Equal(t, "success:Sačuvano | ok", w.Body.String())
	cleared := w.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Negative(t, cleared[0].MaxAge)

	w = serve(r, httptest.NewRequest(http.MethodGet, "/show", nil))
	assert.Equal(t, "none", w.Body.String())
}

func TestMetricsUseRouteTemplate(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := gin.New()
	r.Use(Metrics(reg))
	r.GET("/zvezde/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	serve(r, httptest.NewRequest(http.MethodGet, "/zvezde/42", nil))
	serve(r, httptest.NewRequest(http.MethodGet, "/nema", nil))

	families, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, families, 1)

	routes := map[string]string{}
	for _, m := range families[0].GetMetric() {
		labels := map[string]string{}
		for _, l := range m.GetLabel() {
			labels[l.GetName()] = l.GetValue()
		}
		routes[labels["route"]] = labels["status"]
	}
	assert.Equal(t, map[string]string{"/zvezde/:id": "204", "unmatched": "404"}, routes)
}
