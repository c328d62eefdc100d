package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"admin/internal/apiclient"
	"admin/internal/config"
	h "admin/internal/http/handlers"
	"admin/internal/http/middleware"
	"admin/internal/nav"
	"admin/internal/repositories"
	"admin/internal/screen"
	"admin/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cookieName = "viveo_session"

// fakeAPI is a minimal marketplace API. It records every call.
type fakeAPI struct {
	t       *testing.T
	mu      sync.Mutex
	calls   []string
	bodies  []map[string]any
	role    string
	expired bool
}

func (f *fakeAPI) record(r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	var body map[string]any
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &body)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, r.Method+" "+r.URL.Path)
	f.bodies = append(f.bodies, body)
}

func (f *fakeAPI) count(call string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == call {
			n++
		}
	}
	return n
}

func (f *fakeAPI) lastBody() map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bodies[len(f.bodies)-1]
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.record(r)
	w.Header().Set("Content-Type", "application/json")

	f.mu.Lock()
	expired, role := f.expired, f.role
	f.mu.Unlock()

	if r.URL.Path != "/auth/login" && expired {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error":"token expired"}`)
		return
	}

	switch r.Method + " " + r.URL.Path {
	case "POST /auth/login":
		tok, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": "a1",
			"exp": time.Now().Add(time.Hour).Unix(),
		}).SignedString([]byte("test"))
		fmt.Fprintf(w, `{"data":{"user":{"id":"a1","email":"admin@viveo.rs","fullName":"Ana Admin","role":%q},"session":{"accessToken":%q,"refreshToken":"r1"}}}`, role, tok)
	case "GET /admin/users":
		_, _ = io.WriteString(w, `{"data":[{"id":"u1","fullName":"Marko Markovic","email":"marko@viveo.rs","role":"fan","createdAt":"2024-03-01T10:00:00Z"}],"meta":{"page":1,"pageSize":20,"total":1,"totalPages":1}}`)
	case "GET /admin/users/u1":
		_, _ = io.WriteString(w, `{"data":{"id":"u1","fullName":"Marko Markovic","email":"marko@viveo.rs","role":"fan","ordersCount":2,"totalSpent":3000}}`)
	case "PATCH /admin/users/u1":
		_, _ = io.WriteString(w, `{"data":{"id":"u1","fullName":"Marko Markovic","email":"marko@viveo.rs","role":"star","ordersCount":2,"totalSpent":3000}}`)
	case "GET /admin/products/p1":
		_, _ = io.WriteString(w, `{"data":{"id":"p1","name":"Majica","celebrityName":"Ana","price":2500,"isActive":true,"featured":false}}`)
	case "PATCH /admin/products/p1":
		_, _ = io.WriteString(w, `{"data":{"id":"p1","name":"Majica","celebrityName":"Ana","price":2500,"isActive":false,"featured":false}}`)
	case "GET /admin/categories":
		_, _ = io.WriteString(w, `{"data":[{"id":"c1","name":"Muzika","slug":"muzika","icon":"M","celebrityCount":3},{"id":"c2","name":"Sport","slug":"sport","icon":"S","celebrityCount":0}]}`)
	case "DELETE /admin/categories/c2":
		w.WriteHeader(http.StatusNoContent)
	case "GET /admin/stats":
		_, _ = io.WriteString(w, `{"data":{"totalUsers":1200,"monthlyRevenue":150000,"dailyOrders":[{"date":"2024-03-01","count":4}]}}`)
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":"not found"}`)
	}
}

type harness struct {
	router http.Handler
	api    *fakeAPI
	store  *session.MemoryStore
}

func newHarness(t *testing.T, role string) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	fake := &fakeAPI{t: t, role: role}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	store := session.NewMemoryStore()
	mgr := session.NewManager(store, nil, time.Hour, zerolog.Nop())
	client := apiclient.New(apiclient.Config{BaseURL: srv.URL, Timeout: 2 * time.Second}, mgr)
	repos := repositories.New(client)
	mgr.SetAuthenticator(repos.Auth)

	table, err := nav.Default()
	require.NoError(t, err)

	r, err := NewRouter(config.Env{}, h.Deps{
		Log:      zerolog.Nop(),
		Sessions: mgr,
		Cookie:   middleware.SessionCookie{Name: cookieName, MaxAge: 3600},
		Repos:    repos,
		Screens:  screen.NewRegistry(time.Minute),
		Nav:      table,
		PageSize: 20,
		Debounce: 5 * time.Millisecond,
	}, prometheus.NewRegistry())
	require.NoError(t, err)
	return &harness{router: r, api: fake, store: store}
}

func (hs *harness) do(method, target string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	hs.router.ServeHTTP(w, req)
	return w
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == cookieName && c.Value != "" {
			return c
		}
	}
	return nil
}

func (hs *harness) login(t *testing.T, from string) *http.Cookie {
	t.Helper()
	w := hs.do(http.MethodPost, "/prijava", url.Values{
		"email":    {"admin@viveo.rs"},
		"password": {"secret"},
		"from":     {from},
	})
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())
	c := sessionCookie(w)
	require.NotNil(t, c, "login must set the session cookie")
	return c
}

func TestHealthz(t *testing.T) {
	hs := newHarness(t, "admin")
	w := hs.do(http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestAnonymousIsRedirectedToLogin(t *testing.T) {
	hs := newHarness(t, "admin")
	w := hs.do(http.MethodGet, "/korisnici?role=star", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/prijava?from="+url.QueryEscape("/korisnici?role=star"), w.Header().Get("Location"))
	assert.Empty(t, hs.api.calls, "no API call may happen for an anonymous visitor")
}

func TestLoginReturnsToRequestedRoute(t *testing.T) {
	hs := newHarness(t, "admin")

	w := hs.do(http.MethodPost, "/prijava", url.Values{
		"email":    {"admin@viveo.rs"},
		"password": {"secret"},
		"from":     {"/korisnici"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/korisnici", w.Header().Get("Location"))
	cookie := sessionCookie(w)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, 1, hs.store.Len())

	w = hs.do(http.MethodGet, "/korisnici", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Marko Markovic")
	assert.Contains(t, w.Body.String(), "Ana Admin")
}

func TestLoginRejectsExternalReturnPath(t *testing.T) {
	hs := newHarness(t, "admin")
	w := hs.do(http.MethodPost, "/prijava", url.Values{
		"email":    {"admin@viveo.rs"},
		"password": {"secret"},
		"from":     {"//evil.example/"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestNonAdminLoginStaysAnonymous(t *testing.T) {
	hs := newHarness(t, "fan")

	w := hs.do(http.MethodPost, "/prijava", url.Values{
		"email":    {"fan@viveo.rs"},
		"password": {"secret"},
		"from":     {"/korisnici"},
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), session.ErrAdminOnly)
	assert.Nil(t, sessionCookie(w))
	assert.Equal(t, 0, hs.store.Len())
}

func TestLoginRequiresEmailAndPassword(t *testing.T) {
	hs := newHarness(t, "admin")
	w := hs.do(http.MethodPost, "/prijava", url.Values{"email": {"admin@viveo.rs"}})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, 0, hs.api.count("POST /auth/login"))
}

func TestSameRoleIssuesNoRequest(t *testing.T) {
	hs := newHarness(t, "admin")
	cookie := hs.login(t, "/")

	w := hs.do(http.MethodGet, "/korisnici/u1", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	w = hs.do(http.MethodPost, "/korisnici/u1/uloga", url.Values{"role": {"fan"}}, cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/korisnici/u1", w.Header().Get("Location"))
	assert.Equal(t, 0, hs.api.count("PATCH /admin/users/u1"))

	w = hs.do(http.MethodPost, "/korisnici/u1/uloga", url.Values{"role": {"star"}}, cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/korisnici/u1", w.Header().Get("Location"))
	assert.Equal(t, 1, hs.api.count("PATCH /admin/users/u1"))
	assert.Equal(t, "star", hs.api.lastBody()["role"])
}

func TestRepeatedToggleSendsOnePatch(t *testing.T) {
	hs := newHarness(t, "admin")
	cookie := hs.login(t, "/")

	w := hs.do(http.MethodGet, "/proizvodi/p1", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `name="isActive" value="false"`)

	for range 2 {
		w = hs.do(http.MethodPost, "/proizvodi/p1/prekidac", url.Values{"isActive": {"false"}}, cookie)
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/proizvodi/p1", w.Header().Get("Location"))
	}
	assert.Equal(t, 1, hs.api.count("PATCH /admin/products/p1"))
	assert.Equal(t, false, hs.api.lastBody()["isActive"])
	assert.NotContains(t, hs.api.lastBody(), "featured")

	w = hs.do(http.MethodPost, "/proizvodi/p1/prekidac", url.Values{"isActive": {"nope"}}, cookie)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, 1, hs.api.count("PATCH /admin/products/p1"))
}

func TestUnchangedCategoryFormRedirects(t *testing.T) {
	hs := newHarness(t, "admin")
	cookie := hs.login(t, "/")

	w := hs.do(http.MethodPost, "/kategorije/c1", url.Values{"name": {" Muzika "}, "icon": {"M"}}, cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/kategorije", w.Header().Get("Location"))
	assert.Equal(t, 0, hs.api.count("PATCH /admin/categories/c1"))
}

func TestCategoryWithDependentsCannotBeDeleted(t *testing.T) {
	hs := newHarness(t, "admin")
	cookie := hs.login(t, "/")

	w := hs.do(http.MethodGet, "/kategorije/c1/obrisi", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Ne možete obrisati")

	w = hs.do(http.MethodPost, "/kategorije/c1/obrisi", url.Values{"confirm": {"yes"}}, cookie)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, 0, hs.api.count("DELETE /admin/categories/c1"))
}

func TestConfirmedDeleteIssuesOneRequest(t *testing.T) {
	hs := newHarness(t, "admin")
	cookie := hs.login(t, "/")

	w := hs.do(http.MethodPost, "/kategorije/c2/obrisi", url.Values{}, cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/kategorije/c2/obrisi", w.Header().Get("Location"))
	assert.Equal(t, 0, hs.api.count("DELETE /admin/categories/c2"))

	w = hs.do(http.MethodPost, "/kategorije/c2/obrisi", url.Values{"confirm": {"yes"}}, cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/kategorije", w.Header().Get("Location"))
	assert.Equal(t, 1, hs.api.count("DELETE /admin/categories/c2"))
}

func TestExpiredTokenSendsAdminBackToLogin(t *testing.T) {
	hs := newHarness(t, "admin")
	cookie := hs.login(t, "/")

	hs.api.mu.Lock()
	hs.api.expired = true
	hs.api.mu.Unlock()

	w := hs.do(http.MethodGet, "/korisnici", nil, cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/prijava?from="+url.QueryEscape("/korisnici"), w.Header().Get("Location"))
	assert.Equal(t, 0, hs.store.Len())

	w = hs.do(http.MethodGet, "/korisnici", nil, cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code, "the old cookie must not work again")
}

func TestLiveSearchReturnsFragment(t *testing.T) {
	hs := newHarness(t, "admin")
	cookie := hs.login(t, "/")

	w := hs.do(http.MethodGet, "/korisnici/pretraga?q=mar", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Marko Markovic")
	assert.NotContains(t, w.Body.String(), "<html")
}

func TestDashboardShowsStats(t *testing.T) {
	hs := newHarness(t, "admin")
	cookie := hs.login(t, "/")

	w := hs.do(http.MethodGet, "/", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "150.000 RSD")
}

func TestUnknownRouteRendersNotFound(t *testing.T) {
	hs := newHarness(t, "admin")
	w := hs.do(http.MethodGet, "/nema-ovoga", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLogoutClearsSession(t *testing.T) {
	hs := newHarness(t, "admin")
	cookie := hs.login(t, "/")

	w := hs.do(http.MethodPost, "/odjava", nil, cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/prijava", w.Header().Get("Location"))
	assert.Equal(t, 0, hs.store.Len())
	assert.Equal(t, 1, hs.api.count("POST /auth/logout"))
}
