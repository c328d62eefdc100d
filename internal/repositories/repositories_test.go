package repositories

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"admin/internal/apiclient"
	"admin/internal/domain"
	"admin/internal/domain/models"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

type recorded struct {
	Method string
	Path   string
	Query  string
	Body   map[string]any
}

type stubAPI struct {
	mu       sync.Mutex
	requests []recorded
	status   int
	reply    string
}

func (s *stubAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	rec := recorded{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &rec.Body)
	}
	s.mu.Lock()
	s.requests = append(s.requests, rec)
	status, reply := s.status, s.reply
	s.mu.Unlock()

	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(reply))
}

func (s *stubAPI) calls() []recorded {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]recorded(nil), s.requests...)
}

func newStub(t *testing.T, status int, reply string) (*stubAPI, Repositories) {
	t.Helper()
	stub := &stubAPI{status: status, reply: reply}
	srv := httptest.NewServer(stub)
	t.Cleanup(srv.Close)
	client := apiclient.New(apiclient.Config{BaseURL: srv.URL, Timeout: 2 * time.Second}, nil)
	return stub, New(client)
}

func TestFindUsersReturnsServerPage(t *testing.T) {
	stub, repos := newStub(t, http.StatusOK, `{"data":[{"id":"u3","fullName":"Marko"},{"id":"u4","fullName":"Jelena"}],"meta":{"page":2,"pageSize":2,"total":6,"totalPages":3}}`)

	page, err := repos.Users.Find(context.Background(), models.UserFilter{Page: 2, PageSize: 2, Role: "star"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Page != 2 || page.TotalPages != 3 {
		t.Fatalf("unexpected pagination: %+v", page)
	}
	if len(page.Items) != 2 || page.Items[0].ID != "u3" || page.Items[1].ID != "u4" {
		t.Fatalf("items out of order: %+v", page.Items)
	}
	calls := stub.calls()
	if len(calls) != 1 || calls[0].Path != "/admin/users" || calls[0].Query != "page=2&pageSize=2&role=star" {
		t.Fatalf("unexpected request: %+v", calls)
	}
}

func TestFindSendsOnlyExposedFilters(t *testing.T) {
	stub, repos := newStub(t, http.StatusOK, `{"data":[]}`)
	ctx := context.Background()

	if _, err := repos.Celebrities.Find(ctx, models.CelebrityFilter{Page: 1, PageSize: 20, Category: "muzika"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repos.Products.Find(ctx, models.ProductFilter{Page: 1, PageSize: 20, Search: "majica", Category: "odeca"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := []string{}
	for _, c := range stub.calls() {
		got = append(got, c.Path+"?"+c.Query)
	}
	want := []string{
		"/admin/celebrities?category=muzika&page=1&pageSize=20",
		"/admin/products?category=odeca&page=1&pageSize=20&search=majica",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected queries (-want +got):\n%s", diff)
	}
}

func TestFindWithoutMetaIsSinglePage(t *testing.T) {
	_, repos := newStub(t, http.StatusOK, `{"data":[]}`)
	page, err := repos.VideoOrders.Find(context.Background(), models.StatusFilter{Page: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.TotalPages != 1 || page.Page != 1 || page.Items == nil {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestGetMapsNotFound(t *testing.T) {
	_, repos := newStub(t, http.StatusNotFound, `{"error":"Order not found"}`)
	_, err := repos.VideoOrders.Get(context.Background(), "missing")
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err.Error() != "narudžbina missing not found" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestCelebrityPatchSendsOnlySetFields(t *testing.T) {
	stub, repos := newStub(t, http.StatusOK, `{"data":{"id":"c1","name":"Ana","verified":true}}`)

	price := decimal.NewFromInt(5000)
	detail, err := repos.Celebrities.Edit(context.Background(), "c1", models.CelebrityPatch{
		Verified: domain.Ptr(true),
		Price:    &price,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !detail.Verified {
		t.Fatalf("expected server entity to be returned")
	}
	calls := stub.calls()
	if len(calls) != 1 || calls[0].Method != http.MethodPatch || calls[0].Path != "/admin/celebrities/c1" {
		t.Fatalf("unexpected request: %+v", calls)
	}
	want := map[string]any{"verified": true, "price": float64(5000)}
	if diff := cmp.Diff(want, calls[0].Body); diff != "" {
		t.Fatalf("patch body mismatch (-want +got):\n%s", diff)
	}
}

func TestEmptyPatchIssuesNoRequest(t *testing.T) {
	stub, repos := newStub(t, http.StatusOK, `{"data":{}}`)
	_, err := repos.Celebrities.Edit(context.Background(), "c1", models.CelebrityPatch{})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if n := len(stub.calls()); n != 0 {
		t.Fatalf("expected no request, got %d", n)
	}
}

func TestRejectionMessageIsVerbatim(t *testing.T) {
	_, repos := newStub(t, http.StatusConflict, `{"error":"Kategorija ima povezane zvezde"}`)
	err := repos.Categories.Remove(context.Background(), "k1")
	if !domain.IsRejected(err) || err.Error() != "Kategorija ima povezane zvezde" {
		t.Fatalf("expected verbatim rejection, got %v", err)
	}
}

func TestMerchTrackingOnlyForShipped(t *testing.T) {
	stub, repos := newStub(t, http.StatusOK, `{"data":{"id":"m1"}}`)
	ctx := context.Background()

	if _, err := repos.MerchOrders.UpdateStatus(ctx, "m1", models.MerchConfirmed, "RS123"); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if _, err := repos.MerchOrders.UpdateStatus(ctx, "m1", models.MerchShipped, "  "); err != nil {
		t.Fatalf("ship without tracking: %v", err)
	}
	if _, err := repos.MerchOrders.UpdateStatus(ctx, "m1", models.MerchShipped, " RS123 "); err != nil {
		t.Fatalf("ship with tracking: %v", err)
	}

	calls := stub.calls()
	want := []map[string]any{
		{"status": "confirmed"},
		{"status": "shipped"},
		{"status": "shipped", "trackingNumber": "RS123"},
	}
	if len(calls) != len(want) {
		t.Fatalf("expected %d calls, got %d", len(want), len(calls))
	}
	for i := range want {
		if diff := cmp.Diff(want[i], calls[i].Body); diff != "" {
			t.Fatalf("call %d body mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestApplicationDecisionRejectsPending(t *testing.T) {
	stub, repos := newStub(t, http.StatusOK, `{"data":{}}`)
	_, err := repos.Applications.Decide(context.Background(), "a1", models.ApplicationPending)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(stub.calls()) != 0 {
		t.Fatalf("expected no request")
	}
}

func TestUpdateRoleRejectsUnknownRole(t *testing.T) {
	stub, repos := newStub(t, http.StatusOK, `{"data":{}}`)
	if _, err := repos.Users.UpdateRole(context.Background(), "u1", "superuser"); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(stub.calls()) != 0 {
		t.Fatalf("expected no request")
	}
}

func TestTaxonomyGetScansList(t *testing.T) {
	_, repos := newStub(t, http.StatusOK, `{"data":[{"id":"k1","name":"Muzika","productCount":0},{"id":"k2","name":"Sport","productCount":4}]}`)
	ctx := context.Background()

	c, err := repos.ProductCategories.Get(ctx, "k2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Name != "Sport" || c.Dependents() != 4 {
		t.Fatalf("unexpected category: %+v", c)
	}
	if _, err := repos.ProductCategories.Get(ctx, "k9"); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestTaxonomyCreateRequiresFields(t *testing.T) {
	stub, repos := newStub(t, http.StatusCreated, `{"data":{"id":"k3","name":"Film","icon":"🎬"}}`)
	ctx := context.Background()

	if _, err := repos.Categories.Create(ctx, models.CategoryInput{Name: "  ", Icon: "🎬"}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	c, err := repos.Categories.Create(ctx, models.CategoryInput{Name: " Film ", Icon: "🎬"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.ID != "k3" {
		t.Fatalf("unexpected category: %+v", c)
	}
	calls := stub.calls()
	if len(calls) != 1 || calls[0].Body["name"] != "Film" {
		t.Fatalf("unexpected calls: %+v", calls)
	}
}

func TestLoginRequiresCredentials(t *testing.T) {
	stub, repos := newStub(t, http.StatusOK, `{"data":{}}`)
	if _, err := repos.Auth.Login(context.Background(), models.Credentials{Email: "admin@viveo.rs"}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(stub.calls()) != 0 {
		t.Fatalf("expected no request")
	}
}

func TestStatsDecodesRevenue(t *testing.T) {
	_, repos := newStub(t, http.StatusOK, `{"data":{"totalUsers":12,"monthlyRevenue":150000.5,"dailyOrders":[{"date":"2025-01-01","count":3},{"date":"2025-01-02","count":7}]}}`)
	stats, err := repos.Stats.Get(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !stats.MonthlyRevenue.Equal(decimal.RequireFromString("150000.5")) {
		t.Fatalf("unexpected revenue: %s", stats.MonthlyRevenue)
	}
	if stats.MaxDaily() != 7 {
		t.Fatalf("unexpected max daily: %d", stats.MaxDaily())
	}
}
