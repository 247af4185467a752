package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ymatsuda/pirouette/internal/model"
)

var handlerNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return handlerNow }

// fakeCompanyReader はテスト用のCompanyReader実装。
type fakeCompanyReader struct {
	companies map[string]*model.Company
	err       error
}

func (f *fakeCompanyReader) FindByID(ctx context.Context, companyID string) (*model.Company, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.companies[companyID], nil
}

func (f *fakeCompanyReader) List(ctx context.Context) ([]*model.Company, error) {
	if f.err != nil {
		return nil, f.err
	}
	var result []*model.Company
	for _, c := range f.companies {
		result = append(result, c)
	}
	return result, nil
}

// fakeCompanyPerformanceLister はテスト用のCompanyPerformanceLister実装。
type fakeCompanyPerformanceLister struct {
	perfs    []*model.Performance
	lastPast *bool
}

func (f *fakeCompanyPerformanceLister) ListByCompanyPast(ctx context.Context, companyID string, past *bool, now time.Time) ([]*model.Performance, error) {
	f.lastPast = past
	return f.perfs, nil
}

func testCompany() *model.Company {
	return &model.Company{
		CompanyID:   "nbc",
		Name:        "The National Ballet of Canada",
		ShortName:   "NBC",
		WebsiteURL:  "https://national.ballet.ca",
		LastScraped: handlerNow,
	}
}

// newCompanyRequest はchiのURLパラメータ付きリクエストを組み立てる。
func newCompanyRequest(t *testing.T, target, companyID string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", companyID)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestGetCompany_ReturnsCompany(t *testing.T) {
	companies := &fakeCompanyReader{companies: map[string]*model.Company{"nbc": testCompany()}}
	h := NewCompanyHandler(companies, &fakeCompanyPerformanceLister{}, fixedClock)

	req := newCompanyRequest(t, "/api/companies/nbc", "nbc")
	w := httptest.NewRecorder()
	h.GetCompany(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body companyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.ID != "nbc" {
		t.Errorf("id = %q, want nbc", body.ID)
	}
	if body.ShortName != "NBC" {
		t.Errorf("shortName = %q, want NBC", body.ShortName)
	}
}

func TestGetCompany_NotFound(t *testing.T) {
	companies := &fakeCompanyReader{companies: map[string]*model.Company{}}
	h := NewCompanyHandler(companies, &fakeCompanyPerformanceLister{}, fixedClock)

	req := newCompanyRequest(t, "/api/companies/unknown", "unknown")
	w := httptest.NewRecorder()
	h.GetCompany(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}

	var body apiErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Code != model.ErrCodeCompanyNotFound {
		t.Errorf("code = %q, want %q", body.Code, model.ErrCodeCompanyNotFound)
	}
}

func TestListCompanies_ReturnsAll(t *testing.T) {
	companies := &fakeCompanyReader{companies: map[string]*model.Company{"nbc": testCompany()}}
	h := NewCompanyHandler(companies, &fakeCompanyPerformanceLister{}, fixedClock)

	req := httptest.NewRequest(http.MethodGet, "/api/companies", nil)
	w := httptest.NewRecorder()
	h.ListCompanies(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body []companyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if len(body) != 1 {
		t.Errorf("company count = %d, want 1", len(body))
	}
}

func TestListCompanyPerformances_DatesAreFormattedAsDayOnly(t *testing.T) {
	companies := &fakeCompanyReader{companies: map[string]*model.Company{"nbc": testCompany()}}
	lister := &fakeCompanyPerformanceLister{
		perfs: []*model.Performance{
			{
				ID:        "p-1",
				CompanyID: "nbc",
				Title:     "Giselle",
				StartDate: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC),
			},
		},
	}
	h := NewCompanyHandler(companies, lister, fixedClock)

	req := newCompanyRequest(t, "/api/companies/nbc/performances", "nbc")
	w := httptest.NewRecorder()
	h.ListCompanyPerformances(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body []performanceResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if len(body) != 1 {
		t.Fatalf("performance count = %d, want 1", len(body))
	}
	if body[0].StartDate != "2025-06-10" {
		t.Errorf("startDate = %q, want 2025-06-10", body[0].StartDate)
	}
	if body[0].EndDate != "2025-06-20" {
		t.Errorf("endDate = %q, want 2025-06-20", body[0].EndDate)
	}
	if body[0].CompanyName != "The National Ballet of Canada" {
		t.Errorf("companyName = %q", body[0].CompanyName)
	}
}

func TestListCompanyPerformances_PastParam(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantPast   *bool
	}{
		{"指定なしは全件", "", http.StatusOK, nil},
		{"trueは終了済みのみ", "?past=true", http.StatusOK, boolPtr(true)},
		{"falseは終了済み除外", "?past=false", http.StatusOK, boolPtr(false)},
		{"不正値は400", "?past=yes", http.StatusBadRequest, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			companies := &fakeCompanyReader{companies: map[string]*model.Company{"nbc": testCompany()}}
			lister := &fakeCompanyPerformanceLister{}
			h := NewCompanyHandler(companies, lister, fixedClock)

			req := newCompanyRequest(t, "/api/companies/nbc/performances"+tt.query, "nbc")
			w := httptest.NewRecorder()
			h.ListCompanyPerformances(w, req)

			if w.Result().StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Result().StatusCode, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusOK {
				return
			}
			if (lister.lastPast == nil) != (tt.wantPast == nil) {
				t.Fatalf("past = %v, want %v", lister.lastPast, tt.wantPast)
			}
			if tt.wantPast != nil && *lister.lastPast != *tt.wantPast {
				t.Errorf("past = %v, want %v", *lister.lastPast, *tt.wantPast)
			}
		})
	}
}

func TestListCompanyPerformances_UnknownCompany(t *testing.T) {
	companies := &fakeCompanyReader{companies: map[string]*model.Company{}}
	h := NewCompanyHandler(companies, &fakeCompanyPerformanceLister{}, fixedClock)

	req := newCompanyRequest(t, "/api/companies/unknown/performances", "unknown")
	w := httptest.NewRecorder()
	h.ListCompanyPerformances(w, req)

	if w.Result().StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Result().StatusCode)
	}
}

func boolPtr(v bool) *bool { return &v }
