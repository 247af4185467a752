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

// fakePerformanceReader はテスト用のPerformanceReader実装。
// 呼び出しに渡されたフィルタや日付を記録する。
type fakePerformanceReader struct {
	perfs      []*model.PerformanceWithCompany
	byID       map[string]*model.PerformanceWithCompany
	lastFilter model.PerformanceFilter
	lastLimit  int
	lastDays   int
	lastDate   time.Time
}

func (f *fakePerformanceReader) FindByID(ctx context.Context, id string) (*model.PerformanceWithCompany, error) {
	return f.byID[id], nil
}

func (f *fakePerformanceReader) List(ctx context.Context, filter model.PerformanceFilter, now time.Time, limit int) ([]*model.PerformanceWithCompany, error) {
	f.lastFilter = filter
	f.lastLimit = limit
	return f.perfs, nil
}

func (f *fakePerformanceReader) ListUpcomingWithin(ctx context.Context, now time.Time, days int, limit int) ([]*model.PerformanceWithCompany, error) {
	f.lastDays = days
	return f.perfs, nil
}

func (f *fakePerformanceReader) ListOnDate(ctx context.Context, date time.Time) ([]*model.PerformanceWithCompany, error) {
	f.lastDate = date
	return f.perfs, nil
}

func testPerformanceWithCompany() *model.PerformanceWithCompany {
	return &model.PerformanceWithCompany{
		Performance: model.Performance{
			ID:        "p-1",
			CompanyID: "nbc",
			Title:     "Giselle",
			StartDate: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC),
			IsCurrent: true,
		},
		CompanyName:      "The National Ballet of Canada",
		CompanyShortName: "NBC",
	}
}

func newParamRequest(t *testing.T, target, param, value string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(param, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestListPerformances_FilterParams(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantFilter model.PerformanceFilter
	}{
		{"指定なしは全件", "", http.StatusOK, model.PerformanceFilterAll},
		{"current指定", "?current=true", http.StatusOK, model.PerformanceFilterCurrent},
		{"upcoming指定", "?upcoming=true", http.StatusOK, model.PerformanceFilterUpcoming},
		{"past指定", "?past=true", http.StatusOK, model.PerformanceFilterPast},
		{"明示的falseは全件", "?current=false", http.StatusOK, model.PerformanceFilterAll},
		{"不正値は400", "?current=1", http.StatusBadRequest, model.PerformanceFilterAll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := &fakePerformanceReader{}
			h := NewPerformanceHandler(reader, fixedClock)

			req := httptest.NewRequest(http.MethodGet, "/api/performances"+tt.query, nil)
			w := httptest.NewRecorder()
			h.ListPerformances(w, req)

			if w.Result().StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Result().StatusCode, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK && reader.lastFilter != tt.wantFilter {
				t.Errorf("filter = %q, want %q", reader.lastFilter, tt.wantFilter)
			}
		})
	}
}

func TestListPerformances_LimitParam(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantLimit  int
	}{
		{"指定なしは無制限", "", http.StatusOK, 0},
		{"正の整数", "?limit=10", http.StatusOK, 10},
		{"ゼロは400", "?limit=0", http.StatusBadRequest, 0},
		{"負数は400", "?limit=-1", http.StatusBadRequest, 0},
		{"数値以外は400", "?limit=ten", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := &fakePerformanceReader{}
			h := NewPerformanceHandler(reader, fixedClock)

			req := httptest.NewRequest(http.MethodGet, "/api/performances"+tt.query, nil)
			w := httptest.NewRecorder()
			h.ListPerformances(w, req)

			resp := w.Result()
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK && reader.lastLimit != tt.wantLimit {
				t.Errorf("limit = %d, want %d", reader.lastLimit, tt.wantLimit)
			}
			if tt.wantStatus == http.StatusBadRequest {
				var body apiErrorResponse
				if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
					t.Fatalf("failed to decode body: %v", err)
				}
				if body.Code != model.ErrCodeInvalidLimit {
					t.Errorf("code = %q, want %q", body.Code, model.ErrCodeInvalidLimit)
				}
			}
		})
	}
}

func TestListUpcomingPerformances_Uses30DayWindow(t *testing.T) {
	reader := &fakePerformanceReader{}
	h := NewPerformanceHandler(reader, fixedClock)

	req := httptest.NewRequest(http.MethodGet, "/api/performances/upcoming", nil)
	w := httptest.NewRecorder()
	h.ListUpcomingPerformances(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Result().StatusCode)
	}
	if reader.lastDays != 30 {
		t.Errorf("window days = %d, want 30", reader.lastDays)
	}
}

func TestListPerformancesByDate_ValidDate(t *testing.T) {
	reader := &fakePerformanceReader{perfs: []*model.PerformanceWithCompany{testPerformanceWithCompany()}}
	h := NewPerformanceHandler(reader, fixedClock)

	req := newParamRequest(t, "/api/performances/by-date/2025-06-15", "date", "2025-06-15")
	w := httptest.NewRecorder()
	h.ListPerformancesByDate(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	want := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	if !reader.lastDate.Equal(want) {
		t.Errorf("date = %v, want %v", reader.lastDate, want)
	}
}

func TestListPerformancesByDate_MalformedDate(t *testing.T) {
	tests := []string{"2025/06/15", "15-06-2025", "2025-13-40", "today"}

	for _, raw := range tests {
		t.Run(raw, func(t *testing.T) {
			reader := &fakePerformanceReader{}
			h := NewPerformanceHandler(reader, fixedClock)

			req := newParamRequest(t, "/api/performances/by-date/"+raw, "date", raw)
			w := httptest.NewRecorder()
			h.ListPerformancesByDate(w, req)

			resp := w.Result()
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", resp.StatusCode)
			}

			var body apiErrorResponse
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if body.Code != model.ErrCodeInvalidDate {
				t.Errorf("code = %q, want %q", body.Code, model.ErrCodeInvalidDate)
			}
		})
	}
}

func TestGetPerformance_ReturnsPerformanceWithCompany(t *testing.T) {
	perf := testPerformanceWithCompany()
	reader := &fakePerformanceReader{byID: map[string]*model.PerformanceWithCompany{"p-1": perf}}
	h := NewPerformanceHandler(reader, fixedClock)

	req := newParamRequest(t, "/api/performances/p-1", "id", "p-1")
	w := httptest.NewRecorder()
	h.GetPerformance(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body performanceResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Title != "Giselle" {
		t.Errorf("title = %q, want Giselle", body.Title)
	}
	if body.CompanyShortName != "NBC" {
		t.Errorf("companyShortName = %q, want NBC", body.CompanyShortName)
	}
	if !body.IsCurrent {
		t.Error("isCurrent should be true")
	}
}

func TestGetPerformance_NotFound(t *testing.T) {
	reader := &fakePerformanceReader{byID: map[string]*model.PerformanceWithCompany{}}
	h := NewPerformanceHandler(reader, fixedClock)

	req := newParamRequest(t, "/api/performances/missing", "id", "missing")
	w := httptest.NewRecorder()
	h.GetPerformance(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}

	var body apiErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Code != model.ErrCodePerformanceNotFound {
		t.Errorf("code = %q, want %q", body.Code, model.ErrCodePerformanceNotFound)
	}
}
