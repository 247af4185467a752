package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ymatsuda/pirouette/internal/model"
)

// fakePinger はテスト用のPinger実装。
type fakePinger struct {
	err error
}

func (p *fakePinger) PingContext(ctx context.Context) error { return p.err }

func newTestRouter(pingErr error) http.Handler {
	return NewRouter(&RouterDeps{
		CORSAllowedOrigin: "https://example.com",
		Logger:            slog.New(slog.NewTextHandler(io.Discard, nil)),
		Companies:         &fakeCompanyReader{companies: map[string]*model.Company{"nbc": testCompany()}},
		Performances:      &routePerfReader{},
		DB:                &fakePinger{err: pingErr},
		Now:               fixedClock,
	})
}

// routePerfReader はルーティングテスト用にPerformanceRouteReader全体を満たすフェイク。
type routePerfReader struct {
	fakePerformanceReader
	fakeCompanyPerformanceLister
}

func TestRouter_HealthOK(t *testing.T) {
	router := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %q, want ok", body["status"])
	}
}

func TestRouter_HealthUnavailableWhenDBDown(t *testing.T) {
	router := newTestRouter(errors.New("connection refused"))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Result().StatusCode)
	}
}

func TestRouter_RoutesAreRegistered(t *testing.T) {
	router := newTestRouter(nil)

	paths := []string{
		"/api/companies",
		"/api/companies/nbc",
		"/api/companies/nbc/performances",
		"/api/performances",
		"/api/performances/current",
		"/api/performances/upcoming",
		"/api/performances/by-date/2025-06-15",
	}

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Result().StatusCode != http.StatusOK {
				t.Errorf("status = %d, want 200", w.Result().StatusCode)
			}
		})
	}
}

func TestRouter_SetsCORSHeaders(t *testing.T) {
	router := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/companies", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if got := w.Result().Header.Get("Access-Control-Allow-Origin"); got != "https://example.com" {
		t.Errorf("Allow-Origin = %q, want https://example.com", got)
	}
}

func TestRouter_UnknownPerformanceReturns404Body(t *testing.T) {
	router := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/performances/no-such-id", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

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
