package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ymatsuda/pirouette/internal/model"
)

// upcomingWindowDays は/api/performances/upcomingが対象とする日数。
const upcomingWindowDays = 30

// PerformanceReader は公演ハンドラーが必要とする読み取り操作のインターフェース。
type PerformanceReader interface {
	// FindByID は指定IDの公演をバレエ団名付きで取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.PerformanceWithCompany, error)
	// List は全バレエ団の公演をフィルタ付きで初日昇順で取得する。limitが0以下なら無制限。
	List(ctx context.Context, filter model.PerformanceFilter, now time.Time, limit int) ([]*model.PerformanceWithCompany, error)
	// ListUpcomingWithin は初日が今日より後かつ指定日数以内の公演を取得する。
	ListUpcomingWithin(ctx context.Context, now time.Time, days int, limit int) ([]*model.PerformanceWithCompany, error)
	// ListOnDate は指定日が期間内（両端含む）の公演を取得する。
	ListOnDate(ctx context.Context, date time.Time) ([]*model.PerformanceWithCompany, error)
}

// PerformanceHandler は公演APIのHTTPハンドラー。
type PerformanceHandler struct {
	performances PerformanceReader
	now          func() time.Time
}

// NewPerformanceHandler はPerformanceHandlerを生成する。nowがnilならtime.Nowを使用する。
func NewPerformanceHandler(performances PerformanceReader, now func() time.Time) *PerformanceHandler {
	if now == nil {
		now = time.Now
	}
	return &PerformanceHandler{
		performances: performances,
		now:          now,
	}
}

// ListPerformances は全バレエ団の公演を初日昇順で返す。
// current/upcoming/pastの真偽値パラメータで絞り込み、limitで件数を制限できる。
// GET /api/performances?current=true&limit=10
func (h *PerformanceHandler) ListPerformances(w http.ResponseWriter, r *http.Request) {
	filter := model.PerformanceFilterAll

	for _, f := range []struct {
		name   string
		filter model.PerformanceFilter
	}{
		{"current", model.PerformanceFilterCurrent},
		{"upcoming", model.PerformanceFilterUpcoming},
		{"past", model.PerformanceFilterPast},
	} {
		raw := r.URL.Query().Get(f.name)
		if raw == "" {
			continue
		}
		switch raw {
		case "true":
			filter = f.filter
		case "false":
			// 明示的なfalseは絞り込みなしと同じ
		default:
			writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidFlagError(f.name, raw))
			return
		}
		if filter != model.PerformanceFilterAll {
			break
		}
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidLimitError(raw))
			return
		}
		limit = parsed
	}

	perfs, err := h.performances.List(r.Context(), filter, h.now(), limit)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, toPerformanceListResponse(perfs))
}

// ListCurrentPerformances は本日が期間内の公演を返す。
// GET /api/performances/current
func (h *PerformanceHandler) ListCurrentPerformances(w http.ResponseWriter, r *http.Request) {
	perfs, err := h.performances.List(r.Context(), model.PerformanceFilterCurrent, h.now(), 0)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, toPerformanceListResponse(perfs))
}

// ListUpcomingPerformances は初日が今日より後かつ30日以内の公演を返す。
// GET /api/performances/upcoming
func (h *PerformanceHandler) ListUpcomingPerformances(w http.ResponseWriter, r *http.Request) {
	perfs, err := h.performances.ListUpcomingWithin(r.Context(), h.now(), upcomingWindowDays, 0)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, toPerformanceListResponse(perfs))
}

// ListPerformancesByDate は指定日が期間内の公演を返す。
// GET /api/performances/by-date/2025-06-15
func (h *PerformanceHandler) ListPerformancesByDate(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "date")

	date, err := time.ParseInLocation(dateFormat, raw, time.UTC)
	if err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidDateError(raw))
		return
	}

	perfs, err := h.performances.ListOnDate(r.Context(), date)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, toPerformanceListResponse(perfs))
}

// GetPerformance は公演詳細を返す。
// GET /api/performances/:id
func (h *PerformanceHandler) GetPerformance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	perf, err := h.performances.FindByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if perf == nil {
		writeAPIErrorResponse(w, http.StatusNotFound, model.NewPerformanceNotFoundError(id))
		return
	}

	writeJSONResponse(w, http.StatusOK, toPerformanceWithCompanyResponse(perf))
}
