package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ymatsuda/pirouette/internal/model"
)

// CompanyReader はバレエ団ハンドラーが必要とする読み取り操作のインターフェース。
type CompanyReader interface {
	// FindByID は指定IDのバレエ団を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, companyID string) (*model.Company, error)
	// List は全バレエ団を名前順で取得する。
	List(ctx context.Context) ([]*model.Company, error)
}

// CompanyPerformanceLister はバレエ団単位の公演一覧取得のインターフェース。
type CompanyPerformanceLister interface {
	// ListByCompanyPast は指定バレエ団の公演を過去フィルタ付きで取得する。
	ListByCompanyPast(ctx context.Context, companyID string, past *bool, now time.Time) ([]*model.Performance, error)
}

// CompanyHandler はバレエ団APIのHTTPハンドラー。
type CompanyHandler struct {
	companies    CompanyReader
	performances CompanyPerformanceLister
	now          func() time.Time
}

// NewCompanyHandler はCompanyHandlerを生成する。nowがnilならtime.Nowを使用する。
func NewCompanyHandler(companies CompanyReader, performances CompanyPerformanceLister, now func() time.Time) *CompanyHandler {
	if now == nil {
		now = time.Now
	}
	return &CompanyHandler{
		companies:    companies,
		performances: performances,
		now:          now,
	}
}

// ListCompanies は全バレエ団を返す。
// GET /api/companies
func (h *CompanyHandler) ListCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := h.companies.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	result := make([]companyResponse, 0, len(companies))
	for _, c := range companies {
		result = append(result, toCompanyResponse(c))
	}
	writeJSONResponse(w, http.StatusOK, result)
}

// GetCompany はバレエ団詳細を返す。
// GET /api/companies/:id
func (h *CompanyHandler) GetCompany(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "id")

	company, err := h.companies.FindByID(r.Context(), companyID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if company == nil {
		writeAPIErrorResponse(w, http.StatusNotFound, model.NewCompanyNotFoundError(companyID))
		return
	}

	writeJSONResponse(w, http.StatusOK, toCompanyResponse(company))
}

// ListCompanyPerformances はバレエ団の公演一覧を初日昇順で返す。
// pastパラメータで過去公演の絞り込みができる（true: 終了済みのみ、false: 終了済み除外）。
// GET /api/companies/:id/performances?past=true
func (h *CompanyHandler) ListCompanyPerformances(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "id")

	company, err := h.companies.FindByID(r.Context(), companyID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if company == nil {
		writeAPIErrorResponse(w, http.StatusNotFound, model.NewCompanyNotFoundError(companyID))
		return
	}

	var past *bool
	if raw := r.URL.Query().Get("past"); raw != "" {
		switch raw {
		case "true":
			v := true
			past = &v
		case "false":
			v := false
			past = &v
		default:
			writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidFlagError("past", raw))
			return
		}
	}

	perfs, err := h.performances.ListByCompanyPast(r.Context(), companyID, past, h.now())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	result := make([]performanceResponse, 0, len(perfs))
	for _, p := range perfs {
		resp := toPerformanceResponse(p)
		resp.CompanyName = company.Name
		resp.CompanyShortName = company.ShortName
		result = append(result, resp)
	}
	writeJSONResponse(w, http.StatusOK, result)
}
