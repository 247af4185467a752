package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/ymatsuda/pirouette/internal/model"
)

// dateFormat は公演日付のAPI表現。時刻は持たない。
const dateFormat = "2006-01-02"

// companyResponse はバレエ団情報のAPIレスポンス。
type companyResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ShortName   string `json:"shortName"`
	Description string `json:"description"`
	LogoURL     string `json:"logoUrl"`
	WebsiteURL  string `json:"websiteUrl"`
	LastScraped string `json:"lastScraped"`
}

// performanceResponse は公演情報のAPIレスポンス。
// companyName/companyShortNameは一覧APIでのみ設定される。
type performanceResponse struct {
	ID               string `json:"id"`
	CompanyID        string `json:"companyId"`
	Title            string `json:"title"`
	StartDate        string `json:"startDate"`
	EndDate          string `json:"endDate"`
	Description      string `json:"description"`
	ImageURL         string `json:"imageUrl"`
	VideoURL         string `json:"videoUrl,omitempty"`
	IsPast           bool   `json:"isPast"`
	IsCurrent        bool   `json:"isCurrent"`
	IsNext           bool   `json:"isNext"`
	CompanyName      string `json:"companyName,omitempty"`
	CompanyShortName string `json:"companyShortName,omitempty"`
}

// apiErrorResponse は統一エラーフォーマットのレスポンス。
type apiErrorResponse struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Category string `json:"category"`
	Action   string `json:"action"`
}

func toCompanyResponse(c *model.Company) companyResponse {
	return companyResponse{
		ID:          c.CompanyID,
		Name:        c.Name,
		ShortName:   c.ShortName,
		Description: c.Description,
		LogoURL:     c.LogoURL,
		WebsiteURL:  c.WebsiteURL,
		LastScraped: c.LastScraped.UTC().Format(time.RFC3339),
	}
}

func toPerformanceResponse(p *model.Performance) performanceResponse {
	return performanceResponse{
		ID:          p.ID,
		CompanyID:   p.CompanyID,
		Title:       p.Title,
		StartDate:   p.StartDate.Format(dateFormat),
		EndDate:     p.EndDate.Format(dateFormat),
		Description: p.Description,
		ImageURL:    p.ImageURL,
		VideoURL:    p.VideoURL,
		IsPast:      p.IsPast,
		IsCurrent:   p.IsCurrent,
		IsNext:      p.IsNext,
	}
}

func toPerformanceWithCompanyResponse(p *model.PerformanceWithCompany) performanceResponse {
	resp := toPerformanceResponse(&p.Performance)
	resp.CompanyName = p.CompanyName
	resp.CompanyShortName = p.CompanyShortName
	return resp
}

func toPerformanceListResponse(perfs []*model.PerformanceWithCompany) []performanceResponse {
	result := make([]performanceResponse, 0, len(perfs))
	for _, p := range perfs {
		result = append(result, toPerformanceWithCompanyResponse(p))
	}
	return result
}

// writeJSONResponse はJSONレスポンスを書き込む。
func writeJSONResponse(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}

// writeAPIErrorResponse は統一エラーフォーマットでエラーレスポンスを書き込む。
func writeAPIErrorResponse(w http.ResponseWriter, statusCode int, apiErr *model.APIError) {
	writeJSONResponse(w, statusCode, apiErrorResponse{
		Code:     apiErr.Code,
		Message:  apiErr.Message,
		Category: apiErr.Category,
		Action:   apiErr.Action,
	})
}

// handleServiceError は下位層から返されたエラーを適切なHTTPステータスコードに変換する。
func handleServiceError(w http.ResponseWriter, err error) {
	// APIError以外のエラーは内部サーバーエラーとして扱う
	slog.Error("internal server error", slog.String("error", err.Error()))
	writeAPIErrorResponse(w, http.StatusInternalServerError, &model.APIError{
		Code:     "INTERNAL_ERROR",
		Message:  "内部エラーが発生しました。",
		Category: "system",
		Action:   "しばらく待ってから再度お試しください。",
	})
}
