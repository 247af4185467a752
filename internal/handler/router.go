// Package handler はAPIのHTTPハンドラーとルーティングを提供する。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ymatsuda/pirouette/internal/middleware"
)

// Pinger はデータベース死活確認のインターフェース。
type Pinger interface {
	PingContext(ctx context.Context) error
}

// PerformanceRouteReader は公演系ルート全体が必要とする読み取り操作のインターフェース。
type PerformanceRouteReader interface {
	PerformanceReader
	CompanyPerformanceLister
}

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	Logger            *slog.Logger
	StatusObserver    middleware.StatusObserver

	// リポジトリ
	Companies    CompanyReader
	Performances PerformanceRouteReader

	// 死活確認
	DB Pinger

	// メトリクス公開用ハンドラー。nilなら/metricsルートを張らない。
	MetricsHandler http.Handler

	// Now は現在時刻の供給元。テストでの差し替え用。nilならtime.Now。
	Now func() time.Time
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → Logging → SecurityHeaders → CORS → RateLimit
//
// /healthと/metricsはレート制限の外に配置する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewLoggingMiddleware(deps.Logger, deps.StatusObserver))
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))

	companyHandler := NewCompanyHandler(deps.Companies, deps.Performances, deps.Now)
	perfHandler := NewPerformanceHandler(deps.Performances, deps.Now)

	// --- 運用ルート（レート制限の外） ---

	r.Get("/health", healthHandler(deps.DB))
	if deps.MetricsHandler != nil {
		r.Handle("/metrics", deps.MetricsHandler)
	}

	// --- 公開APIルート ---

	r.Group(func(r chi.Router) {
		if deps.RateLimiter != nil {
			r.Use(deps.RateLimiter.Middleware())
		}

		r.Route("/api/companies", func(r chi.Router) {
			r.Get("/", companyHandler.ListCompanies)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", companyHandler.GetCompany)
				r.Get("/performances", companyHandler.ListCompanyPerformances)
			})
		})

		r.Route("/api/performances", func(r chi.Router) {
			r.Get("/", perfHandler.ListPerformances)
			r.Get("/current", perfHandler.ListCurrentPerformances)
			r.Get("/upcoming", perfHandler.ListUpcomingPerformances)
			r.Get("/by-date/{date}", perfHandler.ListPerformancesByDate)
			r.Get("/{id}", perfHandler.GetPerformance)
		})
	})

	return r
}

// healthHandler はデータベース接続を確認して200/503を返すハンドラーを生成する。
func healthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		if db != nil {
			if err := db.PingContext(ctx); err != nil {
				writeJSONResponse(w, http.StatusServiceUnavailable, map[string]string{
					"status": "unhealthy",
				})
				return
			}
		}

		writeJSONResponse(w, http.StatusOK, map[string]string{
			"status": "ok",
		})
	}
}
