// Package scrape は全バレエ団のスクレイプサイクルを実行するワーカーを提供する。
// アダプタごとの抽出、正規化、保存済み公演との突き合わせ、状態フラグの
// 再計算までを1サイクルとして扱う。
package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/ymatsuda/pirouette/internal/model"
	"github.com/ymatsuda/pirouette/internal/normalizer"
	"github.com/ymatsuda/pirouette/internal/reconcile"
	"github.com/ymatsuda/pirouette/internal/repository"
	"github.com/ymatsuda/pirouette/internal/scraper"
)

// ScrapeRecorder はスクレイプ結果の計測のインターフェース。
type ScrapeRecorder interface {
	// RecordScrape は1バレエ団分のスクレイプ結果を記録する。
	RecordScrape(companyID string, source model.DataSource, duration time.Duration, success bool)
	// RecordReconcile は突き合わせの挿入・更新件数を記録する。
	RecordReconcile(companyID string, inserted, updated int)
	// RecordDateFallback は日付が読み取れずフォールバック期間を使った件数を記録する。
	RecordDateFallback(companyID string)
}

// Config はWorkerの調整パラメータ。
type Config struct {
	// MinDelay / MaxDelay はバレエ団間に挟む待機時間の範囲。
	MinDelay time.Duration
	MaxDelay time.Duration
	// CompanyTimeout は1バレエ団分の処理に許す時間。
	CompanyTimeout time.Duration
	// Now は現在時刻の供給元。テストでの差し替え用。nilならtime.Now。
	Now func() time.Time
}

// Worker は全バレエ団のスクレイプサイクルを実行する。
// バレエ団は登録順に逐次処理し、1団の失敗が他の団に波及しないよう
// エラーはログに記録して続行する。
type Worker struct {
	registry       *scraper.Registry
	companyRepo    repository.CompanyRepository
	normalizer     *normalizer.Normalizer
	reconciler     *reconcile.Service
	metrics        ScrapeRecorder
	logger         *slog.Logger
	minDelay       time.Duration
	maxDelay       time.Duration
	companyTimeout time.Duration
	now            func() time.Time
}

// NewWorker はWorkerの新しいインスタンスを生成する。
func NewWorker(
	registry *scraper.Registry,
	companyRepo repository.CompanyRepository,
	norm *normalizer.Normalizer,
	reconciler *reconcile.Service,
	metrics ScrapeRecorder,
	logger *slog.Logger,
	cfg Config,
) *Worker {
	if cfg.MinDelay <= 0 {
		cfg.MinDelay = 2 * time.Second
	}
	if cfg.MaxDelay < cfg.MinDelay {
		cfg.MaxDelay = cfg.MinDelay
	}
	if cfg.CompanyTimeout <= 0 {
		cfg.CompanyTimeout = 2 * time.Minute
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Worker{
		registry:       registry,
		companyRepo:    companyRepo,
		normalizer:     norm,
		reconciler:     reconciler,
		metrics:        metrics,
		logger:         logger,
		minDelay:       cfg.MinDelay,
		maxDelay:       cfg.MaxDelay,
		companyTimeout: cfg.CompanyTimeout,
		now:            now,
	}
}

// ScrapeAll は登録済み全バレエ団を登録順にスクレイプする。
// 個別の失敗はログに記録して続行し、コンテキストのキャンセルのみエラーとして返す。
func (w *Worker) ScrapeAll(ctx context.Context) error {
	start := time.Now()
	ids := w.registry.CompanyIDs()

	w.logger.Info("スクレイプサイクルを開始します",
		slog.Int("company_count", len(ids)),
	)

	for i, id := range ids {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := w.ScrapeOne(ctx, id); err != nil {
			if ctx.Err() != nil {
				return err
			}
			w.logger.Error("バレエ団のスクレイプに失敗しました",
				slog.String("company_id", id),
				slog.String("error", err.Error()),
			)
		}

		// サイトへの負荷を抑えるため、次の団までランダムに待機する
		if i < len(ids)-1 {
			if err := w.pause(ctx); err != nil {
				return err
			}
		}
	}

	w.logger.Info("スクレイプサイクルが完了しました",
		slog.Int("company_count", len(ids)),
		slog.Float64("duration_ms", float64(time.Since(start).Milliseconds())),
	)
	return nil
}

// ScrapeOne は指定バレエ団を1団分スクレイプする。
func (w *Worker) ScrapeOne(ctx context.Context, companyID string) error {
	adapter, ok := w.registry.Get(companyID)
	if !ok {
		return fmt.Errorf("未対応のバレエ団IDです: %s", companyID)
	}

	cctx, cancel := context.WithTimeout(ctx, w.companyTimeout)
	defer cancel()

	return w.scrapeCompany(cctx, adapter)
}

// scrapeCompany は1バレエ団分の抽出・正規化・突き合わせを実行する。
func (w *Worker) scrapeCompany(ctx context.Context, adapter scraper.Adapter) error {
	companyID := adapter.CompanyID()
	start := time.Now()
	now := w.now()

	info, err := adapter.CompanyInfo(ctx)
	if err != nil {
		w.metrics.RecordScrape(companyID, model.DataSourceLive, time.Since(start), false)
		return fmt.Errorf("バレエ団情報の取得に失敗しました: %w", err)
	}

	company := &model.Company{
		CompanyID:   companyID,
		Name:        info.Name,
		ShortName:   info.ShortName,
		Description: info.Description,
		LogoURL:     info.LogoURL,
		WebsiteURL:  info.WebsiteURL,
		LastScraped: now,
	}
	if err := w.companyRepo.Upsert(ctx, company); err != nil {
		w.metrics.RecordScrape(companyID, model.DataSourceLive, time.Since(start), false)
		return fmt.Errorf("バレエ団の保存に失敗しました: %w", err)
	}

	outcome, err := adapter.Performances(ctx)
	if err != nil {
		w.metrics.RecordScrape(companyID, model.DataSourceLive, time.Since(start), false)
		return fmt.Errorf("公演の抽出に失敗しました: %w", err)
	}

	candidates := make([]model.Performance, 0, len(outcome.Performances))
	fallbackDates := 0
	for _, raw := range outcome.Performances {
		res := w.normalizer.Normalize(raw, company, now)
		if !res.DateMatched {
			fallbackDates++
			w.metrics.RecordDateFallback(companyID)
		}
		candidates = append(candidates, res.Performance)
	}

	candidates = w.reconciler.Dedupe(candidates)

	stats, err := w.reconciler.Upsert(ctx, companyID, candidates)
	if err != nil {
		w.metrics.RecordScrape(companyID, outcome.Source, time.Since(start), false)
		return fmt.Errorf("公演の突き合わせに失敗しました: %w", err)
	}

	if err := w.reconciler.RecomputeFlags(ctx, companyID); err != nil {
		w.metrics.RecordScrape(companyID, outcome.Source, time.Since(start), false)
		return fmt.Errorf("状態フラグの再計算に失敗しました: %w", err)
	}

	duration := time.Since(start)
	w.metrics.RecordScrape(companyID, outcome.Source, duration, true)
	w.metrics.RecordReconcile(companyID, stats.Inserted, stats.Updated)

	w.logger.Info("バレエ団のスクレイプが完了しました",
		slog.String("company_id", companyID),
		slog.String("source", string(outcome.Source)),
		slog.Int("candidates", len(candidates)),
		slog.Int("inserted", stats.Inserted),
		slog.Int("updated", stats.Updated),
		slog.Int("date_fallbacks", fallbackDates),
		slog.Float64("duration_ms", float64(duration.Milliseconds())),
	)
	return nil
}

// pause はminDelay〜maxDelayのランダムな時間だけ待機する。
func (w *Worker) pause(ctx context.Context) error {
	delay := w.minDelay
	if w.maxDelay > w.minDelay {
		delay += time.Duration(rand.Int63n(int64(w.maxDelay - w.minDelay)))
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
