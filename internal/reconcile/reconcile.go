// Package reconcile はスクレイプ結果と保存済み公演の突き合わせを行う。
//
// 公演にはサイト側の安定IDが存在しないため、バレエ団・タイトル・
// 日付の近接によるあいまい同定で同一ランを判定する。日付が数日ずれて
// 再掲載されても重複レコードを作らず、既存レコードを更新する。
// 保存済みレコードをこのパッケージが削除することはない。
package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ymatsuda/pirouette/internal/dates"
	"github.com/ymatsuda/pirouette/internal/model"
	"github.com/ymatsuda/pirouette/internal/scraper"
)

// PerformanceStore は突き合わせに必要な永続化操作のインターフェースを定義する。
type PerformanceStore interface {
	// ListByCompany は指定バレエ団の全公演を初日昇順で返す。
	ListByCompany(ctx context.Context, companyID string) ([]*model.Performance, error)
	// Create は公演を新規保存する。
	Create(ctx context.Context, p *model.Performance) error
	// Update は公演の内容を更新する。
	Update(ctx context.Context, p *model.Performance) error
	// UpdateFlags は公演の状態フラグのみを更新する。
	UpdateFlags(ctx context.Context, id string, isPast, isCurrent, isNext bool) error
}

// Config はServiceの調整パラメータ。
type Config struct {
	// MatchToleranceDays は同一ラン判定で許容する日付のずれ（日数）。
	MatchToleranceDays int
	// DedupToleranceDays はバッチ内重複除去で許容する初日のずれ（日数）。
	DedupToleranceDays int
	// Now は現在時刻の供給元。テストでの差し替え用。nilならtime.Now。
	Now func() time.Time
}

// Stats は突き合わせ結果の集計。
type Stats struct {
	Inserted int
	Updated  int
}

// Service は公演の突き合わせと状態フラグの再計算を提供する。
type Service struct {
	store          PerformanceStore
	logger         *slog.Logger
	matchTolerance time.Duration
	dedupTolerance time.Duration
	now            func() time.Time
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(store PerformanceStore, logger *slog.Logger, cfg Config) *Service {
	if cfg.MatchToleranceDays <= 0 {
		cfg.MatchToleranceDays = 3
	}
	if cfg.DedupToleranceDays <= 0 {
		cfg.DedupToleranceDays = 2
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		store:          store,
		logger:         logger,
		matchTolerance: time.Duration(cfg.MatchToleranceDays) * 24 * time.Hour,
		dedupTolerance: time.Duration(cfg.DedupToleranceDays) * 24 * time.Hour,
		now:            now,
	}
}

// Dedupe はバッチ内の重複候補を除去する。
// タイトルが一致し初日が許容範囲内の候補は同一ランの重複掲載とみなし、
// 先に現れたものを残す。
func (s *Service) Dedupe(candidates []model.Performance) []model.Performance {
	result := make([]model.Performance, 0, len(candidates))
	for _, cand := range candidates {
		duplicate := false
		for _, kept := range result {
			if sameTitle(kept.Title, cand.Title) && within(kept.StartDate, cand.StartDate, s.dedupTolerance) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			result = append(result, cand)
		}
	}
	return result
}

// Upsert は候補群を保存済み公演と突き合わせて保存する。
//
// 同定条件: タイトル一致（前後空白・大文字小文字無視）かつ初日・千秋楽が
// それぞれ許容範囲内。既存レコードは走査順で最初に一致したものを採用し、
// 1つの候補が複数レコードを更新することはない。一致があれば説明・画像・
// 動画・日付（後勝ち）・取得時刻を更新し、なければ新規レコードを作る。
// 候補に現れなかった既存レコードはそのまま残る。
func (s *Service) Upsert(ctx context.Context, companyID string, candidates []model.Performance) (Stats, error) {
	var stats Stats

	existing, err := s.store.ListByCompany(ctx, companyID)
	if err != nil {
		return stats, fmt.Errorf("failed to list performances for %s: %w", companyID, err)
	}

	today := dates.Truncate(s.now())
	claimed := make(map[string]bool)

	for i := range candidates {
		cand := &candidates[i]

		// セクション見出しの混入はアダプタで除外済みだが、保存直前にも弾く
		if scraper.IsSectionHeader(cand.Title) {
			s.logger.Warn("skipping non-performance title",
				slog.String("company_id", companyID),
				slog.String("title", cand.Title),
			)
			continue
		}

		match := s.findMatch(existing, claimed, cand)
		if match != nil {
			claimed[match.ID] = true
			match.StartDate = cand.StartDate
			match.EndDate = cand.EndDate
			match.Description = cand.Description
			match.ImageURL = cand.ImageURL
			match.VideoURL = cand.VideoURL
			match.LastScraped = cand.LastScraped
			match.IsPast = match.EndDate.Before(today)

			if err := s.store.Update(ctx, match); err != nil {
				return stats, fmt.Errorf("failed to update performance %s: %w", match.ID, err)
			}
			stats.Updated++
			continue
		}

		created := *cand
		created.ID = uuid.New().String()
		created.CompanyID = companyID
		created.IsPast = created.EndDate.Before(today)

		if err := s.store.Create(ctx, &created); err != nil {
			return stats, fmt.Errorf("failed to create performance %q: %w", created.Title, err)
		}
		stats.Inserted++

		// 同一バッチ内の後続候補が新規レコードに重複して一致しないよう追加しておく
		existing = append(existing, &created)
		claimed[created.ID] = true
	}

	return stats, nil
}

// findMatch は候補と同一ランとみなせる既存レコードを探す。最初の一致を返す。
func (s *Service) findMatch(existing []*model.Performance, claimed map[string]bool, cand *model.Performance) *model.Performance {
	for _, ex := range existing {
		if claimed[ex.ID] {
			continue
		}
		if !sameTitle(ex.Title, cand.Title) {
			continue
		}
		if within(ex.StartDate, cand.StartDate, s.matchTolerance) && within(ex.EndDate, cand.EndDate, s.matchTolerance) {
			return ex
		}
	}
	return nil
}

// sameTitle はタイトルの同一性を判定する。前後空白と大文字小文字は無視する。
func sameTitle(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// within は2つの日付の差が許容範囲内（両端含む）かを判定する。
func within(a, b time.Time, tolerance time.Duration) bool {
	diff := a.Sub(b)
	if diff < 0 {
		diff = -diff
	}
	return diff <= tolerance
}
