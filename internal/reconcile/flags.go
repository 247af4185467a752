package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ymatsuda/pirouette/internal/dates"
	"github.com/ymatsuda/pirouette/internal/model"
)

// RecomputeFlags は指定バレエ団の全公演の状態フラグを再計算する。
//
//   - IsPast: 千秋楽が今日より前
//   - IsCurrent: 今日が期間内（両端含む）
//   - IsNext: 初日が今日より後の公演のうち最も早いもの1件。
//     上演中の公演はIsNextの候補から除外される（IsCurrent優先）。
//
// IsNextはバレエ団ごとに高々1件であることをこの再計算が保証する。
func (s *Service) RecomputeFlags(ctx context.Context, companyID string) error {
	perfs, err := s.store.ListByCompany(ctx, companyID)
	if err != nil {
		return fmt.Errorf("failed to list performances for %s: %w", companyID, err)
	}

	today := dates.Truncate(s.now())

	nextID := ""
	var nextStart time.Time
	for _, p := range perfs {
		if isCurrentOn(p, today) || !p.StartDate.After(today) {
			continue
		}
		if nextID == "" || p.StartDate.Before(nextStart) {
			nextID = p.ID
			nextStart = p.StartDate
		}
	}

	for _, p := range perfs {
		isPast := p.EndDate.Before(today)
		isCurrent := isCurrentOn(p, today)
		isNext := p.ID == nextID

		if p.IsPast == isPast && p.IsCurrent == isCurrent && p.IsNext == isNext {
			continue
		}
		if err := s.store.UpdateFlags(ctx, p.ID, isPast, isCurrent, isNext); err != nil {
			return fmt.Errorf("failed to update flags for %s: %w", p.ID, err)
		}
	}

	s.logger.Debug("performance flags recomputed",
		slog.String("company_id", companyID),
		slog.Int("count", len(perfs)),
	)
	return nil
}

// isCurrentOn は指定日が公演期間内（両端含む）かを判定する。
func isCurrentOn(p *model.Performance, day time.Time) bool {
	return !p.StartDate.After(day) && !p.EndDate.Before(day)
}
