// Package cleanup は公演データの運用向け削除ジョブを提供する。
// 再取り込みの前処理として特定バレエ団の公演をまとめて削除する用途を想定する。
// スクレイプ経路からは呼ばれない。
package cleanup

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// PerformanceDeleter は公演の一括削除のインターフェース。
type PerformanceDeleter interface {
	DeleteByCompany(ctx context.Context, companyID string) (int64, error)
}

// CompanyFinder はバレエ団IDの実在確認のインターフェース。
type CompanyFinder interface {
	CompanyIDs() []string
}

// Job は特定バレエ団の公演削除ジョブ。冪等な削除処理を保証する。
type Job struct {
	deleter PerformanceDeleter
	finder  CompanyFinder
	logger  *slog.Logger
}

// NewJob は新しいJobを生成する。
func NewJob(deleter PerformanceDeleter, finder CompanyFinder, logger *slog.Logger) *Job {
	return &Job{
		deleter: deleter,
		finder:  finder,
		logger:  logger,
	}
}

// ClearCompany は指定バレエ団の全公演を削除し、削除件数を返す。
// 未対応のバレエ団IDはエラーを返す。削除対象がない場合は0件でエラーにならない。
func (j *Job) ClearCompany(ctx context.Context, companyID string) (int64, error) {
	if !j.isKnown(companyID) {
		return 0, fmt.Errorf("未対応のバレエ団IDです: %s", companyID)
	}

	start := time.Now()

	deleted, err := j.deleter.DeleteByCompany(ctx, companyID)
	if err != nil {
		j.logger.Error("公演クリーンアップジョブの実行に失敗しました",
			slog.String("company_id", companyID),
			slog.String("error", err.Error()),
		)
		return 0, fmt.Errorf("公演クリーンアップの実行に失敗: %w", err)
	}

	j.logger.Info("公演クリーンアップジョブが完了しました",
		slog.String("company_id", companyID),
		slog.Int64("deleted_count", deleted),
		slog.Float64("duration_ms", float64(time.Since(start).Milliseconds())),
	)
	return deleted, nil
}

func (j *Job) isKnown(companyID string) bool {
	for _, id := range j.finder.CompanyIDs() {
		if id == companyID {
			return true
		}
	}
	return false
}
