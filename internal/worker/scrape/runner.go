package scrape

import (
	"context"
	"log/slog"
	"time"
)

// Runner は一定間隔でスクレイプサイクルを繰り返すスケジューラ。
type Runner struct {
	worker       *Worker
	logger       *slog.Logger
	cycleTimeout time.Duration
}

// NewRunner はRunnerの新しいインスタンスを生成する。
// cycleTimeoutは1サイクル全体の上限時間。0以下なら無制限。
func NewRunner(worker *Worker, logger *slog.Logger, cycleTimeout time.Duration) *Runner {
	return &Runner{worker: worker, logger: logger, cycleTimeout: cycleTimeout}
}

// Start は指定間隔のティッカーでスクレイプサイクルを起動する。
// 起動直後に1回実行し、以降はコンテキストがキャンセルされるまで繰り返す。
func (r *Runner) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	r.logger.Info("スクレイプスケジューラを開始しました",
		slog.Duration("interval", interval),
	)

	r.runCycle(ctx)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("スクレイプスケジューラを停止しました")
			return
		case <-ticker.C:
			r.runCycle(ctx)
		}
	}
}

// runCycle は1サイクルを実行する。cycleTimeoutが設定されていれば
// サイクル全体に上限時間を適用し、停滞したサイクルが次回の実行を塞がないようにする。
func (r *Runner) runCycle(ctx context.Context) {
	if r.cycleTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cycleTimeout)
		defer cancel()
	}

	if err := r.worker.ScrapeAll(ctx); err != nil {
		r.logger.Error("スクレイプサイクルの実行に失敗しました",
			slog.String("error", err.Error()),
		)
	}
}
