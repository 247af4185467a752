package scraper

import (
	"context"

	"github.com/ymatsuda/pirouette/internal/model"
)

// Adapter は1つのバレエ団サイトに対するスクレイパーのインターフェースを定義する。
//
// 実装の契約:
//   - 抽出の失敗（セレクタ不一致、空ページ、フェッチエラー）では
//     エラーを返さず、プレースホルダデータセットに切り替えて
//     Source=DataSourceFallback の結果を返す。
//   - エラーを返すのはコンテキストキャンセル等の続行不能な場合のみ。
//   - 返却する候補は同一タイトルの重複を除去済みであること。
type Adapter interface {
	// CompanyID はこのアダプタが担当するバレエ団のIDを返す。
	CompanyID() string

	// CompanyInfo はバレエ団の基本情報を取得する。
	// 取得失敗時はプレースホルダ情報を返す。
	CompanyInfo(ctx context.Context) (model.CompanyInfo, error)

	// Performances は公演候補の一覧を取得する。
	// 結果には実サイト由来かプレースホルダ由来かの出所タグが付く。
	Performances(ctx context.Context) (model.ScrapeOutcome, error)
}

// ctxErr はコンテキスト起因の失敗だけをエラーとして伝播させる。
// それ以外のフェッチ・抽出失敗はアダプタ内でフォールバックに吸収する。
func ctxErr(ctx context.Context, err error) error {
	if err != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return nil
}

// fallbackOutcome はプレースホルダデータセットからの結果を組み立てる共通処理。
func fallbackOutcome(perfs []model.RawPerformance) model.ScrapeOutcome {
	return model.ScrapeOutcome{
		Performances: perfs,
		Source:       model.DataSourceFallback,
	}
}

// liveOutcome は実サイト由来の結果を組み立てる共通処理。
func liveOutcome(perfs []model.RawPerformance) model.ScrapeOutcome {
	return model.ScrapeOutcome{
		Performances: dedupeByTitle(perfs),
		Source:       model.DataSourceLive,
	}
}
