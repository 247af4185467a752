package scraper

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/ymatsuda/pirouette/internal/fallback"
	"github.com/ymatsuda/pirouette/internal/model"
)

const (
	bolshoiID      = "bolshoi"
	bolshoiBaseURL = "https://www.bolshoi.ru/en"
	bolshoiSeason  = bolshoiBaseURL + "/timetable/"
)

// bolshoiAdapter はBolshoi Balletのスクレイパー。
// 公演一覧はJavaScriptで組み立てられるため素のフェッチでは取得できない。
// イベントフィードがあればそちらを優先し、なければレンダリング
// エンドポイント経由でページを取得する。両方失敗したらプレースホルダ。
type bolshoiAdapter struct {
	rendered DocumentSource
	feeds    *gofeed.Parser
	feedURL  string
	now      func() time.Time
}

// NewBolshoiAdapter はbolshoiAdapterの新しいインスタンスを生成する。
func NewBolshoiAdapter(rendered DocumentSource, feeds *gofeed.Parser, feedURL string, now func() time.Time) *bolshoiAdapter {
	return &bolshoiAdapter{rendered: rendered, feeds: feeds, feedURL: feedURL, now: now}
}

func (a *bolshoiAdapter) CompanyID() string { return bolshoiID }

// CompanyInfo はプレースホルダ情報を返す。
// 公式サイトの紹介ページは言語別に構造が異なり安定して抽出できないため、
// 静的情報を正とする。
func (a *bolshoiAdapter) CompanyInfo(ctx context.Context) (model.CompanyInfo, error) {
	info, _ := fallback.Info(bolshoiID)
	return info, nil
}

func (a *bolshoiAdapter) Performances(ctx context.Context) (model.ScrapeOutcome, error) {
	if perfs := a.fromFeed(ctx); len(perfs) > 0 {
		return liveOutcome(perfs), nil
	}
	if err := ctx.Err(); err != nil {
		return model.ScrapeOutcome{}, err
	}

	if perfs := a.fromRenderedPage(ctx); len(perfs) > 0 {
		return liveOutcome(perfs), nil
	}
	if err := ctx.Err(); err != nil {
		return model.ScrapeOutcome{}, err
	}

	ds, _ := fallback.ForCompany(bolshoiID, a.now())
	return fallbackOutcome(ds.Performances), nil
}

// fromFeed はイベントフィードから公演候補を抽出する。
// 日付表記が読み取れない項目はスキップする。
func (a *bolshoiAdapter) fromFeed(ctx context.Context) []model.RawPerformance {
	if a.feeds == nil || a.feedURL == "" {
		return nil
	}

	feed, err := a.feeds.ParseURLWithContext(a.feedURL, ctx)
	if err != nil {
		return nil
	}

	var perfs []model.RawPerformance
	for _, item := range feed.Items {
		title := strings.TrimSpace(item.Title)
		if title == "" || IsSectionHeader(title) {
			continue
		}

		dateText := reDateHint.FindString(item.Title + " " + item.Description)
		if dateText == "" {
			continue
		}

		var imageURL string
		if item.Image != nil {
			imageURL = item.Image.URL
		}

		perfs = append(perfs, model.RawPerformance{
			Title:       title,
			DateText:    dateText,
			Description: strings.TrimSpace(item.Description),
			ImageURL:    imageURL,
			VideoURL:    EmbedVideoURL(item.Link),
			DetailURL:   item.Link,
		})
	}
	return perfs
}

// fromRenderedPage はレンダリング済みの公演一覧ページから抽出する。
func (a *bolshoiAdapter) fromRenderedPage(ctx context.Context) []model.RawPerformance {
	if a.rendered == nil {
		return nil
	}

	doc, err := a.rendered.Document(ctx, bolshoiSeason)
	if err != nil {
		return nil
	}

	var perfs []model.RawPerformance
	doc.Find(`.performance-card, .event-item, article, [class*="timetable"]`).Each(func(_ int, el *goquery.Selection) {
		title := firstText(el, "h1", "h2", "h3", `[class*="title"]`)
		if title == "" || IsSectionHeader(title) {
			return
		}
		dateText := firstText(el, `[class*="date"]`, "time")
		if dateText == "" {
			dateText = reDateHint.FindString(el.Text())
		}
		if dateText == "" {
			return
		}

		perfs = append(perfs, model.RawPerformance{
			Title:       title,
			DateText:    dateText,
			Description: substantialText(el, 30, "p"),
			ImageURL:    absoluteURL(bolshoiBaseURL, findImage(el)),
			VideoURL:    findVideo(el),
		})
	})
	return perfs
}
