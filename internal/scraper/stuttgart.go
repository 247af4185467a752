package scraper

import (
	"context"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/ymatsuda/pirouette/internal/dates"
	"github.com/ymatsuda/pirouette/internal/fallback"
	"github.com/ymatsuda/pirouette/internal/model"
)

const (
	stuttgartID       = "stuttgart"
	stuttgartBaseURL  = "https://www.stuttgart-ballet.de"
	stuttgartAbout    = stuttgartBaseURL + "/company/"
	stuttgartSchedule = stuttgartBaseURL + "/schedule/season-2024-25/"
)

// stuttgartAdapter はStuttgart Balletのスクレイパー。
// スケジュールページのteaser構造から抽出し、説明文が短い場合は
// 詳細ページを追跡して取得する。終了済みのランは抽出時点で除外する。
type stuttgartAdapter struct {
	src DocumentSource
	now func() time.Time
}

// NewStuttgartAdapter はstuttgartAdapterの新しいインスタンスを生成する。
func NewStuttgartAdapter(src DocumentSource, now func() time.Time) *stuttgartAdapter {
	return &stuttgartAdapter{src: src, now: now}
}

func (a *stuttgartAdapter) CompanyID() string { return stuttgartID }

func (a *stuttgartAdapter) CompanyInfo(ctx context.Context) (model.CompanyInfo, error) {
	info, _ := fallback.Info(stuttgartID)

	doc, err := a.src.Document(ctx, stuttgartAbout)
	if err != nil {
		return info, ctxErr(ctx, err)
	}

	if desc := substantialText(doc.Selection, 50, ".company-description p", ".content-text p", ".about-text p", ".main-content p"); desc != "" {
		info.Description = desc
	}
	if logo := firstAttr(doc.Selection, "src", ".logo img"); logo != "" {
		info.LogoURL = absoluteURL(stuttgartBaseURL, logo)
	}
	return info, nil
}

func (a *stuttgartAdapter) Performances(ctx context.Context) (model.ScrapeOutcome, error) {
	doc, err := a.src.Document(ctx, stuttgartSchedule)
	if err != nil {
		if cerr := ctxErr(ctx, err); cerr != nil {
			return model.ScrapeOutcome{}, cerr
		}
		ds, _ := fallback.ForCompany(stuttgartID, a.now())
		return fallbackOutcome(ds.Performances), nil
	}

	perfs := a.extract(ctx, doc)
	if len(perfs) == 0 {
		ds, _ := fallback.ForCompany(stuttgartID, a.now())
		return fallbackOutcome(ds.Performances), nil
	}
	return liveOutcome(perfs), nil
}

func (a *stuttgartAdapter) extract(ctx context.Context, doc *goquery.Document) []model.RawPerformance {
	var perfs []model.RawPerformance
	today := dates.Truncate(a.now())

	doc.Find(".teaser__item").Each(func(_ int, el *goquery.Selection) {
		title := firstText(el, ".teaser__headline a")
		dateText := firstText(el, ".teaser__bottom")
		if title == "" || dateText == "" || IsSectionHeader(title) {
			return
		}

		// 終了済みのランはここで除外する。日付が読み取れない場合は残し、
		// 正規化時のフォールバック解釈に委ねる。
		if r, matched := dates.Parse(dateText, dates.Context{Now: a.now()}); matched && r.End.Before(today) {
			return
		}

		desc := firstText(el, ".teaser__subtitle")
		detailURL := firstAttr(el, "href", ".teaser__headline a")
		if len(desc) < 30 && detailURL != "" {
			if detail := a.detailDescription(ctx, absoluteURL(stuttgartBaseURL, detailURL)); detail != "" {
				desc = detail
			}
		}

		img := firstAttr(el, "data-image-url", ".teaser__image")
		if img == "" {
			img = findImage(el)
		}

		perfs = append(perfs, model.RawPerformance{
			Title:       title,
			DateText:    dateText,
			Description: desc,
			ImageURL:    absoluteURL(stuttgartBaseURL, img),
			VideoURL:    findVideo(el),
			DetailURL:   absoluteURL(stuttgartBaseURL, detailURL),
		})
	})
	return perfs
}

// detailDescription は公演詳細ページから説明文を取得する。
// 失敗しても抽出全体は継続する。
func (a *stuttgartAdapter) detailDescription(ctx context.Context, detailURL string) string {
	doc, err := a.src.Document(ctx, detailURL)
	if err != nil {
		return ""
	}
	return substantialText(doc.Selection, 50, ".content-text p", ".description p", "main p")
}
