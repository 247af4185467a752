package scraper

import (
	"context"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/ymatsuda/pirouette/internal/fallback"
	"github.com/ymatsuda/pirouette/internal/model"
)

const (
	nbcID      = "nbc"
	nbcBaseURL = "https://national.ballet.ca"
	nbcAbout   = nbcBaseURL + "/our-history/about-the-national-ballet-of-canada"
)

// nbcSeasonURLs は走査対象のシーズンページ。複数シーズンが同時公開されるため
// 全ページを走査し、重複はタイトルで除去する。
var nbcSeasonURLs = []string{
	nbcBaseURL + "/performances/202425-season",
	nbcBaseURL + "/performances/202526-season",
}

// nbcAdapter はNational Ballet of Canadaのスクレイパー。
type nbcAdapter struct {
	src DocumentSource
	now func() time.Time
}

// NewNBCAdapter はnbcAdapterの新しいインスタンスを生成する。
func NewNBCAdapter(src DocumentSource, now func() time.Time) *nbcAdapter {
	return &nbcAdapter{src: src, now: now}
}

func (a *nbcAdapter) CompanyID() string { return nbcID }

// CompanyInfo はバレエ団紹介ページから説明文とロゴを取得する。
func (a *nbcAdapter) CompanyInfo(ctx context.Context) (model.CompanyInfo, error) {
	info, _ := fallback.Info(nbcID)

	doc, err := a.src.Document(ctx, nbcAbout)
	if err != nil {
		return info, ctxErr(ctx, err)
	}

	if desc := substantialText(doc.Selection, 50, ".about-content p", ".content p", "main p"); desc != "" {
		info.Description = desc
	}
	if logo := firstAttr(doc.Selection, "src", ".logo img", ".site-logo img"); logo != "" {
		info.LogoURL = absoluteURL(nbcBaseURL, logo)
	}
	return info, nil
}

// Performances は全シーズンページから公演候補を抽出する。
// ページ単位で失敗を隔離し、全ページが空だった場合のみプレースホルダに切り替える。
func (a *nbcAdapter) Performances(ctx context.Context) (model.ScrapeOutcome, error) {
	var perfs []model.RawPerformance

	for _, pageURL := range nbcSeasonURLs {
		doc, err := a.src.Document(ctx, pageURL)
		if err != nil {
			if cerr := ctxErr(ctx, err); cerr != nil {
				return model.ScrapeOutcome{}, cerr
			}
			continue
		}
		perfs = append(perfs, a.extractPage(doc)...)
	}

	if len(perfs) == 0 {
		ds, _ := fallback.ForCompany(nbcID, a.now())
		return fallbackOutcome(ds.Performances), nil
	}
	return liveOutcome(perfs), nil
}

// extractPage は1シーズンページから公演候補を抽出する。
func (a *nbcAdapter) extractPage(doc *goquery.Document) []model.RawPerformance {
	var perfs []model.RawPerformance

	doc.Find(".upcoming-list-item").Each(func(_ int, el *goquery.Selection) {
		dateText := firstText(el, ".upcoming-themed-pretitle p")
		title := firstText(el, ".accent")
		if title == "" || dateText == "" || IsSectionHeader(title) {
			return
		}

		perfs = append(perfs, model.RawPerformance{
			Title:       title,
			DateText:    dateText,
			Description: textExcluding(el, "p", 20, dateText),
			ImageURL:    absoluteURL(nbcBaseURL, findImage(el)),
			VideoURL:    findVideo(el),
		})
	})

	if len(perfs) > 0 {
		return perfs
	}

	// 主要セレクタが空の場合の広域走査。見出しと日付らしきテキストを持つ
	// コンテナを公演候補として拾う。
	doc.Find("section, article").Each(func(_ int, el *goquery.Selection) {
		title := firstText(el, "h1", "h2", "h3", "h4")
		if title == "" || IsSectionHeader(title) {
			return
		}
		dateText := reDateHint.FindString(el.Text())
		if dateText == "" {
			return
		}
		perfs = append(perfs, model.RawPerformance{
			Title:       title,
			DateText:    dateText,
			Description: textExcluding(el, "p", 20, dateText),
			ImageURL:    absoluteURL(nbcBaseURL, findImage(el)),
			VideoURL:    findVideo(el),
		})
	})
	return perfs
}
