package scraper

import (
	"context"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/ymatsuda/pirouette/internal/fallback"
	"github.com/ymatsuda/pirouette/internal/model"
)

const (
	abtID       = "abt"
	abtBaseURL  = "https://www.abt.org"
	abtAbout    = abtBaseURL + "/about-abt/"
	abtSeasonUR = abtBaseURL + "/performances/summer-season/"
)

// abtAdapter はAmerican Ballet Theatreのスクレイパー。
type abtAdapter struct {
	src DocumentSource
	now func() time.Time
}

// NewABTAdapter はabtAdapterの新しいインスタンスを生成する。
func NewABTAdapter(src DocumentSource, now func() time.Time) *abtAdapter {
	return &abtAdapter{src: src, now: now}
}

func (a *abtAdapter) CompanyID() string { return abtID }

func (a *abtAdapter) CompanyInfo(ctx context.Context) (model.CompanyInfo, error) {
	info, _ := fallback.Info(abtID)

	doc, err := a.src.Document(ctx, abtAbout)
	if err != nil {
		return info, ctxErr(ctx, err)
	}

	if desc := substantialText(doc.Selection, 50, ".about-content p", ".entry-content p"); desc != "" {
		info.Description = desc
	}
	if logo := firstAttr(doc.Selection, "src", ".logo img", ".site-logo img"); logo != "" {
		info.LogoURL = absoluteURL(abtBaseURL, logo)
	}
	return info, nil
}

func (a *abtAdapter) Performances(ctx context.Context) (model.ScrapeOutcome, error) {
	doc, err := a.src.Document(ctx, abtSeasonUR)
	if err != nil {
		if cerr := ctxErr(ctx, err); cerr != nil {
			return model.ScrapeOutcome{}, cerr
		}
		ds, _ := fallback.ForCompany(abtID, a.now())
		return fallbackOutcome(ds.Performances), nil
	}

	perfs := a.extract(doc)
	if len(perfs) == 0 {
		ds, _ := fallback.ForCompany(abtID, a.now())
		return fallbackOutcome(ds.Performances), nil
	}
	return liveOutcome(perfs), nil
}

func (a *abtAdapter) extract(doc *goquery.Document) []model.RawPerformance {
	var perfs []model.RawPerformance

	doc.Find(".performance-item, .event-item, .production").Each(func(_ int, el *goquery.Selection) {
		title := firstText(el, "h3", ".production-title")
		dateText := firstText(el, ".dates", ".date-range")
		if title == "" || dateText == "" || IsSectionHeader(title) {
			return
		}

		perfs = append(perfs, model.RawPerformance{
			Title:       title,
			DateText:    dateText,
			Description: firstText(el, ".description", ".production-description"),
			ImageURL:    absoluteURL(abtBaseURL, findImage(el)),
			VideoURL:    findVideo(el),
		})
	})
	return perfs
}
