package scraper

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/ymatsuda/pirouette/internal/model"
)

var scraperTestNow = func() time.Time {
	return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
}

// stubSource はURLごとに固定HTMLを返すDocumentSource。
type stubSource struct {
	pages map[string]string
	err   error
}

func (s *stubSource) Document(ctx context.Context, pageURL string) (*goquery.Document, error) {
	if s.err != nil {
		return nil, s.err
	}
	html, ok := s.pages[pageURL]
	if !ok {
		return nil, errors.New("page not found: " + pageURL)
	}
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

const nbcSeasonHTML = `<html><body>
<div class="upcoming-list-item">
	<div class="upcoming-themed-pretitle"><p>June 10 – 20, 2025</p></div>
	<h3 class="accent">Giselle</h3>
	<p>The romantic classic of love, betrayal, and forgiveness.</p>
	<img src="/images/giselle.jpg">
	<a href="https://www.youtube.com/watch?v=4fHw4GeW3EU">Trailer</a>
</div>
<div class="upcoming-list-item">
	<div class="upcoming-themed-pretitle"><p>Dates TBA</p></div>
	<h3 class="accent">2025/26 Season</h3>
</div>
<div class="upcoming-list-item">
	<div class="upcoming-themed-pretitle"><p>July 5 – 15, 2025</p></div>
	<h3 class="accent">Swan Lake</h3>
	<p>The timeless tale of Odette and her swan maidens.</p>
</div>
</body></html>`

func TestNBCPerformances_ExtractsFromSeasonPages(t *testing.T) {
	src := &stubSource{pages: map[string]string{
		nbcSeasonURLs[0]: nbcSeasonHTML,
		nbcSeasonURLs[1]: `<html><body></body></html>`,
	}}
	adapter := NewNBCAdapter(src, scraperTestNow)

	outcome, err := adapter.Performances(context.Background())
	if err != nil {
		t.Fatalf("Performances returned error: %v", err)
	}

	if outcome.Source != model.DataSourceLive {
		t.Errorf("Source = %q, want live", outcome.Source)
	}
	if len(outcome.Performances) != 2 {
		t.Fatalf("len = %d, want 2 (section header excluded)", len(outcome.Performances))
	}

	giselle := outcome.Performances[0]
	if giselle.Title != "Giselle" {
		t.Errorf("Title = %q, want Giselle", giselle.Title)
	}
	if giselle.DateText != "June 10 – 20, 2025" {
		t.Errorf("DateText = %q", giselle.DateText)
	}
	if giselle.Description != "The romantic classic of love, betrayal, and forgiveness." {
		t.Errorf("Description = %q", giselle.Description)
	}
	if giselle.ImageURL != "https://national.ballet.ca/images/giselle.jpg" {
		t.Errorf("ImageURL = %q", giselle.ImageURL)
	}
	if giselle.VideoURL != "https://www.youtube.com/embed/4fHw4GeW3EU" {
		t.Errorf("VideoURL = %q", giselle.VideoURL)
	}

	if outcome.Performances[1].Title != "Swan Lake" {
		t.Errorf("second Title = %q, want Swan Lake", outcome.Performances[1].Title)
	}
}

// TestNBCPerformances_WideScanFallback は主要セレクタが空のページで
// 見出しと日付表記による広域走査が働くことを検証する。
func TestNBCPerformances_WideScanFallback(t *testing.T) {
	html := `<html><body>
<article>
	<h2>Romeo and Juliet</h2>
	<p>On stage March 20 – April 10, 2025 at the Four Seasons Centre.</p>
	<p>A passionate reimagining of Shakespeare's tragic love story.</p>
</article>
</body></html>`
	src := &stubSource{pages: map[string]string{
		nbcSeasonURLs[0]: html,
		nbcSeasonURLs[1]: `<html><body></body></html>`,
	}}
	adapter := NewNBCAdapter(src, scraperTestNow)

	outcome, err := adapter.Performances(context.Background())
	if err != nil {
		t.Fatalf("Performances returned error: %v", err)
	}

	if outcome.Source != model.DataSourceLive {
		t.Fatalf("Source = %q, want live", outcome.Source)
	}
	if len(outcome.Performances) != 1 {
		t.Fatalf("len = %d, want 1", len(outcome.Performances))
	}
	if outcome.Performances[0].Title != "Romeo and Juliet" {
		t.Errorf("Title = %q", outcome.Performances[0].Title)
	}
	if outcome.Performances[0].DateText != "March 20 – April 10, 2025" {
		t.Errorf("DateText = %q", outcome.Performances[0].DateText)
	}
}

// TestNBCPerformances_FetchFailureFallsBack は全ページのフェッチ失敗時に
// エラーではなくプレースホルダデータセットが返ることを検証する。
func TestNBCPerformances_FetchFailureFallsBack(t *testing.T) {
	src := &stubSource{err: errors.New("connection refused")}
	adapter := NewNBCAdapter(src, scraperTestNow)

	outcome, err := adapter.Performances(context.Background())
	if err != nil {
		t.Fatalf("Performances returned error: %v", err)
	}

	if outcome.Source != model.DataSourceFallback {
		t.Errorf("Source = %q, want fallback", outcome.Source)
	}
	if len(outcome.Performances) == 0 {
		t.Error("fallback dataset should not be empty")
	}
}

// TestNBCPerformances_ContextCancelPropagates はコンテキストキャンセルが
// フォールバックに吸収されずエラーとして返ることを検証する。
func TestNBCPerformances_ContextCancelPropagates(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := &stubSource{err: errors.New("context canceled")}
	adapter := NewNBCAdapter(src, scraperTestNow)

	if _, err := adapter.Performances(ctx); err == nil {
		t.Fatal("expected context error, got nil")
	}
}

func TestNBCCompanyInfo_FallsBackOnFetchFailure(t *testing.T) {
	src := &stubSource{err: errors.New("connection refused")}
	adapter := NewNBCAdapter(src, scraperTestNow)

	info, err := adapter.CompanyInfo(context.Background())
	if err != nil {
		t.Fatalf("CompanyInfo returned error: %v", err)
	}
	if info.Name != "National Ballet of Canada" {
		t.Errorf("Name = %q, want placeholder name", info.Name)
	}
	if info.Description == "" {
		t.Error("placeholder description should not be empty")
	}
}

func TestNBCCompanyInfo_UsesScrapedDescription(t *testing.T) {
	html := `<html><body><main>
<p>short</p>
<p>The National Ballet of Canada is one of the premier dance companies in North America, performing a traditional and contemporary repertoire.</p>
</main></body></html>`
	src := &stubSource{pages: map[string]string{nbcAbout: html}}
	adapter := NewNBCAdapter(src, scraperTestNow)

	info, err := adapter.CompanyInfo(context.Background())
	if err != nil {
		t.Fatalf("CompanyInfo returned error: %v", err)
	}
	if !strings.HasPrefix(info.Description, "The National Ballet of Canada is one of the premier") {
		t.Errorf("Description = %q, want scraped paragraph", info.Description)
	}
}
