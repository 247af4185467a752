// Package normalizer はアダプタが抽出した生の公演候補を正規形に変換する。
package normalizer

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/ymatsuda/pirouette/internal/dates"
	"github.com/ymatsuda/pirouette/internal/model"
	"github.com/ymatsuda/pirouette/internal/scraper"
	"github.com/ymatsuda/pirouette/internal/security"
)

// placeholderImageBase はタイトル入りプレースホルダ画像のベースURL。
const placeholderImageBase = "https://via.placeholder.com/800x400.png?text="

// noisePatterns は説明文から除去するサイト由来のノイズ断片。
// ボタンラベルや購読導線のテキストが説明文に混入することがある。
var noisePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bsubscribe( now)?\b`),
	regexp.MustCompile(`(?i)\b(buy |get )?tickets?( on sale( now)?)?\b`),
	regexp.MustCompile(`(?i)\bbook now\b`),
	regexp.MustCompile(`(?i)\blearn more\b`),
	regexp.MustCompile(`(?i)\bsold out\b`),
}

// Result は正規化結果。日付がパターン一致で読み取れたかのタグを持つ。
type Result struct {
	Performance model.Performance
	DateMatched bool
}

// Normalizer は生の公演候補を正規形のPerformanceに変換する。
// タイトル・説明文の整形、日付解析、URL解決、プレースホルダ画像の合成を行う。
type Normalizer struct {
	sanitizer    security.TextSanitizerService
	fallbackDays int
}

// New はNormalizerの新しいインスタンスを生成する。
// fallbackDaysは日付が読み取れなかった場合の期間日数（0なら既定値）。
func New(sanitizer security.TextSanitizerService, fallbackDays int) *Normalizer {
	return &Normalizer{
		sanitizer:    sanitizer,
		fallbackDays: fallbackDays,
	}
}

// Normalize は生の公演候補を正規形に変換する。
// companyは所属バレエ団（URL解決のベースに使用）、nowは日付解析の基準時刻。
func (n *Normalizer) Normalize(raw model.RawPerformance, company *model.Company, now time.Time) Result {
	title := collapseWhitespace(raw.Title)

	dateRange, matched := dates.Parse(raw.DateText, dates.Context{
		Now:          now,
		FallbackDays: n.fallbackDays,
	})

	desc := n.sanitizer.SanitizeText(raw.Description)
	desc = stripNoise(desc)

	perf := model.Performance{
		CompanyID:   company.CompanyID,
		Title:       title,
		StartDate:   dateRange.Start,
		EndDate:     dateRange.End,
		Description: desc,
		ImageURL:    n.resolveImage(raw.ImageURL, title, company.WebsiteURL),
		VideoURL:    scraper.EmbedVideoURL(raw.VideoURL),
		LastScraped: now,
	}

	return Result{Performance: perf, DateMatched: matched}
}

// resolveImage は画像URLを絶対URLに解決する。
// 画像がない場合はタイトル入りのプレースホルダ画像を合成する。
func (n *Normalizer) resolveImage(imageURL, title, baseURL string) string {
	imageURL = strings.TrimSpace(imageURL)
	if imageURL == "" {
		return placeholderImageBase + url.QueryEscape(title)
	}
	if strings.HasPrefix(imageURL, "//") {
		return "https:" + imageURL
	}
	if strings.HasPrefix(imageURL, "http://") || strings.HasPrefix(imageURL, "https://") {
		return imageURL
	}

	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return imageURL
	}
	ref, err := url.Parse(imageURL)
	if err != nil {
		return imageURL
	}
	return base.ResolveReference(ref).String()
}

// stripNoise は説明文からノイズ断片を除去して空白を整える。
func stripNoise(text string) string {
	for _, re := range noisePatterns {
		text = re.ReplaceAllString(text, " ")
	}
	return collapseWhitespace(text)
}

// collapseWhitespace は連続する空白を1つにまとめ、前後の空白を除去する。
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
