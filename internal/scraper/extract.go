package scraper

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/ymatsuda/pirouette/internal/model"
)

// firstText はセレクタ群を順に試し、最初に見つかった非空テキストを返す。
// サイト改修でセレクタが変わっても後続の候補で拾えるようにするための
// フォールバックチェーンの基本形。
func firstText(s *goquery.Selection, selectors ...string) string {
	for _, sel := range selectors {
		text := strings.TrimSpace(s.Find(sel).First().Text())
		if text != "" {
			return text
		}
	}
	return ""
}

// firstAttr はセレクタ群を順に試し、最初に見つかった非空属性値を返す。
func firstAttr(s *goquery.Selection, attr string, selectors ...string) string {
	for _, sel := range selectors {
		if val, ok := s.Find(sel).First().Attr(attr); ok {
			val = strings.TrimSpace(val)
			if val != "" {
				return val
			}
		}
	}
	return ""
}

// substantialText はセレクタ群から最小文字数を満たす最初のテキストを返す。
// ボタンラベルや日付だけの段落を説明文として拾わないために使用する。
func substantialText(s *goquery.Selection, minLen int, selectors ...string) string {
	var found string
	for _, sel := range selectors {
		s.Find(sel).EachWithBreak(func(_ int, p *goquery.Selection) bool {
			text := strings.TrimSpace(p.Text())
			if len(text) >= minLen {
				found = text
				return false
			}
			return true
		})
		if found != "" {
			return found
		}
	}
	return ""
}

// textExcluding はセレクタに一致する要素から、除外文字列と一致せず
// 最小文字数を満たす最初のテキストを返す。日付表記の段落を説明文から除くために使う。
func textExcluding(s *goquery.Selection, selector string, minLen int, exclude string) string {
	var found string
	s.Find(selector).EachWithBreak(func(_ int, p *goquery.Selection) bool {
		text := strings.TrimSpace(p.Text())
		if text == exclude || len(text) < minLen {
			return true
		}
		found = text
		return false
	})
	return found
}

// reDateHint は要素テキストから日付表記（範囲と年を含む）を抜き出す。
// 広域走査でコンテナを公演候補と判定し、抽出した表記をそのまま日付解析に回す。
var reDateHint = regexp.MustCompile(`(?i)\b(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+\d{1,2}(?:\s*[-–—]\s*(?:(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+)?\d{1,2})?,?\s+\d{4}`)

// reBackgroundImage はインラインstyleのbackground-image指定からURLを抜き出す。
var reBackgroundImage = regexp.MustCompile(`(?i)background-image:\s*url\(['"]?([^'")]+)['"]?\)`)

// backgroundImageURL はstyle属性値からbackground-imageのURLを抽出する。
func backgroundImageURL(style string) string {
	m := reBackgroundImage.FindStringSubmatch(style)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// inlineStyles は要素以下の全ノードのstyle属性値を文書順で収集する。
// goqueryのセレクタでは属性値の有無での横断収集が冗長になるため、
// ノードを直接走査する。
func inlineStyles(s *goquery.Selection) []string {
	var styles []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for _, a := range n.Attr {
				if a.Key == "style" && a.Val != "" {
					styles = append(styles, a.Val)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range s.Nodes {
		walk(n)
	}
	return styles
}

// findImage は要素から画像URLを多段フォールバックで探す。
// 優先順: 要素内のimg src → data-src → 親要素のimg → 兄弟要素のimg →
// インラインstyleのbackground-image。見つからなければ空文字列。
func findImage(s *goquery.Selection) string {
	if src := firstAttr(s, "src", "img"); src != "" {
		return src
	}
	if src := firstAttr(s, "data-src", "img"); src != "" {
		return src
	}
	if src := firstAttr(s.Parent(), "src", "img"); src != "" {
		return src
	}
	if src := firstAttr(s.Siblings(), "src", "img"); src != "" {
		return src
	}
	for _, style := range inlineStyles(s) {
		if u := backgroundImageURL(style); u != "" {
			return u
		}
	}
	return ""
}

// reYouTubeID はYouTubeの各種URL形式から動画IDを抽出する。
var reYouTubeID = regexp.MustCompile(`(?:youtube\.com/(?:[^/]+/.+/|(?:v|e(?:mbed)?)/|.*[?&]v=)|youtu\.be/)([^"&?/\s]{11})`)

// reVimeoID はVimeoのURL形式から動画IDを抽出する。
var reVimeoID = regexp.MustCompile(`(?:player\.)?vimeo\.com/(?:video/)?(\d+)`)

// EmbedVideoURL は既知の動画ホストのURLを埋め込み可能な形式に正規化する。
// YouTubeの視聴URL・短縮URL・既存の埋め込みURLはすべて
// https://www.youtube.com/embed/<id> に揃える。未知のホストは空文字列。
func EmbedVideoURL(raw string) string {
	if raw == "" {
		return ""
	}
	if m := reYouTubeID.FindStringSubmatch(raw); m != nil {
		return "https://www.youtube.com/embed/" + m[1]
	}
	if m := reVimeoID.FindStringSubmatch(raw); m != nil {
		return "https://player.vimeo.com/video/" + m[1]
	}
	return ""
}

// findVideo は要素内のリンクとiframeから動画URLを探して正規化する。
func findVideo(s *goquery.Selection) string {
	var found string
	s.Find("iframe, a").EachWithBreak(func(_ int, el *goquery.Selection) bool {
		raw, ok := el.Attr("src")
		if !ok {
			raw, _ = el.Attr("href")
		}
		if embed := EmbedVideoURL(raw); embed != "" {
			found = embed
			return false
		}
		return true
	})
	return found
}

// sectionHeaderExact はタイトル完全一致で除外する見出し。
var sectionHeaderExact = []string{
	"upcoming productions",
	"unknown title",
}

// sectionHeaderSubstrings はタイトル部分一致で除外する見出し語。
// シーズン案内やセクション見出しが公演として混入するのを防ぐ。
var sectionHeaderSubstrings = []string{
	"season",
	"productions",
}

// IsSectionHeader はタイトルが公演ではなくセクション見出しかを判定する。
func IsSectionHeader(title string) bool {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return true
	}
	lower := strings.ToLower(trimmed)
	for _, exact := range sectionHeaderExact {
		if lower == exact {
			return true
		}
	}
	for _, sub := range sectionHeaderSubstrings {
		if strings.Contains(lower, sub) {
			return true
		}
	}
	return false
}

// absoluteURL は抽出したURLをサイトのベースURLで絶対URLに解決する。
// "//host/path" 形式にはhttpsを補い、解決不能な場合は入力をそのまま返す。
func absoluteURL(baseURL, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "//") {
		return "https:" + ref
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return ref
	}
	parsed, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(parsed).String()
}

// dedupeByTitle は同一タイトル（前後空白無視、大文字小文字不問）の候補を
// 先勝ちで除去する。複数シーズンページに同じ公演が載る場合の一次除去。
// 日付の近接までみた除去は正規化後にreconcile側で行う。
func dedupeByTitle(perfs []model.RawPerformance) []model.RawPerformance {
	seen := make(map[string]bool, len(perfs))
	result := make([]model.RawPerformance, 0, len(perfs))
	for _, p := range perfs {
		key := strings.ToLower(strings.TrimSpace(p.Title))
		if seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, p)
	}
	return result
}
