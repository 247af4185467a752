// Package dates は公演サイトに現れる自由形式の日付表記を解析する。
// "March 7 – 30, 2025" や "28 MARCH–8 APRIL 2025" のような表記を
// 優先順位付きのパターン群で解釈し、どれにも一致しない場合は
// フォールバック期間を返す。パースは決してエラーを返さない。
package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultFallbackDays は日付が読み取れなかった場合の既定の期間日数。
const DefaultFallbackDays = 14

// Range は公演期間（初日と千秋楽）を表す。日付はUTC午前0時に正規化される。
type Range struct {
	Start time.Time
	End   time.Time
}

// Contains はtの属する日が期間内（両端含む）かを返す。
func (r Range) Contains(t time.Time) bool {
	day := Truncate(t)
	return !day.Before(r.Start) && !day.After(r.End)
}

// Context はパース時の補助情報。
type Context struct {
	// Now は相対フォールバックの基準日。ゼロ値の場合は現在時刻を使用する。
	Now time.Time
	// Season が非nilの場合、どのパターンにも一致しなかったときに
	// シーズン全体の期間をフォールバックとして返す。
	Season *Range
	// FallbackDays はフォールバック期間の日数。0の場合はDefaultFallbackDays。
	FallbackDays int
}

// Truncate は時刻をUTC午前0時の日付のみの値に正規化する。
func Truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// 月名のパターン。省略形（3文字、Sept含む）と末尾ピリオドを許容する。
const monthPattern = `(jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\.?`

var (
	// 形式1: Month D, YYYY - Month D, YYYY（両側に年）
	reFull = regexp.MustCompile(`(?i)\b` + monthPattern + `\s+(\d{1,2}),?\s+(\d{4})\s*-\s*` + monthPattern + `\s+(\d{1,2}),?\s+(\d{4})`)
	// 形式2: Month D - Month D, YYYY（年を共有する月跨ぎ）
	reCrossMonth = regexp.MustCompile(`(?i)\b` + monthPattern + `\s+(\d{1,2})\s*-\s*` + monthPattern + `\s+(\d{1,2}),?\s+(\d{4})`)
	// 形式3: Month D - D, YYYY（同一月内）
	reSameMonth = regexp.MustCompile(`(?i)\b` + monthPattern + `\s+(\d{1,2})\s*-\s*(\d{1,2}),?\s+(\d{4})`)
	// 形式4: D Month [YYYY] - D Month YYYY（日が先行する欧州形式）
	reDayFirst = regexp.MustCompile(`(?i)\b(\d{1,2})\s+` + monthPattern + `(?:\s+(\d{4}))?\s*-\s*(\d{1,2})\s+` + monthPattern + `,?\s+(\d{4})`)
	// 形式4b: D - D Month YYYY（日が先行する同一月内）
	reDayFirstSameMonth = regexp.MustCompile(`(?i)\b(\d{1,2})\s*-\s*(\d{1,2})\s+` + monthPattern + `,?\s+(\d{4})`)
	// 形式5: 単独の日付（Month D, YYYY / D Month YYYY）
	reSingleMonthFirst = regexp.MustCompile(`(?i)\b` + monthPattern + `\s+(\d{1,2}),?\s+(\d{4})`)
	reSingleDayFirst   = regexp.MustCompile(`(?i)\b(\d{1,2})\s+` + monthPattern + `,?\s+(\d{4})`)

	reYear = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	reDay  = regexp.MustCompile(`\b(\d{1,2})\b`)

	reAsOf = regexp.MustCompile(`(?i)^\s*as\s+of\s+`)

	dashReplacer = strings.NewReplacer("–", "-", "—", "-", "−", "-", "‒", "-", "~", "-")
)

var monthsByPrefix = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// Parse は自由形式の日付文字列を公演期間として解釈する。
// 2番目の戻り値はパターンに一致したかどうかを示す。
// 一致しなかった場合はフォールバック期間（SeasonまたはNow起点のFallbackDays日間）
// を返すため、戻り値のRangeは常に使用可能である。
func Parse(text string, ctx Context) (Range, bool) {
	now := ctx.Now
	if now.IsZero() {
		now = time.Now()
	}
	now = Truncate(now)

	fallbackDays := ctx.FallbackDays
	if fallbackDays <= 0 {
		fallbackDays = DefaultFallbackDays
	}

	normalized := normalize(text)

	if r, ok := parsePatterns(normalized, fallbackDays); ok {
		if r.End.Before(r.Start) {
			r.Start, r.End = r.End, r.Start
		}
		return r, true
	}

	if ctx.Season != nil {
		return *ctx.Season, false
	}
	return Range{Start: now, End: now.AddDate(0, 0, fallbackDays)}, false
}

// normalize はダッシュ類をASCIIハイフンに統一し、空白を圧縮する。
func normalize(text string) string {
	s := dashReplacer.Replace(text)
	return strings.Join(strings.Fields(s), " ")
}

// parsePatterns は優先順位付きパターン群による解釈を試みる。
func parsePatterns(s string, fallbackDays int) (Range, bool) {
	// "As of <date>" は掲載時点の開始日のみが判明している表記。
	// 開始日からfallbackDays日間のランとして扱う。
	if loc := reAsOf.FindStringIndex(s); loc != nil {
		if start, ok := parseSingleDate(s[loc[1]:]); ok {
			return Range{Start: start, End: start.AddDate(0, 0, fallbackDays)}, true
		}
	}

	if m := reFull.FindStringSubmatch(s); m != nil {
		start, ok1 := makeDate(m[3], m[1], m[2])
		end, ok2 := makeDate(m[6], m[4], m[5])
		if ok1 && ok2 {
			return Range{Start: start, End: end}, true
		}
	}

	if m := reCrossMonth.FindStringSubmatch(s); m != nil {
		start, ok1 := makeDate(m[5], m[1], m[2])
		end, ok2 := makeDate(m[5], m[3], m[4])
		if ok1 && ok2 {
			return Range{Start: start, End: end}, true
		}
	}

	if m := reSameMonth.FindStringSubmatch(s); m != nil {
		start, ok1 := makeDate(m[4], m[1], m[2])
		end, ok2 := makeDate(m[4], m[1], m[3])
		if ok1 && ok2 {
			return Range{Start: start, End: end}, true
		}
	}

	if m := reDayFirst.FindStringSubmatch(s); m != nil {
		startYear := m[3]
		if startYear == "" {
			startYear = m[6]
		}
		start, ok1 := makeDate(startYear, m[2], m[1])
		end, ok2 := makeDate(m[6], m[5], m[4])
		if ok1 && ok2 {
			return Range{Start: start, End: end}, true
		}
	}

	if m := reDayFirstSameMonth.FindStringSubmatch(s); m != nil {
		start, ok1 := makeDate(m[4], m[3], m[1])
		end, ok2 := makeDate(m[4], m[3], m[2])
		if ok1 && ok2 {
			return Range{Start: start, End: end}, true
		}
	}

	if d, ok := parseSingleDate(s); ok {
		return Range{Start: d, End: d}, true
	}

	return parseLoose(s)
}

// parseSingleDate は単独の日付表記（月先行・日先行の両方）を解釈する。
func parseSingleDate(s string) (time.Time, bool) {
	if m := reSingleMonthFirst.FindStringSubmatch(s); m != nil {
		return makeDate(m[3], m[1], m[2])
	}
	if m := reSingleDayFirst.FindStringSubmatch(s); m != nil {
		return makeDate(m[3], m[2], m[1])
	}
	return time.Time{}, false
}

// parseLoose は最終手段として年・月名・日数字を個別に走査する。
// 最初の月と最初の日を開始、最後の月と最後の日を終了として組み立てる。
func parseLoose(s string) (Range, bool) {
	yearStr := reYear.FindString(s)
	if yearStr == "" {
		return Range{}, false
	}
	year, _ := strconv.Atoi(yearStr)

	var months []time.Month
	for _, m := range reSingleMonthToken.FindAllString(s, -1) {
		if mo, ok := monthFromName(m); ok {
			months = append(months, mo)
		}
	}
	if len(months) == 0 {
		return Range{}, false
	}

	var days []int
	for _, d := range reDay.FindAllString(s, -1) {
		n, err := strconv.Atoi(d)
		if err == nil && n >= 1 && n <= 31 {
			days = append(days, n)
		}
	}
	if len(days) == 0 {
		return Range{}, false
	}

	startMonth, endMonth := months[0], months[len(months)-1]
	startDay, endDay := days[0], days[len(days)-1]

	start := time.Date(year, startMonth, startDay, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, endMonth, endDay, 0, 0, 0, 0, time.UTC)
	return Range{Start: start, End: end}, true
}

var reSingleMonthToken = regexp.MustCompile(`(?i)\b` + monthPattern)

// makeDate は年・月名・日の文字列から日付を組み立てる。
func makeDate(yearStr, monthStr, dayStr string) (time.Time, bool) {
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return time.Time{}, false
	}
	month, ok := monthFromName(monthStr)
	if !ok {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(dayStr)
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	// 存在しない日（2月30日など）は月が繰り上がるため不一致扱いにする
	if t.Month() != month {
		return time.Time{}, false
	}
	return t, true
}

// monthFromName は月名（完全形・省略形、大文字小文字不問）を月に変換する。
func monthFromName(name string) (time.Month, bool) {
	lower := strings.ToLower(strings.TrimSuffix(strings.TrimSpace(name), "."))
	if len(lower) < 3 {
		return 0, false
	}
	m, ok := monthsByPrefix[lower[:3]]
	if !ok {
		return 0, false
	}
	// "mayhem" のような偶然の前方一致を弾くため、完全な月名の前方部分であることを確認
	if !strings.HasPrefix(strings.ToLower(m.String()), lower) {
		return 0, false
	}
	return m, true
}
