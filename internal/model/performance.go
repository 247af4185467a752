package model

import "time"

// Performance は1つの公演ラン（初日から千秋楽までの期間）を表す。
// 日付はすべてUTC午前0時に正規化された「日付のみ」の値として扱う。
type Performance struct {
	ID          string
	CompanyID   string
	Title       string
	StartDate   time.Time
	EndDate     time.Time
	Description string
	ImageURL    string
	VideoURL    string
	IsPast      bool
	IsCurrent   bool
	IsNext      bool
	LastScraped time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PerformanceWithCompany はバレエ団名を付与した公演。一覧APIのレスポンスに使用する。
type PerformanceWithCompany struct {
	Performance
	CompanyName      string
	CompanyShortName string
}

// PerformanceFilter は公演一覧のフィルタ種別。
type PerformanceFilter string

const (
	// PerformanceFilterAll は全公演。
	PerformanceFilterAll PerformanceFilter = "all"
	// PerformanceFilterCurrent は本日が期間内の公演。
	PerformanceFilterCurrent PerformanceFilter = "current"
	// PerformanceFilterUpcoming は初日が未来の公演。
	PerformanceFilterUpcoming PerformanceFilter = "upcoming"
	// PerformanceFilterPast は千秋楽が過去の公演。
	PerformanceFilterPast PerformanceFilter = "past"
)

// RawPerformance はアダプタが抽出した正規化前の公演候補。
// DateTextは "March 7 – 30, 2025" のようなサイト表記のままの文字列。
type RawPerformance struct {
	Title       string
	DateText    string
	Description string
	ImageURL    string
	VideoURL    string
	DetailURL   string
}

// DataSource はスクレイプ結果の出所を示す。
type DataSource string

const (
	// DataSourceLive は実サイトからの抽出。
	DataSourceLive DataSource = "live"
	// DataSourceFallback はプレースホルダデータセットからの供給。
	DataSourceFallback DataSource = "fallback"
)

// ScrapeOutcome はアダプタの公演抽出結果。出所タグ付き。
type ScrapeOutcome struct {
	Performances []RawPerformance
	Source       DataSource
}
