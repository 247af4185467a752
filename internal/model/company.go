// Package model はドメインモデルを定義する。
package model

import "time"

// Company はバレエ団を表す。
// CompanyIDは "abt" や "bolshoi" のような人間可読のスラグで、
// スクレイパー設定とURLパスの両方で使用される。
type Company struct {
	CompanyID   string
	Name        string
	ShortName   string
	Description string
	LogoURL     string
	WebsiteURL  string
	LastScraped time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CompanyInfo はスクレイパーが収集したバレエ団の基本情報。
// 取得に失敗したフィールドはフォールバック値で補完される。
type CompanyInfo struct {
	Name        string
	ShortName   string
	Description string
	LogoURL     string
	WebsiteURL  string
}
