// Package repository はデータ永続化層のインターフェースと実装を提供する。
package repository

import (
	"context"
	"time"

	"github.com/ymatsuda/pirouette/internal/model"
)

// CompanyRepository はバレエ団の永続化操作のインターフェースを定義する。
type CompanyRepository interface {
	// FindByID は指定IDのバレエ団を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, companyID string) (*model.Company, error)

	// List は全バレエ団を名前順で取得する。
	List(ctx context.Context) ([]*model.Company, error)

	// Upsert はバレエ団を保存する。既存ならスクレイプ結果で上書きする。
	Upsert(ctx context.Context, company *model.Company) error
}

// PerformanceRepository は公演の永続化操作のインターフェースを定義する。
// 一覧系はすべて初日昇順で返す。
type PerformanceRepository interface {
	// FindByID は指定IDの公演をバレエ団名付きで取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.PerformanceWithCompany, error)

	// ListByCompany は指定バレエ団の全公演を取得する。
	ListByCompany(ctx context.Context, companyID string) ([]*model.Performance, error)

	// ListByCompanyPast は指定バレエ団の公演を過去フィルタ付きで取得する。
	// pastがnilなら全件、trueなら終了済みのみ、falseなら終了済みを除く。
	ListByCompanyPast(ctx context.Context, companyID string, past *bool, now time.Time) ([]*model.Performance, error)

	// List は全バレエ団の公演をフィルタ付きで取得する。limitが0以下なら無制限。
	List(ctx context.Context, filter model.PerformanceFilter, now time.Time, limit int) ([]*model.PerformanceWithCompany, error)

	// ListUpcomingWithin は初日が今日より後かつ指定日数以内の公演を取得する。
	ListUpcomingWithin(ctx context.Context, now time.Time, days int, limit int) ([]*model.PerformanceWithCompany, error)

	// ListOnDate は指定日が期間内（両端含む）の公演を取得する。
	ListOnDate(ctx context.Context, date time.Time) ([]*model.PerformanceWithCompany, error)

	// Create は公演を新規保存する。
	Create(ctx context.Context, p *model.Performance) error

	// Update は公演の内容を更新する。
	Update(ctx context.Context, p *model.Performance) error

	// UpdateFlags は公演の状態フラグのみを更新する。
	UpdateFlags(ctx context.Context, id string, isPast, isCurrent, isNext bool) error

	// DeleteByCompany は指定バレエ団の全公演を削除し、削除件数を返す。
	// スクレイプ経路からは呼ばれない。運用コマンド専用。
	DeleteByCompany(ctx context.Context, companyID string) (int64, error)
}
