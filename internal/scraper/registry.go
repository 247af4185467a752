package scraper

import (
	"time"

	"github.com/mmcdole/gofeed"
)

// Registry はバレエ団IDからアダプタを引く登録簿。
// 登録順はスクレイプの実行順として保持される。
type Registry struct {
	order    []string
	adapters map[string]Adapter
}

// NewRegistry は空のRegistryを生成する。
func NewRegistry() *Registry {
	return &Registry{
		adapters: make(map[string]Adapter),
	}
}

// Register はアダプタを登録する。同一IDの再登録は上書きになる。
func (r *Registry) Register(a Adapter) {
	id := a.CompanyID()
	if _, exists := r.adapters[id]; !exists {
		r.order = append(r.order, id)
	}
	r.adapters[id] = a
}

// Get は指定IDのアダプタを返す。未登録の場合は第2戻り値がfalse。
func (r *Registry) Get(companyID string) (Adapter, bool) {
	a, ok := r.adapters[companyID]
	return a, ok
}

// CompanyIDs は登録済みバレエ団IDを登録順で返す。
func (r *Registry) CompanyIDs() []string {
	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids
}

// RegistryDeps は既定アダプタ群の構築に必要な依存。
type RegistryDeps struct {
	// Plain は素のHTTPフェッチによるページ取得。
	Plain DocumentSource
	// Rendered はレンダリングエンドポイント経由のページ取得。
	// JavaScript依存のサイト（bolshoi）で使用する。
	Rendered DocumentSource
	// Feeds はフィードベースの抽出経路に使用するパーサ。
	Feeds *gofeed.Parser
	// BolshoiFeedURL はボリショイの公演フィードURL。空ならフィード経路をスキップする。
	BolshoiFeedURL string
	// Now は現在時刻の供給元。テストでの差し替え用。nilならtime.Now。
	Now func() time.Time
}

// NewDefaultRegistry は対応済み全バレエ団のアダプタを登録したRegistryを生成する。
func NewDefaultRegistry(deps RegistryDeps) *Registry {
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	r := NewRegistry()
	r.Register(NewNBCAdapter(deps.Plain, now))
	r.Register(NewABTAdapter(deps.Plain, now))
	r.Register(NewRBAdapter(deps.Plain, now))
	r.Register(NewStuttgartAdapter(deps.Plain, now))
	r.Register(NewBostonAdapter(deps.Plain, now))
	r.Register(NewBolshoiAdapter(deps.Rendered, deps.Feeds, deps.BolshoiFeedURL, now))
	return r
}
