// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ymatsuda/pirouette/internal/model"
)

// Collector はPrometheusメトリクスを収集する実装。
// ワーカーのScrapeRecorderインターフェースを満たす。
type Collector struct {
	scrapeSuccess  *prometheus.CounterVec
	scrapeFail     *prometheus.CounterVec
	fallbackServed *prometheus.CounterVec
	scrapeLatency  prometheus.Histogram
	perfsInserted  prometheus.Counter
	perfsUpdated   prometheus.Counter
	dateFallbacks  *prometheus.CounterVec
	httpStatus     *prometheus.CounterVec
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		scrapeSuccess: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pirouette_scrape_success_total",
			Help: "バレエ団別のスクレイプ成功の合計数",
		}, []string{"company_id"}),
		scrapeFail: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pirouette_scrape_fail_total",
			Help: "バレエ団別のスクレイプ失敗の合計数",
		}, []string{"company_id"}),
		fallbackServed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pirouette_fallback_served_total",
			Help: "プレースホルダデータセットで補われたスクレイプの合計数",
		}, []string{"company_id"}),
		scrapeLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pirouette_scrape_latency_seconds",
			Help:    "1バレエ団分のスクレイプのレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		perfsInserted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pirouette_performances_inserted_total",
			Help: "新規保存された公演の合計数",
		}),
		perfsUpdated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pirouette_performances_updated_total",
			Help: "更新された公演の合計数",
		}),
		dateFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pirouette_date_fallback_total",
			Help: "日付が読み取れずフォールバック期間を使用した候補の合計数",
		}, []string{"company_id"}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pirouette_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
	}

	reg.MustRegister(
		c.scrapeSuccess,
		c.scrapeFail,
		c.fallbackServed,
		c.scrapeLatency,
		c.perfsInserted,
		c.perfsUpdated,
		c.dateFallbacks,
		c.httpStatus,
	)

	return c
}

// RecordScrape は1バレエ団分のスクレイプ結果を記録する。
func (c *Collector) RecordScrape(companyID string, source model.DataSource, duration time.Duration, success bool) {
	if success {
		c.scrapeSuccess.WithLabelValues(companyID).Inc()
	} else {
		c.scrapeFail.WithLabelValues(companyID).Inc()
	}
	if source == model.DataSourceFallback {
		c.fallbackServed.WithLabelValues(companyID).Inc()
	}
	c.scrapeLatency.Observe(duration.Seconds())
}

// RecordReconcile は突き合わせの挿入・更新件数を記録する。
func (c *Collector) RecordReconcile(companyID string, inserted, updated int) {
	c.perfsInserted.Add(float64(inserted))
	c.perfsUpdated.Add(float64(updated))
}

// RecordDateFallback は日付フォールバックの発生を記録する。
func (c *Collector) RecordDateFallback(companyID string) {
	c.dateFallbacks.WithLabelValues(companyID).Inc()
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
