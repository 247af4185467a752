// Package scraper は各バレエ団サイトからの公演情報抽出を提供する。
//
// アダプタはサイトごとのセレクタ知識をカプセル化し、抽出失敗時は
// internal/fallback のプレースホルダデータセットに切り替える。
// 全フェッチはSSRF防止付きクライアントと間隔制限を経由する。
package scraper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/ymatsuda/pirouette/internal/security"
)

// userAgent はスクレイプ時のUser-Agentヘッダ。
// ヘッドレスクライアントを弾くサイトがあるため一般的なブラウザを名乗る。
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// DocumentSource はページ取得とHTML解析を抽象化する。
// 素のHTTPフェッチとレンダリングエンドポイント経由の取得を差し替え可能にする。
type DocumentSource interface {
	// Document は指定URLのページを取得してパース済みドキュメントを返す。
	Document(ctx context.Context, pageURL string) (*goquery.Document, error)
}

// Fetcher は素のHTTP GETによるDocumentSourceの実装。
// SSRF防止付きクライアントを使用し、リクエスト間隔をrate.Limiterで制限する。
type Fetcher struct {
	client  *http.Client
	guard   security.FetchGuardService
	limiter *rate.Limiter
	maxSize int64
	logger  *slog.Logger
}

// NewFetcher はFetcherの新しいインスタンスを生成する。
// minIntervalはリクエスト間の最小間隔（サイトへの負荷配慮）。
func NewFetcher(
	guard security.FetchGuardService,
	logger *slog.Logger,
	timeout time.Duration,
	maxSize int64,
	minInterval time.Duration,
) *Fetcher {
	if minInterval <= 0 {
		minInterval = time.Second
	}
	return &Fetcher{
		client:  guard.NewSafeClient(timeout, maxSize),
		guard:   guard,
		limiter: rate.NewLimiter(rate.Every(minInterval), 1),
		maxSize: maxSize,
		logger:  logger,
	}
}

// Fetch は指定URLの本文を取得する。
// URL検証、間隔制限、サイズ上限をすべて適用する。
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) ([]byte, error) {
	if err := f.guard.ValidateURL(pageURL); err != nil {
		return nil, fmt.Errorf("url validation failed: %w", err)
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait cancelled: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("fetch returned status %d for %s", resp.StatusCode, pageURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	f.logger.Debug("page fetched",
		slog.String("url", pageURL),
		slog.Int("bytes", len(body)),
		slog.Duration("elapsed", time.Since(start)),
	)

	return body, nil
}

// Document は指定URLのページを取得してパース済みドキュメントを返す。
func (f *Fetcher) Document(ctx context.Context, pageURL string) (*goquery.Document, error) {
	body, err := f.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}
