package scraper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// RenderClient はレンダリングエンドポイント経由のDocumentSourceの実装。
// JavaScriptで公演一覧を組み立てるサイトに対して、レンダリング済みHTMLを
// 返す外部エンドポイント（Jina Reader互換のGET <endpoint>/<url>形式）を使用する。
type RenderClient struct {
	endpoint string
	client   *http.Client
	logger   *slog.Logger
}

// NewRenderClient はRenderClientの新しいインスタンスを生成する。
// endpointが空の場合、DocumentはErrRenderNotConfiguredを返す。
func NewRenderClient(endpoint string, client *http.Client, logger *slog.Logger) *RenderClient {
	return &RenderClient{
		endpoint: strings.TrimRight(endpoint, "/"),
		client:   client,
		logger:   logger,
	}
}

// ErrRenderNotConfigured はレンダリングエンドポイント未設定を示す。
var ErrRenderNotConfigured = fmt.Errorf("rendering endpoint not configured")

// Document は指定URLのレンダリング済みページを取得してパースする。
func (c *RenderClient) Document(ctx context.Context, pageURL string) (*goquery.Document, error) {
	if c.endpoint == "" {
		return nil, ErrRenderNotConfigured
	}

	if _, err := url.Parse(pageURL); err != nil {
		return nil, fmt.Errorf("invalid page URL: %w", err)
	}

	requestURL := c.endpoint + "/" + pageURL

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create render request: %w", err)
	}
	// レンダリング結果をMarkdownではなくHTMLで受け取る
	req.Header.Set("X-Return-Format", "html")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("render fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("render endpoint returned status %d for %s", resp.StatusCode, pageURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read render response: %w", err)
	}

	c.logger.Debug("page rendered",
		slog.String("url", pageURL),
		slog.Int("bytes", len(body)),
		slog.Duration("elapsed", time.Since(start)),
	)

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse rendered HTML: %w", err)
	}
	return doc, nil
}
