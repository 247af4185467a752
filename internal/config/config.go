// Package config は環境変数ベースのアプリケーション設定を提供する。
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
type Config struct {
	// Database
	DatabaseURL string

	// Scrape
	ScrapeTimeout       time.Duration
	ScrapeMaxSize       int64
	ScrapeMinDelay      time.Duration
	ScrapeMaxDelay      time.Duration
	ScrapeInterval      time.Duration
	ScrapeMinFetchGap   time.Duration
	ScrapeGlobalTimeout time.Duration
	CompanyTimeout      time.Duration
	MatchToleranceDays  int
	DedupToleranceDays  int
	DateFallbackDays    int

	// External endpoints
	RenderEndpoint string
	BolshoiFeedURL string

	// Rate Limit
	RateLimitGeneral int

	// Server
	ServerPort string

	// CORS
	CORSAllowedOrigin string
}

// Load は環境変数からConfigを読み込む。
// 必須環境変数が未設定の場合はエラーを返す。
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("required environment variables are not set: [DATABASE_URL]")
	}

	// Optional fields with defaults
	cfg.ScrapeTimeout = getEnvDuration("SCRAPE_TIMEOUT", 30*time.Second)
	cfg.ScrapeMaxSize = getEnvInt64("SCRAPE_MAX_SIZE", 5242880)
	cfg.ScrapeMinDelay = getEnvDuration("SCRAPE_MIN_DELAY", 2*time.Second)
	cfg.ScrapeMaxDelay = getEnvDuration("SCRAPE_MAX_DELAY", 5*time.Second)
	cfg.ScrapeInterval = getEnvDuration("SCRAPE_INTERVAL", 6*time.Hour)
	cfg.ScrapeMinFetchGap = getEnvDuration("SCRAPE_MIN_FETCH_GAP", time.Second)
	cfg.ScrapeGlobalTimeout = getEnvDuration("SCRAPE_GLOBAL_TIMEOUT", 30*time.Minute)
	cfg.CompanyTimeout = getEnvDuration("COMPANY_TIMEOUT", 2*time.Minute)
	cfg.MatchToleranceDays = getEnvInt("MATCH_TOLERANCE_DAYS", 3)
	cfg.DedupToleranceDays = getEnvInt("DEDUP_TOLERANCE_DAYS", 2)
	cfg.DateFallbackDays = getEnvInt("DATE_FALLBACK_DAYS", 14)
	cfg.RenderEndpoint = getEnvString("RENDER_ENDPOINT", "")
	cfg.BolshoiFeedURL = getEnvString("BOLSHOI_FEED_URL", "")
	cfg.RateLimitGeneral = getEnvInt("RATE_LIMIT_GENERAL", 120)
	cfg.ServerPort = getEnvString("SERVER_PORT", "8080")
	cfg.CORSAllowedOrigin = getEnvString("CORS_ALLOWED_ORIGIN", "http://localhost:3000")

	return cfg, nil
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvInt64(key string, defaultVal int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
