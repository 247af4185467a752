package app

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/ymatsuda/pirouette/internal/config"
	"github.com/ymatsuda/pirouette/internal/database"
	"github.com/ymatsuda/pirouette/internal/handler"
	"github.com/ymatsuda/pirouette/internal/logger"
	"github.com/ymatsuda/pirouette/internal/metrics"
	"github.com/ymatsuda/pirouette/internal/middleware"
	"github.com/ymatsuda/pirouette/internal/normalizer"
	"github.com/ymatsuda/pirouette/internal/reconcile"
	"github.com/ymatsuda/pirouette/internal/repository"
	"github.com/ymatsuda/pirouette/internal/scraper"
	"github.com/ymatsuda/pirouette/internal/security"
	"github.com/ymatsuda/pirouette/internal/worker/cleanup"
	"github.com/ymatsuda/pirouette/internal/worker/scrape"
)

// Init はアプリケーションの初期化を行う。
// 環境変数からConfigを読み込み、JSON構造化ログをセットアップする。
// writerが指定された場合はログ出力先としてそのwriterを使用する。
func Init(w io.Writer) (*config.Config, error) {
	// 1. ログの初期化（設定読み込み前にログを使えるようにする）
	logger.SetupDefault(w)

	// 2. 環境変数から設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}

// Run はアプリケーションのメインエントリーポイント。
// コマンドライン引数からサブコマンドを解析し、対応するモードで起動する。
// argsにはos.Args[1:]を渡す。
func Run(w io.Writer, args []string) error {
	cmd, arg := ParseCommand(args)

	// healthcheck は軽量サブコマンドのため、フル初期化をスキップする
	if cmd == CommandHealthcheck {
		port := os.Getenv("SERVER_PORT")
		if port == "" {
			port = "8080"
		}
		return runHealthcheck(port)
	}

	cfg, err := Init(w)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	slog.Info("starting application",
		slog.String("command", string(cmd)),
		slog.String("port", cfg.ServerPort),
	)

	switch cmd {
	case CommandServe:
		return runServe(cfg)
	case CommandScrape:
		return runScrape(cfg, arg)
	case CommandWorker:
		return runWorker(cfg)
	case CommandClear:
		return runClear(cfg, arg)
	case CommandMigrate:
		return runMigrate(cfg)
	default:
		return runServe(cfg)
	}
}

// runServe はAPIサーバーモードで起動する。
// DB接続を開き、全依存関係をワイヤリングし、HTTPサーバーを起動する。
// SIGINTまたはSIGTERMシグナルを受信するとグレースフルシャットダウンを行う。
func runServe(cfg *config.Config) error {
	// 1. DB接続
	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	// 2. リポジトリの初期化
	companyRepo := repository.NewPostgresCompanyRepo(db)
	perfRepo := repository.NewPostgresPerformanceRepo(db)

	// 3. メトリクスの初期化
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// 4. レート制限の構成（configのRateLimitGeneralはreq/min単位なのでreq/secに変換する）
	rateLimiterCfg := middleware.DefaultRateLimiterConfig()
	rateLimiterCfg.Rate = rate.Limit(float64(cfg.RateLimitGeneral) / 60.0)
	rateLimiterCfg.Burst = cfg.RateLimitGeneral

	// 5. ルーターの構築
	deps := &handler.RouterDeps{
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		RateLimiter:       middleware.NewRateLimiter(rateLimiterCfg),
		Logger:            slog.Default(),
		StatusObserver:    collector,

		Companies:    companyRepo,
		Performances: perfRepo,

		DB: db,

		MetricsHandler: metrics.Handler(registry),
	}

	router := handler.NewRouter(deps)

	// 6. HTTPサーバーの起動
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// グレースフルシャットダウンのためのシグナルハンドリング
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("API server starting",
			slog.String("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server listen error", slog.String("error", err.Error()))
		}
	}()

	<-stop
	slog.Info("shutting down API server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("API server stopped gracefully")
	return nil
}

// runScrape はスクレイプを1回実行して終了する。
// companyIDが空なら全バレエ団、指定時はその1団のみを対象とする。
func runScrape(cfg *config.Config, companyID string) error {
	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	worker := buildScrapeStack(cfg, db)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cfg.ScrapeGlobalTimeout > 0 {
		var timeoutCancel context.CancelFunc
		ctx, timeoutCancel = context.WithTimeout(ctx, cfg.ScrapeGlobalTimeout)
		defer timeoutCancel()
	}

	if companyID != "" {
		return worker.ScrapeOne(ctx, companyID)
	}
	return worker.ScrapeAll(ctx)
}

// runWorker はワーカーモードで起動する。
// DB接続を開き、スクレイプスケジューラを起動する。
// SIGINTまたはSIGTERMシグナルを受信するとシャットダウンする。
func runWorker(cfg *config.Config) error {
	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	worker := buildScrapeStack(cfg, db)
	runner := scrape.NewRunner(worker, slog.Default(), cfg.ScrapeGlobalTimeout)

	// グレースフルシャットダウンのためのシグナルハンドリング
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-stop
		slog.Info("shutting down worker...")
		cancel()
	}()

	slog.Info("worker starting",
		slog.Duration("scrape_interval", cfg.ScrapeInterval),
	)

	// スケジューラをメインgoroutineで実行（ブロッキング）
	runner.Start(ctx, cfg.ScrapeInterval)

	slog.Info("worker stopped gracefully")
	return nil
}

// runClear は指定バレエ団の公演データをすべて削除する。
func runClear(cfg *config.Config, companyID string) error {
	if companyID == "" {
		return fmt.Errorf("clear command requires a company ID argument")
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	perfRepo := repository.NewPostgresPerformanceRepo(db)
	registry := scraper.NewDefaultRegistry(scraper.RegistryDeps{})
	job := cleanup.NewJob(perfRepo, registry, slog.Default())

	deleted, err := job.ClearCompany(context.Background(), companyID)
	if err != nil {
		return err
	}

	slog.Info("company performances cleared",
		slog.String("company_id", companyID),
		slog.Int64("deleted_count", deleted),
	)
	return nil
}

// runMigrate はデータベースマイグレーションを実行する。
// すべての未適用マイグレーションを順番に適用する。
func runMigrate(cfg *config.Config) error {
	slog.Info("running database migrations",
		slog.String("database_url", maskDatabaseURL(cfg.DatabaseURL)),
	)

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	slog.Info("database migrations completed successfully")
	return nil
}

// runHealthcheck はヘルスチェックを実行する。
// distroless環境でのDockerヘルスチェック用サブコマンド。
// /health エンドポイントにHTTPリクエストを送り、結果を返す。
func runHealthcheck(port string) error {
	url := fmt.Sprintf("http://localhost:%s/health", port)
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	return nil
}

// openDatabase はDB接続を開き、疎通を確認して返す。
func openDatabase(cfg *config.Config) (*sql.DB, error) {
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	slog.Info("database connection established")
	return db, nil
}

// buildScrapeStack はスクレイプ系サブコマンド共通の依存関係を組み立てる。
// 単発実行のサブコマンドでは計測値を公開しないため、メトリクスは
// その場で生成したレジストリに登録する。
func buildScrapeStack(cfg *config.Config, db *sql.DB) *scrape.Worker {
	companyRepo := repository.NewPostgresCompanyRepo(db)
	perfRepo := repository.NewPostgresPerformanceRepo(db)

	guard := security.NewFetchGuard()

	fetcher := scraper.NewFetcher(
		guard, slog.Default(),
		cfg.ScrapeTimeout, cfg.ScrapeMaxSize, cfg.ScrapeMinFetchGap,
	)
	renderClient := scraper.NewRenderClient(
		cfg.RenderEndpoint,
		guard.NewSafeClient(cfg.ScrapeTimeout, cfg.ScrapeMaxSize),
		slog.Default(),
	)

	feedParser := gofeed.NewParser()
	feedParser.Client = guard.NewSafeClient(cfg.ScrapeTimeout, cfg.ScrapeMaxSize)

	registry := scraper.NewDefaultRegistry(scraper.RegistryDeps{
		Plain:          fetcher,
		Rendered:       renderClient,
		Feeds:          feedParser,
		BolshoiFeedURL: cfg.BolshoiFeedURL,
	})

	norm := normalizer.New(security.NewTextSanitizer(), cfg.DateFallbackDays)
	reconciler := reconcile.NewService(perfRepo, slog.Default(), reconcile.Config{
		MatchToleranceDays: cfg.MatchToleranceDays,
		DedupToleranceDays: cfg.DedupToleranceDays,
	})

	collector := metrics.NewCollector(prometheus.NewRegistry())

	worker := scrape.NewWorker(
		registry, companyRepo, norm, reconciler, collector, slog.Default(),
		scrape.Config{
			MinDelay:       cfg.ScrapeMinDelay,
			MaxDelay:       cfg.ScrapeMaxDelay,
			CompanyTimeout: cfg.CompanyTimeout,
		},
	)

	return worker
}

// maskDatabaseURL はデータベースURLの認証情報をマスクする。
func maskDatabaseURL(url string) string {
	if len(url) > 20 {
		return url[:12] + "***@..."
	}
	return "***"
}
