// Package di provides dependency injection factories for creating
// application components.
package di

import (
	"log/slog"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	marketwatchadapters "psx_backend/internal/feature/marketwatch/adapters"
	mwpsxdps "psx_backend/internal/feature/marketwatch/adapters/psxdps"
	mwusecase "psx_backend/internal/feature/marketwatch/usecase"
	portfolioadapters "psx_backend/internal/feature/portfolio/adapters"
	pfusecase "psx_backend/internal/feature/portfolio/usecase"
	syncusecase "psx_backend/internal/feature/sync/usecase"
	tickeradapters "psx_backend/internal/feature/tickers/adapters"
	"psx_backend/internal/feature/tickers/adapters/investorslounge"
	tkusecase "psx_backend/internal/feature/tickers/usecase"
	transactionadapters "psx_backend/internal/feature/transactions/adapters"
	txpsxdps "psx_backend/internal/feature/transactions/adapters/psxdps"
	txusecase "psx_backend/internal/feature/transactions/usecase"
	"psx_backend/internal/platform/cache"
	"psx_backend/internal/platform/config"
	"psx_backend/internal/platform/db"
	infrahttp "psx_backend/internal/platform/http"
	infraredis "psx_backend/internal/platform/redis"
	"psx_backend/internal/shared/ratelimiter"
)

// Container holds the fully wired application graph. Handlers and
// entrypoints pick the pieces they need.
type Container struct {
	Cfg   config.Config
	DB    *gorm.DB
	Redis *redisv9.Client

	Ingest       *tkusecase.IngestUsecase
	Points       *tkusecase.PointsUsecase
	Snapshot     *mwusecase.SnapshotUsecase
	Transactions *txusecase.TransactionUsecase
	Portfolios   *pfusecase.PortfolioUsecase
	Orchestrator *syncusecase.Orchestrator
}

// NewContainer opens the store, connects the cache and wires every
// usecase. Redis being down is not fatal: the app runs uncached.
func NewContainer(cfg config.Config, log *slog.Logger) (*Container, error) {
	gdb, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	var rdb *redisv9.Client
	if cfg.RedisAddr != "" {
		if tmp, err := infraredis.NewClient(cfg.RedisAddr, cfg.RedisPassword); err != nil {
			log.Warn("redis unavailable, running without cache", "error", err)
		} else {
			rdb = tmp
		}
	}

	httpClient := infrahttp.NewClient(cfg.HTTPTimeout)

	priceSource := investorslounge.NewClient(
		investorslounge.Config{BaseURL: cfg.InvestorsLoungeBaseURL}, httpClient, log)
	dpsSource := mwpsxdps.NewClient(
		mwpsxdps.Config{BaseURL: cfg.DPSBaseURL}, httpClient, log)
	feedSource := txpsxdps.NewClient(
		txpsxdps.Config{BaseURL: cfg.DPSBaseURL}, httpClient, log)

	pointRepo := tickeradapters.NewPointSQLiteRepository(gdb)
	watchRepo := cache.NewCachingMarketWatchRepository(rdb, cfg.CacheTTL,
		marketwatchadapters.NewMarketWatchSQLiteRepository(gdb))
	constituentRepo := marketwatchadapters.NewConstituentSQLiteRepository(gdb)
	txnRepo := transactionadapters.NewTransactionSQLiteRepository(gdb)
	portfolioRepo := portfolioadapters.NewPortfolioSQLiteRepository(gdb)

	limiter := ratelimiter.New(cfg.RateLimitCallsPerMinute, time.Minute)

	ingest := tkusecase.NewIngestUsecase(priceSource, pointRepo, limiter, tkusecase.IngestConfig{
		Planner:   tkusecase.PlannerConfig{Epoch: cfg.Epoch, Cutoff: cfg.Cutoff},
		BatchSize: cfg.BatchSize,
	}, log)
	points := tkusecase.NewPointsUsecase(pointRepo)
	snapshot := mwusecase.NewSnapshotUsecase(dpsSource, dpsSource, watchRepo, constituentRepo, log)
	transactions := txusecase.NewTransactionUsecase(feedSource, txnRepo, cfg.BatchSize, log)
	portfolios := pfusecase.NewPortfolioUsecase(portfolioRepo, log)
	orchestrator := syncusecase.NewOrchestrator(snapshot, ingest, transactions, portfolios, time.Now, log)

	return &Container{
		Cfg:          cfg,
		DB:           gdb,
		Redis:        rdb,
		Ingest:       ingest,
		Points:       points,
		Snapshot:     snapshot,
		Transactions: transactions,
		Portfolios:   portfolios,
		Orchestrator: orchestrator,
	}, nil
}

// Close releases the container's external connections.
func (c *Container) Close() error {
	if c.Redis != nil {
		return c.Redis.Close()
	}
	return nil
}
