package main

import (
	"log/slog"
	"os"

	"psx_backend/internal/app/di"
	"psx_backend/internal/app/router"
	marketwatchhandler "psx_backend/internal/feature/marketwatch/transport/handler"
	portfoliohandler "psx_backend/internal/feature/portfolio/transport/handler"
	synchandler "psx_backend/internal/feature/sync/transport/handler"
	tickerhandler "psx_backend/internal/feature/tickers/transport/handler"
	transactionhandler "psx_backend/internal/feature/transactions/transport/handler"
	"psx_backend/internal/platform/config"
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(log)

	cfg := config.Load()

	c, err := di.NewContainer(cfg, log)
	if err != nil {
		log.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := c.Close(); err != nil {
			log.Error("failed to close container", "error", err)
		}
	}()

	tickersH := tickerhandler.NewTickerHandler(c.Ingest, c.Points, nil)
	marketWatchH := marketwatchhandler.NewMarketWatchHandler(c.Snapshot)
	portfoliosH := portfoliohandler.NewPortfolioHandler(c.Portfolios)
	transactionsH := transactionhandler.NewTransactionHandler(c.Transactions)
	syncH := synchandler.NewSyncHandler(c.Orchestrator, nil)

	r := router.NewRouter(tickersH, marketWatchH, portfoliosH, transactionsH, syncH)

	log.Info("starting server", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
