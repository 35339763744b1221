// Package db opens the embedded SQLite store shared by all features.
package db

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	marketwatchadapters "psx_backend/internal/feature/marketwatch/adapters"
	portfolioadapters "psx_backend/internal/feature/portfolio/adapters"
	tickeradapters "psx_backend/internal/feature/tickers/adapters"
	transactionadapters "psx_backend/internal/feature/transactions/adapters"
)

// Open opens (creating if necessary) the single-file SQLite database at
// path and migrates the table set. The store assumes a single writer;
// callers must serialize synchronization runs.
func Open(path string) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}

	if err := gdb.AutoMigrate(
		&tickeradapters.TickerPointModel{},
		&marketwatchadapters.MarketWatchModel{},
		&marketwatchadapters.ConstituentModel{},
		&transactionadapters.TransactionModel{},
		&portfolioadapters.PortfolioModel{},
	); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return gdb, nil
}
