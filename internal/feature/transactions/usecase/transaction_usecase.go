// Package usecase implements ingestion of the daily off-market
// settlement feed.
package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"psx_backend/internal/feature/transactions/domain/entity"
	"psx_backend/internal/shared/syncerr"
)

// DefaultBatchSize bounds one write transaction when the configuration
// does not say otherwise.
const DefaultBatchSize = 100

// TransactionSource fetches the settlement feed for one trading day.
type TransactionSource interface {
	FetchTransactions(ctx context.Context, date time.Time) ([]entity.Transaction, error)
}

// TransactionRepository persists transactions with natural-key dedup.
type TransactionRepository interface {
	// InsertBatch writes transactions, silently skipping duplicates of
	// (date, symbol_code, buyer_code, seller_code), and reports how many
	// rows were actually inserted.
	InsertBatch(ctx context.Context, transactions []entity.Transaction) (int64, error)

	// FindByDate returns the stored transactions of one trading day.
	FindByDate(ctx context.Context, date time.Time) ([]entity.Transaction, error)
}

// TransactionReport summarizes one TransactionStage pass.
type TransactionReport struct {
	Fetched      int
	RecordsAdded int64
}

// TransactionUsecase drives fetch and batched insert of the feed.
type TransactionUsecase struct {
	source    TransactionSource
	repo      TransactionRepository
	batchSize int
	log       *slog.Logger
}

// NewTransactionUsecase creates a TransactionUsecase. A nil logger
// disables logging.
func NewTransactionUsecase(source TransactionSource, repo TransactionRepository, batchSize int, log *slog.Logger) *TransactionUsecase {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &TransactionUsecase{source: source, repo: repo, batchSize: batchSize, log: log}
}

// SyncDate fetches the feed for one trading day and writes it in bounded
// batches. Replays are harmless: duplicate natural keys are skipped and
// add zero to the count.
func (tu *TransactionUsecase) SyncDate(ctx context.Context, date time.Time) (TransactionReport, error) {
	var rep TransactionReport

	transactions, err := tu.source.FetchTransactions(ctx, date)
	if err != nil {
		return rep, fmt.Errorf("fetch transactions: %w", err)
	}
	rep.Fetched = len(transactions)

	for start := 0; start < len(transactions); start += tu.batchSize {
		end := min(start+tu.batchSize, len(transactions))
		n, err := tu.repo.InsertBatch(ctx, transactions[start:end])
		if err != nil {
			return rep, fmt.Errorf("%w: transactions batch %d-%d: %v", syncerr.ErrStoreWrite, start, end, err)
		}
		rep.RecordsAdded += n
	}

	tu.log.Info("transactions synced",
		"date", date.Format("2006-01-02"), "fetched", rep.Fetched, "added", rep.RecordsAdded)
	return rep, nil
}

// GetByDate returns the stored transactions of one trading day.
func (tu *TransactionUsecase) GetByDate(ctx context.Context, date time.Time) ([]entity.Transaction, error) {
	return tu.repo.FindByDate(ctx, date)
}
