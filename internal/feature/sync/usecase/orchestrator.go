// Package usecase implements the synchronization run that drives the
// snapshot, tickers and transactions stages.
package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	mwusecase "psx_backend/internal/feature/marketwatch/usecase"
	pfentity "psx_backend/internal/feature/portfolio/domain/entity"
	tkusecase "psx_backend/internal/feature/tickers/usecase"
	txusecase "psx_backend/internal/feature/transactions/usecase"
)

// ProgressFunc receives coarse run progress in [0, 1] with a
// human-readable message. It is the only coupling to a UI and may be
// nil.
type ProgressFunc func(fraction float64, message string)

// StageSummary is the per-stage outcome of a run.
type StageSummary struct {
	Success      bool     `json:"success"`
	RecordsAdded int64    `json:"records_added"`
	Message      string   `json:"message"`
	Errors       []string `json:"errors,omitempty"`
}

// Summary aggregates the three stage outcomes of one run. The field
// names on the wire are stable identifiers consumed by the dashboard.
type Summary struct {
	MarketWatch  StageSummary `json:"market_watch"`
	Tickers      StageSummary `json:"tickers"`
	Transactions StageSummary `json:"psx_transactions"`
}

// SnapshotRefresher is the snapshot stage's collaborator.
type SnapshotRefresher interface {
	Refresh(ctx context.Context) (mwusecase.SnapshotReport, error)
}

// TickerSyncer is the ticker stage's collaborator.
type TickerSyncer interface {
	TrackedSymbols(ctx context.Context) ([]string, error)
	SyncSymbols(ctx context.Context, symbols []string, now time.Time, progress tkusecase.SyncProgress) tkusecase.TickerReport
}

// TransactionSyncer is the transaction stage's collaborator.
type TransactionSyncer interface {
	SyncDate(ctx context.Context, date time.Time) (txusecase.TransactionReport, error)
}

// PortfolioResolver scopes a run to one portfolio's symbols.
type PortfolioResolver interface {
	GetByName(ctx context.Context, name string) (*pfentity.Portfolio, error)
}

// Stage boundaries on the progress scale. Ticker syncing dominates a
// run's wall-clock time, so it gets most of the range.
const (
	snapshotDone     = 0.2
	tickersDone      = 0.9
	transactionsDone = 1.0
)

// Orchestrator runs the three stages in fixed order. Stages are
// independently fallible: a failure or panic in one is recorded in its
// summary and never prevents the remaining stages from attempting to
// run.
type Orchestrator struct {
	snapshot     SnapshotRefresher
	tickers      TickerSyncer
	transactions TransactionSyncer
	portfolios   PortfolioResolver
	now          func() time.Time
	log          *slog.Logger
}

// NewOrchestrator creates an Orchestrator. portfolios may be nil to
// disable scoped runs; now defaults to time.Now; a nil logger disables
// logging.
func NewOrchestrator(snapshot SnapshotRefresher, tickers TickerSyncer, transactions TransactionSyncer, portfolios PortfolioResolver, now func() time.Time, log *slog.Logger) *Orchestrator {
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Orchestrator{
		snapshot:     snapshot,
		tickers:      tickers,
		transactions: transactions,
		portfolios:   portfolios,
		now:          now,
		log:          log,
	}
}

// Synchronize runs snapshot, tickers and transactions against targetDate.
// portfolioName scopes the ticker stage to one portfolio's symbols; ""
// means every tracked symbol. Concurrent runs against the same store are
// not supported; callers serialize.
func (o *Orchestrator) Synchronize(ctx context.Context, targetDate time.Time, portfolioName string, progress ProgressFunc) Summary {
	if progress == nil {
		progress = func(float64, string) {}
	}

	var sum Summary

	progress(0, "Refreshing market watch")
	sum.MarketWatch = o.runStage("market watch", o.snapshotStage(ctx))
	progress(snapshotDone, "Market watch stage finished")

	sum.Tickers = o.runStage("tickers", o.tickerStage(ctx, portfolioName, progress))
	progress(tickersDone, "Ticker stage finished")

	sum.Transactions = o.runStage("transactions", o.transactionStage(ctx, targetDate))
	progress(transactionsDone, "Synchronization complete")

	o.log.Info("synchronization finished",
		"market_watch", sum.MarketWatch.Success,
		"tickers", sum.Tickers.Success,
		"transactions", sum.Transactions.Success)
	return sum
}

// runStage executes one stage behind a panic guard, so an unexpected
// failure surfaces in the stage summary instead of taking down the run.
func (o *Orchestrator) runStage(name string, stage func() StageSummary) (s StageSummary) {
	defer func() {
		if r := recover(); r != nil {
			o.log.Error("stage panicked", "stage", name, "panic", r)
			s = StageSummary{Message: fmt.Sprintf("%s stage failed unexpectedly: %v", name, r)}
		}
	}()
	return stage()
}

func (o *Orchestrator) snapshotStage(ctx context.Context) func() StageSummary {
	return func() StageSummary {
		rep, err := o.snapshot.Refresh(ctx)
		if err != nil {
			return StageSummary{
				Message: fmt.Sprintf("Market watch refresh failed: %v.", err),
				Errors:  rep.Errors,
			}
		}
		return StageSummary{
			Success:      true,
			RecordsAdded: rep.RecordsAdded,
			Message: fmt.Sprintf("Market watch refreshed: %d symbols, %d rows written.",
				rep.Symbols, rep.RecordsAdded),
			Errors: rep.Errors,
		}
	}
}

func (o *Orchestrator) tickerStage(ctx context.Context, portfolioName string, progress ProgressFunc) func() StageSummary {
	return func() StageSummary {
		symbols, err := o.resolveSymbols(ctx, portfolioName)
		if err != nil {
			return StageSummary{Message: fmt.Sprintf("Ticker sync could not start: %v.", err)}
		}

		rep := o.tickers.SyncSymbols(ctx, symbols, o.now(), func(done, total int, symbol string) {
			if total == 0 {
				return
			}
			frac := snapshotDone + (tickersDone-snapshotDone)*float64(done)/float64(total)
			if symbol != "" {
				progress(frac, fmt.Sprintf("Syncing %s (%d/%d)", symbol, done+1, total))
			}
		})

		msg := fmt.Sprintf("Tickers: %d synced, %d up to date, %d awaiting publication, %d records added.",
			rep.Synced, rep.UpToDate, rep.AwaitingPublication, rep.RecordsAdded)
		if rep.Dropped > 0 {
			msg += fmt.Sprintf(" %d malformed records dropped.", rep.Dropped)
		}
		if len(rep.Errors) > 0 {
			msg += fmt.Sprintf(" %d symbols failed.", len(rep.Errors))
		}
		return StageSummary{
			Success:      true,
			RecordsAdded: rep.RecordsAdded,
			Message:      msg,
			Errors:       rep.Errors,
		}
	}
}

func (o *Orchestrator) resolveSymbols(ctx context.Context, portfolioName string) ([]string, error) {
	if portfolioName == "" {
		return o.tickers.TrackedSymbols(ctx)
	}
	if o.portfolios == nil {
		return nil, fmt.Errorf("portfolio scoping not configured")
	}
	p, err := o.portfolios.GetByName(ctx, portfolioName)
	if err != nil {
		return nil, fmt.Errorf("resolve portfolio %q: %w", portfolioName, err)
	}
	return p.Symbols, nil
}

func (o *Orchestrator) transactionStage(ctx context.Context, targetDate time.Time) func() StageSummary {
	return func() StageSummary {
		rep, err := o.transactions.SyncDate(ctx, targetDate)
		if err != nil {
			return StageSummary{
				Message: fmt.Sprintf("Off-market transactions sync failed for %s: %v.",
					targetDate.Format("2006-01-02"), err),
			}
		}
		return StageSummary{
			Success:      true,
			RecordsAdded: rep.RecordsAdded,
			Message: fmt.Sprintf("Off-market transactions for %s: %d fetched, %d inserted.",
				targetDate.Format("2006-01-02"), rep.Fetched, rep.RecordsAdded),
		}
	}
}
