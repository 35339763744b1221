package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"psx_backend/internal/feature/tickers/domain/entity"
	"psx_backend/internal/shared/ratelimiter"
	"psx_backend/internal/shared/syncerr"
)

// DefaultBatchSize bounds one write transaction when the configuration
// does not say otherwise.
const DefaultBatchSize = 100

// PriceHistorySource fetches raw price history from an upstream source.
// Following Go convention: interfaces are defined by the consumer
// (usecase), not the provider (adapters).
type PriceHistorySource interface {
	FetchPriceHistory(ctx context.Context, symbol string, from, to time.Time) ([]entity.RawPoint, error)
}

// PointRepository abstracts the persistence layer for time-series points.
type PointRepository interface {
	// InsertBatch writes points with insert-if-absent semantics keyed by
	// (symbol, date) and reports how many rows were actually inserted.
	InsertBatch(ctx context.Context, points []entity.TimeSeriesPoint) (int64, error)

	// LatestDate returns the watermark for a symbol, nil when the symbol
	// has never been synced.
	LatestDate(ctx context.Context, symbol string) (*time.Time, error)

	// DistinctSymbols lists every tracked symbol.
	DistinctSymbols(ctx context.Context) ([]string, error)
}

// SyncProgress reports per-symbol liveness during a long run. done is the
// number of symbols fully processed out of total.
type SyncProgress func(done, total int, symbol string)

// IngestConfig carries the injected tuning for the ingest pipeline.
type IngestConfig struct {
	Planner   PlannerConfig
	BatchSize int
}

// TickerReport summarizes one TickerStage pass. Skip outcomes are counted
// separately from successes and from failures so the caller can tell
// "nothing changed because already current" apart from "attempted and
// failed".
type TickerReport struct {
	Synced              int      // symbols fetched and written
	UpToDate            int      // planner skip: nothing left to fetch
	AwaitingPublication int      // planner skip: today's data not out yet
	RecordsAdded        int64    // rows actually inserted across all symbols
	Dropped             int      // malformed records rejected during coercion
	Errors              []string // per-symbol failures, "SYMBOL: cause"
}

// IngestUsecase drives planner, source fetch and batched upsert for
// per-ticker time series.
type IngestUsecase struct {
	market  PriceHistorySource
	points  PointRepository
	limiter ratelimiter.Interface
	cfg     IngestConfig
	log     *slog.Logger
}

// NewIngestUsecase creates an IngestUsecase. A nil logger disables logging.
func NewIngestUsecase(market PriceHistorySource, points PointRepository, limiter ratelimiter.Interface, cfg IngestConfig, log *slog.Logger) *IngestUsecase {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &IngestUsecase{market: market, points: points, limiter: limiter, cfg: cfg, log: log}
}

// TrackedSymbols lists the symbols the store already knows about.
func (iu *IngestUsecase) TrackedSymbols(ctx context.Context) ([]string, error) {
	return iu.points.DistinctSymbols(ctx)
}

// SyncSymbols synchronizes each given symbol in sequence. A failure on
// one symbol is recorded and never aborts the rest. progress may be nil.
func (iu *IngestUsecase) SyncSymbols(ctx context.Context, symbols []string, now time.Time, progress SyncProgress) TickerReport {
	if progress == nil {
		progress = func(int, int, string) {}
	}

	var rep TickerReport
	total := len(symbols)
	for i, symbol := range symbols {
		progress(i, total, symbol)

		wm, err := iu.points.LatestDate(ctx, symbol)
		if err != nil {
			rep.Errors = append(rep.Errors, fmt.Sprintf("%s: read watermark: %v", symbol, err))
			continue
		}

		plan := PlanFetchWindow(wm, now, iu.cfg.Planner)
		if !plan.Fetch {
			switch plan.Reason {
			case SkipNotYetPublished:
				rep.AwaitingPublication++
			default:
				rep.UpToDate++
			}
			iu.log.Info("skipping symbol", "symbol", symbol, "reason", string(plan.Reason))
			continue
		}

		iu.limiter.WaitIfNeeded()
		added, dropped, err := iu.ingestWindow(ctx, symbol, plan.From, plan.To)
		rep.RecordsAdded += added
		rep.Dropped += dropped
		if err != nil {
			rep.Errors = append(rep.Errors, fmt.Sprintf("%s: %v", symbol, err))
			iu.log.Error("failed to sync symbol", "symbol", symbol, "error", err)
			continue
		}
		rep.Synced++
		iu.log.Info("symbol synced", "symbol", symbol,
			"from", plan.From.Format("2006-01-02"), "to", plan.To.Format("2006-01-02"),
			"added", added, "dropped", dropped)
	}
	progress(total, total, "")
	return rep
}

// AddTicker registers a new symbol and backfills it from the epoch. The
// number of inserted rows is returned.
func (iu *IngestUsecase) AddTicker(ctx context.Context, symbol string, now time.Time) (int64, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return 0, ErrInvalidSymbol
	}

	wm, err := iu.points.LatestDate(ctx, symbol)
	if err != nil {
		return 0, fmt.Errorf("read watermark: %w", err)
	}
	if wm != nil {
		return 0, ErrTickerExists
	}

	plan := PlanFetchWindow(nil, now, iu.cfg.Planner)
	iu.limiter.WaitIfNeeded()
	added, dropped, err := iu.ingestWindow(ctx, symbol, plan.From, plan.To)
	if err != nil {
		return added, err
	}
	iu.log.Info("ticker added", "symbol", symbol, "added", added, "dropped", dropped)
	return added, nil
}

// ingestWindow fetches one symbol's window and writes it in bounded
// batches. A malformed record is dropped and counted, never fatal; a
// store failure aborts the remaining batches for this symbol only.
func (iu *IngestUsecase) ingestWindow(ctx context.Context, symbol string, from, to time.Time) (added int64, dropped int, err error) {
	raw, err := iu.market.FetchPriceHistory(ctx, symbol, from, to)
	if err != nil {
		return 0, 0, err
	}

	points := make([]entity.TimeSeriesPoint, 0, len(raw))
	for _, r := range raw {
		p, cerr := coercePoint(symbol, r)
		if cerr != nil {
			dropped++
			iu.log.Warn("dropping malformed record", "symbol", symbol, "error", cerr)
			continue
		}
		points = append(points, p)
	}

	total := len(points)
	for start := 0; start < total; start += iu.cfg.BatchSize {
		end := min(start+iu.cfg.BatchSize, total)
		n, werr := iu.points.InsertBatch(ctx, points[start:end])
		if werr != nil {
			return added, dropped, fmt.Errorf("%w: %s batch %d-%d: %v", syncerr.ErrStoreWrite, symbol, start, end, werr)
		}
		added += n
		iu.log.Debug("batch committed", "symbol", symbol, "processed", end, "total", total)
	}
	return added, dropped, nil
}

// coercePoint validates and converts one raw record into a domain point.
// Every required field must be present and parseable. A zero price or a
// zero volume is treated as an upstream partial-record sentinel and
// rejected; zero change is legitimate.
func coercePoint(symbol string, raw entity.RawPoint) (entity.TimeSeriesPoint, error) {
	var p entity.TimeSeriesPoint

	if len(raw.Date) < 10 {
		return p, fmt.Errorf("missing or short date %q", raw.Date)
	}
	d, err := time.Parse("2006-01-02", raw.Date[:10])
	if err != nil {
		return p, fmt.Errorf("parse date %q: %w", raw.Date, err)
	}

	open, err := parsePrice("open", raw.Open)
	if err != nil {
		return p, err
	}
	high, err := parsePrice("high", raw.High)
	if err != nil {
		return p, err
	}
	low, err := parsePrice("low", raw.Low)
	if err != nil {
		return p, err
	}
	closePx, err := parsePrice("close", raw.Close)
	if err != nil {
		return p, err
	}
	change, err := parseDecimal("change", raw.Change)
	if err != nil {
		return p, err
	}
	changeP, err := parseDecimal("change percent", raw.ChangePercent)
	if err != nil {
		return p, err
	}

	vol, err := strconv.ParseInt(strings.ReplaceAll(raw.Volume, ",", ""), 10, 64)
	if err != nil {
		return p, fmt.Errorf("parse volume %q: %w", raw.Volume, err)
	}
	if vol <= 0 {
		return p, fmt.Errorf("volume %d outside valid range", vol)
	}

	return entity.TimeSeriesPoint{
		Symbol:        symbol,
		Date:          d,
		Open:          open,
		High:          high,
		Low:           low,
		Close:         closePx,
		Change:        change,
		ChangePercent: changeP,
		Volume:        vol,
	}, nil
}

// parsePrice parses a required price field; zero is a missing-data
// sentinel from the upstream and therefore invalid.
func parsePrice(field, s string) (float64, error) {
	v, err := parseDecimal(field, s)
	if err != nil {
		return 0, err
	}
	if v == 0 {
		return 0, fmt.Errorf("%s is zero", field)
	}
	return v, nil
}

// parseDecimal parses a required finite decimal field.
func parseDecimal(field, s string) (float64, error) {
	if s == "" {
		return 0, fmt.Errorf("missing %s", field)
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s %q: %w", field, s, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%s %q is not finite", field, s)
	}
	return v, nil
}
