package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"psx_backend/internal/feature/marketwatch/domain/entity"
	"psx_backend/internal/shared/syncerr"
)

// SnapshotSource fetches the three live tables from the exchange data
// portal.
type SnapshotSource interface {
	FetchSnapshot(ctx context.Context) ([]entity.SnapshotRecord, error)
	FetchListings(ctx context.Context) ([]entity.ListingRecord, error)
	FetchDefaulters(ctx context.Context) ([]entity.DefaulterRecord, error)
}

// ConstituentSource fetches the published index-composition file.
type ConstituentSource interface {
	FetchConstituents(ctx context.Context) ([]entity.Constituent, error)
}

// MarketWatchRepository persists and serves the merged per-symbol view.
type MarketWatchRepository interface {
	// ReplaceAll upserts the merged entities, keyed per (symbol, sector,
	// listed_in) row, and reports how many rows were written.
	ReplaceAll(ctx context.Context, entities []entity.UnifiedEntity) (int64, error)
	List(ctx context.Context) ([]entity.UnifiedEntity, error)
}

// ConstituentRepository persists and searches the constituents directory.
type ConstituentRepository interface {
	ReplaceAll(ctx context.Context, constituents []entity.Constituent) (int64, error)
	Search(ctx context.Context, query string) ([]entity.Constituent, error)
}

// SnapshotReport summarizes one snapshot refresh.
type SnapshotReport struct {
	Symbols      int      // merged symbols written
	RecordsAdded int64    // market-watch rows written
	Constituents int64    // constituents rows replaced
	Errors       []string // non-fatal source failures
}

// SnapshotUsecase refreshes the market-watch table from the live sources.
type SnapshotUsecase struct {
	source       SnapshotSource
	constituents ConstituentSource
	watch        MarketWatchRepository
	constRepo    ConstituentRepository
	log          *slog.Logger
}

// NewSnapshotUsecase creates a SnapshotUsecase. constituents and
// constRepo may be nil to disable the constituents refresh. A nil logger
// disables logging.
func NewSnapshotUsecase(source SnapshotSource, constituents ConstituentSource, watch MarketWatchRepository, constRepo ConstituentRepository, log *slog.Logger) *SnapshotUsecase {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &SnapshotUsecase{
		source:       source,
		constituents: constituents,
		watch:        watch,
		constRepo:    constRepo,
		log:          log,
	}
}

// Refresh fetches snapshot, listings and defaulters, merges them and
// replaces the stored view. The snapshot source is mandatory; listings
// and defaulters degrade to empty on failure with the failure recorded.
// A store write failure is fatal for this refresh.
func (su *SnapshotUsecase) Refresh(ctx context.Context) (SnapshotReport, error) {
	var rep SnapshotReport

	snapshot, err := su.source.FetchSnapshot(ctx)
	if err != nil {
		return rep, fmt.Errorf("fetch market watch: %w", err)
	}

	listings, err := su.source.FetchListings(ctx)
	if err != nil {
		rep.Errors = append(rep.Errors, fmt.Sprintf("listings: %v", err))
		su.log.Warn("listings source failed, merging without it", "error", err)
	}
	defaulters, err := su.source.FetchDefaulters(ctx)
	if err != nil {
		rep.Errors = append(rep.Errors, fmt.Sprintf("defaulters: %v", err))
		su.log.Warn("defaulters source failed, merging without it", "error", err)
	}

	merged := Merge(snapshot, listings, defaulters)
	rep.Symbols = len(merged)

	added, err := su.watch.ReplaceAll(ctx, merged)
	if err != nil {
		return rep, fmt.Errorf("%w: replace market watch: %v", syncerr.ErrStoreWrite, err)
	}
	rep.RecordsAdded = added
	su.log.Info("market watch refreshed", "symbols", rep.Symbols, "rows", added)

	if su.constituents != nil && su.constRepo != nil {
		if err := su.refreshConstituents(ctx, &rep); err != nil {
			return rep, err
		}
	}
	return rep, nil
}

func (su *SnapshotUsecase) refreshConstituents(ctx context.Context, rep *SnapshotReport) error {
	rows, err := su.constituents.FetchConstituents(ctx)
	if err != nil {
		rep.Errors = append(rep.Errors, fmt.Sprintf("constituents: %v", err))
		su.log.Warn("constituents source failed", "error", err)
		return nil
	}
	n, err := su.constRepo.ReplaceAll(ctx, rows)
	if err != nil {
		return fmt.Errorf("%w: replace constituents: %v", syncerr.ErrStoreWrite, err)
	}
	rep.Constituents = n
	su.log.Info("constituents refreshed", "rows", n)
	return nil
}

// ListMarketWatch returns the stored merged view.
func (su *SnapshotUsecase) ListMarketWatch(ctx context.Context) ([]entity.UnifiedEntity, error) {
	return su.watch.List(ctx)
}

// SearchConstituents finds instruments by exact symbol or company-name
// substring.
func (su *SnapshotUsecase) SearchConstituents(ctx context.Context, query string) ([]entity.Constituent, error) {
	if su.constRepo == nil {
		return nil, nil
	}
	return su.constRepo.Search(ctx, query)
}
