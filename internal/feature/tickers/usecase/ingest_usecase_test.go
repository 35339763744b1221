package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"psx_backend/internal/feature/tickers/domain/entity"
	"psx_backend/internal/shared/syncerr"
)

type mockPriceSource struct {
	fetchFunc func(ctx context.Context, symbol string, from, to time.Time) ([]entity.RawPoint, error)
}

func (m *mockPriceSource) FetchPriceHistory(ctx context.Context, symbol string, from, to time.Time) ([]entity.RawPoint, error) {
	return m.fetchFunc(ctx, symbol, from, to)
}

type mockPointRepository struct {
	insertBatchFunc     func(ctx context.Context, points []entity.TimeSeriesPoint) (int64, error)
	latestDateFunc      func(ctx context.Context, symbol string) (*time.Time, error)
	distinctSymbolsFunc func(ctx context.Context) ([]string, error)
}

func (m *mockPointRepository) InsertBatch(ctx context.Context, points []entity.TimeSeriesPoint) (int64, error) {
	return m.insertBatchFunc(ctx, points)
}

func (m *mockPointRepository) LatestDate(ctx context.Context, symbol string) (*time.Time, error) {
	return m.latestDateFunc(ctx, symbol)
}

func (m *mockPointRepository) DistinctSymbols(ctx context.Context) ([]string, error) {
	return m.distinctSymbolsFunc(ctx)
}

type nopLimiter struct{}

func (nopLimiter) WaitIfNeeded() {}

var ingestCfg = IngestConfig{
	Planner: PlannerConfig{
		Epoch:  time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		Cutoff: 17 * time.Hour,
	},
	BatchSize: 100,
}

func rawPoint(day string, price float64, volume int64) entity.RawPoint {
	return entity.RawPoint{
		Date:          day + "T00:00:00",
		Open:          fmt.Sprintf("%.2f", price),
		High:          fmt.Sprintf("%.2f", price+1),
		Low:           fmt.Sprintf("%.2f", price-1),
		Close:         fmt.Sprintf("%.2f", price+0.5),
		Change:        "0.50",
		ChangePercent: "0.25",
		Volume:        fmt.Sprintf("%d", volume),
	}
}

func TestSyncSymbols_FetchesBehindSymbolsOnly(t *testing.T) {
	// Wednesday evening, past the cutoff.
	now := time.Date(2024, 1, 10, 18, 0, 0, 0, time.UTC)
	today := date(2024, 1, 10)
	monday := date(2024, 1, 8)

	var fetched []string
	source := &mockPriceSource{
		fetchFunc: func(_ context.Context, symbol string, from, to time.Time) ([]entity.RawPoint, error) {
			fetched = append(fetched, symbol)
			assert.Equal(t, date(2024, 1, 9), from)
			assert.Equal(t, today, to)
			return []entity.RawPoint{
				rawPoint("2024-01-09", 100, 5000),
				rawPoint("2024-01-10", 101, 6000),
			}, nil
		},
	}
	repo := &mockPointRepository{
		latestDateFunc: func(_ context.Context, symbol string) (*time.Time, error) {
			if symbol == "MCB" {
				return &today, nil
			}
			return &monday, nil
		},
		insertBatchFunc: func(_ context.Context, points []entity.TimeSeriesPoint) (int64, error) {
			require.Len(t, points, 2)
			assert.Equal(t, "OGDC", points[0].Symbol)
			assert.Equal(t, date(2024, 1, 9), points[0].Date)
			assert.Equal(t, int64(5000), points[0].Volume)
			return int64(len(points)), nil
		},
	}
	iu := NewIngestUsecase(source, repo, nopLimiter{}, ingestCfg, nil)

	rep := iu.SyncSymbols(context.Background(), []string{"MCB", "OGDC"}, now, nil)

	assert.Equal(t, []string{"OGDC"}, fetched, "up-to-date symbol must not be fetched")
	assert.Equal(t, 1, rep.Synced)
	assert.Equal(t, 1, rep.UpToDate)
	assert.Equal(t, int64(2), rep.RecordsAdded)
	assert.Empty(t, rep.Errors)
}

func TestSyncSymbols_SourceFailureDoesNotAbortRun(t *testing.T) {
	now := time.Date(2024, 1, 10, 18, 0, 0, 0, time.UTC)
	monday := date(2024, 1, 8)

	source := &mockPriceSource{
		fetchFunc: func(_ context.Context, symbol string, _, _ time.Time) ([]entity.RawPoint, error) {
			if symbol == "HUBC" {
				return nil, fmt.Errorf("%w: status 503", syncerr.ErrSourceUnavailable)
			}
			return []entity.RawPoint{rawPoint("2024-01-09", 100, 5000)}, nil
		},
	}
	repo := &mockPointRepository{
		latestDateFunc: func(_ context.Context, _ string) (*time.Time, error) { return &monday, nil },
		insertBatchFunc: func(_ context.Context, points []entity.TimeSeriesPoint) (int64, error) {
			return int64(len(points)), nil
		},
	}
	iu := NewIngestUsecase(source, repo, nopLimiter{}, ingestCfg, nil)

	rep := iu.SyncSymbols(context.Background(), []string{"HUBC", "OGDC"}, now, nil)

	assert.Equal(t, 1, rep.Synced)
	require.Len(t, rep.Errors, 1)
	assert.Contains(t, rep.Errors[0], "HUBC")
	assert.Equal(t, int64(1), rep.RecordsAdded)
}

func TestSyncSymbols_MalformedRecordsDroppedAndCounted(t *testing.T) {
	now := time.Date(2024, 1, 10, 18, 0, 0, 0, time.UTC)
	monday := date(2024, 1, 8)

	source := &mockPriceSource{
		fetchFunc: func(_ context.Context, _ string, _, _ time.Time) ([]entity.RawPoint, error) {
			zeroClose := rawPoint("2024-01-09", 100, 5000)
			zeroClose.Close = "0"
			badVolume := rawPoint("2024-01-09", 100, 5000)
			badVolume.Volume = "n/a"
			return []entity.RawPoint{
				zeroClose,
				badVolume,
				rawPoint("2024-01-10", 101, 6000),
			}, nil
		},
	}
	repo := &mockPointRepository{
		latestDateFunc: func(_ context.Context, _ string) (*time.Time, error) { return &monday, nil },
		insertBatchFunc: func(_ context.Context, points []entity.TimeSeriesPoint) (int64, error) {
			require.Len(t, points, 1)
			return 1, nil
		},
	}
	iu := NewIngestUsecase(source, repo, nopLimiter{}, ingestCfg, nil)

	rep := iu.SyncSymbols(context.Background(), []string{"OGDC"}, now, nil)

	assert.Equal(t, 1, rep.Synced)
	assert.Equal(t, 2, rep.Dropped)
	assert.Equal(t, int64(1), rep.RecordsAdded)
	assert.Empty(t, rep.Errors)
}

func TestSyncSymbols_WritesInBoundedBatches(t *testing.T) {
	now := time.Date(2024, 1, 10, 18, 0, 0, 0, time.UTC)

	source := &mockPriceSource{
		fetchFunc: func(_ context.Context, _ string, _, _ time.Time) ([]entity.RawPoint, error) {
			points := make([]entity.RawPoint, 0, 250)
			day := date(2020, 1, 1)
			for i := 0; i < 250; i++ {
				points = append(points, rawPoint(day.Format("2006-01-02"), 100, 5000))
				day = day.AddDate(0, 0, 1)
			}
			return points, nil
		},
	}
	var batchSizes []int
	repo := &mockPointRepository{
		latestDateFunc: func(_ context.Context, _ string) (*time.Time, error) { return nil, nil },
		insertBatchFunc: func(_ context.Context, points []entity.TimeSeriesPoint) (int64, error) {
			batchSizes = append(batchSizes, len(points))
			return int64(len(points)), nil
		},
	}
	iu := NewIngestUsecase(source, repo, nopLimiter{}, ingestCfg, nil)

	rep := iu.SyncSymbols(context.Background(), []string{"OGDC"}, now, nil)

	assert.Equal(t, []int{100, 100, 50}, batchSizes)
	assert.Equal(t, int64(250), rep.RecordsAdded)
}

func TestSyncSymbols_StoreWriteFailureIsFatalForSymbol(t *testing.T) {
	now := time.Date(2024, 1, 10, 18, 0, 0, 0, time.UTC)
	monday := date(2024, 1, 8)

	source := &mockPriceSource{
		fetchFunc: func(_ context.Context, _ string, _, _ time.Time) ([]entity.RawPoint, error) {
			return []entity.RawPoint{rawPoint("2024-01-09", 100, 5000)}, nil
		},
	}
	repo := &mockPointRepository{
		latestDateFunc: func(_ context.Context, _ string) (*time.Time, error) { return &monday, nil },
		insertBatchFunc: func(_ context.Context, _ []entity.TimeSeriesPoint) (int64, error) {
			return 0, errors.New("disk full")
		},
	}
	iu := NewIngestUsecase(source, repo, nopLimiter{}, ingestCfg, nil)

	rep := iu.SyncSymbols(context.Background(), []string{"OGDC"}, now, nil)

	assert.Zero(t, rep.Synced)
	require.Len(t, rep.Errors, 1)
	assert.Contains(t, rep.Errors[0], syncerr.ErrStoreWrite.Error())
}

func TestSyncSymbols_ReportsProgress(t *testing.T) {
	now := time.Date(2024, 1, 10, 18, 0, 0, 0, time.UTC)
	today := date(2024, 1, 10)

	repo := &mockPointRepository{
		latestDateFunc: func(_ context.Context, _ string) (*time.Time, error) { return &today, nil },
	}
	iu := NewIngestUsecase(&mockPriceSource{}, repo, nopLimiter{}, ingestCfg, nil)

	type tick struct {
		done, total int
		symbol      string
	}
	var ticks []tick
	iu.SyncSymbols(context.Background(), []string{"MCB", "OGDC"}, now, func(done, total int, symbol string) {
		ticks = append(ticks, tick{done, total, symbol})
	})

	assert.Equal(t, []tick{
		{0, 2, "MCB"},
		{1, 2, "OGDC"},
		{2, 2, ""},
	}, ticks)
}

func TestAddTicker(t *testing.T) {
	now := time.Date(2024, 1, 10, 18, 0, 0, 0, time.UTC)
	today := date(2024, 1, 10)

	t.Run("backfills a new symbol from the epoch", func(t *testing.T) {
		source := &mockPriceSource{
			fetchFunc: func(_ context.Context, symbol string, from, to time.Time) ([]entity.RawPoint, error) {
				assert.Equal(t, "LUCK", symbol)
				assert.Equal(t, date(2020, 1, 1), from)
				assert.Equal(t, today, to)
				return []entity.RawPoint{rawPoint("2024-01-10", 100, 5000)}, nil
			},
		}
		repo := &mockPointRepository{
			latestDateFunc: func(_ context.Context, _ string) (*time.Time, error) { return nil, nil },
			insertBatchFunc: func(_ context.Context, points []entity.TimeSeriesPoint) (int64, error) {
				return int64(len(points)), nil
			},
		}
		iu := NewIngestUsecase(source, repo, nopLimiter{}, ingestCfg, nil)

		added, err := iu.AddTicker(context.Background(), " luck ", now)
		require.NoError(t, err)
		assert.Equal(t, int64(1), added)
	})

	t.Run("rejects an already tracked symbol", func(t *testing.T) {
		repo := &mockPointRepository{
			latestDateFunc: func(_ context.Context, _ string) (*time.Time, error) { return &today, nil },
		}
		iu := NewIngestUsecase(&mockPriceSource{}, repo, nopLimiter{}, ingestCfg, nil)

		_, err := iu.AddTicker(context.Background(), "MCB", now)
		assert.ErrorIs(t, err, ErrTickerExists)
	})

	t.Run("rejects a blank symbol", func(t *testing.T) {
		iu := NewIngestUsecase(&mockPriceSource{}, &mockPointRepository{}, nopLimiter{}, ingestCfg, nil)

		_, err := iu.AddTicker(context.Background(), "   ", now)
		assert.ErrorIs(t, err, ErrInvalidSymbol)
	})
}

func TestCoercePoint(t *testing.T) {
	valid := entity.RawPoint{
		Date:          "2024-01-10T00:00:00",
		Open:          "100.50",
		High:          "102.00",
		Low:           "99.75",
		Close:         "101.25",
		Change:        "0.75",
		ChangePercent: "0.74",
		Volume:        "1,250,000",
	}

	t.Run("valid record", func(t *testing.T) {
		p, err := coercePoint("MCB", valid)
		require.NoError(t, err)
		assert.Equal(t, "MCB", p.Symbol)
		assert.Equal(t, date(2024, 1, 10), p.Date)
		assert.Equal(t, 100.50, p.Open)
		assert.Equal(t, 101.25, p.Close)
		assert.Equal(t, 0.0, 0.75-p.Change)
		assert.Equal(t, int64(1250000), p.Volume)
	})

	t.Run("zero change is legitimate", func(t *testing.T) {
		r := valid
		r.Change = "0"
		r.ChangePercent = "0.00"
		_, err := coercePoint("MCB", r)
		assert.NoError(t, err)
	})

	rejects := []struct {
		name   string
		mutate func(*entity.RawPoint)
	}{
		{"missing date", func(r *entity.RawPoint) { r.Date = "" }},
		{"short date", func(r *entity.RawPoint) { r.Date = "2024-01" }},
		{"unparseable date", func(r *entity.RawPoint) { r.Date = "10 Jan 2024" }},
		{"missing open", func(r *entity.RawPoint) { r.Open = "" }},
		{"zero open", func(r *entity.RawPoint) { r.Open = "0" }},
		{"zero high", func(r *entity.RawPoint) { r.High = "0.00" }},
		{"zero low", func(r *entity.RawPoint) { r.Low = "0" }},
		{"zero close", func(r *entity.RawPoint) { r.Close = "0" }},
		{"non-numeric close", func(r *entity.RawPoint) { r.Close = "NO DATA" }},
		{"nan close", func(r *entity.RawPoint) { r.Close = "NaN" }},
		{"missing change", func(r *entity.RawPoint) { r.Change = "" }},
		{"zero volume", func(r *entity.RawPoint) { r.Volume = "0" }},
		{"negative volume", func(r *entity.RawPoint) { r.Volume = "-100" }},
		{"non-numeric volume", func(r *entity.RawPoint) { r.Volume = "n/a" }},
	}
	for _, tt := range rejects {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			r := valid
			tt.mutate(&r)
			_, err := coercePoint("MCB", r)
			assert.Error(t, err)
		})
	}
}
