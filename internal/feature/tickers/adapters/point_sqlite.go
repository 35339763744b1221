// Package adapters provides the persistence and upstream-source
// implementations for the tickers feature.
package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"psx_backend/internal/feature/tickers/domain/entity"
	"psx_backend/internal/feature/tickers/usecase"
)

// TickerPointModel is the GORM model for one trading day of one symbol.
// The composite unique index gives InsertBatch its insert-if-absent
// semantics.
type TickerPointModel struct {
	ID            uint      `gorm:"primaryKey"`
	Symbol        string    `gorm:"size:32;not null;uniqueIndex:idx_points_symbol_date"`
	Date          time.Time `gorm:"not null;uniqueIndex:idx_points_symbol_date"`
	Open          float64   `gorm:"not null"`
	High          float64   `gorm:"not null"`
	Low           float64   `gorm:"not null"`
	Close         float64   `gorm:"not null"`
	Change        float64   `gorm:"not null"`
	ChangePercent float64   `gorm:"not null"`
	Volume        int64     `gorm:"not null"`
	CreatedAt     time.Time
}

func (TickerPointModel) TableName() string {
	return "ticker_points"
}

type pointSQLiteRepository struct {
	db *gorm.DB
}

var (
	_ usecase.PointRepository = (*pointSQLiteRepository)(nil)
	_ usecase.PointFinder     = (*pointSQLiteRepository)(nil)
)

// NewPointSQLiteRepository creates a points repository backed by the
// given GORM connection.
func NewPointSQLiteRepository(db *gorm.DB) *pointSQLiteRepository {
	return &pointSQLiteRepository{db: db}
}

// InsertBatch inserts points, silently skipping rows whose (symbol, date)
// already exists, and returns the number of rows actually written.
func (r *pointSQLiteRepository) InsertBatch(ctx context.Context, points []entity.TimeSeriesPoint) (int64, error) {
	if len(points) == 0 {
		return 0, nil
	}
	models := make([]TickerPointModel, 0, len(points))
	for _, p := range points {
		models = append(models, toPointModel(p))
	}
	tx := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "symbol"}, {Name: "date"}},
			DoNothing: true,
		}).
		Create(&models)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}

// LatestDate returns the most recent stored date for a symbol, nil when
// the symbol has no rows.
func (r *pointSQLiteRepository) LatestDate(ctx context.Context, symbol string) (*time.Time, error) {
	var m TickerPointModel
	err := r.db.WithContext(ctx).
		Where("symbol = ?", symbol).
		Order("date DESC").
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	d := normalizeDay(m.Date)
	return &d, nil
}

// DistinctSymbols lists every symbol that has at least one stored point.
func (r *pointSQLiteRepository) DistinctSymbols(ctx context.Context) ([]string, error) {
	var symbols []string
	err := r.db.WithContext(ctx).
		Model(&TickerPointModel{}).
		Distinct().
		Order("symbol ASC").
		Pluck("symbol", &symbols).Error
	if err != nil {
		return nil, err
	}
	return symbols, nil
}

// Find returns a symbol's points in ascending date order, optionally
// bounded by [from, to] inclusive.
func (r *pointSQLiteRepository) Find(ctx context.Context, symbol string, from, to *time.Time, limit int) ([]entity.TimeSeriesPoint, error) {
	q := r.db.WithContext(ctx).
		Where("symbol = ?", symbol).
		Order("date ASC").
		Limit(limit)
	if from != nil {
		q = q.Where("date >= ?", *from)
	}
	if to != nil {
		q = q.Where("date <= ?", *to)
	}

	var models []TickerPointModel
	if err := q.Find(&models).Error; err != nil {
		return nil, err
	}
	points := make([]entity.TimeSeriesPoint, 0, len(models))
	for _, m := range models {
		points = append(points, toPointEntity(m))
	}
	return points, nil
}

func toPointModel(p entity.TimeSeriesPoint) TickerPointModel {
	return TickerPointModel{
		Symbol:        p.Symbol,
		Date:          normalizeDay(p.Date),
		Open:          p.Open,
		High:          p.High,
		Low:           p.Low,
		Close:         p.Close,
		Change:        p.Change,
		ChangePercent: p.ChangePercent,
		Volume:        p.Volume,
	}
}

func toPointEntity(m TickerPointModel) entity.TimeSeriesPoint {
	return entity.TimeSeriesPoint{
		Symbol:        m.Symbol,
		Date:          normalizeDay(m.Date),
		Open:          m.Open,
		High:          m.High,
		Low:           m.Low,
		Close:         m.Close,
		Change:        m.Change,
		ChangePercent: m.ChangePercent,
		Volume:        m.Volume,
	}
}

// normalizeDay pins a date to midnight UTC so values survive the
// round-trip through the database driver's timezone handling.
func normalizeDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
