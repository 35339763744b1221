package usecase

import (
	"context"
	"strings"
	"time"

	"psx_backend/internal/feature/tickers/domain/entity"
)

// DefaultQueryLimit caps a points query that does not specify its own.
const DefaultQueryLimit = 5000

// PointFinder is the read side of the points store.
type PointFinder interface {
	Find(ctx context.Context, symbol string, from, to *time.Time, limit int) ([]entity.TimeSeriesPoint, error)
}

// PointsUsecase serves read queries over stored time series.
type PointsUsecase struct {
	points PointFinder
}

func NewPointsUsecase(points PointFinder) *PointsUsecase {
	return &PointsUsecase{points: points}
}

// GetPoints returns a symbol's stored points in ascending date order,
// optionally bounded by [from, to].
func (pu *PointsUsecase) GetPoints(ctx context.Context, symbol string, from, to *time.Time, limit int) ([]entity.TimeSeriesPoint, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, ErrInvalidSymbol
	}
	if limit <= 0 || limit > DefaultQueryLimit {
		limit = DefaultQueryLimit
	}
	return pu.points.Find(ctx, symbol, from, to, limit)
}
