// Package handler exposes the tickers feature over HTTP.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"psx_backend/internal/feature/tickers/domain/entity"
	"psx_backend/internal/feature/tickers/transport/http/dto"
	"psx_backend/internal/feature/tickers/usecase"
)

const dateLayout = "2006-01-02"

// IngestUsecase is the write side of the tickers feature. Following Go
// convention: interfaces are defined by the consumer (handler), not the
// provider (usecase).
type IngestUsecase interface {
	TrackedSymbols(ctx context.Context) ([]string, error)
	AddTicker(ctx context.Context, symbol string, now time.Time) (int64, error)
}

// PointsUsecase is the read side of the tickers feature.
type PointsUsecase interface {
	GetPoints(ctx context.Context, symbol string, from, to *time.Time, limit int) ([]entity.TimeSeriesPoint, error)
}

// TickerHandler handles HTTP requests for tracked tickers and their
// time series.
type TickerHandler struct {
	ingest IngestUsecase
	points PointsUsecase
	now    func() time.Time
}

// NewTickerHandler creates a TickerHandler. now defaults to time.Now.
func NewTickerHandler(ingest IngestUsecase, points PointsUsecase, now func() time.Time) *TickerHandler {
	if now == nil {
		now = time.Now
	}
	return &TickerHandler{ingest: ingest, points: points, now: now}
}

// List returns every tracked symbol.
func (h *TickerHandler) List(c *gin.Context) {
	symbols, err := h.ingest.TrackedSymbols(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if symbols == nil {
		symbols = []string{}
	}
	c.JSON(http.StatusOK, symbols)
}

// Add registers a new ticker and backfills its full history.
func (h *TickerHandler) Add(c *gin.Context) {
	var req dto.AddTickerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	added, err := h.ingest.AddTicker(c.Request.Context(), req.Symbol, h.now())
	switch {
	case errors.Is(err, usecase.ErrInvalidSymbol):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, usecase.ErrTickerExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, dto.AddTickerResponse{Symbol: req.Symbol, RecordsAdded: added})
}

// GetPoints returns a symbol's stored points in ascending date order.
// from, to and limit are optional query parameters.
func (h *TickerHandler) GetPoints(c *gin.Context) {
	from, ok := parseDateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := parseDateQuery(c, "to")
	if !ok {
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = n
	}

	points, err := h.points.GetPoints(c.Request.Context(), c.Param("symbol"), from, to, limit)
	if errors.Is(err, usecase.ErrInvalidSymbol) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]dto.PointItem, 0, len(points))
	for _, p := range points {
		out = append(out, dto.PointItem{
			Date:          p.Date.Format(dateLayout),
			Open:          p.Open,
			High:          p.High,
			Low:           p.Low,
			Close:         p.Close,
			Change:        p.Change,
			ChangePercent: p.ChangePercent,
			Volume:        p.Volume,
		})
	}
	c.JSON(http.StatusOK, out)
}

// parseDateQuery reads an optional YYYY-MM-DD query parameter. On a
// malformed value it writes a 400 response and reports false.
func parseDateQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	d, err := time.Parse(dateLayout, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name + " date, want YYYY-MM-DD"})
		return nil, false
	}
	return &d, true
}
