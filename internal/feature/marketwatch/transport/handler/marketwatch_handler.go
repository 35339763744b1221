// Package handler exposes the market-watch feature over HTTP.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"psx_backend/internal/feature/marketwatch/domain/entity"
	"psx_backend/internal/feature/marketwatch/transport/http/dto"
)

// MarketWatchUsecase is the read surface of the market-watch feature.
// Following Go convention: interfaces are defined by the consumer
// (handler), not the provider (usecase).
type MarketWatchUsecase interface {
	ListMarketWatch(ctx context.Context) ([]entity.UnifiedEntity, error)
	SearchConstituents(ctx context.Context, query string) ([]entity.Constituent, error)
}

// MarketWatchHandler handles HTTP requests for the merged market view
// and the index-constituents directory.
type MarketWatchHandler struct {
	uc MarketWatchUsecase
}

// NewMarketWatchHandler creates a MarketWatchHandler.
func NewMarketWatchHandler(uc MarketWatchUsecase) *MarketWatchHandler {
	return &MarketWatchHandler{uc: uc}
}

// List returns the stored merged market view.
func (h *MarketWatchHandler) List(c *gin.Context) {
	entities, err := h.uc.ListMarketWatch(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]dto.MarketWatchItem, 0, len(entities))
	for _, e := range entities {
		out = append(out, toMarketWatchItem(e))
	}
	c.JSON(http.StatusOK, out)
}

// SearchConstituents finds index constituents by exact symbol or
// company-name substring via the q query parameter.
func (h *MarketWatchHandler) SearchConstituents(c *gin.Context) {
	rows, err := h.uc.SearchConstituents(c.Request.Context(), c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]dto.ConstituentItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ConstituentItem{
			ISIN:          r.ISIN,
			Symbol:        r.Symbol,
			Company:       r.Company,
			Price:         r.Price,
			IdxWeight:     r.IdxWeight,
			FFBasedShares: r.FFBasedShares,
			FFBasedMcap:   r.FFBasedMcap,
			OrdShares:     r.OrdShares,
			OrdSharesMcap: r.OrdSharesMcap,
			Volume:        r.Volume,
		})
	}
	c.JSON(http.StatusOK, out)
}

func toMarketWatchItem(e entity.UnifiedEntity) dto.MarketWatchItem {
	listedIn := e.ListedIn
	if listedIn == nil {
		listedIn = []string{}
	}
	return dto.MarketWatchItem{
		Symbol:           e.Symbol,
		Name:             e.Name,
		Sector:           e.Sector,
		ListedIn:         listedIn,
		Defaulter:        e.Defaulter,
		DefaultingClause: e.DefaultingClause,
		Shares:           e.Shares,
		FreeFloat:        e.FreeFloat,
		LDCP:             e.LDCP,
		Open:             e.Open,
		High:             e.High,
		Low:              e.Low,
		Current:          e.Current,
		Change:           e.Change,
		ChangePercent:    e.ChangePercent,
		Volume:           e.Volume,
	}
}
