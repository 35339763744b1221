// Package handler exposes off-market transactions over HTTP.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"psx_backend/internal/feature/transactions/adapters/psxdps"
	"psx_backend/internal/feature/transactions/domain/entity"
	"psx_backend/internal/feature/transactions/transport/http/dto"
)

const dateLayout = "2006-01-02"

// TransactionUsecase is the read surface of the transactions feature.
// Following Go convention: interfaces are defined by the consumer
// (handler), not the provider (usecase).
type TransactionUsecase interface {
	GetByDate(ctx context.Context, date time.Time) ([]entity.Transaction, error)
}

// TransactionHandler handles HTTP requests for stored off-market trades.
type TransactionHandler struct {
	uc TransactionUsecase
}

// NewTransactionHandler creates a TransactionHandler.
func NewTransactionHandler(uc TransactionUsecase) *TransactionHandler {
	return &TransactionHandler{uc: uc}
}

// GetByDate returns the stored trades for one settlement day, enriched
// with broker names from the member directory.
func (h *TransactionHandler) GetByDate(c *gin.Context) {
	date, err := time.Parse(dateLayout, c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, want YYYY-MM-DD"})
		return
	}

	txns, err := h.uc.GetByDate(c.Request.Context(), date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]dto.TransactionItem, 0, len(txns))
	for _, txn := range txns {
		out = append(out, dto.TransactionItem{
			Date:           txn.Date.Format(dateLayout),
			SettlementDate: txn.SettlementDate.Format(dateLayout),
			SymbolCode:     txn.SymbolCode,
			Company:        txn.Company,
			BuyerCode:      txn.BuyerCode,
			BuyerName:      psxdps.BrokerName(txn.BuyerCode),
			SellerCode:     txn.SellerCode,
			SellerName:     psxdps.BrokerName(txn.SellerCode),
			Turnover:       txn.Turnover,
			Rate:           txn.Rate,
			Value:          txn.Value,
			Type:           string(txn.Type),
		})
	}
	c.JSON(http.StatusOK, out)
}
