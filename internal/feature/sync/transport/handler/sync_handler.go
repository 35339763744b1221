// Package handler exposes the synchronization run over HTTP.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"psx_backend/internal/feature/sync/transport/http/dto"
	"psx_backend/internal/feature/sync/usecase"
)

const dateLayout = "2006-01-02"

// SyncUsecase runs one synchronization pass. Following Go convention:
// interfaces are defined by the consumer (handler), not the provider
// (usecase).
type SyncUsecase interface {
	Synchronize(ctx context.Context, targetDate time.Time, portfolioName string, progress usecase.ProgressFunc) usecase.Summary
}

// SyncHandler handles HTTP requests that trigger a synchronization run.
// Runs are synchronous: the response carries the full per-stage summary.
type SyncHandler struct {
	uc  SyncUsecase
	now func() time.Time
}

// NewSyncHandler creates a SyncHandler. now defaults to time.Now.
func NewSyncHandler(uc SyncUsecase, now func() time.Time) *SyncHandler {
	if now == nil {
		now = time.Now
	}
	return &SyncHandler{uc: uc, now: now}
}

// Run triggers a synchronization run and returns its summary. The body
// is optional; an empty body syncs every tracked symbol for today.
func (h *SyncHandler) Run(c *gin.Context) {
	var req dto.SyncRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	targetDate := h.now().Truncate(24 * time.Hour)
	if req.Date != "" {
		d, err := time.Parse(dateLayout, req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, want YYYY-MM-DD"})
			return
		}
		targetDate = d
	}

	sum := h.uc.Synchronize(c.Request.Context(), targetDate, req.Portfolio, nil)
	c.JSON(http.StatusOK, sum)
}
