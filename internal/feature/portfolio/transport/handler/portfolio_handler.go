// Package handler exposes portfolio management over HTTP.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"psx_backend/internal/feature/portfolio/domain/entity"
	"psx_backend/internal/feature/portfolio/transport/http/dto"
	"psx_backend/internal/feature/portfolio/usecase"
)

// PortfolioUsecase manages named symbol sets. Following Go convention:
// interfaces are defined by the consumer (handler), not the provider
// (usecase).
type PortfolioUsecase interface {
	Create(ctx context.Context, name string, symbols []string) (*entity.Portfolio, error)
	List(ctx context.Context) ([]entity.Portfolio, error)
	GetByName(ctx context.Context, name string) (*entity.Portfolio, error)
	UpdateSymbols(ctx context.Context, id uint, symbols []string) (*entity.Portfolio, error)
	Delete(ctx context.Context, id uint) error
}

// PortfolioHandler handles HTTP requests for portfolios. Portfolios are
// addressed by their unique name.
type PortfolioHandler struct {
	uc PortfolioUsecase
}

// NewPortfolioHandler creates a PortfolioHandler.
func NewPortfolioHandler(uc PortfolioUsecase) *PortfolioHandler {
	return &PortfolioHandler{uc: uc}
}

// Create stores a new portfolio.
func (h *PortfolioHandler) Create(c *gin.Context) {
	var req dto.CreatePortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.uc.Create(c.Request.Context(), req.Name, req.Symbols)
	switch {
	case errors.Is(err, usecase.ErrInvalidPortfolio):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, usecase.ErrPortfolioExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, toPortfolioItem(p))
}

// List returns all portfolios.
func (h *PortfolioHandler) List(c *gin.Context) {
	all, err := h.uc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]dto.PortfolioItem, 0, len(all))
	for i := range all {
		out = append(out, toPortfolioItem(&all[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Get returns one portfolio by name.
func (h *PortfolioHandler) Get(c *gin.Context) {
	p, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toPortfolioItem(p))
}

// UpdateSymbols replaces the symbol set of the named portfolio.
func (h *PortfolioHandler) UpdateSymbols(c *gin.Context) {
	var req dto.UpdatePortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, ok := h.lookup(c)
	if !ok {
		return
	}

	updated, err := h.uc.UpdateSymbols(c.Request.Context(), p.ID, req.Symbols)
	switch {
	case errors.Is(err, usecase.ErrInvalidPortfolio):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, usecase.ErrPortfolioNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toPortfolioItem(updated))
}

// Delete removes the named portfolio.
func (h *PortfolioHandler) Delete(c *gin.Context) {
	p, ok := h.lookup(c)
	if !ok {
		return
	}
	if err := h.uc.Delete(c.Request.Context(), p.ID); err != nil {
		if errors.Is(err, usecase.ErrPortfolioNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// lookup resolves the :name route parameter to a portfolio, writing the
// error response itself on failure.
func (h *PortfolioHandler) lookup(c *gin.Context) (*entity.Portfolio, bool) {
	p, err := h.uc.GetByName(c.Request.Context(), c.Param("name"))
	if errors.Is(err, usecase.ErrPortfolioNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return nil, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, false
	}
	return p, true
}

func toPortfolioItem(p *entity.Portfolio) dto.PortfolioItem {
	symbols := p.Symbols
	if symbols == nil {
		symbols = []string{}
	}
	return dto.PortfolioItem{ID: p.ID, Name: p.Name, Symbols: symbols}
}
