// Package dto defines data transfer objects for the portfolio HTTP API.
package dto

// CreatePortfolioRequest is the body of a portfolio creation request.
type CreatePortfolioRequest struct {
	Name    string   `json:"name" binding:"required"`
	Symbols []string `json:"symbols" binding:"required"`
}

// UpdatePortfolioRequest is the body of a symbol-set replacement.
type UpdatePortfolioRequest struct {
	Symbols []string `json:"symbols" binding:"required"`
}

// PortfolioItem is one portfolio in the API response.
type PortfolioItem struct {
	ID      uint     `json:"id"`
	Name    string   `json:"name"`
	Symbols []string `json:"symbols"`
}
