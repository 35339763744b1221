// Package usecase implements portfolio management.
package usecase

import "errors"

var (
	// ErrPortfolioExists is returned when creating a portfolio whose name
	// is already taken.
	ErrPortfolioExists = errors.New("portfolio already exists")

	// ErrPortfolioNotFound is returned when a portfolio cannot be located.
	ErrPortfolioNotFound = errors.New("portfolio not found")

	// ErrInvalidPortfolio is returned for an empty name or empty symbol set.
	ErrInvalidPortfolio = errors.New("invalid portfolio")
)
