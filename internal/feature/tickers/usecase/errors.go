// Package usecase implements the synchronization logic for per-ticker
// price history.
package usecase

import "errors"

var (
	// ErrTickerExists is returned when adding a symbol that already has
	// stored history.
	ErrTickerExists = errors.New("ticker already tracked")

	// ErrInvalidSymbol is returned for an empty or malformed ticker symbol.
	ErrInvalidSymbol = errors.New("invalid ticker symbol")
)
