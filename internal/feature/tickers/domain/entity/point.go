// Package entity defines the domain models for the tickers feature.
package entity

import "time"

// TimeSeriesPoint is one trading day's record for a ticker symbol.
// At most one point exists per (symbol, date).
type TimeSeriesPoint struct {
	Symbol        string    // Ticker symbol (e.g., "MCB", "OGDC")
	Date          time.Time // Calendar day, midnight UTC
	Open          float64
	High          float64
	Low           float64
	Close         float64
	Change        float64 // Absolute change versus the previous close
	ChangePercent float64
	Volume        int64 // Shares traded; never negative
}

// RawPoint is a price-history record as delivered by a source adapter.
// Adapters map every known upstream field-name variant onto this one
// canonical shape; values are still unvalidated strings at this point.
// An empty field means the upstream record did not carry it.
type RawPoint struct {
	Date          string
	Open          string
	High          string
	Low           string
	Close         string
	Change        string
	ChangePercent string
	Volume        string
}
