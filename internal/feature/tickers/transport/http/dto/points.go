// Package dto defines data transfer objects for the tickers HTTP API.
package dto

// AddTickerRequest is the body of a ticker registration request.
type AddTickerRequest struct {
	Symbol string `json:"symbol" binding:"required"`
}

// AddTickerResponse reports the outcome of a ticker registration.
type AddTickerResponse struct {
	Symbol       string `json:"symbol"`
	RecordsAdded int64  `json:"records_added"`
}

// PointItem is one trading day's record in the API response.
type PointItem struct {
	Date          string  `json:"date"`
	Open          float64 `json:"open"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Close         float64 `json:"close"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
	Volume        int64   `json:"volume"`
}
