// Package dto defines data transfer objects for the market-watch HTTP
// API.
package dto

// MarketWatchItem is one merged instrument row in the API response.
// Live-quote fields are nullable: null means the instrument was absent
// from the live snapshot, which is different from a quoted zero.
type MarketWatchItem struct {
	Symbol           string   `json:"symbol"`
	Name             string   `json:"name"`
	Sector           string   `json:"sector"`
	ListedIn         []string `json:"listed_in"`
	Defaulter        bool     `json:"defaulter"`
	DefaultingClause string   `json:"defaulting_clause,omitempty"`
	Shares           int64    `json:"shares"`
	FreeFloat        int64    `json:"free_float"`

	LDCP          *float64 `json:"ldcp"`
	Open          *float64 `json:"open"`
	High          *float64 `json:"high"`
	Low           *float64 `json:"low"`
	Current       *float64 `json:"current"`
	Change        *float64 `json:"change"`
	ChangePercent *float64 `json:"change_percent"`
	Volume        *int64   `json:"volume"`
}

// ConstituentItem is one index constituent in the search response.
type ConstituentItem struct {
	ISIN          string  `json:"isin"`
	Symbol        string  `json:"symbol"`
	Company       string  `json:"company"`
	Price         float64 `json:"price"`
	IdxWeight     float64 `json:"idx_weight"`
	FFBasedShares int64   `json:"ff_based_shares"`
	FFBasedMcap   int64   `json:"ff_based_mcap"`
	OrdShares     int64   `json:"ord_shares"`
	OrdSharesMcap int64   `json:"ord_shares_mcap"`
	Volume        int64   `json:"volume"`
}
