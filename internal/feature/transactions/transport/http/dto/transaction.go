// Package dto defines data transfer objects for the off-market
// transactions HTTP API.
package dto

// TransactionItem is one off-market trade in the API response. Buyer and
// seller names come from the member directory and are empty for unknown
// codes.
type TransactionItem struct {
	Date           string  `json:"date"`
	SettlementDate string  `json:"settlement_date"`
	SymbolCode     string  `json:"symbol_code"`
	Company        string  `json:"company"`
	BuyerCode      string  `json:"buyer_code"`
	BuyerName      string  `json:"buyer_name,omitempty"`
	SellerCode     string  `json:"seller_code"`
	SellerName     string  `json:"seller_name,omitempty"`
	Turnover       int64   `json:"turnover"`
	Rate           float64 `json:"rate"`
	Value          float64 `json:"value"`
	Type           string  `json:"type"`
}
