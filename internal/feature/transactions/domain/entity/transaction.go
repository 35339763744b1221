// Package entity defines the domain models for off-market transactions.
package entity

import "time"

// TransactionType distinguishes the two sections of the settlement feed.
type TransactionType string

const (
	BrokerToBroker           TransactionType = "B2B"
	InstitutionToInstitution TransactionType = "I2I"
)

// Transaction is one off-market trade from the exchange's daily
// settlement feed. The natural key is (date, symbol code, buyer code,
// seller code); buyer and seller codes are three-digit member codes,
// zero-padded.
type Transaction struct {
	Date           time.Time
	SettlementDate time.Time
	SymbolCode     string
	Company        string
	BuyerCode      string
	SellerCode     string
	Turnover       int64
	Rate           float64
	Value          float64
	Type           TransactionType
}
