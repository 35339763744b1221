// Package entity defines the domain models for the market-watch feature.
package entity

// SnapshotRecord is one live market-watch row. Rows arrive exploded per
// index membership, so a symbol listed in three indices yields three
// records differing only in ListedIn.
type SnapshotRecord struct {
	Symbol        string
	Sector        string
	ListedIn      string
	LDCP          float64 // Last day closing price
	Open          float64
	High          float64
	Low           float64
	Current       float64
	Change        float64
	ChangePercent float64
	Volume        int64
}

// ListingRecord is one row of the regular-counter listings table.
type ListingRecord struct {
	Symbol       string
	Name         string
	Sector       string
	ClearingType string
	Shares       int64
	FreeFloat    int64
	ListedIn     []string
}

// DefaulterRecord is one row of the defaulting-companies table. Sourced
// independently of SnapshotRecord; symbols may appear in one, the other,
// or both.
type DefaulterRecord struct {
	Symbol           string
	Name             string
	Sector           string
	DefaultingClause string
	ClearingType     string
	Shares           int64
	FreeFloat        int64
	ListedIn         []string
}

// UnifiedEntity is the merged per-symbol view over the three sources.
// Live-quote fields are pointers: nil means the symbol was absent from
// the snapshot source, which is different from a quoted zero.
type UnifiedEntity struct {
	Symbol           string
	Name             string
	Sector           string
	ListedIn         []string
	Defaulter        bool
	DefaultingClause string
	Shares           int64
	FreeFloat        int64

	LDCP          *float64
	Open          *float64
	High          *float64
	Low           *float64
	Current       *float64
	Change        *float64
	ChangePercent *float64
	Volume        *int64
}

// Constituent is one instrument of the published index-composition file,
// keyed by ISIN.
type Constituent struct {
	ISIN          string
	Symbol        string
	Company       string
	Price         float64
	IdxWeight     float64
	FFBasedShares int64
	FFBasedMcap   int64
	OrdShares     int64
	OrdSharesMcap int64
	Volume        int64
}
