// Package usecase implements reconciliation and refresh logic for the
// market-watch feature.
package usecase

import (
	"slices"

	"psx_backend/internal/feature/marketwatch/domain/entity"
)

// Merge folds the three source collections into one record per symbol.
//
// The fold order is load-bearing: snapshot seeds the map, listings add
// company fundamentals, and defaulters run last so that defaulter status
// and the defaulting clause always win over whatever the listings fold
// set. Symbols absent from the snapshot keep their live-quote fields nil
// rather than zero.
//
// Output order follows map iteration; callers needing stable order must
// sort.
func Merge(snapshot []entity.SnapshotRecord, listings []entity.ListingRecord, defaulters []entity.DefaulterRecord) []entity.UnifiedEntity {
	bySymbol := make(map[string]*entity.UnifiedEntity)

	for _, row := range snapshot {
		u, ok := bySymbol[row.Symbol]
		if !ok {
			u = &entity.UnifiedEntity{Symbol: row.Symbol, Sector: row.Sector}
			bySymbol[row.Symbol] = u
		}
		if row.ListedIn != "" && !slices.Contains(u.ListedIn, row.ListedIn) {
			u.ListedIn = append(u.ListedIn, row.ListedIn)
		}
		u.LDCP = ptr(row.LDCP)
		u.Open = ptr(row.Open)
		u.High = ptr(row.High)
		u.Low = ptr(row.Low)
		u.Current = ptr(row.Current)
		u.Change = ptr(row.Change)
		u.ChangePercent = ptr(row.ChangePercent)
		u.Volume = ptr(row.Volume)
	}

	defaulterSymbols := make(map[string]bool, len(defaulters))
	for _, d := range defaulters {
		defaulterSymbols[d.Symbol] = true
	}

	for _, l := range listings {
		u, ok := bySymbol[l.Symbol]
		if !ok {
			u = &entity.UnifiedEntity{
				Symbol:   l.Symbol,
				Sector:   l.Sector,
				ListedIn: slices.Clone(l.ListedIn),
			}
			bySymbol[l.Symbol] = u
		}
		u.Name = l.Name
		u.Shares = l.Shares
		u.FreeFloat = l.FreeFloat
		u.Defaulter = defaulterSymbols[l.Symbol]
	}

	for _, d := range defaulters {
		u, ok := bySymbol[d.Symbol]
		if !ok {
			u = &entity.UnifiedEntity{
				Symbol:   d.Symbol,
				Sector:   d.Sector,
				ListedIn: slices.Clone(d.ListedIn),
			}
			bySymbol[d.Symbol] = u
		}
		u.Defaulter = true
		u.DefaultingClause = d.DefaultingClause
		u.Name = d.Name
		u.Shares = d.Shares
		u.FreeFloat = d.FreeFloat
	}

	out := make([]entity.UnifiedEntity, 0, len(bySymbol))
	for _, u := range bySymbol {
		out = append(out, *u)
	}
	return out
}

func ptr[T any](v T) *T {
	return &v
}
