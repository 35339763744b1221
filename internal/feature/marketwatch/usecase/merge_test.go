package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"psx_backend/internal/feature/marketwatch/domain/entity"
)

func findUnified(t *testing.T, merged []entity.UnifiedEntity, symbol string) entity.UnifiedEntity {
	t.Helper()
	for _, u := range merged {
		if u.Symbol == symbol {
			return u
		}
	}
	t.Fatalf("symbol %s not in merged output", symbol)
	return entity.UnifiedEntity{}
}

func TestMerge_SnapshotListingsDefaulters(t *testing.T) {
	snapshot := []entity.SnapshotRecord{
		{Symbol: "AAA", Sector: "BANKS", ListedIn: "KSE100", Current: 50.5, ChangePercent: 1.2, Volume: 9000},
	}
	listings := []entity.ListingRecord{
		{Symbol: "AAA", Name: "Alpha Ltd", Sector: "BANKS", Shares: 1000, FreeFloat: 600},
		{Symbol: "BBB", Name: "Beta Ltd", Sector: "CEMENT", Shares: 2000, FreeFloat: 900, ListedIn: []string{"ALLSHR"}},
	}
	defaulters := []entity.DefaulterRecord{
		{Symbol: "BBB", Name: "Beta Ltd", Sector: "CEMENT", DefaultingClause: "C1", Shares: 2000, FreeFloat: 900},
	}

	merged := Merge(snapshot, listings, defaulters)
	require.Len(t, merged, 2)

	aaa := findUnified(t, merged, "AAA")
	assert.False(t, aaa.Defaulter)
	assert.Equal(t, "Alpha Ltd", aaa.Name)
	require.NotNil(t, aaa.Current)
	assert.Equal(t, 50.5, *aaa.Current)

	bbb := findUnified(t, merged, "BBB")
	assert.True(t, bbb.Defaulter)
	assert.Equal(t, "C1", bbb.DefaultingClause)
	assert.Nil(t, bbb.Current, "symbol without a snapshot keeps live fields unset, not zero")
	assert.Nil(t, bbb.ChangePercent)
	assert.Nil(t, bbb.Volume)
}

func TestMerge_DefaulterStatusAlwaysWins(t *testing.T) {
	// The symbol appears in both listings and defaulters; the listings
	// fold sets the flag from membership, the defaulters fold must still
	// own the final clause and status.
	listings := []entity.ListingRecord{
		{Symbol: "XYZ", Name: "Xyz Ltd", Sector: "POWER", Shares: 500, FreeFloat: 100},
	}
	defaulters := []entity.DefaulterRecord{
		{Symbol: "XYZ", Name: "Xyz Ltd", Sector: "POWER", DefaultingClause: "5(a)", Shares: 500, FreeFloat: 100},
	}

	merged := Merge(nil, listings, defaulters)
	require.Len(t, merged, 1)
	assert.True(t, merged[0].Defaulter)
	assert.Equal(t, "5(a)", merged[0].DefaultingClause)
}

func TestMerge_DefaulterOnlySymbolIsIncluded(t *testing.T) {
	defaulters := []entity.DefaulterRecord{
		{Symbol: "DDD", Name: "Delta Ltd", Sector: "SUGAR", DefaultingClause: "C9",
			Shares: 300, FreeFloat: 50, ListedIn: []string{"ALLSHR"}},
	}

	merged := Merge(nil, nil, defaulters)
	require.Len(t, merged, 1)

	d := merged[0]
	assert.True(t, d.Defaulter)
	assert.Equal(t, "SUGAR", d.Sector)
	assert.Equal(t, []string{"ALLSHR"}, d.ListedIn)
	assert.Nil(t, d.Current)
}

func TestMerge_GroupsExplodedSnapshotRows(t *testing.T) {
	snapshot := []entity.SnapshotRecord{
		{Symbol: "AAA", Sector: "BANKS", ListedIn: "KSE100", Current: 50},
		{Symbol: "AAA", Sector: "BANKS", ListedIn: "KSE30", Current: 50},
		{Symbol: "AAA", Sector: "BANKS", ListedIn: "KSE100", Current: 50},
	}

	merged := Merge(snapshot, nil, nil)
	require.Len(t, merged, 1)
	assert.ElementsMatch(t, []string{"KSE100", "KSE30"}, merged[0].ListedIn)
}

func TestMerge_Empty(t *testing.T) {
	assert.Empty(t, Merge(nil, nil, nil))
}
