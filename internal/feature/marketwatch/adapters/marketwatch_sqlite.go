// Package adapters provides persistence and upstream-source
// implementations for the market-watch feature.
package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"

	"psx_backend/internal/feature/marketwatch/domain/entity"
	"psx_backend/internal/feature/marketwatch/usecase"
)

// MarketWatchModel is one row of the merged view, exploded per index
// membership. Live-quote columns are nullable: NULL records that the
// symbol was absent from the snapshot source.
type MarketWatchModel struct {
	ID               uint   `gorm:"primaryKey"`
	Symbol           string `gorm:"size:32;not null;uniqueIndex:idx_watch_symbol_sector_listed"`
	Sector           string `gorm:"size:64;not null;uniqueIndex:idx_watch_symbol_sector_listed"`
	ListedIn         string `gorm:"size:32;not null;uniqueIndex:idx_watch_symbol_sector_listed"`
	Name             string `gorm:"size:128"`
	Defaulter        bool   `gorm:"not null"`
	DefaultingClause string `gorm:"size:64"`
	Shares           int64
	FreeFloat        int64
	LDCP             *float64
	Open             *float64
	High             *float64
	Low              *float64
	Current          *float64
	Change           *float64
	ChangePercent    *float64
	Volume           *int64
	UpdatedAt        time.Time
}

func (MarketWatchModel) TableName() string {
	return "market_watch"
}

type marketWatchSQLiteRepository struct {
	db *gorm.DB
}

var _ usecase.MarketWatchRepository = (*marketWatchSQLiteRepository)(nil)

// NewMarketWatchSQLiteRepository creates the market-watch repository
// backed by the given GORM connection.
func NewMarketWatchSQLiteRepository(db *gorm.DB) *marketWatchSQLiteRepository {
	return &marketWatchSQLiteRepository{db: db}
}

// ReplaceAll swaps the stored view for the given merged entities inside
// one transaction, so readers never observe a half-written snapshot.
func (r *marketWatchSQLiteRepository) ReplaceAll(ctx context.Context, entities []entity.UnifiedEntity) (int64, error) {
	models := make([]MarketWatchModel, 0, len(entities))
	for _, u := range entities {
		models = append(models, explodeUnified(u)...)
	}

	var written int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&MarketWatchModel{}).Error; err != nil {
			return err
		}
		if len(models) == 0 {
			return nil
		}
		res := tx.Create(&models)
		if res.Error != nil {
			return res.Error
		}
		written = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return written, nil
}

// List returns the merged view grouped back into one entity per symbol,
// ordered by symbol.
func (r *marketWatchSQLiteRepository) List(ctx context.Context) ([]entity.UnifiedEntity, error) {
	var models []MarketWatchModel
	err := r.db.WithContext(ctx).
		Order("symbol ASC, listed_in ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	var out []entity.UnifiedEntity
	index := make(map[string]int)
	for _, m := range models {
		if i, ok := index[m.Symbol]; ok {
			if m.ListedIn != "" {
				out[i].ListedIn = append(out[i].ListedIn, m.ListedIn)
			}
			continue
		}
		index[m.Symbol] = len(out)
		out = append(out, toUnifiedEntity(m))
	}
	return out, nil
}

func explodeUnified(u entity.UnifiedEntity) []MarketWatchModel {
	listedIn := u.ListedIn
	if len(listedIn) == 0 {
		listedIn = []string{""}
	}
	rows := make([]MarketWatchModel, 0, len(listedIn))
	for _, idx := range listedIn {
		rows = append(rows, MarketWatchModel{
			Symbol:           u.Symbol,
			Sector:           u.Sector,
			ListedIn:         idx,
			Name:             u.Name,
			Defaulter:        u.Defaulter,
			DefaultingClause: u.DefaultingClause,
			Shares:           u.Shares,
			FreeFloat:        u.FreeFloat,
			LDCP:             u.LDCP,
			Open:             u.Open,
			High:             u.High,
			Low:              u.Low,
			Current:          u.Current,
			Change:           u.Change,
			ChangePercent:    u.ChangePercent,
			Volume:           u.Volume,
		})
	}
	return rows
}

func toUnifiedEntity(m MarketWatchModel) entity.UnifiedEntity {
	u := entity.UnifiedEntity{
		Symbol:           m.Symbol,
		Name:             m.Name,
		Sector:           m.Sector,
		Defaulter:        m.Defaulter,
		DefaultingClause: m.DefaultingClause,
		Shares:           m.Shares,
		FreeFloat:        m.FreeFloat,
		LDCP:             m.LDCP,
		Open:             m.Open,
		High:             m.High,
		Low:              m.Low,
		Current:          m.Current,
		Change:           m.Change,
		ChangePercent:    m.ChangePercent,
		Volume:           m.Volume,
	}
	if m.ListedIn != "" {
		u.ListedIn = []string{m.ListedIn}
	}
	return u
}
