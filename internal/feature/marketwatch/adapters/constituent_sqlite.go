package adapters

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"psx_backend/internal/feature/marketwatch/domain/entity"
	"psx_backend/internal/feature/marketwatch/usecase"
)

// ConstituentModel is one instrument of the index-composition file.
type ConstituentModel struct {
	ISIN          string `gorm:"primaryKey;size:16"`
	Symbol        string `gorm:"size:32;not null;index"`
	Company       string `gorm:"size:128;not null"`
	Price         float64
	IdxWeight     float64
	FFBasedShares int64
	FFBasedMcap   int64
	OrdShares     int64
	OrdSharesMcap int64
	Volume        int64
	UpdatedAt     time.Time
}

func (ConstituentModel) TableName() string {
	return "index_constituents"
}

type constituentSQLiteRepository struct {
	db *gorm.DB
}

var _ usecase.ConstituentRepository = (*constituentSQLiteRepository)(nil)

// NewConstituentSQLiteRepository creates the constituents repository
// backed by the given GORM connection.
func NewConstituentSQLiteRepository(db *gorm.DB) *constituentSQLiteRepository {
	return &constituentSQLiteRepository{db: db}
}

// ReplaceAll swaps the constituents directory for the given rows inside
// one transaction.
func (r *constituentSQLiteRepository) ReplaceAll(ctx context.Context, constituents []entity.Constituent) (int64, error) {
	models := make([]ConstituentModel, 0, len(constituents))
	for _, c := range constituents {
		models = append(models, ConstituentModel{
			ISIN:          c.ISIN,
			Symbol:        c.Symbol,
			Company:       c.Company,
			Price:         c.Price,
			IdxWeight:     c.IdxWeight,
			FFBasedShares: c.FFBasedShares,
			FFBasedMcap:   c.FFBasedMcap,
			OrdShares:     c.OrdShares,
			OrdSharesMcap: c.OrdSharesMcap,
			Volume:        c.Volume,
		})
	}

	var written int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&ConstituentModel{}).Error; err != nil {
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

// Search finds constituents by exact symbol or company-name substring.
func (r *constituentSQLiteRepository) Search(ctx context.Context, query string) ([]entity.Constituent, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	var models []ConstituentModel
	err := r.db.WithContext(ctx).
		Where("symbol = ? OR company LIKE ?", strings.ToUpper(query), "%"+query+"%").
		Order("symbol ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	out := make([]entity.Constituent, 0, len(models))
	for _, m := range models {
		out = append(out, entity.Constituent{
			ISIN:          m.ISIN,
			Symbol:        m.Symbol,
			Company:       m.Company,
			Price:         m.Price,
			IdxWeight:     m.IdxWeight,
			FFBasedShares: m.FFBasedShares,
			FFBasedMcap:   m.FFBasedMcap,
			OrdShares:     m.OrdShares,
			OrdSharesMcap: m.OrdSharesMcap,
			Volume:        m.Volume,
		})
	}
	return out, nil
}
