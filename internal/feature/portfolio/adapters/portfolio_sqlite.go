// Package adapters provides the persistence implementation for the
// portfolio feature.
package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	"psx_backend/internal/feature/portfolio/domain/entity"
	"psx_backend/internal/feature/portfolio/usecase"
)

// PortfolioModel is the GORM model for a portfolio. The symbol list is
// stored as a JSON array in a text column to keep the ordering.
type PortfolioModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:128;not null;uniqueIndex"`
	Symbols   string `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PortfolioModel) TableName() string {
	return "portfolios"
}

type portfolioSQLiteRepository struct {
	db *gorm.DB
}

var _ usecase.PortfolioRepository = (*portfolioSQLiteRepository)(nil)

// NewPortfolioSQLiteRepository creates the portfolio repository backed
// by the given GORM connection.
func NewPortfolioSQLiteRepository(db *gorm.DB) *portfolioSQLiteRepository {
	return &portfolioSQLiteRepository{db: db}
}

func (r *portfolioSQLiteRepository) Create(ctx context.Context, p *entity.Portfolio) error {
	m, err := toPortfolioModel(p)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	p.ID = m.ID
	return nil
}

func (r *portfolioSQLiteRepository) FindAll(ctx context.Context) ([]entity.Portfolio, error) {
	var models []PortfolioModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Portfolio, 0, len(models))
	for _, m := range models {
		p, err := toPortfolioEntity(m)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *portfolioSQLiteRepository) FindByName(ctx context.Context, name string) (*entity.Portfolio, error) {
	var m PortfolioModel
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p, err := toPortfolioEntity(m)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *portfolioSQLiteRepository) FindByID(ctx context.Context, id uint) (*entity.Portfolio, error) {
	var m PortfolioModel
	err := r.db.WithContext(ctx).First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p, err := toPortfolioEntity(m)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *portfolioSQLiteRepository) UpdateSymbols(ctx context.Context, id uint, symbols []string) error {
	raw, err := json.Marshal(symbols)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Model(&PortfolioModel{}).
		Where("id = ?", id).
		Update("symbols", string(raw)).Error
}

func (r *portfolioSQLiteRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&PortfolioModel{}, id).Error
}

func toPortfolioModel(p *entity.Portfolio) (PortfolioModel, error) {
	raw, err := json.Marshal(p.Symbols)
	if err != nil {
		return PortfolioModel{}, err
	}
	return PortfolioModel{ID: p.ID, Name: p.Name, Symbols: string(raw)}, nil
}

func toPortfolioEntity(m PortfolioModel) (entity.Portfolio, error) {
	var symbols []string
	if err := json.Unmarshal([]byte(m.Symbols), &symbols); err != nil {
		return entity.Portfolio{}, err
	}
	return entity.Portfolio{ID: m.ID, Name: m.Name, Symbols: symbols}, nil
}
