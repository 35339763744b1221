// Package adapters provides persistence and upstream-source
// implementations for the transactions feature.
package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"psx_backend/internal/feature/transactions/domain/entity"
	"psx_backend/internal/feature/transactions/usecase"
)

// TransactionModel is the GORM model for one off-market trade. The
// composite unique index carries the natural-key dedup.
type TransactionModel struct {
	ID             uint      `gorm:"primaryKey"`
	Date           time.Time `gorm:"not null;uniqueIndex:idx_txn_natural_key"`
	SymbolCode     string    `gorm:"size:32;not null;uniqueIndex:idx_txn_natural_key"`
	BuyerCode      string    `gorm:"size:8;not null;uniqueIndex:idx_txn_natural_key"`
	SellerCode     string    `gorm:"size:8;not null;uniqueIndex:idx_txn_natural_key"`
	SettlementDate time.Time
	Company        string `gorm:"size:128"`
	Turnover       int64
	Rate           float64
	Value          float64
	Type           string `gorm:"size:8;not null"`
	CreatedAt      time.Time
}

func (TransactionModel) TableName() string {
	return "off_market_transactions"
}

type transactionSQLiteRepository struct {
	db *gorm.DB
}

var _ usecase.TransactionRepository = (*transactionSQLiteRepository)(nil)

// NewTransactionSQLiteRepository creates the transactions repository
// backed by the given GORM connection.
func NewTransactionSQLiteRepository(db *gorm.DB) *transactionSQLiteRepository {
	return &transactionSQLiteRepository{db: db}
}

// InsertBatch inserts transactions, silently skipping rows whose natural
// key already exists, and returns the number of rows actually written.
func (r *transactionSQLiteRepository) InsertBatch(ctx context.Context, transactions []entity.Transaction) (int64, error) {
	if len(transactions) == 0 {
		return 0, nil
	}
	models := make([]TransactionModel, 0, len(transactions))
	for _, t := range transactions {
		models = append(models, toTransactionModel(t))
	}
	tx := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "date"}, {Name: "symbol_code"}, {Name: "buyer_code"}, {Name: "seller_code"},
			},
			DoNothing: true,
		}).
		Create(&models)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}

// FindByDate returns one trading day's transactions ordered by symbol.
func (r *transactionSQLiteRepository) FindByDate(ctx context.Context, date time.Time) ([]entity.Transaction, error) {
	var models []TransactionModel
	err := r.db.WithContext(ctx).
		Where("date = ?", normalizeDay(date)).
		Order("symbol_code ASC, buyer_code ASC, seller_code ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	out := make([]entity.Transaction, 0, len(models))
	for _, m := range models {
		out = append(out, toTransactionEntity(m))
	}
	return out, nil
}

func toTransactionModel(t entity.Transaction) TransactionModel {
	return TransactionModel{
		Date:           normalizeDay(t.Date),
		SettlementDate: normalizeDay(t.SettlementDate),
		SymbolCode:     t.SymbolCode,
		Company:        t.Company,
		BuyerCode:      t.BuyerCode,
		SellerCode:     t.SellerCode,
		Turnover:       t.Turnover,
		Rate:           t.Rate,
		Value:          t.Value,
		Type:           string(t.Type),
	}
}

func toTransactionEntity(m TransactionModel) entity.Transaction {
	return entity.Transaction{
		Date:           normalizeDay(m.Date),
		SettlementDate: normalizeDay(m.SettlementDate),
		SymbolCode:     m.SymbolCode,
		Company:        m.Company,
		BuyerCode:      m.BuyerCode,
		SellerCode:     m.SellerCode,
		Turnover:       m.Turnover,
		Rate:           m.Rate,
		Value:          m.Value,
		Type:           entity.TransactionType(m.Type),
	}
}

func normalizeDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
