package usecase

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"psx_backend/internal/feature/portfolio/domain/entity"
)

// PortfolioRepository abstracts portfolio persistence.
type PortfolioRepository interface {
	Create(ctx context.Context, p *entity.Portfolio) error
	FindAll(ctx context.Context) ([]entity.Portfolio, error)
	// FindByName returns nil when no portfolio has that name.
	FindByName(ctx context.Context, name string) (*entity.Portfolio, error)
	FindByID(ctx context.Context, id uint) (*entity.Portfolio, error)
	UpdateSymbols(ctx context.Context, id uint, symbols []string) error
	Delete(ctx context.Context, id uint) error
}

// PortfolioUsecase manages named symbol sets.
type PortfolioUsecase struct {
	repo PortfolioRepository
	log  *slog.Logger
}

// NewPortfolioUsecase creates a PortfolioUsecase. A nil logger disables
// logging.
func NewPortfolioUsecase(repo PortfolioRepository, log *slog.Logger) *PortfolioUsecase {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &PortfolioUsecase{repo: repo, log: log}
}

// Create stores a new portfolio. The name must be unused and at least
// one symbol is required.
func (pu *PortfolioUsecase) Create(ctx context.Context, name string, symbols []string) (*entity.Portfolio, error) {
	name = strings.TrimSpace(name)
	symbols = normalizeSymbols(symbols)
	if name == "" || len(symbols) == 0 {
		return nil, ErrInvalidPortfolio
	}

	existing, err := pu.repo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrPortfolioExists
	}

	p := &entity.Portfolio{Name: name, Symbols: symbols}
	if err := pu.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	pu.log.Info("portfolio created", "name", name, "symbols", len(symbols))
	return p, nil
}

// List returns all portfolios.
func (pu *PortfolioUsecase) List(ctx context.Context) ([]entity.Portfolio, error) {
	return pu.repo.FindAll(ctx)
}

// GetByName returns one portfolio by its unique name.
func (pu *PortfolioUsecase) GetByName(ctx context.Context, name string) (*entity.Portfolio, error) {
	p, err := pu.repo.FindByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPortfolioNotFound
	}
	return p, nil
}

// UpdateSymbols replaces a portfolio's symbol set.
func (pu *PortfolioUsecase) UpdateSymbols(ctx context.Context, id uint, symbols []string) (*entity.Portfolio, error) {
	symbols = normalizeSymbols(symbols)
	if len(symbols) == 0 {
		return nil, ErrInvalidPortfolio
	}

	p, err := pu.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPortfolioNotFound
	}

	if err := pu.repo.UpdateSymbols(ctx, id, symbols); err != nil {
		return nil, err
	}
	p.Symbols = symbols
	pu.log.Info("portfolio updated", "name", p.Name, "symbols", len(symbols))
	return p, nil
}

// Delete removes a portfolio.
func (pu *PortfolioUsecase) Delete(ctx context.Context, id uint) error {
	p, err := pu.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrPortfolioNotFound
	}
	if err := pu.repo.Delete(ctx, id); err != nil {
		return err
	}
	pu.log.Info("portfolio deleted", "name", p.Name)
	return nil
}

// normalizeSymbols uppercases, trims and deduplicates while preserving
// the caller's order.
func normalizeSymbols(symbols []string) []string {
	seen := make(map[string]bool, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
