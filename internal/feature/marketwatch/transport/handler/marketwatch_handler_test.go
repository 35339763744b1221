package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"psx_backend/internal/feature/marketwatch/domain/entity"
)

type mockMarketWatchUsecase struct {
	listFunc   func(ctx context.Context) ([]entity.UnifiedEntity, error)
	searchFunc func(ctx context.Context, query string) ([]entity.Constituent, error)
}

func (m *mockMarketWatchUsecase) ListMarketWatch(ctx context.Context) ([]entity.UnifiedEntity, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockMarketWatchUsecase) SearchConstituents(ctx context.Context, query string) ([]entity.Constituent, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, query)
	}
	return nil, nil
}

func newMarketWatchRouter(uc MarketWatchUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewMarketWatchHandler(uc)
	r := gin.New()
	r.GET("/marketwatch", h.List)
	r.GET("/constituents/search", h.SearchConstituents)
	return r
}

func ptr[T any](v T) *T { return &v }

func TestMarketWatchHandler_List(t *testing.T) {
	uc := &mockMarketWatchUsecase{
		listFunc: func(context.Context) ([]entity.UnifiedEntity, error) {
			return []entity.UnifiedEntity{
				{
					Symbol:    "MCB",
					Name:      "MCB Bank Limited",
					Sector:    "Commercial Banks",
					ListedIn:  []string{"KSE100", "KSE30"},
					Shares:    1_185_060_006,
					FreeFloat: 450_000_000,
					LDCP:      ptr(228.5),
					Current:   ptr(230.1),
					Volume:    ptr(int64(1_500_000)),
				},
				{
					Symbol:           "BBB",
					Name:             "Bela Engineers",
					Sector:           "Engineering",
					Defaulter:        true,
					DefaultingClause: "5(a)",
				},
			}, nil
		},
	}
	r := newMarketWatchRouter(uc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/marketwatch", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[
		{
			"symbol":"MCB","name":"MCB Bank Limited","sector":"Commercial Banks",
			"listed_in":["KSE100","KSE30"],"defaulter":false,
			"shares":1185060006,"free_float":450000000,
			"ldcp":228.5,"open":null,"high":null,"low":null,
			"current":230.1,"change":null,"change_percent":null,"volume":1500000
		},
		{
			"symbol":"BBB","name":"Bela Engineers","sector":"Engineering",
			"listed_in":[],"defaulter":true,"defaulting_clause":"5(a)",
			"shares":0,"free_float":0,
			"ldcp":null,"open":null,"high":null,"low":null,
			"current":null,"change":null,"change_percent":null,"volume":null
		}
	]`, w.Body.String())
}

func TestMarketWatchHandler_List_Error(t *testing.T) {
	uc := &mockMarketWatchUsecase{
		listFunc: func(context.Context) ([]entity.UnifiedEntity, error) {
			return nil, errors.New("database locked")
		},
	}
	r := newMarketWatchRouter(uc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/marketwatch", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"database locked"}`, w.Body.String())
}

func TestMarketWatchHandler_SearchConstituents(t *testing.T) {
	uc := &mockMarketWatchUsecase{
		searchFunc: func(_ context.Context, query string) ([]entity.Constituent, error) {
			assert.Equal(t, "bank", query)
			return []entity.Constituent{
				{
					ISIN: "PK0056201017", Symbol: "MCB", Company: "MCB Bank Limited",
					Price: 230.1, IdxWeight: 2.91,
					FFBasedShares: 450_000_000, FFBasedMcap: 103_545_000_000,
					OrdShares: 1_185_060_006, OrdSharesMcap: 272_682_307_380,
					Volume: 1_500_000,
				},
			}, nil
		},
	}
	r := newMarketWatchRouter(uc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/constituents/search?q=bank", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{
		"isin":"PK0056201017","symbol":"MCB","company":"MCB Bank Limited",
		"price":230.1,"idx_weight":2.91,
		"ff_based_shares":450000000,"ff_based_mcap":103545000000,
		"ord_shares":1185060006,"ord_shares_mcap":272682307380,
		"volume":1500000
	}]`, w.Body.String())
}

func TestMarketWatchHandler_SearchConstituents_NoMatches(t *testing.T) {
	r := newMarketWatchRouter(&mockMarketWatchUsecase{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/constituents/search?q=zzz", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}
