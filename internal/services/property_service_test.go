package services

import (
	"context"
	"testing"

	"github.com/imoblead/fichapro-api/internal/models"
	"github.com/imoblead/fichapro-api/internal/repository"
	"github.com/imoblead/fichapro-api/internal/unify"
	"github.com/stretchr/testify/assert"
)

type mockPropertyRepo struct {
	repository.PropertyRepository
	mockFindAll  func(ctx context.Context) ([]models.Property, error)
	mockFindByID func(ctx context.Context, id string) (*models.Property, error)
}

func (m *mockPropertyRepo) FindAll(ctx context.Context) ([]models.Property, error) {
	return m.mockFindAll(ctx)
}

func (m *mockPropertyRepo) FindByID(ctx context.Context, id string) (*models.Property, error) {
	return m.mockFindByID(ctx, id)
}

func TestPropertyService_ListUnified_DeduplicatesAndPaginates(t *testing.T) {
	mockRepo := &mockPropertyRepo{}
	service := NewPropertyService(mockRepo, nil, nil)

	mockRepo.mockFindAll = func(ctx context.Context) ([]models.Property, error) {
		return []models.Property{
			{ID: "a", Name: "Complexo Norte - Loja 1", IsComplex: true},
			{ID: "b", Name: "Complexo Norte - Loja 2", IsComplex: true},
			{ID: "c", Name: "Casa Azul"},
			{ID: "d", Name: "Casa Verde"},
			{ID: "e", Name: "Galpão Sul"},
		}, nil
	}

	// Two duplicates of the same complex collapse into one listing.
	items, total, err := service.ListUnified(context.Background(), unify.Filters{}, 1, 0)
	assert.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Len(t, items, 4)
	assert.Equal(t, "a", items[0].ID)

	// Page 2 of 3-per-page holds the remainder.
	items, total, err = service.ListUnified(context.Background(), unify.Filters{}, 2, 3)
	assert.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Len(t, items, 1)
	assert.Equal(t, "e", items[0].ID)

	// Out-of-range pages are empty, not an error.
	items, _, err = service.ListUnified(context.Background(), unify.Filters{}, 9, 3)
	assert.NoError(t, err)
	assert.Empty(t, items)
}

func TestPropertyService_GetDetail_AggregatesComplex(t *testing.T) {
	mockRepo := &mockPropertyRepo{}
	service := NewPropertyService(mockRepo, nil, nil)

	all := []models.Property{
		{ID: "a", Name: "Complexo Leste - Sala 1", IsComplex: true, MarketValue: 100000, MarketRent: 500},
		{ID: "b", Name: "Complexo Leste - Sala 2", IsComplex: true, MarketValue: 200000, MarketRent: 1000},
		{ID: "c", Name: "Casa Branca", MarketValue: 999999},
	}

	mockRepo.mockFindAll = func(ctx context.Context) ([]models.Property, error) {
		return all, nil
	}
	mockRepo.mockFindByID = func(ctx context.Context, id string) (*models.Property, error) {
		return &all[0], nil
	}

	detail, err := service.GetDetail(context.Background(), "a")
	assert.NoError(t, err)
	assert.Equal(t, string(unify.StrategyPatternMatch), detail.Strategy)
	assert.Len(t, detail.Units, 2)
	assert.Equal(t, 2, detail.Aggregate.UnitCount)
	assert.InDelta(t, 300000, detail.Aggregate.MarketValue, 1e-9)
	assert.InDelta(t, 1500*12/300000.0*100, detail.Aggregate.RentYield, 1e-9)
}

func TestPropertyService_GetDetail_StandaloneProperty(t *testing.T) {
	mockRepo := &mockPropertyRepo{}
	service := NewPropertyService(mockRepo, nil, nil)

	all := []models.Property{
		{ID: "c", Name: "Casa Branca", MarketValue: 250000, MarketRent: 1250, BuiltArea: 100},
	}

	mockRepo.mockFindAll = func(ctx context.Context) ([]models.Property, error) {
		return all, nil
	}
	mockRepo.mockFindByID = func(ctx context.Context, id string) (*models.Property, error) {
		return &all[0], nil
	}

	detail, err := service.GetDetail(context.Background(), "c")
	assert.NoError(t, err)
	assert.Equal(t, string(unify.StrategyNone), detail.Strategy)
	assert.Empty(t, detail.Units)
	assert.Equal(t, 1, detail.Aggregate.UnitCount)
	assert.InDelta(t, 250000, detail.Aggregate.MarketValue, 1e-9)
}
