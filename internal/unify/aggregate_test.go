package unify

import (
	"math"
	"testing"

	"github.com/imoblead/fichapro-api/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestAggregateProperty_SumsAcrossUnits(t *testing.T) {
	canonical := models.Property{
		ID: "a", Name: "Complexo Sul - Loja 1", IsComplex: true,
		BuiltArea: 100, MarketValue: 500000, MarketRent: 2000,
		Matricula: "M-1", Sequencial: "S-1",
	}
	all := []models.Property{
		canonical,
		{
			ID: "b", Name: "Complexo Sul - Loja 2", IsComplex: true,
			BuiltArea: 150.5, MarketValue: 300000, MarketRent: 1000,
			Matricula: "M-2",
		},
		{
			ID: "c", Name: "Complexo Sul - Loja 3", IsComplex: true,
			BuiltArea: 0, MarketValue: 200000, Sequencial: "S-3",
		},
	}

	agg := AggregateProperty(&canonical, all)

	assert.Equal(t, 3, agg.UnitCount)
	assert.InDelta(t, 250.5, agg.BuiltArea, 1e-9)
	assert.InDelta(t, 1000000, agg.MarketValue, 1e-9)
	assert.InDelta(t, 3000, agg.MarketRent, 1e-9)
	assert.Equal(t, "M-1, M-2", agg.Matricula)
	assert.Equal(t, "S-1, S-3", agg.Sequencial)

	// Ratios derive from sums, not per-unit averages.
	assert.InDelta(t, 3000*12/1000000.0*100, agg.RentYield, 1e-9)
	assert.InDelta(t, 3000/250.5, agg.RentPerArea, 1e-9)
}

func TestAggregateProperty_ZeroDivisionSafety(t *testing.T) {
	canonical := models.Property{
		ID: "a", Name: "Complexo Vazio", IsComplex: true,
		MarketRent: 1500, MarketValue: 0, BuiltArea: 0,
	}

	agg := AggregateProperty(&canonical, []models.Property{canonical})

	assert.Equal(t, 0.0, agg.RentYield)
	assert.Equal(t, 0.0, agg.RentPerArea)
	assert.False(t, math.IsInf(agg.RentYield, 0) || math.IsNaN(agg.RentYield))
	assert.False(t, math.IsInf(agg.RentPerArea, 0) || math.IsNaN(agg.RentPerArea))
}

func TestAggregateProperty_StandaloneComplexAggregatesItself(t *testing.T) {
	canonical := models.Property{
		ID: "a", Name: "Complexo Solitário", IsComplex: true,
		MarketValue: 100000, MarketRent: 500, BuiltArea: 80,
	}
	// No other record shares the key; parent_id is unused.
	all := []models.Property{canonical, {ID: "b", Name: "Casa Verde"}}

	agg := AggregateProperty(&canonical, all)

	assert.Equal(t, 1, agg.UnitCount)
	assert.InDelta(t, 100000, agg.MarketValue, 1e-9)
	assert.InDelta(t, 500*12/100000.0*100, agg.RentYield, 1e-9)
}

func TestAggregateProperty_NonComplexPassthrough(t *testing.T) {
	p := models.Property{
		ID: "a", Name: "Casa Amarela",
		MarketValue: 250000, MarketRent: 1250, BuiltArea: 90,
		Matricula: "M-9", Sequencial: "S-9",
	}
	// A same-named record must not leak into a non-complex view.
	all := []models.Property{p, {ID: "b", Name: "Casa Amarela", MarketValue: 999999}}

	agg := AggregateProperty(&p, all)

	assert.Equal(t, StrategyNone, agg.Strategy)
	assert.InDelta(t, 250000, agg.MarketValue, 1e-9)
	assert.Equal(t, "M-9", agg.Matricula)
	assert.InDelta(t, 1250*12/250000.0*100, agg.RentYield, 1e-9)
}

func TestAggregateProperty_ConcatenationKeepsDuplicates(t *testing.T) {
	canonical := models.Property{ID: "a", Name: "Complexo Rep - 1", IsComplex: true, Matricula: "M-7"}
	all := []models.Property{
		canonical,
		{ID: "b", Name: "Complexo Rep - 2", IsComplex: true, Matricula: "M-7"},
	}

	agg := AggregateProperty(&canonical, all)

	assert.Equal(t, "M-7, M-7", agg.Matricula)
}

func TestAggregateProperty_ExplicitChildrenOnly(t *testing.T) {
	id := "parent"
	canonical := models.Property{ID: id, Name: "Complexo Pai", IsComplex: true, MarketValue: 100}
	all := []models.Property{
		canonical,
		{ID: "c1", Name: "Unidade 1", ParentID: &id, MarketValue: 40},
		{ID: "c2", Name: "Unidade 2", ParentID: &id, MarketValue: 60},
	}

	agg := AggregateProperty(&canonical, all)

	// With explicit linkage the group is the linked children.
	assert.Equal(t, StrategyExplicitLink, agg.Strategy)
	assert.Equal(t, 2, agg.UnitCount)
	assert.InDelta(t, 100, agg.MarketValue, 1e-9)
}
