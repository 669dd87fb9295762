package unify

import (
	"strings"

	"github.com/imoblead/fichapro-api/internal/models"
)

// Aggregate carries the rolled-up financial and physical figures for a
// complex, plus the derived ratios the detail view displays. For non-complex
// records it mirrors the record's own values.
type Aggregate struct {
	MarketValue   float64 `json:"market_value"`
	BuiltArea     float64 `json:"built_area"`
	LandArea      float64 `json:"land_area"`
	MarketRent    float64 `json:"market_rent"`
	MinRent       float64 `json:"min_rent"`
	VariableRent  float64 `json:"variable_rent"`
	PurchaseValue float64 `json:"purchase_value"`
	MainQuota     float64 `json:"main_quota"`
	LateralQuota  float64 `json:"lateral_quota"`
	Floors        float64 `json:"floors"`
	IPTUValue     float64 `json:"iptu_value"`
	SPUValue      float64 `json:"spu_value"`
	OtherTaxes    float64 `json:"other_taxes"`

	Matricula  string `json:"matricula"`
	Sequencial string `json:"sequencial"`

	RentYield   float64 `json:"rent_yield"`
	RentPerArea float64 `json:"rent_per_area"`

	UnitCount int      `json:"unit_count"`
	Strategy  Strategy `json:"-"`
}

// AggregateProperty computes the roll-up view for one property against the
// full record set. It never fails: malformed numerics contribute zero and a
// complex with no resolvable units aggregates over itself alone.
func AggregateProperty(p *models.Property, all []models.Property) Aggregate {
	if !p.IsComplex {
		return Aggregate{
			MarketValue:   p.MarketValue.Float64(),
			BuiltArea:     p.BuiltArea.Float64(),
			LandArea:      p.LandArea.Float64(),
			MarketRent:    p.MarketRent.Float64(),
			MinRent:       p.MinRent.Float64(),
			VariableRent:  p.VariableRent.Float64(),
			PurchaseValue: p.PurchaseValue.Float64(),
			MainQuota:     p.MainQuota.Float64(),
			LateralQuota:  p.LateralQuota.Float64(),
			Floors:        p.Floors.Float64(),
			IPTUValue:     p.IPTUValue.Float64(),
			SPUValue:      p.SPUValue.Float64(),
			OtherTaxes:    p.OtherTaxes.Float64(),
			Matricula:     p.Matricula,
			Sequencial:    p.Sequencial,
			RentYield:     p.RentYield(),
			RentPerArea:   p.RentPerArea(),
			UnitCount:     1,
			Strategy:      StrategyNone,
		}
	}

	res := ResolveUnits(p, all)
	units := res.Units
	if len(units) == 0 {
		units = []models.Property{*p}
	}

	agg := Aggregate{UnitCount: len(units), Strategy: res.Strategy}
	var matriculas, sequenciais []string
	for i := range units {
		u := &units[i]
		agg.MarketValue += u.MarketValue.Float64()
		agg.BuiltArea += u.BuiltArea.Float64()
		agg.LandArea += u.LandArea.Float64()
		agg.MarketRent += u.MarketRent.Float64()
		agg.MinRent += u.MinRent.Float64()
		agg.VariableRent += u.VariableRent.Float64()
		agg.PurchaseValue += u.PurchaseValue.Float64()
		agg.MainQuota += u.MainQuota.Float64()
		agg.LateralQuota += u.LateralQuota.Float64()
		agg.Floors += u.Floors.Float64()
		agg.IPTUValue += u.IPTUValue.Float64()
		agg.SPUValue += u.SPUValue.Float64()
		agg.OtherTaxes += u.OtherTaxes.Float64()
		if u.Matricula != "" {
			matriculas = append(matriculas, u.Matricula)
		}
		if u.Sequencial != "" {
			sequenciais = append(sequenciais, u.Sequencial)
		}
	}
	agg.Matricula = strings.Join(matriculas, ", ")
	agg.Sequencial = strings.Join(sequenciais, ", ")

	// Ratios derive from the summed figures, guarded against zero denominators
	// so NaN/Inf never reach the caller.
	if agg.MarketValue > 0 {
		agg.RentYield = (agg.MarketRent * 12 / agg.MarketValue) * 100
	}
	if agg.BuiltArea > 0 {
		agg.RentPerArea = agg.MarketRent / agg.BuiltArea
	}
	return agg
}
