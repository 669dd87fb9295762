package unify

import (
	"github.com/imoblead/fichapro-api/internal/models"
)

// Strategy identifies how a unit group was resolved. Anything other than
// StrategyExplicitLink means the group came from fuzzy name matching and is
// worth a data-quality diagnostic so parent_id can eventually be backfilled.
type Strategy string

const (
	StrategyNone         Strategy = "none"
	StrategyExplicitLink Strategy = "explicit_link"
	StrategyPatternMatch Strategy = "pattern_match"
	StrategyExactName    Strategy = "exact_name"
)

// Fallback reports whether the group was resolved without parent_id linkage.
func (s Strategy) Fallback() bool {
	return s == StrategyPatternMatch || s == StrategyExactName
}

// Resolution is the outcome of resolving a complex record's unit group.
type Resolution struct {
	Strategy Strategy
	Key      string
	Units    []models.Property
}

// ResolveUnits returns the member records of a canonical complex record, in
// input scan order. Strategies are attempted in precedence order and the
// first non-empty result wins:
//
//  1. explicit parent_id linkage to the canonical record
//  2. matching "complexo <word>" key among is_complex records
//  3. identical fully-normalized name among is_complex records
//
// Non-complex records and unnamed records without linked children resolve to
// an empty group.
func ResolveUnits(p *models.Property, all []models.Property) Resolution {
	if !p.IsComplex {
		return Resolution{Strategy: StrategyNone}
	}

	var units []models.Property
	for i := range all {
		if all[i].ParentID != nil && *all[i].ParentID == p.ID {
			units = append(units, all[i])
		}
	}
	if len(units) > 0 {
		return Resolution{Strategy: StrategyExplicitLink, Units: units}
	}

	key := ComplexKey(p.Name)
	if key == "" {
		name := Normalize(p.Name)
		if name == "" {
			return Resolution{Strategy: StrategyNone}
		}
		for i := range all {
			if all[i].IsComplex && Normalize(all[i].Name) == name {
				units = append(units, all[i])
			}
		}
		return Resolution{Strategy: StrategyExactName, Key: name, Units: units}
	}

	for i := range all {
		if all[i].IsComplex && ComplexKey(all[i].Name) == key {
			units = append(units, all[i])
		}
	}
	return Resolution{Strategy: StrategyPatternMatch, Key: key, Units: units}
}
