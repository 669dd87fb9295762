package unify

import (
	"testing"

	"github.com/imoblead/fichapro-api/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestResolveUnits_ExplicitLinkShortCircuitsFuzzyMatch(t *testing.T) {
	canonicalID := "parent"
	canonical := models.Property{ID: canonicalID, Name: "Complexo Recife", IsComplex: true}
	all := []models.Property{
		canonical,
		{ID: "child", Name: "Loja 12", ParentID: &canonicalID},
		// Shares the pattern key but must be ignored once a linked child exists.
		{ID: "stranger", Name: "Complexo Recife - Quiosque", IsComplex: true},
	}

	res := ResolveUnits(&canonical, all)

	assert.Equal(t, StrategyExplicitLink, res.Strategy)
	assert.Len(t, res.Units, 1)
	assert.Equal(t, "child", res.Units[0].ID)
	assert.False(t, res.Strategy.Fallback())
}

func TestResolveUnits_PatternMatchFallback(t *testing.T) {
	canonical := models.Property{ID: "a", Name: "Complexo Agamenon - Loja 1", IsComplex: true}
	all := []models.Property{
		canonical,
		{ID: "b", Name: "Complexo Agamenón - Loja 2", IsComplex: true},
		{ID: "c", Name: "Complexo Agamenon - Loja 3", IsComplex: true},
		// Same key but not flagged as complex: excluded.
		{ID: "d", Name: "Complexo Agamenon Estacionamento"},
		{ID: "e", Name: "Complexo Outro", IsComplex: true},
	}

	res := ResolveUnits(&canonical, all)

	assert.Equal(t, StrategyPatternMatch, res.Strategy)
	assert.Equal(t, "complexo agamenon", res.Key)
	assert.Len(t, res.Units, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{res.Units[0].ID, res.Units[1].ID, res.Units[2].ID})
	assert.True(t, res.Strategy.Fallback())
}

func TestResolveUnits_ExactNameFallback(t *testing.T) {
	canonical := models.Property{ID: "a", Name: "Edifício São José", IsComplex: true}
	all := []models.Property{
		canonical,
		{ID: "b", Name: "edificio sao jose", IsComplex: true},
		{ID: "c", Name: "Edifício São José Anexo", IsComplex: true},
	}

	res := ResolveUnits(&canonical, all)

	assert.Equal(t, StrategyExactName, res.Strategy)
	assert.Len(t, res.Units, 2)
	assert.Equal(t, "a", res.Units[0].ID)
	assert.Equal(t, "b", res.Units[1].ID)
}

func TestResolveUnits_NonComplexResolvesToNothing(t *testing.T) {
	p := models.Property{ID: "a", Name: "Casa Térrea"}

	res := ResolveUnits(&p, []models.Property{p})

	assert.Equal(t, StrategyNone, res.Strategy)
	assert.Empty(t, res.Units)
}

func TestResolveUnits_UnnamedComplexWithoutChildren(t *testing.T) {
	p := models.Property{ID: "a", Name: "", IsComplex: true}
	all := []models.Property{
		p,
		{ID: "b", Name: "", IsComplex: true},
	}

	res := ResolveUnits(&p, all)

	// Empty names never group records together.
	assert.Equal(t, StrategyNone, res.Strategy)
	assert.Empty(t, res.Units)
}

func TestResolveUnits_UnnamedComplexStillFollowsParentID(t *testing.T) {
	id := "a"
	p := models.Property{ID: id, Name: "", IsComplex: true}
	all := []models.Property{
		p,
		{ID: "b", Name: "Loja 1", ParentID: &id},
	}

	res := ResolveUnits(&p, all)

	assert.Equal(t, StrategyExplicitLink, res.Strategy)
	assert.Len(t, res.Units, 1)
}
