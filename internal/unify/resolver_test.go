package unify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroupKey_AccentAndCaseInsensitive(t *testing.T) {
	variants := []string{
		"Complexo Agamenón",
		"complexo agamenon",
		"COMPLEXO AGAMENON  ",
		"  Complexo Agamenon - Loja 2",
	}
	for _, v := range variants {
		assert.Equal(t, "complexo agamenon", GroupKey(v), "variant: %q", v)
	}
}

func TestGroupKey_Idempotent(t *testing.T) {
	inputs := []string{
		"Complexo Agamenón — Loja 1",
		"Galpão São João",
		"loja centro",
	}
	for _, in := range inputs {
		once := GroupKey(in)
		assert.Equal(t, once, GroupKey(once), "input: %q", in)
	}
}

func TestGroupKey_FallbackToFullNormalizedName(t *testing.T) {
	assert.Equal(t, "edificio sao jose", GroupKey("Edifício São José"))
}

func TestGroupKey_EmptyNameYieldsEmptyKey(t *testing.T) {
	assert.Equal(t, "", GroupKey(""))
	assert.Equal(t, "", GroupKey("   "))
}

func TestComplexKey_OnlyPatternExtraction(t *testing.T) {
	assert.Equal(t, "complexo norte", ComplexKey("Complexo Norte - Galpão 3"))
	// No fallback to the full name here.
	assert.Equal(t, "", ComplexKey("Edifício São José"))
}

func TestComplexKey_MatchesAnywhereInName(t *testing.T) {
	assert.Equal(t, "complexo beira", ComplexKey("Lote 7 do Complexo Beira Mar"))
}

func TestNormalize_StripsDiacritics(t *testing.T) {
	assert.Equal(t, "galpao joao codo", Normalize("  Galpão JOÃO Codó "))
}
