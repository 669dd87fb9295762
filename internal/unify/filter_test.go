package unify

import (
	"testing"

	"github.com/imoblead/fichapro-api/internal/models"
	"github.com/stretchr/testify/assert"
)

func complexProp(id, name string) models.Property {
	return models.Property{ID: id, Name: name, IsComplex: true}
}

func TestUnify_FirstOccurrenceWins(t *testing.T) {
	records := []models.Property{
		complexProp("a", "Complexo X"),
		complexProp("b", "Complexo X Unit 2"),
		complexProp("c", "Complexo X Unit 3"),
	}

	out := Unify(records, Filters{})

	assert.Len(t, out, 1)
	assert.Equal(t, "a", out[0].ID)
}

func TestUnify_ParentIDAlwaysHidden(t *testing.T) {
	parent := "a"
	records := []models.Property{
		{ID: "a", Name: "Complexo Y", IsComplex: true},
		{ID: "b", Name: "Loja Avulsa", ParentID: &parent},
	}

	out := Unify(records, Filters{Search: "avulsa"})

	// The child matches the search but is still hidden.
	assert.Empty(t, out)
}

func TestUnify_DistinctComplexesSurvive(t *testing.T) {
	records := []models.Property{
		complexProp("a", "Complexo Norte - Loja 1"),
		complexProp("b", "Complexo Sul - Loja 1"),
		complexProp("c", "Complexo Norte - Loja 2"),
	}

	out := Unify(records, Filters{})

	assert.Len(t, out, 2)
	assert.Equal(t, "a", out[0].ID)
	assert.Equal(t, "b", out[1].ID)
}

func TestUnify_NonComplexNeverCollapsed(t *testing.T) {
	records := []models.Property{
		{ID: "a", Name: "Loja Centro"},
		{ID: "b", Name: "Loja Centro"},
	}

	out := Unify(records, Filters{})

	assert.Len(t, out, 2)
}

func TestUnify_EmptyNamedComplexesNotCollapsed(t *testing.T) {
	records := []models.Property{
		complexProp("a", ""),
		complexProp("b", "  "),
	}

	out := Unify(records, Filters{})

	// Unnamed records are ungroupable; both pass through.
	assert.Len(t, out, 2)
}

func TestUnify_PreservesInputOrder(t *testing.T) {
	records := []models.Property{
		{ID: "a", Name: "Apartamento Azul", City: "Recife"},
		{ID: "b", Name: "Casa Branca", City: "Olinda"},
		{ID: "c", Name: "Casa Cinza", City: "Recife"},
	}

	out := Unify(records, Filters{City: "Recife"})

	assert.Len(t, out, 2)
	assert.Equal(t, "a", out[0].ID)
	assert.Equal(t, "c", out[1].ID)
}

func TestUnify_DuplicateKeyClaimedEvenWhenFiltered(t *testing.T) {
	// The first representative claims the key even when it fails the caller
	// filters; later duplicates stay hidden rather than standing in for it.
	records := []models.Property{
		{ID: "a", Name: "Complexo Z", IsComplex: true, City: "Olinda"},
		{ID: "b", Name: "Complexo Z - Loja 2", IsComplex: true, City: "Recife"},
	}

	out := Unify(records, Filters{City: "Recife"})

	assert.Empty(t, out)
}

func TestFilters_Match(t *testing.T) {
	available := true
	p := models.Property{
		Name:           "Galpão São João",
		Address:        "Av. Norte, 120",
		City:           "Recife",
		State:          "PE",
		Status:         models.PropertyStatusLeased,
		Registration:   "MAT-009",
		FicheAvailable: true,
		IsComplex:      false,
	}

	assert.True(t, Filters{}.Match(&p))
	assert.True(t, Filters{Search: "norte"}.Match(&p))
	assert.True(t, Filters{Search: "MAT-009"}.Match(&p))
	assert.True(t, Filters{City: "Recife", State: "PE"}.Match(&p))
	assert.True(t, Filters{Status: models.PropertyStatusLeased}.Match(&p))
	assert.True(t, Filters{FicheAvailable: &available}.Match(&p))
	assert.True(t, Filters{Category: CategorySingle}.Match(&p))

	assert.False(t, Filters{Search: "centro"}.Match(&p))
	assert.False(t, Filters{City: "Olinda"}.Match(&p))
	assert.False(t, Filters{Status: models.PropertyStatusForSale}.Match(&p))
	assert.False(t, Filters{Category: CategoryComplex}.Match(&p))
}
