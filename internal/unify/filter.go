package unify

import (
	"strings"

	"github.com/imoblead/fichapro-api/internal/models"
)

// Category filter values for the listing view
const (
	CategoryComplex = "complex"
	CategorySingle  = "single"
)

// Filters carries the caller-supplied listing predicates. Zero values mean
// "no filter" and always match.
type Filters struct {
	Search         string
	City           string
	State          string
	Status         string
	FicheAvailable *bool
	Category       string
}

// Match reports whether a record passes every non-empty predicate.
func (f Filters) Match(p *models.Property) bool {
	if f.Search != "" {
		s := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.Name), s) &&
			!strings.Contains(strings.ToLower(p.Address), s) &&
			!strings.Contains(strings.ToLower(p.City), s) &&
			!strings.Contains(strings.ToLower(p.Registration), s) {
			return false
		}
	}
	if f.City != "" && p.City != f.City {
		return false
	}
	if f.State != "" && p.State != f.State {
		return false
	}
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.FicheAvailable != nil && p.FicheAvailable != *f.FicheAvailable {
		return false
	}
	switch f.Category {
	case CategoryComplex:
		if !p.IsComplex {
			return false
		}
	case CategorySingle:
		if p.IsComplex {
			return false
		}
	}
	return true
}

// Unify produces the display-ready listing: each real-world complex appears
// exactly once (first occurrence in input order wins), subordinate units with
// a parent_id are hidden, and the caller's filters are AND-combined. Input
// order is part of the contract; the property repository sorts name ASC,
// id ASC so the chosen representative is stable across fetches.
func Unify(records []models.Property, f Filters) []models.Property {
	seen := make(map[string]struct{}, len(records))
	out := make([]models.Property, 0, len(records))

	for i := range records {
		p := &records[i]

		if p.IsComplex {
			// Unnamed records have no key and are never collapsed.
			if key := GroupKey(p.Name); key != "" {
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
			}
		}

		// Subordinate units never appear as top-level listings.
		if p.IsUnit() {
			continue
		}

		if !f.Match(p) {
			continue
		}

		out = append(out, *p)
	}
	return out
}
