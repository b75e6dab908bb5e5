package catalog

import (
	"strings"

	"golang.org/x/text/cases"
)

// Filter returns the items the viewer may see that match the query, in
// input order. Steps run as role gate, age gate, genre, then title search.
// The input slice is not modified.
func Filter(items []Item, v Viewer, q Query) []Item {
	genre := normalizeTag(q.Genre)
	search := fold(q.Search)

	out := make([]Item, 0, len(items))
	for _, it := range items {
		if !VisibleTo(it, v) {
			continue
		}
		if !matchesGenre(it, genre) {
			continue
		}
		if !matchesSearch(it, search) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// VisibleTo applies the role and age gates only.
func VisibleTo(it Item, v Viewer) bool {
	if v.BypassesAgeGate() {
		return true
	}
	return it.AgeRating.Allows(v.Age)
}

// FilterVisible applies the role and age gates to a list.
func FilterVisible(items []Item, v Viewer) []Item {
	return Filter(items, v, Query{})
}

func matchesGenre(it Item, genre string) bool {
	if genre == "" || genre == AllGenres {
		return true
	}
	return it.Genres.Has(genre)
}

func matchesSearch(it Item, folded string) bool {
	if folded == "" {
		return true
	}
	return strings.Contains(fold(it.Title), folded)
}

// fold case-folds s for caseless comparison. A fresh Caser is used per
// call since Casers carry state.
func fold(s string) string {
	return cases.Fold().String(s)
}
