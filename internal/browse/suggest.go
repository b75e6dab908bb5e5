package browse

import (
	"cmp"
	"slices"
	"strings"

	"github.com/hbollon/go-edlib"
	"golang.org/x/text/cases"

	"github.com/educa-portal/acervo/internal/catalog"
)

const (
	// MaxSuggestions caps how many alternative titles are offered.
	MaxSuggestions = 3
	// SuggestThreshold is the minimum Jaro-Winkler similarity for a title.
	SuggestThreshold float32 = 0.8
)

// Suggest offers titles close to the search term for a search that matched
// nothing. Candidates are limited to items the viewer may see in the
// selected genre, so a suggestion never reveals a hidden item.
func Suggest(items []catalog.Item, v catalog.Viewer, q catalog.Query, limit int) []string {
	caser := cases.Fold()
	term := caser.String(strings.TrimSpace(q.Search))
	if term == "" || limit <= 0 {
		return nil
	}

	type candidate struct {
		title string
		score float32
	}

	var candidates []candidate
	seen := make(map[string]bool)
	for _, it := range catalog.Filter(items, v, catalog.Query{Genre: q.Genre}) {
		if seen[it.Title] {
			continue
		}
		score := titleSimilarity(term, caser.String(it.Title))
		if score < SuggestThreshold {
			continue
		}
		seen[it.Title] = true
		candidates = append(candidates, candidate{title: it.Title, score: score})
	}

	slices.SortStableFunc(candidates, func(a, b candidate) int {
		return cmp.Compare(b.score, a.score)
	})

	var titles []string
	for _, c := range candidates {
		if len(titles) == limit {
			break
		}
		titles = append(titles, c.title)
	}
	return titles
}

// titleSimilarity scores the term against the whole title and each of its
// words, keeping the best.
func titleSimilarity(term, title string) float32 {
	best := edlib.JaroWinklerSimilarity(term, title)
	for _, word := range strings.Fields(title) {
		if s := edlib.JaroWinklerSimilarity(term, word); s > best {
			best = s
		}
	}
	return best
}
