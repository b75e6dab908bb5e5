package catalog

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// GenreSet is the canonical genre collection of an item: trimmed,
// NFC-normalized tags in first-seen order with no duplicates or blanks.
type GenreSet []string

// normalizeTag trims and composes a tag so "Ficção" typed on different
// keyboards compares equal.
func normalizeTag(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// NewGenreSet builds a set from individual tags.
func NewGenreSet(tags ...string) GenreSet {
	set := make(GenreSet, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = normalizeTag(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		set = append(set, t)
	}
	return set
}

// ParseGenres splits a comma-delimited genre string.
func ParseGenres(s string) GenreSet {
	return NewGenreSet(strings.Split(s, ",")...)
}

// Has reports whether the set contains genre g.
func (g GenreSet) Has(genre string) bool {
	genre = normalizeTag(genre)
	for _, t := range g {
		if t == genre {
			return true
		}
	}
	return false
}

// String joins the set with commas, the backend's form encoding.
func (g GenreSet) String() string {
	return strings.Join(g, ",")
}

// DecodeGenres normalizes a JSON genre field that may be a delimited
// string or a list. Lists whose elements themselves contain commas are
// flattened. null decodes to an empty set.
func DecodeGenres(raw json.RawMessage) (GenreSet, error) {
	raw = json.RawMessage(strings.TrimSpace(string(raw)))
	if len(raw) == 0 || string(raw) == "null" {
		return GenreSet{}, nil
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return GenreSet{}, fmt.Errorf("%w: %v", ErrMalformedGenres, err)
		}
		return ParseGenres(s), nil
	case '[':
		var list []string
		if err := json.Unmarshal(raw, &list); err != nil {
			return GenreSet{}, fmt.Errorf("%w: %v", ErrMalformedGenres, err)
		}
		var tags []string
		for _, s := range list {
			tags = append(tags, strings.Split(s, ",")...)
		}
		return NewGenreSet(tags...), nil
	default:
		return GenreSet{}, fmt.Errorf("%w: %s", ErrMalformedGenres, string(raw))
	}
}

// UnmarshalJSON accepts any encoding DecodeGenres does. Malformed values
// decode to an empty set.
func (g *GenreSet) UnmarshalJSON(data []byte) error {
	v, _ := DecodeGenres(data)
	*g = v
	return nil
}
