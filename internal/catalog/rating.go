package catalog

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Rating is a content age rating such as "Livre", "12+" or "18+".
// The zero value is unrated and therefore restricted.
type Rating string

// RatingFree is the rating visible to every age.
const RatingFree Rating = "Livre"

// Rank values outside the numeric range.
const (
	RankFree       = 0
	RankRestricted = math.MaxInt
)

// KnownRatings is the fixed ordinal set the portal offers when tagging content.
var KnownRatings = []Rating{RatingFree, "10+", "12+", "14+", "16+", "18+"}

// ParseRating maps a rating to its minimum viewer age.
//
// Numeric ratings use leading-integer semantics: leading whitespace and an
// optional sign are skipped, digits are read up to the first non-digit, so
// "12+" and " 14 anos" parse as 12 and 14. Anything else, including negative
// numbers, returns RankRestricted and ErrMalformedRating.
func ParseRating(r Rating) (int, error) {
	if r == RatingFree {
		return RankFree, nil
	}
	s := strings.TrimLeft(string(r), " \t\n\r\v\f")
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	n, digits := 0, 0
	for _, c := range []byte(s) {
		if c < '0' || c > '9' {
			break
		}
		d := int(c - '0')
		if n > (math.MaxInt-d)/10 {
			return RankRestricted, fmt.Errorf("%w: %q overflows", ErrMalformedRating, string(r))
		}
		n = n*10 + d
		digits++
	}
	if digits == 0 {
		return RankRestricted, fmt.Errorf("%w: %q", ErrMalformedRating, string(r))
	}
	if neg && n != 0 {
		return RankRestricted, fmt.Errorf("%w: %q is negative", ErrMalformedRating, string(r))
	}
	return n, nil
}

// Rank returns the minimum viewer age, failing closed on malformed ratings.
func (r Rating) Rank() int {
	n, _ := ParseRating(r)
	return n
}

// Allows reports whether a viewer of the given age passes the rating.
func (r Rating) Allows(age int) bool {
	if r == RatingFree {
		return true
	}
	n, err := ParseRating(r)
	if err != nil {
		return false
	}
	return n <= age
}

// Known reports whether r is one of KnownRatings. Ratings outside the set
// still parse when numeric; this only flags mis-tagged content.
func (r Rating) Known() bool {
	for _, k := range KnownRatings {
		if r == k {
			return true
		}
	}
	return false
}

// CompareRatings orders ratings from least to most restrictive.
// Returns -1, 0 or 1.
func CompareRatings(a, b Rating) int {
	ra, rb := a.Rank(), b.Rank()
	switch {
	case ra < rb:
		return -1
	case ra > rb:
		return 1
	default:
		return 0
	}
}

// DecodeRating normalizes a JSON rating field. The backend stores it as a
// string, but content created through the video form may carry it as a
// one-element list; bare numbers are accepted too.
func DecodeRating(raw json.RawMessage) (Rating, error) {
	raw = json.RawMessage(strings.TrimSpace(string(raw)))
	if len(raw) == 0 || string(raw) == "null" {
		return "", fmt.Errorf("%w: missing", ErrMalformedRating)
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("%w: %v", ErrMalformedRating, err)
		}
		return Rating(strings.TrimSpace(s)), nil
	case '[':
		var list []string
		if err := json.Unmarshal(raw, &list); err != nil {
			return "", fmt.Errorf("%w: %v", ErrMalformedRating, err)
		}
		if len(list) == 0 {
			return "", fmt.Errorf("%w: empty list", ErrMalformedRating)
		}
		return Rating(strings.TrimSpace(list[0])), nil
	default:
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return "", fmt.Errorf("%w: %s", ErrMalformedRating, string(raw))
		}
		return Rating(n.String()), nil
	}
}

// UnmarshalJSON accepts any encoding DecodeRating does. Malformed values
// decode to the unrated zero value instead of failing the whole document.
func (r *Rating) UnmarshalJSON(data []byte) error {
	v, _ := DecodeRating(data)
	*r = v
	return nil
}
