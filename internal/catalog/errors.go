package catalog

import "errors"

var (
	// ErrMalformedRating indicates an age rating that is neither "Livre"
	// nor a non-negative number. Such items are hidden from students.
	ErrMalformedRating = errors.New("malformed age rating")

	// ErrUnknownRating indicates a numeric rating outside KnownRatings. The
	// item still gates by its number; the issue flags mis-tagged content.
	ErrUnknownRating = errors.New("age rating not in the portal's list")

	// ErrMalformedGenres indicates a genre field that is neither a
	// delimited string nor a list of strings.
	ErrMalformedGenres = errors.New("malformed genre field")
)
