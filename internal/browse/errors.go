package browse

import "errors"

var (
	// ErrNotPermitted is returned when the viewer's role does not allow
	// the operation.
	ErrNotPermitted = errors.New("not permitted")

	// ErrOffline is returned for operations that need the portal while
	// offline mode is on.
	ErrOffline = errors.New("offline mode: portal required")

	// ErrNoSnapshot is returned when a cached snapshot was needed but none
	// is stored or it has expired.
	ErrNoSnapshot = errors.New("no cached snapshot")

	// ErrUnknownGenre is returned when the genre selector is not one of
	// the fixed genres for the kind.
	ErrUnknownGenre = errors.New("unknown genre")
)
