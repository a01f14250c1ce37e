package weather

import "errors"

var (
	// ErrProviderUnavailable wraps any transport or parse failure from the
	// geocoding/forecast collaborator.
	ErrProviderUnavailable = errors.New("weather provider unavailable")

	// ErrDestinationNotFound means the trip's destination could not be
	// resolved to coordinates.
	ErrDestinationNotFound = errors.New("could not find location for this trip's destination")
)
