package itinerary

import "errors"

var (
	ErrLocationNotFound    = errors.New("location not found")
	ErrDestinationNotFound = errors.New("destination not found")
	ErrEventNotFound       = errors.New("event not found")
)
