package domain

import "errors"

var (
	ErrUnknownCity     = errors.New("unknown city")
	ErrNotStarted      = errors.New("tour has not been started")
	ErrCityInRoute     = errors.New("city is already in the route")
	ErrCityNotInRoute  = errors.New("city is not in the route")
	ErrNegativeLeg     = errors.New("leg distance and duration must not be negative")
	ErrVenueNotFound   = errors.New("venue booking not found")
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionBusy     = errors.New("session is being modified concurrently")
)
