package ports

import (
	"context"
	"tour-planner-service/internal/domain"
)

// Renders an itinerary into a printable document.
type ItineraryExporter interface {
	// Return the document bytes and a suggested file name.
	Export(ctx context.Context, it domain.Itinerary) ([]byte, string, error)
}
