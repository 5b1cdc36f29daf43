package export

import (
	"bytes"
	"context"
	"testing"
	"time"
	"tour-planner-service/internal/domain"
)

func fixedExporter() *PDFItineraryExporter {
	e := NewPDFItineraryExporter("Cantata Tour")
	e.Now = func() time.Time { return time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC) }
	return e
}

func TestPDFItineraryExporter(t *testing.T) {
	day := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)
	it := domain.Itinerary{
		Stops: []domain.Stop{
			{
				City: domain.City{Name: "Mumbai"},
				Date: day,
				Venues: []domain.VenueBooking{
					{ID: "1", Name: "Église Hall", Seats: 250, MapLink: "https://maps.google.com/?q=hall"},
				},
			},
			{
				City: domain.City{Name: "Pune"},
				Date: day,
				Leg:  &domain.Leg{DistanceKm: 120, DurationHours: 2.4},
			},
		},
		TotalDistanceKm:    120,
		TotalDurationHours: 2.4,
	}

	pdf, filename, err := fixedExporter().Export(context.Background(), it)
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF-")) {
		t.Fatalf("output is not a PDF document")
	}
	if filename != "itinerary_20260402.pdf" {
		t.Fatalf("filename = %q, want itinerary_20260402.pdf", filename)
	}
}

func TestPDFItineraryExporterEmptyRoute(t *testing.T) {
	pdf, _, err := fixedExporter().Export(context.Background(), domain.Itinerary{})
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatalf("Export returned empty data")
	}
}

func TestFormatHours(t *testing.T) {
	if got := formatHours(5.7); got != "5.7 h" {
		t.Fatalf("formatHours = %q, want 5.7 h", got)
	}
}
