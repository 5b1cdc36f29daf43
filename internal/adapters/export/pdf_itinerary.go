package export

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
	"tour-planner-service/internal/domain"
	"tour-planner-service/internal/locale"
	"tour-planner-service/internal/platform/obs"

	"github.com/phpdave11/gofpdf"
)

// PDFItineraryExporter renders an itinerary as an A4 document.
// Core PDF fonts only cover Latin-1, so labels are always English.
type PDFItineraryExporter struct {
	Title string
	Now   func() time.Time
}

func NewPDFItineraryExporter(title string) *PDFItineraryExporter {
	return &PDFItineraryExporter{Title: title, Now: time.Now}
}

var columnWidths = []float64{10, 45, 35, 30, 25, 45}

func (e *PDFItineraryExporter) Export(ctx context.Context, it domain.Itinerary) (_ []byte, _ string, err error) {
	defer obs.Time(ctx, "export.pdf")(&err)

	labels := locale.For("en")
	now := e.Now()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(e.Title, true)
	pdf.SetCreator("tour-planner-service", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, tr(e.Title), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Generated "+now.Format("2006-01-02 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	if len(it.Stops) == 0 {
		pdf.SetFont("Helvetica", "I", 12)
		pdf.CellFormat(0, 8, "No stops planned yet.", "", 1, "L", false, 0, "")
		return output(pdf, now)
	}

	headers := []string{"#", "City", labels.PerformanceDate, "Distance", "Time", "Venues"}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(columnWidths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for i, s := range it.Stops {
		dist, dur := "-", "-"
		if s.Leg != nil {
			dist = fmt.Sprintf("%d km", s.Leg.DistanceKm)
			dur = formatHours(s.Leg.DurationHours)
		}

		cells := []string{
			strconv.Itoa(i + 1),
			tr(s.City.Name),
			labels.FormatDate(s.Date),
			dist,
			dur,
			strconv.Itoa(len(s.Venues)),
		}
		for j, c := range cells {
			align := "L"
			if j != 1 {
				align = "C"
			}
			pdf.CellFormat(columnWidths[j], 7, c, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("%s: %d km", labels.TotalDistance, it.TotalDistanceKm), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("%s: %s", labels.TotalTime, formatHours(it.TotalDurationHours)), "", 1, "L", false, 0, "")

	writeVenues(pdf, tr, labels, it)

	return output(pdf, now)
}

func writeVenues(pdf *gofpdf.Fpdf, tr func(string) string, labels locale.Labels, it domain.Itinerary) {
	header := false
	for _, s := range it.Stops {
		if len(s.Venues) == 0 {
			continue
		}
		if !header {
			pdf.Ln(4)
			pdf.SetFont("Helvetica", "B", 14)
			pdf.CellFormat(0, 9, labels.VenuesDates, "", 1, "L", false, 0, "")
			header = true
		}

		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 7, fmt.Sprintf("%s - %s", tr(s.City.Name), labels.FormatDate(s.Date)), "", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "", 10)
		for _, v := range s.Venues {
			line := fmt.Sprintf("%s (%s: %d)", tr(v.Name), labels.Seats, v.Seats)
			pdf.CellFormat(120, 6, line, "", 0, "L", false, 0, "")
			if strings.TrimSpace(v.MapLink) != "" {
				pdf.SetTextColor(0, 0, 200)
				pdf.CellFormat(0, 6, labels.OpenMaps, "", 0, "L", false, 0, v.MapLink)
				pdf.SetTextColor(0, 0, 0)
			}
			pdf.Ln(6)
		}
	}
}

func output(pdf *gofpdf.Fpdf, now time.Time) ([]byte, string, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("export itinerary pdf: %w", err)
	}

	filename := fmt.Sprintf("itinerary_%s.pdf", now.Format("20060102"))
	return buf.Bytes(), filename, nil
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', 1, 64) + " h"
}
