package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/stevenadel/iti-events-server/internal/repositories"
	"github.com/stevenadel/iti-events-server/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders printable PDF documents: the bus-line passenger
// manifest and the event attendee sheet.
type DocsService struct {
	Lines     repositories.BusLineRepository
	BusUsers  repositories.BusUserRepository
	Attendees repositories.AttendeeRepository
	Events    repositories.EventRepository
	RequestID string
}

// BusManifest renders the passenger manifest for a bus line.
func (s DocsService) BusManifest(busLineID int64) ([]byte, string, error) {
	line, err := s.Lines.GetByID(busLineID)
	if err != nil {
		return nil, "", err
	}
	subscribers, err := s.BusUsers.ListSubscribers(busLineID)
	if err != nil {
		return nil, "", err
	}

	utils.LogEvent(s.RequestID, "docs", "bus_manifest", fmt.Sprintf("bus_line_id=%d", busLineID))

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Bus Line Manifest", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "PASSENGER MANIFEST")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	driver := "-"
	if line.Driver != nil {
		driver = fmt.Sprintf("%s (%s)", line.Driver.Name, line.Driver.PhoneNumber)
	}
	for _, row := range []string{
		fmt.Sprintf("Line      : %s", safe(line.Name, "-")),
		fmt.Sprintf("Driver    : %s", driver),
		fmt.Sprintf("Departure : %s", utils.FormatDateTime(line.DepartureTime)),
		fmt.Sprintf("Arrival   : %s", utils.FormatDateTime(line.ArrivalTime)),
		fmt.Sprintf("Seats     : %d/%d taken", line.Capacity-line.RemainingSeats, line.Capacity),
	} {
		pdf.Cell(0, 7, row)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	writeTableHeader(pdf, "#", "Passenger", "Email")
	pdf.SetFont("Helvetica", "", 11)
	for i, u := range subscribers {
		writeTableRow(pdf, fmt.Sprintf("%d", i+1), u.FirstName+" "+u.LastName, u.Email)
	}
	if len(subscribers) == 0 {
		pdf.Cell(0, 7, "No passengers subscribed.")
		pdf.Ln(7)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("bus-line-%d-manifest.pdf", busLineID)
	return buf.Bytes(), filename, nil
}

// AttendeeSheet renders the attendee list for an event, marking pending
// approvals on paid events.
func (s DocsService) AttendeeSheet(eventID int64) ([]byte, string, error) {
	event, err := s.Events.GetByID(eventID)
	if err != nil {
		return nil, "", err
	}
	attendees, err := s.Attendees.ListByEvent(eventID)
	if err != nil {
		return nil, "", err
	}

	utils.LogEvent(s.RequestID, "docs", "attendee_sheet", fmt.Sprintf("event_id=%d", eventID))

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Event Attendees", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "EVENT ATTENDEES")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	for _, row := range []string{
		fmt.Sprintf("Event    : %s", safe(event.Name, "-")),
		fmt.Sprintf("Starts   : %s", utils.FormatDateTime(event.StartDate)),
		fmt.Sprintf("Ends     : %s", utils.FormatDateTime(event.EndDate)),
		fmt.Sprintf("Capacity : %d/%d registered", len(attendees), event.Capacity),
	} {
		pdf.Cell(0, 7, row)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	writeTableHeader(pdf, "#", "Attendee", "Status")
	pdf.SetFont("Helvetica", "", 11)
	for i, a := range attendees {
		status := "approved"
		if !a.IsApproved {
			status = "pending approval"
		}
		name := "-"
		if a.User != nil {
			name = a.User.FirstName + " " + a.User.LastName
		}
		writeTableRow(pdf, fmt.Sprintf("%d", i+1), name, status)
	}
	if len(attendees) == 0 {
		pdf.Cell(0, 7, "No attendees registered.")
		pdf.Ln(7)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("event-%d-attendees.pdf", eventID)
	return buf.Bytes(), filename, nil
}

func writeTableHeader(pdf *gofpdf.Fpdf, cols ...string) {
	pdf.SetFont("Helvetica", "B", 11)
	widths := []float64{12, 90, 80}
	for i, c := range cols {
		pdf.CellFormat(widths[i], 8, c, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
}

func writeTableRow(pdf *gofpdf.Fpdf, cols ...string) {
	widths := []float64{12, 90, 80}
	for i, c := range cols {
		pdf.CellFormat(widths[i], 8, c, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
}

func safe(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
