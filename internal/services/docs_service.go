package services

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"

	"transitbook/internal/domain"
	"transitbook/internal/domain/models"
	"transitbook/internal/repositories"
	"transitbook/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders printable documents for a ticket.
type DocsService struct {
	DB        *sql.DB
	RequestID string
	Loader    func(ctx context.Context, ticketID int64) (models.TicketView, error)
}

// GenerateETicket returns the PDF and a download filename.
func (s DocsService) GenerateETicket(ctx context.Context, ticketID int64) ([]byte, string, error) {
	t, err := s.load(ctx, ticketID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_eticket", fmt.Sprintf("ticket_id=%d", ticketID))
	return buildETicketPDF(t)
}

// GenerateETicketForContact renders the e-ticket for its passenger. A contact
// number other than the one booked with reads as a missing ticket.
func (s DocsService) GenerateETicketForContact(ctx context.Context, ticketID int64, contactNo string) ([]byte, string, error) {
	contactNo = strings.TrimSpace(contactNo)
	if err := required("contact", contactNo); err != nil {
		return nil, "", err
	}
	t, err := s.load(ctx, ticketID)
	if err != nil {
		return nil, "", err
	}
	if t.PassengerPhone != contactNo {
		return nil, "", domain.NotFoundError{Resource: "ticket"}
	}
	utils.LogEvent(s.RequestID, "docs", "generate_eticket", fmt.Sprintf("ticket_id=%d by=contact", ticketID))
	return buildETicketPDF(t)
}

func (s DocsService) load(ctx context.Context, ticketID int64) (models.TicketView, error) {
	if s.Loader != nil {
		return s.Loader(ctx, ticketID)
	}
	t, err := repositories.TicketRepository{DB: s.DB}.GetView(ctx, ticketID)
	return t, repoErr("ticket", "load ticket", err)
}

func buildETicketPDF(t models.TicketView) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Ticket       : TKT-%06d", t.ID),
		fmt.Sprintf("Passenger    : %s", orDash(t.PassengerName)),
		fmt.Sprintf("Contact      : %s", orDash(t.PassengerPhone)),
		fmt.Sprintf("Route        : %s", orDash(t.RouteName)),
		fmt.Sprintf("From -> To   : %s -> %s", orDash(t.BoardingStop), orDash(t.DroppingStop)),
		fmt.Sprintf("Departure    : %s", utils.FormatDateTime(t.StartTime)),
		fmt.Sprintf("Arrival      : %s", utils.FormatDateTime(t.EndTime)),
		fmt.Sprintf("Bus          : %s", orDash(t.BusNo)),
		fmt.Sprintf("Seat         : %s", orDash(t.SeatNo)),
		fmt.Sprintf("Fare         : %s", utils.FormatMoney(t.Fare)),
		fmt.Sprintf("Issued       : %s", utils.FormatDateTime(t.CreatedAt)),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Valid for one passenger and one seat. Show this ticket when boarding.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("ETICKET_%d_%s.pdf", t.ID, utils.SafeFilenamePart(t.PassengerName+"_"+t.SeatNo))
	return buf.Bytes(), filename, nil
}

func orDash(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "-"
	}
	return v
}
