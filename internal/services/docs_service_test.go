package services

import (
	"bytes"
	"context"
	"testing"
	"time"

	"transitbook/internal/domain"
	"transitbook/internal/domain/models"
)

func testTicketLoader(_ context.Context, id int64) (models.TicketView, error) {
	v := models.TicketView{
		RouteName:      "Central Loop",
		PassengerName:  "Tester",
		PassengerPhone: "9876543210",
	}
	v.ID = id
	v.SeatNo = "A1"
	return v, nil
}

func TestDocsServiceGenerate(t *testing.T) {
	loader := func(_ context.Context, id int64) (models.TicketView, error) {
		v := models.TicketView{
			RouteName:      "Central Loop",
			BoardingStop:   "Central",
			DroppingStop:   "University",
			PassengerName:  "Tester",
			PassengerPhone: "9876543210",
			BusNo:          "KA-01-1234",
			StartTime:      time.Now().Add(time.Hour),
			EndTime:        time.Now().Add(2 * time.Hour),
		}
		v.ID = id
		v.SeatNo = "A1"
		v.Fare = 32
		v.CreatedAt = time.Now()
		return v, nil
	}

	svc := DocsService{Loader: loader}

	pdf, filename, err := svc.GenerateETicket(context.Background(), 1)
	if err != nil {
		t.Fatalf("GenerateETicket returned error: %v", err)
	}
	if len(pdf) == 0 || filename == "" {
		t.Fatalf("GenerateETicket returned empty data")
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("GenerateETicket did not return a PDF")
	}
	if filename != "ETICKET_1_Tester_A1.pdf" {
		t.Fatalf("unexpected filename %q", filename)
	}
}

func TestDocsServiceGenerateForContact(t *testing.T) {
	svc := DocsService{Loader: testTicketLoader}

	pdf, _, err := svc.GenerateETicketForContact(context.Background(), 1, " 9876543210 ")
	if err != nil {
		t.Fatalf("matching contact: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("matching contact did not return a PDF")
	}

	if _, _, err := svc.GenerateETicketForContact(context.Background(), 1, "1111111111"); !domain.IsNotFound(err) {
		t.Fatalf("other contact: want not found, got %v", err)
	}
	if _, _, err := svc.GenerateETicketForContact(context.Background(), 1, ""); !domain.IsValidation(err) {
		t.Fatalf("missing contact: want validation error, got %v", err)
	}
}
