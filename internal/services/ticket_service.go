package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	intdb "transitbook/internal/db"
	"transitbook/internal/domain"
	"transitbook/internal/domain/models"
	"transitbook/internal/metrics"
	"transitbook/internal/repositories"
	"transitbook/internal/utils"
)

// TicketLogLimit is the number of ticket_log rows shown by default.
const TicketLogLimit = 50

type TicketService struct {
	DB        *sql.DB
	RequestID string
}

func (s TicketService) tickets() repositories.TicketRepository {
	return repositories.TicketRepository{DB: s.DB}
}

func (s TicketService) List(ctx context.Context) ([]models.TicketView, error) {
	out, err := s.tickets().List(ctx)
	return out, repoErr("ticket", "list tickets", err)
}

func (s TicketService) Get(ctx context.Context, id int64) (models.TicketView, error) {
	v, err := s.tickets().GetView(ctx, id)
	return v, repoErr("ticket", "get ticket", err)
}

// Lookup returns the tickets booked under a contact number.
func (s TicketService) Lookup(ctx context.Context, contactNo string) ([]models.TicketView, error) {
	contactNo = strings.TrimSpace(contactNo)
	if err := required("contact", contactNo); err != nil {
		return nil, err
	}
	out, err := s.tickets().ListByContact(ctx, contactNo)
	return out, repoErr("ticket", "lookup tickets", err)
}

// Cancel deletes a ticket on behalf of its passenger. The contact number must
// match the one given at booking.
func (s TicketService) Cancel(ctx context.Context, id int64, contactNo string) error {
	contactNo = strings.TrimSpace(contactNo)
	if err := required("contact_no", contactNo); err != nil {
		return err
	}
	// a contact mismatch reads as a missing ticket
	if err := s.tickets().DeleteForContact(ctx, id, contactNo); err != nil {
		return repoErr("ticket", "cancel ticket", err)
	}
	metrics.TicketsCancelled.Inc()
	utils.LogEvent(s.RequestID, "tickets", "cancel", fmt.Sprintf("ticket_id=%d", id))
	return nil
}

// Update changes seat, fare or gender. A new seat must exist on the trip's
// bus and be free.
func (s TicketService) Update(ctx context.Context, id int64, u models.TicketUpdate) (models.TicketView, error) {
	if u.Fare != nil && *u.Fare < 0 {
		return models.TicketView{}, domain.ValidationError{Field: "fare", Msg: "must not be negative"}
	}
	if u.Gender != nil {
		g, ok := domain.ParseGender(string(*u.Gender))
		if !ok {
			return models.TicketView{}, domain.ValidationError{Field: "gender", Msg: "must be male, female or other"}
		}
		u.Gender = &g
	}

	current, err := s.tickets().GetView(ctx, id)
	if err != nil {
		return current, repoErr("ticket", "get ticket", err)
	}
	if u.SeatNo != nil {
		seat := utils.NormalizeSeat(*u.SeatNo)
		u.SeatNo = &seat
		if err := s.checkSeat(ctx, current, seat); err != nil {
			return current, err
		}
	}

	if err := s.tickets().Update(ctx, id, u); err != nil {
		if intdb.IsDuplicateKey(err) {
			return current, seatTaken(*u.SeatNo)
		}
		return current, repoErr("ticket", "update ticket", err)
	}
	utils.LogEvent(s.RequestID, "tickets", "update", fmt.Sprintf("ticket_id=%d", id))
	return s.Get(ctx, id)
}

func (s TicketService) checkSeat(ctx context.Context, t models.TicketView, seat string) error {
	if seat == t.SeatNo {
		return nil
	}
	if t.TripID == nil {
		return domain.ValidationError{Field: "seat_no", Msg: "ticket has no trip"}
	}
	m, err := SeatAllocator{DB: s.DB}.SeatMap(ctx, *t.TripID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return domain.Storage("load seats", err)
	}
	if !ValidSeat(seat, m.Capacity) {
		return domain.ValidationError{Field: "seat_no", Msg: fmt.Sprintf("seat %s does not exist on this bus", seat)}
	}
	for _, taken := range m.Taken {
		if utils.NormalizeSeat(taken) == seat {
			return seatTaken(seat)
		}
	}
	return nil
}

func (s TicketService) Delete(ctx context.Context, id int64) error {
	if err := s.tickets().Delete(ctx, id); err != nil {
		return repoErr("ticket", "delete ticket", err)
	}
	metrics.TicketsCancelled.Inc()
	utils.LogEvent(s.RequestID, "tickets", "delete", fmt.Sprintf("ticket_id=%d", id))
	return nil
}

func (s TicketService) ListPassengers(ctx context.Context) ([]models.Passenger, error) {
	out, err := repositories.PassengerRepository{DB: s.DB}.List(ctx)
	return out, repoErr("passenger", "list passengers", err)
}

// RecentLog returns the newest ticket_log entries.
func (s TicketService) RecentLog(ctx context.Context, limit int) ([]models.TicketLogEntry, error) {
	if limit <= 0 || limit > 500 {
		limit = TicketLogLimit
	}
	out, err := repositories.TicketLogRepository{DB: s.DB}.Recent(ctx, limit)
	return out, repoErr("ticket log", "list ticket log", err)
}
