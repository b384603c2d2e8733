package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	intdb "transitbook/internal/db"
	"transitbook/internal/domain"
	"transitbook/internal/domain/models"
	"transitbook/internal/metrics"
	"transitbook/internal/repositories"
	"transitbook/internal/utils"
)

// MinContactLength is the shortest accepted passenger contact number.
const MinContactLength = 10

type PassengerInput struct {
	Name      string `json:"name"`
	ContactNo string `json:"contact_no"`
	Email     string `json:"email_id"`
	Address   string `json:"address"`
}

type BookingRequest struct {
	TripID         int64          `json:"trip_id"`
	BoardingStopID int64          `json:"boarding_stop_id"`
	DroppingStopID int64          `json:"dropping_stop_id"`
	SeatNo         string         `json:"seat_no"`
	Gender         string         `json:"gender"`
	Passenger      PassengerInput `json:"passenger"`
}

type BookingResult struct {
	Ticket    models.Ticket    `json:"ticket"`
	Passenger models.Passenger `json:"passenger"`
	FareMode  string           `json:"fare_mode"`
}

type QuoteRequest struct {
	TripID         int64 `json:"trip_id"`
	BoardingStopID int64 `json:"boarding_stop_id"`
	DroppingStopID int64 `json:"dropping_stop_id"`
}

// Quote is the price range of a prospective booking plus the seats still free.
type Quote struct {
	TripID         int64    `json:"trip_id"`
	FareMode       string   `json:"fare_mode"`
	FareMin        float64  `json:"fare_min"`
	FareMax        float64  `json:"fare_max"`
	BoardingOrder  int      `json:"boarding_order"`
	DroppingOrder  int      `json:"dropping_order"`
	AvailableSeats []string `json:"available_seats"`
}

// BookingService sells one seat per call. Everything between locking the trip
// and inserting the ticket happens in one transaction.
type BookingService struct {
	DB        *sql.DB
	Fares     FareStrategy
	Now       utils.Clock
	RequestID string
}

func (s BookingService) fares() FareStrategy {
	if s.Fares != nil {
		return s.Fares
	}
	return defaultFares
}

var defaultFares FareStrategy = NewJitterFare(0)

func seatTaken(seat string) error {
	return domain.ValidationError{Field: "seat_no", Msg: fmt.Sprintf("seat %s already taken", seat), Err: domain.ErrSeatTaken}
}

func (req *BookingRequest) normalize() (domain.Gender, error) {
	req.SeatNo = utils.NormalizeSeat(req.SeatNo)
	req.Passenger.Name = utils.NormalizeSpace(req.Passenger.Name)
	req.Passenger.ContactNo = strings.TrimSpace(req.Passenger.ContactNo)
	req.Passenger.Email = strings.TrimSpace(req.Passenger.Email)
	req.Passenger.Address = strings.TrimSpace(req.Passenger.Address)

	if err := firstErr(
		positiveID("trip_id", req.TripID),
		positiveID("boarding_stop_id", req.BoardingStopID),
		positiveID("dropping_stop_id", req.DroppingStopID),
		required("seat_no", req.SeatNo),
		required("passenger.name", req.Passenger.Name),
		required("passenger.contact_no", req.Passenger.ContactNo),
	); err != nil {
		return "", err
	}
	if len(req.Passenger.ContactNo) < MinContactLength {
		return "", domain.ValidationError{Field: "passenger.contact_no", Msg: fmt.Sprintf("must be at least %d characters", MinContactLength)}
	}
	g, ok := domain.ParseGender(req.Gender)
	if !ok {
		return "", domain.ValidationError{Field: "gender", Msg: "must be male, female or other"}
	}
	return g, nil
}

// loadBookableTrip returns the trip with its bus, locking the row when tx is set.
func (s BookingService) loadBookableTrip(ctx context.Context, tx *sql.Tx, tripID int64) (repositories.TripSeating, error) {
	ts, err := repositories.TripRepository{DB: s.DB}.WithTx(tx).GetSeating(ctx, tripID, tx != nil)
	if err != nil {
		return ts, repoErr("trip", "load trip", err)
	}
	if !ts.Bookable(s.Now.StartOfDay()) {
		return ts, domain.ValidationError{Field: "trip_id", Msg: fmt.Sprintf("trip %d is not open for booking", tripID)}
	}
	if ts.RouteID == nil {
		return ts, domain.ValidationError{Field: "trip_id", Msg: fmt.Sprintf("trip %d has no route", tripID)}
	}
	return ts, nil
}

// stopOrders resolves boarding and dropping positions on the route. Boarding
// uses the first visit of the stop and dropping the last.
func (s BookingService) stopOrders(ctx context.Context, tx *sql.Tx, routeID, boardingID, droppingID int64) (int, int, error) {
	routes := repositories.RouteRepository{DB: s.DB}.WithTx(tx)

	board, err := routes.StopOrder(ctx, routeID, boardingID, true)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, 0, domain.ValidationError{Field: "boarding_stop_id", Msg: "stop is not on the trip's route"}
	}
	if err != nil {
		return 0, 0, domain.Storage("resolve boarding stop", err)
	}
	drop, err := routes.StopOrder(ctx, routeID, droppingID, false)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, 0, domain.ValidationError{Field: "dropping_stop_id", Msg: "stop is not on the trip's route"}
	}
	if err != nil {
		return 0, 0, domain.Storage("resolve dropping stop", err)
	}
	if drop <= board {
		return 0, 0, domain.ValidationError{Field: "dropping_stop_id", Msg: "dropping stop must come after boarding stop"}
	}
	return board, drop, nil
}

// Quote prices a prospective booking without writing anything.
func (s BookingService) Quote(ctx context.Context, req QuoteRequest) (Quote, error) {
	q := Quote{TripID: req.TripID, FareMode: s.fares().Name(), AvailableSeats: []string{}}
	if err := firstErr(
		positiveID("trip_id", req.TripID),
		positiveID("boarding_stop_id", req.BoardingStopID),
		positiveID("dropping_stop_id", req.DroppingStopID),
	); err != nil {
		return q, err
	}

	ts, err := s.loadBookableTrip(ctx, nil, req.TripID)
	if err != nil {
		return q, err
	}
	board, drop, err := s.stopOrders(ctx, nil, *ts.RouteID, req.BoardingStopID, req.DroppingStopID)
	if err != nil {
		return q, err
	}
	m, err := SeatAllocator{DB: s.DB}.seatMapFor(ctx, ts)
	if err != nil {
		return q, domain.Storage("load seats", err)
	}

	q.BoardingOrder, q.DroppingOrder = board, drop
	q.FareMin, q.FareMax = s.fares().Range(FareInput{BusType: ts.BusType, AC: ts.AC, BoardingOrder: board, DroppingOrder: drop})
	q.AvailableSeats = m.Available
	return q, nil
}

// Book validates the request and sells the seat. A new passenger row is
// created for every booking. Any failure rolls back both inserts.
func (s BookingService) Book(ctx context.Context, req BookingRequest) (BookingResult, error) {
	started := time.Now()
	res, err := s.book(ctx, req)
	metrics.BookingDuration.Observe(time.Since(started).Seconds())
	metrics.BookingsTotal.WithLabelValues(bookingResult(err)).Inc()

	if err != nil {
		utils.LogEvent(s.RequestID, "booking", "book_failed", fmt.Sprintf("trip_id=%d seat=%s err=%v", req.TripID, req.SeatNo, err))
		return res, err
	}
	utils.LogEvent(s.RequestID, "booking", "book", fmt.Sprintf("ticket_id=%d trip_id=%d seat=%s fare=%s",
		res.Ticket.ID, req.TripID, res.Ticket.SeatNo, utils.FormatMoney(res.Ticket.Fare)))
	return res, nil
}

func (s BookingService) book(ctx context.Context, req BookingRequest) (BookingResult, error) {
	var out BookingResult
	gender, err := req.normalize()
	if err != nil {
		return out, err
	}

	err = intdb.WithinTx(ctx, pool(s.DB), func(tx *sql.Tx) error {
		ts, err := s.loadBookableTrip(ctx, tx, req.TripID)
		if err != nil {
			return err
		}
		board, drop, err := s.stopOrders(ctx, tx, *ts.RouteID, req.BoardingStopID, req.DroppingStopID)
		if err != nil {
			return err
		}

		seats, err := SeatAllocator{DB: s.DB, Tx: tx}.seatMapFor(ctx, ts)
		if err != nil {
			return domain.Storage("load seats", err)
		}
		if len(seats.Available) == 0 {
			return domain.ResourceExhaustedError{Resource: "seat", Msg: fmt.Sprintf("trip %d is fully booked", req.TripID)}
		}
		if !ValidSeat(req.SeatNo, ts.Capacity) {
			return domain.ValidationError{Field: "seat_no", Msg: fmt.Sprintf("seat %s does not exist on this bus", req.SeatNo)}
		}
		if !slices.Contains(seats.Available, req.SeatNo) {
			return seatTaken(req.SeatNo)
		}

		fare := s.fares().Fare(FareInput{BusType: ts.BusType, AC: ts.AC, BoardingOrder: board, DroppingOrder: drop})
		fare = utils.FromCents(utils.ToCents(fare))

		p := models.Passenger{
			Name:      req.Passenger.Name,
			Address:   req.Passenger.Address,
			ContactNo: req.Passenger.ContactNo,
			Email:     req.Passenger.Email,
		}
		pid, err := repositories.PassengerRepository{DB: s.DB}.WithTx(tx).Create(ctx, p)
		if err != nil {
			return domain.Storage("insert passenger", err)
		}
		p.ID = pid

		t := models.Ticket{
			TripID:         &ts.ID,
			PassengerID:    &pid,
			BoardingStopID: &req.BoardingStopID,
			DroppingStopID: &req.DroppingStopID,
			SeatNo:         req.SeatNo,
			Fare:           fare,
			Gender:         gender,
		}
		tid, err := repositories.TicketRepository{DB: s.DB}.WithTx(tx).Create(ctx, t)
		if err != nil {
			if intdb.IsDuplicateKey(err) {
				return seatTaken(req.SeatNo)
			}
			return domain.Storage("insert ticket", err)
		}
		t.ID = tid
		t.CreatedAt = time.Now()

		out = BookingResult{Ticket: t, Passenger: p, FareMode: s.fares().Name()}
		return nil
	})
	if err != nil {
		return BookingResult{}, domain.Storage("book seat", err)
	}
	return out, nil
}

func bookingResult(err error) string {
	switch {
	case err == nil:
		return metrics.ResultBooked
	case errors.Is(err, domain.ErrSeatTaken):
		return metrics.ResultSeatTaken
	case domain.IsResourceExhausted(err):
		return metrics.ResultSoldOut
	case domain.IsStorage(err):
		return metrics.ResultStorageErr
	}
	return metrics.ResultRejected
}
