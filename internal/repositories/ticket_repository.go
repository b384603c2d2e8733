package repositories

import (
	"context"
	"database/sql"
	"strings"

	"transitbook/internal/domain"
	"transitbook/internal/domain/models"
)

type TicketRepository struct {
	DB *sql.DB
	tx *sql.Tx
}

// WithTx returns a copy bound to tx.
func (r TicketRepository) WithTx(tx *sql.Tx) TicketRepository {
	r.tx = tx
	return r
}

func (r TicketRepository) q() querier { return conn(r.DB, r.tx) }

// Create inserts the ticket. The after_ticket_insert trigger appends the ticket_log row.
func (r TicketRepository) Create(ctx context.Context, t models.Ticket) (int64, error) {
	res, err := r.q().ExecContext(ctx, `
		INSERT INTO tickets (trip_id, passenger_id, boarding_stop_id, dropping_stop_id, seat_no, fare, gender)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, nullInt64(t.TripID), nullInt64(t.PassengerID), nullInt64(t.BoardingStopID), nullInt64(t.DroppingStopID),
		t.SeatNo, t.Fare, string(t.Gender))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// SeatsTaken returns the seat labels already sold on the trip.
func (r TicketRepository) SeatsTaken(ctx context.Context, tripID int64) ([]string, error) {
	rows, err := r.q().QueryContext(ctx, `SELECT seat_no FROM tickets WHERE trip_id = ?`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var seat string
		if err := rows.Scan(&seat); err != nil {
			return out, err
		}
		out = append(out, strings.TrimSpace(seat))
	}
	return out, rows.Err()
}

// Fares returns the fare of every ticket on the trip.
func (r TicketRepository) Fares(ctx context.Context, tripID int64) ([]float64, error) {
	rows, err := r.q().QueryContext(ctx, `SELECT fare FROM tickets WHERE trip_id = ?`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []float64{}
	for rows.Next() {
		var fare float64
		if err := rows.Scan(&fare); err != nil {
			return out, err
		}
		out = append(out, fare)
	}
	return out, rows.Err()
}

const ticketViewSelect = `
	SELECT tk.ticket_id, tk.trip_id, tk.passenger_id, tk.boarding_stop_id, tk.dropping_stop_id,
	       tk.seat_no, tk.fare, tk.gender, tk.created_at,
	       COALESCE(r.route_name, ''), COALESCE(s1.stop_name, ''), COALESCE(s2.stop_name, ''),
	       COALESCE(p.name, ''), COALESCE(p.contact_no, ''), COALESCE(b.bus_no, ''),
	       t.start_time, t.end_time
	FROM tickets tk
	LEFT JOIN trips t ON tk.trip_id = t.trip_id
	LEFT JOIN routes r ON t.route_id = r.route_id
	LEFT JOIN buses b ON t.bus_id = b.bus_id
	LEFT JOIN stops s1 ON tk.boarding_stop_id = s1.stop_id
	LEFT JOIN stops s2 ON tk.dropping_stop_id = s2.stop_id
	LEFT JOIN passengers p ON tk.passenger_id = p.passenger_id`

func scanTicketView(sc scanner) (models.TicketView, error) {
	var (
		v                                   models.TicketView
		tripID, passengerID, board, dropOff sql.NullInt64
		gender                              string
		created, start, end                 sql.NullTime
	)
	if err := sc.Scan(
		&v.ID, &tripID, &passengerID, &board, &dropOff,
		&v.SeatNo, &v.Fare, &gender, &created,
		&v.RouteName, &v.BoardingStop, &v.DroppingStop,
		&v.PassengerName, &v.PassengerPhone, &v.BusNo,
		&start, &end,
	); err != nil {
		return v, err
	}
	v.TripID = int64Ptr(tripID)
	v.PassengerID = int64Ptr(passengerID)
	v.BoardingStopID = int64Ptr(board)
	v.DroppingStopID = int64Ptr(dropOff)
	v.Gender = domain.Gender(gender)
	v.CreatedAt = created.Time
	v.StartTime = start.Time
	v.EndTime = end.Time
	return v, nil
}

func collectTicketViews(rows *sql.Rows) ([]models.TicketView, error) {
	out := []models.TicketView{}
	for rows.Next() {
		v, err := scanTicketView(rows)
		if err != nil {
			return out, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// List returns every ticket, newest first.
func (r TicketRepository) List(ctx context.Context) ([]models.TicketView, error) {
	rows, err := r.q().QueryContext(ctx, ticketViewSelect+` ORDER BY tk.created_at DESC, tk.ticket_id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTicketViews(rows)
}

// ListByContact returns tickets whose passenger has the contact number.
func (r TicketRepository) ListByContact(ctx context.Context, contactNo string) ([]models.TicketView, error) {
	rows, err := r.q().QueryContext(ctx, ticketViewSelect+`
		WHERE p.contact_no = ?
		ORDER BY tk.created_at DESC, tk.ticket_id DESC`, contactNo)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTicketViews(rows)
}

func (r TicketRepository) GetView(ctx context.Context, id int64) (models.TicketView, error) {
	return scanTicketView(r.q().QueryRowContext(ctx, ticketViewSelect+` WHERE tk.ticket_id = ?`, id))
}

// Update applies the fields present in u.
func (r TicketRepository) Update(ctx context.Context, id int64, u models.TicketUpdate) error {
	sets := []string{}
	args := []any{}
	if u.SeatNo != nil {
		sets = append(sets, "seat_no = ?")
		args = append(args, *u.SeatNo)
	}
	if u.Fare != nil {
		sets = append(sets, "fare = ?")
		args = append(args, *u.Fare)
	}
	if u.Gender != nil {
		sets = append(sets, "gender = ?")
		args = append(args, string(*u.Gender))
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)

	res, err := r.q().ExecContext(ctx, `UPDATE tickets SET `+strings.Join(sets, ", ")+` WHERE ticket_id = ?`, args...)
	if err != nil {
		return err
	}
	return affected(res)
}

// Delete removes the ticket; its ticket_log rows cascade.
func (r TicketRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.q().ExecContext(ctx, `DELETE FROM tickets WHERE ticket_id = ?`, id)
	if err != nil {
		return err
	}
	return affected(res)
}

// DeleteForContact removes the ticket only when its passenger has contactNo.
// A mismatch touches nothing and yields sql.ErrNoRows.
func (r TicketRepository) DeleteForContact(ctx context.Context, id int64, contactNo string) error {
	res, err := r.q().ExecContext(ctx, `
		DELETE FROM tickets
		WHERE ticket_id = ?
		  AND passenger_id IN (SELECT passenger_id FROM passengers WHERE contact_no = ?)
	`, id, contactNo)
	if err != nil {
		return err
	}
	return affected(res)
}

func (r TicketRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.q().QueryRowContext(ctx, `SELECT COUNT(*) FROM tickets`).Scan(&n)
	return n, err
}
