package repositories

import (
	"context"
	"database/sql"
	"time"

	"transitbook/internal/domain"
	"transitbook/internal/domain/models"
)

type TripRepository struct {
	DB *sql.DB
	tx *sql.Tx
}

// WithTx returns a copy bound to tx.
func (r TripRepository) WithTx(tx *sql.Tx) TripRepository {
	r.tx = tx
	return r
}

func (r TripRepository) q() querier { return conn(r.DB, r.tx) }

// TripSeating is a trip with the bus attributes needed for seat allocation and pricing.
type TripSeating struct {
	models.Trip
	Capacity int
	HasBus   bool
	BusType  string
	AC       bool
}

const tripViewSelect = `
	SELECT t.trip_id, t.route_id, t.bus_id, t.driver_id, t.start_time, t.end_time,
	       COALESCE(t.frequency, ''), t.status,
	       COALESCE(r.route_name, ''), COALESCE(b.bus_no, ''), COALESCE(b.type, ''), COALESCE(b.ac, FALSE),
	       COALESCE(TRIM(CONCAT(d.first_name, ' ', d.last_name)), '')
	FROM trips t
	LEFT JOIN routes r ON t.route_id = r.route_id
	LEFT JOIN buses b ON t.bus_id = b.bus_id
	LEFT JOIN drivers d ON t.driver_id = d.driver_id`

func scanTripView(sc scanner) (models.TripView, error) {
	var (
		v                        models.TripView
		routeID, busID, driverID sql.NullInt64
		status                   string
	)
	if err := sc.Scan(
		&v.ID, &routeID, &busID, &driverID, &v.StartTime, &v.EndTime,
		&v.Frequency, &status,
		&v.RouteName, &v.BusNo, &v.BusType, &v.AC,
		&v.DriverName,
	); err != nil {
		return v, err
	}
	v.RouteID = int64Ptr(routeID)
	v.BusID = int64Ptr(busID)
	v.DriverID = int64Ptr(driverID)
	v.Status = domain.TripStatus(status)
	return v, nil
}

func collectTripViews(rows *sql.Rows) ([]models.TripView, error) {
	out := []models.TripView{}
	for rows.Next() {
		v, err := scanTripView(rows)
		if err != nil {
			return out, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// List returns every trip, newest first.
func (r TripRepository) List(ctx context.Context) ([]models.TripView, error) {
	rows, err := r.q().QueryContext(ctx, tripViewSelect+` ORDER BY t.trip_id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTripViews(rows)
}

// ListAvailable returns scheduled trips starting at or after from, earliest first.
// routeID > 0 narrows the result to one route.
func (r TripRepository) ListAvailable(ctx context.Context, from time.Time, routeID int64) ([]models.TripView, error) {
	query := tripViewSelect + ` WHERE t.status = ? AND t.start_time >= ?`
	args := []any{string(domain.TripScheduled), from}
	if routeID > 0 {
		query += ` AND t.route_id = ?`
		args = append(args, routeID)
	}
	query += ` ORDER BY t.start_time ASC`

	rows, err := r.q().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTripViews(rows)
}

func (r TripRepository) GetView(ctx context.Context, id int64) (models.TripView, error) {
	return scanTripView(r.q().QueryRowContext(ctx, tripViewSelect+` WHERE t.trip_id = ?`, id))
}

// GetSeating loads the trip with its bus. forUpdate locks the trip row until
// the surrounding transaction ends, serializing bookings on the same trip.
func (r TripRepository) GetSeating(ctx context.Context, id int64, forUpdate bool) (TripSeating, error) {
	query := `
		SELECT t.trip_id, t.route_id, t.bus_id, t.driver_id, t.start_time, t.end_time,
		       COALESCE(t.frequency, ''), t.status,
		       b.capacity, COALESCE(b.type, ''), COALESCE(b.ac, FALSE)
		FROM trips t
		LEFT JOIN buses b ON t.bus_id = b.bus_id
		WHERE t.trip_id = ?`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var (
		ts                       TripSeating
		routeID, busID, driverID sql.NullInt64
		capacity                 sql.NullInt64
		status                   string
	)
	err := r.q().QueryRowContext(ctx, query, id).Scan(
		&ts.ID, &routeID, &busID, &driverID, &ts.StartTime, &ts.EndTime,
		&ts.Frequency, &status,
		&capacity, &ts.BusType, &ts.AC,
	)
	if err != nil {
		return ts, err
	}
	ts.RouteID = int64Ptr(routeID)
	ts.BusID = int64Ptr(busID)
	ts.DriverID = int64Ptr(driverID)
	ts.Status = domain.TripStatus(status)
	ts.HasBus = capacity.Valid
	ts.Capacity = int(capacity.Int64)
	return ts, nil
}

func (r TripRepository) Create(ctx context.Context, t models.Trip) (int64, error) {
	res, err := r.q().ExecContext(ctx, `
		INSERT INTO trips (route_id, bus_id, driver_id, start_time, end_time, frequency, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, nullInt64(t.RouteID), nullInt64(t.BusID), nullInt64(t.DriverID), t.StartTime, t.EndTime, t.Frequency, string(t.Status))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r TripRepository) Update(ctx context.Context, t models.Trip) error {
	res, err := r.q().ExecContext(ctx, `
		UPDATE trips
		SET route_id = ?, bus_id = ?, driver_id = ?, start_time = ?, end_time = ?, frequency = ?, status = ?
		WHERE trip_id = ?
	`, nullInt64(t.RouteID), nullInt64(t.BusID), nullInt64(t.DriverID), t.StartTime, t.EndTime, t.Frequency, string(t.Status), t.ID)
	if err != nil {
		return err
	}
	return affected(res)
}

func (r TripRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.q().ExecContext(ctx, `DELETE FROM trips WHERE trip_id = ?`, id)
	if err != nil {
		return err
	}
	return affected(res)
}
