package repositories

import (
	"context"
	"database/sql"

	"transitbook/internal/domain/models"
)

// PathRepository stores per-stop trip observations and route major stops.
type PathRepository struct {
	DB *sql.DB
}

func (r PathRepository) q() querier { return conn(r.DB, nil) }

func (r PathRepository) CreatePath(ctx context.Context, p models.PathEntry) (int64, error) {
	res, err := r.q().ExecContext(ctx, `
		INSERT INTO path (trip_id, stop_id, arrival_time, departure_time, people_in, people_out, money_collected)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, p.TripID, p.StopID, nullTime(p.ArrivalTime), nullTime(p.DepartureTime), p.PeopleIn, p.PeopleOut, p.MoneyCollected)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListPath returns the trip's entries in arrival order. tripID <= 0 lists all trips.
func (r PathRepository) ListPath(ctx context.Context, tripID int64) ([]models.PathEntry, error) {
	query := `
		SELECT p.path_id, p.trip_id, p.stop_id, COALESCE(s.stop_name, ''),
		       p.arrival_time, p.departure_time, p.people_in, p.people_out, p.money_collected
		FROM path p
		LEFT JOIN stops s ON p.stop_id = s.stop_id`
	args := []any{}
	if tripID > 0 {
		query += ` WHERE p.trip_id = ?`
		args = append(args, tripID)
	}
	query += ` ORDER BY p.trip_id DESC, p.arrival_time ASC, p.path_id ASC`

	rows, err := r.q().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.PathEntry{}
	for rows.Next() {
		var (
			p                  models.PathEntry
			arrival, departure sql.NullTime
		)
		if err := rows.Scan(&p.ID, &p.TripID, &p.StopID, &p.StopName,
			&arrival, &departure, &p.PeopleIn, &p.PeopleOut, &p.MoneyCollected); err != nil {
			return out, err
		}
		p.ArrivalTime = timePtr(arrival)
		p.DepartureTime = timePtr(departure)
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r PathRepository) CreateMajorStop(ctx context.Context, m models.MajorStop) (int64, error) {
	res, err := r.q().ExecContext(ctx, `
		INSERT INTO major_stops (route_id, stop_id, time_taken_minutes, people_getting_in, people_getting_down)
		VALUES (?, ?, ?, ?, ?)
	`, m.RouteID, m.StopID, m.TimeTakenMinutes, m.PeopleGettingIn, m.PeopleGettingDown)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListMajorStops lists major stops, optionally for one route.
func (r PathRepository) ListMajorStops(ctx context.Context, routeID int64) ([]models.MajorStop, error) {
	query := `
		SELECT m.major_stop_id, m.route_id, m.stop_id, COALESCE(r.route_name, ''), COALESCE(s.stop_name, ''),
		       m.time_taken_minutes, m.people_getting_in, m.people_getting_down
		FROM major_stops m
		LEFT JOIN routes r ON m.route_id = r.route_id
		LEFT JOIN stops s ON m.stop_id = s.stop_id`
	args := []any{}
	if routeID > 0 {
		query += ` WHERE m.route_id = ?`
		args = append(args, routeID)
	}
	query += ` ORDER BY m.major_stop_id DESC`

	rows, err := r.q().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.MajorStop{}
	for rows.Next() {
		var m models.MajorStop
		if err := rows.Scan(&m.ID, &m.RouteID, &m.StopID, &m.RouteName, &m.StopName,
			&m.TimeTakenMinutes, &m.PeopleGettingIn, &m.PeopleGettingDown); err != nil {
			return out, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
