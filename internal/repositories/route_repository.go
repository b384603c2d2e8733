package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"transitbook/internal/domain/models"
)

type RouteRepository struct {
	DB *sql.DB
	tx *sql.Tx
}

// WithTx returns a copy bound to tx.
func (r RouteRepository) WithTx(tx *sql.Tx) RouteRepository {
	r.tx = tx
	return r
}

func (r RouteRepository) q() querier { return conn(r.DB, r.tx) }

const routeColumns = `route_id, route_name, source, destination, distance_km`

func scanRoute(sc scanner) (models.Route, error) {
	var (
		rt   models.Route
		dist sql.NullFloat64
	)
	if err := sc.Scan(&rt.ID, &rt.Name, &rt.Source, &rt.Destination, &dist); err != nil {
		return rt, err
	}
	rt.DistanceKM = floatPtr(dist)
	return rt, nil
}

func (r RouteRepository) List(ctx context.Context) ([]models.Route, error) {
	rows, err := r.q().QueryContext(ctx, `SELECT `+routeColumns+` FROM routes ORDER BY route_id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRoutes(rows)
}

// Search matches name, source or destination.
func (r RouteRepository) Search(ctx context.Context, term string) ([]models.Route, error) {
	like := likePattern(term)
	rows, err := r.q().QueryContext(ctx, `
		SELECT `+routeColumns+`
		FROM routes
		WHERE route_name LIKE ? OR source LIKE ? OR destination LIKE ?
		ORDER BY route_name ASC
	`, like, like, like)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRoutes(rows)
}

func collectRoutes(rows *sql.Rows) ([]models.Route, error) {
	out := []models.Route{}
	for rows.Next() {
		rt, err := scanRoute(rows)
		if err != nil {
			return out, err
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}

func (r RouteRepository) GetByID(ctx context.Context, id int64) (models.Route, error) {
	row := r.q().QueryRowContext(ctx, `SELECT `+routeColumns+` FROM routes WHERE route_id = ?`, id)
	return scanRoute(row)
}

func (r RouteRepository) Create(ctx context.Context, rt models.Route) (int64, error) {
	res, err := r.q().ExecContext(ctx, `
		INSERT INTO routes (route_name, source, destination, distance_km)
		VALUES (?, ?, ?, ?)
	`, rt.Name, rt.Source, rt.Destination, nullFloat(rt.DistanceKM))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r RouteRepository) Update(ctx context.Context, rt models.Route) error {
	res, err := r.q().ExecContext(ctx, `
		UPDATE routes
		SET route_name = ?, source = ?, destination = ?, distance_km = ?
		WHERE route_id = ?
	`, rt.Name, rt.Source, rt.Destination, nullFloat(rt.DistanceKM), rt.ID)
	if err != nil {
		return err
	}
	return affected(res)
}

func (r RouteRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.q().ExecContext(ctx, `DELETE FROM routes WHERE route_id = ?`, id)
	if err != nil {
		return err
	}
	return affected(res)
}

// Stops returns the route's stop sequence ordered by stop_order.
func (r RouteRepository) Stops(ctx context.Context, routeID int64) ([]models.RouteStop, error) {
	rows, err := r.q().QueryContext(ctx, `
		SELECT rs.route_id, rs.stop_order, s.stop_id, s.stop_name, COALESCE(s.location, '')
		FROM route_stops rs
		JOIN stops s ON rs.stop_id = s.stop_id
		WHERE rs.route_id = ?
		ORDER BY rs.stop_order ASC
	`, routeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.RouteStop{}
	for rows.Next() {
		var rs models.RouteStop
		if err := rows.Scan(&rs.RouteID, &rs.Order, &rs.StopID, &rs.StopName, &rs.Location); err != nil {
			return out, err
		}
		out = append(out, rs)
	}
	return out, rows.Err()
}

// StopOrder returns the position of stopID on the route. A stop visited more
// than once resolves to its first visit when first is true, otherwise its last.
func (r RouteRepository) StopOrder(ctx context.Context, routeID, stopID int64, first bool) (int, error) {
	dir := "DESC"
	if first {
		dir = "ASC"
	}
	var order int
	err := r.q().QueryRowContext(ctx, fmt.Sprintf(`
		SELECT stop_order
		FROM route_stops
		WHERE route_id = ? AND stop_id = ?
		ORDER BY stop_order %s
		LIMIT 1
	`, dir), routeID, stopID).Scan(&order)
	return order, err
}

func (r RouteRepository) AddStop(ctx context.Context, rs models.RouteStop) error {
	_, err := r.q().ExecContext(ctx, `
		INSERT INTO route_stops (route_id, stop_order, stop_id)
		VALUES (?, ?, ?)
	`, rs.RouteID, rs.Order, rs.StopID)
	return err
}

func (r RouteRepository) RemoveStop(ctx context.Context, routeID int64, order int) error {
	res, err := r.q().ExecContext(ctx, `DELETE FROM route_stops WHERE route_id = ? AND stop_order = ?`, routeID, order)
	if err != nil {
		return err
	}
	return affected(res)
}

func (r RouteRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.q().QueryRowContext(ctx, `SELECT COUNT(*) FROM routes`).Scan(&n)
	return n, err
}
