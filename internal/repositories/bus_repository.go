package repositories

import (
	"context"
	"database/sql"

	"transitbook/internal/domain"
	"transitbook/internal/domain/models"
)

type BusRepository struct {
	DB *sql.DB
}

func (r BusRepository) q() querier { return conn(r.DB, nil) }

const busColumns = `bus_id, bus_no, COALESCE(bus_name, ''), COALESCE(type, ''), capacity, route_id, ac, status`

func scanBus(sc scanner) (models.Bus, error) {
	var (
		b       models.Bus
		routeID sql.NullInt64
		status  string
	)
	if err := sc.Scan(&b.ID, &b.BusNo, &b.Name, &b.Type, &b.Capacity, &routeID, &b.AC, &status); err != nil {
		return b, err
	}
	b.RouteID = int64Ptr(routeID)
	b.Status = domain.BusStatus(status)
	return b, nil
}

func collectBuses(rows *sql.Rows) ([]models.Bus, error) {
	out := []models.Bus{}
	for rows.Next() {
		b, err := scanBus(rows)
		if err != nil {
			return out, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// List returns buses, optionally only those in status.
func (r BusRepository) List(ctx context.Context, status domain.BusStatus) ([]models.Bus, error) {
	query := `SELECT ` + busColumns + ` FROM buses`
	args := []any{}
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, string(status))
	}
	query += ` ORDER BY bus_id DESC`

	rows, err := r.q().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBuses(rows)
}

// Search matches bus number or name.
func (r BusRepository) Search(ctx context.Context, term string) ([]models.Bus, error) {
	like := likePattern(term)
	rows, err := r.q().QueryContext(ctx, `
		SELECT `+busColumns+`
		FROM buses
		WHERE bus_no LIKE ? OR bus_name LIKE ?
		ORDER BY bus_no ASC
	`, like, like)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBuses(rows)
}

func (r BusRepository) GetByID(ctx context.Context, id int64) (models.Bus, error) {
	return scanBus(r.q().QueryRowContext(ctx, `SELECT `+busColumns+` FROM buses WHERE bus_id = ?`, id))
}

func (r BusRepository) Create(ctx context.Context, b models.Bus) (int64, error) {
	res, err := r.q().ExecContext(ctx, `
		INSERT INTO buses (bus_no, bus_name, type, capacity, route_id, ac, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, b.BusNo, b.Name, b.Type, b.Capacity, nullInt64(b.RouteID), b.AC, string(b.Status))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r BusRepository) Update(ctx context.Context, b models.Bus) error {
	res, err := r.q().ExecContext(ctx, `
		UPDATE buses
		SET bus_no = ?, bus_name = ?, type = ?, capacity = ?, route_id = ?, ac = ?, status = ?
		WHERE bus_id = ?
	`, b.BusNo, b.Name, b.Type, b.Capacity, nullInt64(b.RouteID), b.AC, string(b.Status), b.ID)
	if err != nil {
		return err
	}
	return affected(res)
}

func (r BusRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.q().ExecContext(ctx, `DELETE FROM buses WHERE bus_id = ?`, id)
	if err != nil {
		return err
	}
	return affected(res)
}

// CountByStatus returns the number of buses per status.
func (r BusRepository) CountByStatus(ctx context.Context) (map[domain.BusStatus]int, error) {
	rows, err := r.q().QueryContext(ctx, `SELECT status, COUNT(*) FROM buses GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[domain.BusStatus]int{}
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return out, err
		}
		out[domain.BusStatus(status)] = n
	}
	return out, rows.Err()
}
