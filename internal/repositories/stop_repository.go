package repositories

import (
	"context"
	"database/sql"

	"transitbook/internal/domain/models"
)

type StopRepository struct {
	DB *sql.DB
}

func (r StopRepository) q() querier { return conn(r.DB, nil) }

func (r StopRepository) List(ctx context.Context) ([]models.Stop, error) {
	rows, err := r.q().QueryContext(ctx, `
		SELECT stop_id, stop_name, COALESCE(location, '')
		FROM stops
		ORDER BY stop_id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectStops(rows)
}

// Search matches stop name or location.
func (r StopRepository) Search(ctx context.Context, term string) ([]models.Stop, error) {
	like := likePattern(term)
	rows, err := r.q().QueryContext(ctx, `
		SELECT stop_id, stop_name, COALESCE(location, '')
		FROM stops
		WHERE stop_name LIKE ? OR location LIKE ?
		ORDER BY stop_name ASC
	`, like, like)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectStops(rows)
}

func collectStops(rows *sql.Rows) ([]models.Stop, error) {
	out := []models.Stop{}
	for rows.Next() {
		var s models.Stop
		if err := rows.Scan(&s.ID, &s.Name, &s.Location); err != nil {
			return out, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r StopRepository) GetByID(ctx context.Context, id int64) (models.Stop, error) {
	var s models.Stop
	err := r.q().QueryRowContext(ctx, `
		SELECT stop_id, stop_name, COALESCE(location, '')
		FROM stops
		WHERE stop_id = ?
	`, id).Scan(&s.ID, &s.Name, &s.Location)
	return s, err
}

func (r StopRepository) Create(ctx context.Context, s models.Stop) (int64, error) {
	res, err := r.q().ExecContext(ctx, `INSERT INTO stops (stop_name, location) VALUES (?, ?)`, s.Name, s.Location)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r StopRepository) Update(ctx context.Context, s models.Stop) error {
	res, err := r.q().ExecContext(ctx, `UPDATE stops SET stop_name = ?, location = ? WHERE stop_id = ?`, s.Name, s.Location, s.ID)
	if err != nil {
		return err
	}
	return affected(res)
}

func (r StopRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.q().ExecContext(ctx, `DELETE FROM stops WHERE stop_id = ?`, id)
	if err != nil {
		return err
	}
	return affected(res)
}

func (r StopRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.q().QueryRowContext(ctx, `SELECT COUNT(*) FROM stops`).Scan(&n)
	return n, err
}
