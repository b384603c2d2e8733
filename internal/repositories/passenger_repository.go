package repositories

import (
	"context"
	"database/sql"

	"transitbook/internal/domain/models"
)

type PassengerRepository struct {
	DB *sql.DB
	tx *sql.Tx
}

// WithTx returns a copy bound to tx.
func (r PassengerRepository) WithTx(tx *sql.Tx) PassengerRepository {
	r.tx = tx
	return r
}

func (r PassengerRepository) q() querier { return conn(r.DB, r.tx) }

// Create always inserts a new row; passengers are not matched by contact number.
func (r PassengerRepository) Create(ctx context.Context, p models.Passenger) (int64, error) {
	res, err := r.q().ExecContext(ctx, `
		INSERT INTO passengers (name, address, contact_no, email_id)
		VALUES (?, ?, ?, ?)
	`, p.Name, p.Address, p.ContactNo, p.Email)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r PassengerRepository) List(ctx context.Context) ([]models.Passenger, error) {
	rows, err := r.q().QueryContext(ctx, `
		SELECT passenger_id, name, COALESCE(address, ''), contact_no, COALESCE(email_id, '')
		FROM passengers
		ORDER BY passenger_id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Passenger{}
	for rows.Next() {
		var p models.Passenger
		if err := rows.Scan(&p.ID, &p.Name, &p.Address, &p.ContactNo, &p.Email); err != nil {
			return out, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
