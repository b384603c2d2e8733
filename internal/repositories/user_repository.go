package repositories

import (
	"context"
	"database/sql"

	"transitbook/internal/domain"
	"transitbook/internal/domain/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) q() querier { return conn(r.DB, nil) }

func scanUser(sc scanner) (models.User, error) {
	var (
		u       models.User
		role    string
		created sql.NullTime
	)
	if err := sc.Scan(&u.ID, &u.Username, &u.PasswordHash, &role, &created); err != nil {
		return u, err
	}
	u.Role = domain.Role(role)
	u.CreatedAt = created.Time
	return u, nil
}

func (r UserRepository) GetByUsername(ctx context.Context, username string) (models.User, error) {
	return scanUser(r.q().QueryRowContext(ctx, `
		SELECT user_id, username, password_hash, role, created_at
		FROM users
		WHERE username = ?
	`, username))
}

func (r UserRepository) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.q().QueryContext(ctx, `
		SELECT user_id, username, password_hash, role, created_at
		FROM users
		ORDER BY user_id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return out, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r UserRepository) Create(ctx context.Context, u models.User) (int64, error) {
	res, err := r.q().ExecContext(ctx, `
		INSERT INTO users (username, password_hash, role)
		VALUES (?, ?, ?)
	`, u.Username, u.PasswordHash, string(u.Role))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r UserRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.q().QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}
