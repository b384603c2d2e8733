package repositories

import (
	"context"
	"database/sql"

	"transitbook/internal/domain/models"
)

type DriverRepository struct {
	DB *sql.DB
}

func (r DriverRepository) q() querier { return conn(r.DB, nil) }

const driverColumns = `driver_id, first_name, COALESCE(last_name, ''), COALESCE(license_no, ''),
	COALESCE(phone, ''), salary, COALESCE(address, ''), is_active`

func scanDriver(sc scanner) (models.Driver, error) {
	var (
		d      models.Driver
		salary sql.NullFloat64
	)
	if err := sc.Scan(&d.ID, &d.FirstName, &d.LastName, &d.LicenseNo, &d.Phone, &salary, &d.Address, &d.IsActive); err != nil {
		return d, err
	}
	d.Salary = floatPtr(salary)
	return d, nil
}

// List returns drivers; active filters on is_active when non-nil.
func (r DriverRepository) List(ctx context.Context, active *bool) ([]models.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers`
	args := []any{}
	if active != nil {
		query += ` WHERE is_active = ?`
		args = append(args, *active)
	}
	query += ` ORDER BY driver_id DESC`

	rows, err := r.q().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Driver{}
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return out, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r DriverRepository) GetByID(ctx context.Context, id int64) (models.Driver, error) {
	return scanDriver(r.q().QueryRowContext(ctx, `SELECT `+driverColumns+` FROM drivers WHERE driver_id = ?`, id))
}

func (r DriverRepository) Create(ctx context.Context, d models.Driver) (int64, error) {
	res, err := r.q().ExecContext(ctx, `
		INSERT INTO drivers (first_name, last_name, license_no, phone, salary, address, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, d.FirstName, d.LastName, nullString(d.LicenseNo), d.Phone, nullFloat(d.Salary), d.Address, d.IsActive)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r DriverRepository) Update(ctx context.Context, d models.Driver) error {
	res, err := r.q().ExecContext(ctx, `
		UPDATE drivers
		SET first_name = ?, last_name = ?, license_no = ?, phone = ?, salary = ?, address = ?, is_active = ?
		WHERE driver_id = ?
	`, d.FirstName, d.LastName, nullString(d.LicenseNo), d.Phone, nullFloat(d.Salary), d.Address, d.IsActive, d.ID)
	if err != nil {
		return err
	}
	return affected(res)
}

func (r DriverRepository) SetActive(ctx context.Context, id int64, active bool) error {
	res, err := r.q().ExecContext(ctx, `UPDATE drivers SET is_active = ? WHERE driver_id = ?`, active, id)
	if err != nil {
		return err
	}
	return affected(res)
}

func (r DriverRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.q().ExecContext(ctx, `DELETE FROM drivers WHERE driver_id = ?`, id)
	if err != nil {
		return err
	}
	return affected(res)
}

func (r DriverRepository) CountActive(ctx context.Context) (int, error) {
	var n int
	err := r.q().QueryRowContext(ctx, `SELECT COUNT(*) FROM drivers WHERE is_active = TRUE`).Scan(&n)
	return n, err
}
