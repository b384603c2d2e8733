package repositories

import (
	"database/sql"
	"time"

	intconfig "transitbook/internal/config"
	intdb "transitbook/internal/db"
)

type querier = intdb.Querier

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// conn picks the transaction when present, then the repo's DB, then the shared pool.
func conn(db *sql.DB, tx *sql.Tx) querier {
	if tx != nil {
		return tx
	}
	if db != nil {
		return db
	}
	return intconfig.DB
}

func int64Ptr(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}

func floatPtr(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}

func timePtr(n sql.NullTime) *time.Time {
	if !n.Valid {
		return nil
	}
	v := n.Time
	return &v
}

func nullInt64(p *int64) any {
	if p == nil {
		return nil
	}
	return intdb.NullIfZero(*p)
}

func nullFloat(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

func nullTime(p *time.Time) any {
	if p == nil || p.IsZero() {
		return nil
	}
	return *p
}

func nullString(s string) any {
	return intdb.NullIfEmpty(s)
}

func likePattern(q string) string {
	return "%" + q + "%"
}

// affected returns sql.ErrNoRows when the statement touched nothing.
func affected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
