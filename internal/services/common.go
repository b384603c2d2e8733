package services

import (
	"database/sql"
	"errors"
	"strings"

	intconfig "transitbook/internal/config"
	intdb "transitbook/internal/db"
	"transitbook/internal/domain"
)

func pool(db *sql.DB) *sql.DB {
	if db != nil {
		return db
	}
	return intconfig.DB
}

// repoErr translates a repository error into a domain error for resource.
func repoErr(resource, op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return domain.NotFoundError{Resource: resource, Err: err}
	case intdb.IsDuplicateKey(err):
		return domain.ConflictError{Resource: resource, Msg: "already exists", Err: err}
	case intdb.IsForeignKeyViolation(err):
		return domain.ValidationError{Field: resource, Msg: "references a missing row or is still referenced", Err: err}
	}
	return domain.Storage(op, err)
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return domain.ValidationError{Field: field, Msg: "required"}
	}
	return nil
}

func positiveID(field string, id int64) error {
	if id <= 0 {
		return domain.ValidationError{Field: field, Msg: "required"}
	}
	return nil
}

// firstErr returns the first non-nil error.
func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
