package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/eduvillage-api/internal/models"
)

// ErrDuplicate is returned when an insert hits a uniqueness constraint. The
// constraint, not a prior existence check, is the authority on conflicts.
var ErrDuplicate = errors.New("duplicate record")

// ErrMissingReference is returned when an insert points at a row that does not exist.
var ErrMissingReference = errors.New("referenced record does not exist")

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
	myDuplicateEntry      = 1062
	myNoReferencedRow     = 1452
)

// Queries in this package are written with `?` placeholders and rebound to
// the connection's dialect, so the same statements serve Postgres and MySQL.
func rebind(db *sqlx.DB, query string) string {
	return db.Rebind(query)
}

// insertReturningID runs an INSERT and reports the new row's identifier.
// Postgres has no LastInsertId, so the statement gets a RETURNING clause there.
func insertReturningID(ctx context.Context, db *sqlx.DB, op, query string, args ...interface{}) (models.ID, error) {
	query = rebind(db, query)
	if sqlx.BindType(db.DriverName()) == sqlx.DOLLAR {
		var id models.ID
		if err := db.QueryRowxContext(ctx, query+" RETURNING id", args...).Scan(&id); err != nil {
			return 0, translate(op, err)
		}
		return id, nil
	}

	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, translate(op, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%s: last insert id: %w", op, err)
	}
	return models.ID(id), nil
}

func translate(op string, err error) error {
	switch {
	case isUniqueViolation(err):
		return fmt.Errorf("%s: %w", op, ErrDuplicate)
	case isForeignKeyViolation(err):
		return fmt.Errorf("%s: %w", op, ErrMissingReference)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqUniqueViolation
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == myDuplicateEntry
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqForeignKeyViolation
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == myNoReferencedRow
	}
	return false
}

func exists(ctx context.Context, db *sqlx.DB, op, query string, args ...interface{}) (bool, error) {
	var found int
	if err := db.GetContext(ctx, &found, rebind(db, query), args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return true, nil
}
