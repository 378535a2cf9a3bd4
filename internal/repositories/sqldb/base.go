package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"shoe-assistant-api/internal/repositories"

	"github.com/sirupsen/logrus"
)

// baseRepository provides statement execution with logging for all repositories.
// Queries use "?" placeholders, understood by both MySQL and SQLite.
type baseRepository struct {
	db     *sql.DB
	table  string
	logger *logrus.Logger
}

func newBaseRepository(db *sql.DB, table string, logger *logrus.Logger) baseRepository {
	if logger == nil {
		logger = logrus.New()
	}
	return baseRepository{
		db:     db,
		table:  table,
		logger: logger,
	}
}

// logQuery logs a query with its execution time
func (r *baseRepository) logQuery(operation string, query string, args []interface{}, duration time.Duration, err error) {
	fields := logrus.Fields{
		"operation": operation,
		"table":     r.table,
		"query":     query,
		"args":      args,
		"duration":  duration,
	}

	if err != nil {
		fields["error"] = err.Error()
		r.logger.WithFields(fields).Error("Query failed")
	} else {
		r.logger.WithFields(fields).Debug("Query executed")
	}
}

// executeQuery executes a query and logs the result
func (r *baseRepository) executeQuery(ctx context.Context, operation, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := r.db.QueryContext(ctx, query, args...)
	r.logQuery(operation, query, args, time.Since(start), err)

	if err != nil {
		return nil, repositories.NewRepositoryError(operation, r.table, "", err)
	}

	return rows, nil
}

// executeQueryRow executes a single-row query and logs the result
func (r *baseRepository) executeQueryRow(ctx context.Context, operation, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := r.db.QueryRowContext(ctx, query, args...)
	r.logQuery(operation, query, args, time.Since(start), row.Err())

	return row
}

// executeExec executes a non-query statement and logs the result
func (r *baseRepository) executeExec(ctx context.Context, operation, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	result, err := r.db.ExecContext(ctx, query, args...)
	r.logQuery(operation, query, args, time.Since(start), err)

	if err != nil {
		return nil, repositories.NewRepositoryError(operation, r.table, "", err)
	}

	return result, nil
}

// scanError maps sql.ErrNoRows to a not-found error
func (r *baseRepository) scanError(operation, entity, key string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return repositories.NotFoundError(entity, key)
	}
	return repositories.NewRepositoryError(operation, entity, key, err)
}

// checkRowsAffected checks that a statement touched at least one row
func (r *baseRepository) checkRowsAffected(result sql.Result, operation, entity string, id int64) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return repositories.NewRepositoryError(operation, entity, formatID(id), err)
	}

	if rowsAffected == 0 {
		return repositories.NotFoundError(entity, formatID(id))
	}

	return nil
}

// validateID rejects non-positive IDs before any statement runs
func (r *baseRepository) validateID(entity string, id int64) error {
	if id <= 0 {
		return repositories.NewRepositoryError("validate", entity, formatID(id), repositories.ErrInvalidID)
	}
	return nil
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
