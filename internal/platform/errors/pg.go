package errors

import (
	stderrs "errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE classes the subscription store can hit
const (
	sqlUniqueViolation  = "23505"
	sqlNotNullViolation = "23502"
	sqlCheckViolation   = "23514"
	sqlRightTruncation  = "22001"
	sqlReadOnly         = "25006"
	sqlCannotConnectNow = "57P03"
	sqlAdminShutdown    = "57P01"
)

// ExtractPgError returns the postgres error at the root of err, if any
func ExtractPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if stderrs.As(Root(err), &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// pgCode maps a SQLSTATE onto an ErrorCode
func pgCode(state string) ErrorCode {
	switch state {
	case sqlUniqueViolation:
		return ErrorCodeDuplicateKey
	case sqlNotNullViolation, sqlCheckViolation:
		return ErrorCodeValidation
	case sqlRightTruncation:
		return ErrorCodeInvalidArgument
	case sqlReadOnly, sqlCannotConnectNow, sqlAdminShutdown:
		return ErrorCodeUnavailable
	}
	return ErrorCodeDB
}

// FromPostgres wraps a store error with msg, picking the code from the SQLSTATE
// when err came from postgres and ErrorCodeDB otherwise
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	code := ErrorCodeDB
	if pgErr, ok := ExtractPgError(err); ok {
		code = pgCode(pgErr.Code)
		if col := pgErr.ColumnName; col != "" && code != ErrorCodeDB {
			return WithField(Wrap(err, code, msg), col)
		}
	}
	return Wrap(err, code, msg)
}
