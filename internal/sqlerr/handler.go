package sqlerr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// ErrCode reports the Code carried by err, or Other.
func ErrCode(err error) Code {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code
	}
	return Other
}

// ConvertPgError converts a pgx error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// ConvertPqError converts a lib/pq error.
func ConvertPqError(src *pq.Error) *Error {
	return &Error{
		Code:           MapCode(string(src.Code)),
		DatabaseCode:   string(src.Code),
		Message:        src.Message,
		TableName:      src.Table,
		ColumnName:     src.Column,
		ConstraintName: src.Constraint,
		driverErr:      src,
	}
}

// HandleError converts driver errors into *Error and returns any other error
// unchanged. A nil err stays nil.
func HandleError(err error) error {
	if err == nil {
		return nil
	}

	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return ConvertPgError(pgErr)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return ConvertPqError(pqErr)
	}

	return err
}
