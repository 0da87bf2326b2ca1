// Package sqlerr normalises database driver errors.
//
// Both Postgres drivers used by the repositories (pgx through the GORM
// dialector, lib/pq through sqlx) report SQLSTATE codes; they are mapped onto
// a small Code enum so callers can branch without importing a driver.
package sqlerr

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type Code string

const (
	Other               Code = "other"
	UniqueViolation     Code = "unique_violation"
	NotNullViolation    Code = "not_null_violation"
	ForeignKeyViolation Code = "foreign_key_violation"
	CheckViolation      Code = "check_violation"
)

// MapCode maps a SQLSTATE to a Code.
func MapCode(sqlState string) Code {
	switch sqlState {
	case "23505":
		return UniqueViolation
	case "23502":
		return NotNullViolation
	case "23503":
		return ForeignKeyViolation
	case "23514":
		return CheckViolation
	default:
		return Other
	}
}

// Error is a driver error enriched with its mapped Code.
type Error struct {
	Code           Code
	DatabaseCode   string
	Message        string
	TableName      string
	ColumnName     string
	ConstraintName string

	driverErr error
}

func (e *Error) Error() string {
	if e.TableName == "" {
		return fmt.Sprintf("%s (%s): %s", e.Code, e.DatabaseCode, e.Message)
	}
	return fmt.Sprintf("%s on %s (%s): %s", e.Code, e.TableName, e.DatabaseCode, e.Message)
}

func (e *Error) Unwrap() error {
	return e.driverErr
}

// UserMessage renders the error for the startup printout.
func (e *Error) UserMessage() string {
	entity := humanize(strings.TrimSuffix(e.TableName, "s"))
	if entity == "" {
		entity = "Record"
	}

	switch e.Code {
	case UniqueViolation:
		if column := columnFromConstraint(e.ConstraintName); column != "" {
			return fmt.Sprintf("A %s with this %s already exists", entity, humanize(column))
		}
		return fmt.Sprintf("A %s with this identifier already exists", entity)
	case NotNullViolation:
		field := humanize(e.ColumnName)
		if field == "" {
			field = "field"
		}
		return fmt.Sprintf("The %s is required", field)
	case ForeignKeyViolation:
		return fmt.Sprintf("The referenced %s does not exist", entity)
	case CheckViolation:
		if field := humanize(e.ColumnName); field != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", field)
		}
		return "One or more values do not meet required conditions"
	default:
		return "An error occurred while accessing the database"
	}
}

func humanize(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// columnFromConstraint extracts the column of a "<table>_<column>_key" constraint.
func columnFromConstraint(name string) string {
	name = strings.TrimSuffix(name, "_key")
	if idx := strings.Index(name, "_"); idx >= 0 && idx < len(name)-1 {
		return name[idx+1:]
	}
	return ""
}
