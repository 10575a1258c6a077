package repository

import (
	"database/sql"
	"strings"
	"time"
)

// nullableID converts a *int64 to a value suitable for SQLite storage.
// Returns nil (SQL NULL) if the pointer is nil.
func nullableID(v *int64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

// scanNullableID converts a scanned sql.NullInt64 back to a *int64.
func scanNullableID(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	id := v.Int64
	return &id
}

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint
// failure on the given column.
func isUniqueViolation(err error, column string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") && strings.Contains(msg, column)
}

// nowUTC returns the current UTC time truncated to whole seconds, the
// granularity stored in the database.
func nowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
