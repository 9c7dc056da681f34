package repository

import (
	"database/sql"
	"time"
)

// dateLayout is the storage format for calendar dates (no time component).
const dateLayout = "2006-01-02"

// parseNullableTime parses a sql.NullString into a *time.Time using the given layout.
// Returns nil if the value is NULL, empty, or fails to parse.
func parseNullableTime(s sql.NullString, layout string) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(layout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

// nullableTimeToString converts a *time.Time to a value suitable for SQLite storage.
// Returns nil (SQL NULL) if the pointer is nil, otherwise returns the formatted string.
func nullableTimeToString(t *time.Time, layout string) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(layout)
}

// rawToValue converts a JSON blob to a value suitable for SQLite storage.
// Returns nil (SQL NULL) for an empty blob.
func rawToValue(raw []byte) interface{} {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}
