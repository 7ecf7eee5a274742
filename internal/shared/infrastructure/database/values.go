package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

const (
	sqliteTimeLayout = "2006-01-02T15:04:05.000000Z07:00"
	sqliteDateLayout = "2006-01-02"
)

// IsNoRows reports whether err means a lookup found nothing, for either driver.
func IsNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows)
}

// TimeArg encodes t for a timestamp column. SQLite stores fixed-width UTC
// text so that string comparison orders correctly.
func TimeArg(d Driver, t time.Time) any {
	if d == DriverSQLite {
		return t.UTC().Format(sqliteTimeLayout)
	}
	return t.UTC()
}

// DateArg encodes the calendar day of t for a DATE column.
func DateArg(d Driver, t time.Time) any {
	if d == DriverSQLite {
		return t.Format(sqliteDateLayout)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Timestamp scans DATE and TIMESTAMPTZ values from PostgreSQL as well as
// the text SQLite stores for them. NULL leaves Valid false.
type Timestamp struct {
	Time  time.Time
	Valid bool
}

// Scan implements sql.Scanner.
func (ts *Timestamp) Scan(src any) error {
	var text string
	switch v := src.(type) {
	case nil:
		*ts = Timestamp{}
		return nil
	case time.Time:
		*ts = Timestamp{Time: v.UTC(), Valid: true}
		return nil
	case string:
		text = v
	case []byte:
		text = string(v)
	default:
		return fmt.Errorf("scan timestamp: unsupported type %T", src)
	}

	for _, layout := range []string{time.RFC3339Nano, sqliteDateLayout} {
		if t, err := time.Parse(layout, text); err == nil {
			*ts = Timestamp{Time: t.UTC(), Valid: true}
			return nil
		}
	}
	return fmt.Errorf("scan timestamp: cannot parse %q", text)
}

// Ptr returns nil for NULL, otherwise a pointer to the time.
func (ts Timestamp) Ptr() *time.Time {
	if !ts.Valid {
		return nil
	}
	t := ts.Time
	return &t
}
