package store

import (
	"database/sql"
	"fmt"
	"time"
)

// sqlite returns CURRENT_TIMESTAMP as text when the column type is lost
// (RETURNING, expressions); postgres returns time.Time.
var timeLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z",
	time.RFC3339Nano,
}

// timeScanner scans a timestamp stored by either driver into *time.Time.
type timeScanner struct {
	dest *time.Time
}

var _ sql.Scanner = timeScanner{}

func scanTime(dest *time.Time) timeScanner {
	return timeScanner{dest: dest}
}

func (s timeScanner) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*s.dest = time.Time{}
		return nil
	case time.Time:
		*s.dest = v
		return nil
	case string:
		return s.parse(v)
	case []byte:
		return s.parse(string(v))
	}

	return fmt.Errorf("cannot scan %T into time.Time", src)
}

func (s timeScanner) parse(v string) error {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			*s.dest = t
			return nil
		}
	}

	return fmt.Errorf("cannot parse %q as time", v)
}

// nullableID writes 0 as NULL.
func nullableID(id int64) any {
	if id == 0 {
		return nil
	}

	return id
}
