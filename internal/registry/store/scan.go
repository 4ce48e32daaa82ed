package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

var dateLayouts = []string{
	time.DateOnly,
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	time.DateTime,
}

// dbDate scans a DATE column from either driver family: pgx and lib/pq
// return time.Time, SQLite may hand back text.
type dbDate struct {
	dst **time.Time
	req *time.Time
}

func date(dst *time.Time) sql.Scanner      { return dbDate{req: dst} }
func nullDate(dst **time.Time) sql.Scanner { return dbDate{dst: dst} }

func (d dbDate) Scan(src any) error {
	var (
		t   time.Time
		err error
	)
	switch v := src.(type) {
	case nil:
		if d.req != nil {
			return fmt.Errorf("date column is null")
		}
		*d.dst = nil
		return nil
	case time.Time:
		t = v
	case string:
		t, err = parseDate(v)
	case []byte:
		t, err = parseDate(string(v))
	default:
		return fmt.Errorf("unsupported date type %T", src)
	}
	if err != nil {
		return err
	}
	t = t.UTC()
	if d.req != nil {
		*d.req = t
		return nil
	}
	*d.dst = &t
	return nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parse date %q", s)
}
