package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

const dateOnly = "2006-01-02"

// Date accepts both bare dates ("2024-01-01") and RFC 3339 timestamps on
// input, since the forms post the former and stored records echo the latter.
// It always marshals as RFC 3339 UTC.
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date { return Date{t.UTC()} }

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		d.Time = t.UTC()
		return nil
	}
	t, err := time.Parse(dateOnly, s)
	if err != nil {
		return fmt.Errorf("invalid date %q", s)
	}
	d.Time = t.UTC()
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.UTC().Format(time.RFC3339) + `"`), nil
}

// GormDataType maps Date onto the dialect's timestamp column type.
func (Date) GormDataType() string { return "time" }

func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Time, nil
}

func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		d.Time = time.Time{}
	case time.Time:
		d.Time = v.UTC()
	case string:
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return fmt.Errorf("scan date %q: %w", v, err)
		}
		d.Time = t.UTC()
	default:
		return fmt.Errorf("scan date: unsupported type %T", src)
	}
	return nil
}
