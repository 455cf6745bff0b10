package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the wire and storage format of calendar dates.
const DateLayout = "2006-01-02"

// parseLayout also accepts single-digit month and day ("2024-3-5").
const parseLayout = "2006-1-2"

// Date is a calendar date without a time component.
type Date struct {
	t time.Time
}

// NewDate builds a Date from its components.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses YYYY-MM-DD. The boolean is false for anything else.
func ParseDate(s string) (Date, bool) {
	t, err := time.Parse(parseLayout, s)
	if err != nil {
		return Date{}, false
	}

	return Date{t: t}, true
}

// DateFromAny returns a pointer to the parsed date when v is a string in
// YYYY-MM-DD form, and nil otherwise.
func DateFromAny(v any) *Date {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	d, ok := ParseDate(s)
	if !ok {
		return nil
	}

	return &d
}

func (d Date) String() string {
	return d.t.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, ok := ParseDate(s)
	if !ok {
		return fmt.Errorf("invalid date %q", s)
	}
	*d = parsed

	return nil
}

// Value stores the date as TEXT so lexical comparison matches date order.
func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}

func (d *Date) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	case time.Time:
		*d = NewDate(v.Year(), v.Month(), v.Day())
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
	parsed, ok := ParseDate(s)
	if !ok {
		return fmt.Errorf("invalid stored date %q", s)
	}
	*d = parsed

	return nil
}
