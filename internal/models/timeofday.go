package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// TimeOfDay is a clock time without a date, stored as a Postgres time column
// and carried on the wire as "HH:MM:SS". It is the unit of vehicle
// availability windows and delivery time slots.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// ParseTimeOfDay parses a "HH:MM:SS" string. Trailing text after the seconds
// component is rejected.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parsed, err := time.Parse("15:04:05", s)
	if err != nil {
		return TimeOfDay{}, errors.Wrapf(err, "invalid time of day %q", s)
	}
	return TimeOfDay{Hour: parsed.Hour(), Minute: parsed.Minute(), Second: parsed.Second()}, nil
}

// Seconds returns the offset from midnight.
func (t TimeOfDay) Seconds() int {
	return t.Hour*3600 + t.Minute*60 + t.Second
}

// Before reports whether t is earlier than other.
func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.Seconds() < other.Seconds()
}

// After reports whether t is later than other.
func (t TimeOfDay) After(other TimeOfDay) bool {
	return t.Seconds() > other.Seconds()
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// MarshalJSON emits "HH:MM:SS".
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON accepts "HH:MM:SS".
func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value stores the clock time as its string form.
func (t TimeOfDay) Value() (driver.Value, error) {
	return t.String(), nil
}

// Scan reads a time column, which drivers surface as a string, byte slice or
// a time.Time on the zero date.
func (t *TimeOfDay) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case string:
		// Drivers may include fractional seconds on time columns.
		base, _, _ := strings.Cut(v, ".")
		parsed, err := ParseTimeOfDay(base)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case []byte:
		return t.Scan(string(v))
	case time.Time:
		t.Hour, t.Minute, t.Second = v.Hour(), v.Minute(), v.Second()
		return nil
	default:
		return errors.Errorf("cannot scan %T into TimeOfDay", src)
	}
}

// GormDataType maps TimeOfDay fields to a bare time column.
func (TimeOfDay) GormDataType() string {
	return "time"
}
