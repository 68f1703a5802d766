package models

import (
	"encoding/json"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar day. The backend serializes leave dates as YYYY-MM-DD,
// but RFC3339 timestamps are accepted on input for compatibility.
type Date struct {
	time.Time
}

// ParseDate accepts YYYY-MM-DD or RFC3339.
func ParseDate(value string) (Date, error) {
	value = strings.TrimSpace(value)
	if parsed, err := time.Parse(dateLayout, value); err == nil {
		return Date{parsed}, nil
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return Date{}, err
	}
	return Date{parsed}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Before reports whether d is an earlier day than other.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}
