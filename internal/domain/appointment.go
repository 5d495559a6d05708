package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// AppointmentRequest asks for a meeting with an onboarded customer. It is
// validated and echoed back, never stored.
type AppointmentRequest struct {
	CustomerID int64         `json:"customerId"`
	Datetime   LocalDateTime `json:"datetime"`
}

// Validate checks the required fields. The customer is not looked up.
func (a AppointmentRequest) Validate() error {
	errs := ValidationErrors{}
	if a.CustomerID < 1 {
		errs["customerId"] = "Customer ID must be a positive number"
	}
	if a.Datetime.IsZero() {
		errs["datetime"] = "dateTime is required field."
	}
	return errs.OrNil()
}

// localLayouts are tried in order. Fractional seconds are accepted by the
// first layout during parsing.
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.RFC3339Nano,
}

// LocalDateTime is a wall clock timestamp without a zone, as clients send it.
// The input text is kept so the value round-trips byte for byte.
type LocalDateTime struct {
	t   time.Time
	raw string
}

// ParseLocalDateTime parses an ISO-8601 local date-time. RFC 3339 values with
// an offset are accepted too.
func ParseLocalDateTime(s string) (LocalDateTime, error) {
	for _, layout := range localLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return LocalDateTime{t: t, raw: s}, nil
		}
	}
	return LocalDateTime{}, fmt.Errorf("invalid datetime %q: expected yyyy-MM-ddTHH:mm[:ss]", s)
}

// Time returns the parsed instant. Zone-less inputs are reported in UTC.
func (d LocalDateTime) Time() time.Time { return d.t }

// IsZero reports whether no datetime was supplied.
func (d LocalDateTime) IsZero() bool { return d.raw == "" }

func (d LocalDateTime) String() string { return d.raw }

func (d LocalDateTime) MarshalJSON() ([]byte, error) {
	if d.raw == "" {
		return []byte("null"), nil
	}
	return json.Marshal(d.raw)
}

func (d *LocalDateTime) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*d = LocalDateTime{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("datetime must be a string: %w", err)
	}
	if s == "" {
		*d = LocalDateTime{}
		return nil
	}
	parsed, err := ParseLocalDateTime(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
