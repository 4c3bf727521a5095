// Package validation turns raw request fields into typed, range-checked
// values or field-level issues. Checks never fail fast: every field is
// validated independently and all issues are collected so a client can
// render every problem at once.
package validation

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/brewlogapp/brewlog-server/internal/errors"
)

// Issues accumulates field-level problems across a request.
type Issues []apperrors.FieldIssue

// Add appends an issue for a field.
func (is *Issues) Add(field, message string) {
	*is = append(*is, apperrors.FieldIssue{Field: field, Message: message})
}

// Empty reports whether no issues were collected.
func (is Issues) Empty() bool {
	return len(is) == 0
}

// Err converts the collected issues into a domain validation error,
// or nil when the request was clean.
func (is Issues) Err() error {
	if is.Empty() {
		return nil
	}
	return apperrors.Validation(is)
}

// RequiredString checks a required string field.
// Whitespace-only input counts as missing.
func (is *Issues) RequiredString(field, value string) {
	if strings.TrimSpace(value) == "" {
		is.Add(field, "is required")
	}
}

// Number is an optional JSON number field. Its UnmarshalJSON never fails:
// malformed input is recorded and surfaced as an issue during validation, so
// one bad field cannot abort decoding before the other fields are seen.
type Number struct {
	present bool
	numeric bool
	value   float64
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	n.present = true

	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return nil
	}
	n.numeric = true
	n.value = v
	return nil
}

// Present reports whether the field appeared in the request with a non-null value.
func (n Number) Present() bool {
	return n.present
}

// Int validates the field as an optional whole number within [min, max]
// and records any issue on is. Absent fields yield nil.
func (n Number) Int(is *Issues, field string, min, max int) *int {
	if !n.present {
		return nil
	}
	if !n.numeric {
		is.Add(field, "must be a number")
		return nil
	}
	if n.value != math.Trunc(n.value) {
		is.Add(field, "must be an integer")
		return nil
	}
	v := int(n.value)
	if v < min || v > max {
		is.Add(field, betweenMessage(float64(min), float64(max)))
		return nil
	}
	return &v
}

// Float validates the field as an optional decimal within [min, max]
// and records any issue on is. Absent fields yield nil.
func (n Number) Float(is *Issues, field string, min, max float64) *float64 {
	if !n.present {
		return nil
	}
	if !n.numeric {
		is.Add(field, "must be a number")
		return nil
	}
	if n.value < min || n.value > max {
		is.Add(field, betweenMessage(min, max))
		return nil
	}
	v := n.value
	return &v
}

// betweenMessage formats a bounds violation, trimming trailing zeros so
// integer bounds read "between 0 and 1000" rather than "between 0.0 and 1000.0".
func betweenMessage(min, max float64) string {
	return "must be between " +
		strconv.FormatFloat(min, 'f', -1, 64) + " and " +
		strconv.FormatFloat(max, 'f', -1, 64)
}

// DateFormat is the calendar date layout accepted in request bodies.
const DateFormat = "2006-01-02"

// Date is an optional JSON calendar-date field ("YYYY-MM-DD"). Like Number,
// its UnmarshalJSON is tolerant; parse problems surface as issues.
type Date struct {
	present   bool
	parseable bool
	value     time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		d.present = true
		return nil
	}
	if strings.TrimSpace(s) == "" {
		return nil
	}
	d.present = true

	t, err := time.Parse(DateFormat, strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	d.parseable = true
	d.value = t.UTC()
	return nil
}

// Present reports whether the field appeared with a non-empty value.
func (d Date) Present() bool {
	return d.present
}

// Required validates the field as a required calendar date.
func (d Date) Required(is *Issues, field string) *time.Time {
	if !d.present {
		is.Add(field, "is required")
		return nil
	}
	return d.check(is, field)
}

// Optional validates the field as an optional calendar date.
// Absent fields yield nil with no issue.
func (d Date) Optional(is *Issues, field string) *time.Time {
	if !d.present {
		return nil
	}
	return d.check(is, field)
}

func (d Date) check(is *Issues, field string) *time.Time {
	if !d.parseable {
		is.Add(field, "must be a valid date")
		return nil
	}
	v := d.value
	return &v
}
