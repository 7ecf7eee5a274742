package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// DateLayout is the dd/mm/yy layout used for display and input.
	DateLayout = "02/01/06"

	isoLayout = "2006-01-02"
	day       = 24 * time.Hour
)

// Date is a calendar day without time of day or zone.
// The zero value means "no date".
type Date struct {
	t time.Time // always midnight UTC
}

// NewDate returns the date for the given calendar components.
// Out-of-range components roll over the way time.Date does.
func NewDate(year int, month time.Month, dayOfMonth int) Date {
	return Date{t: time.Date(year, month, dayOfMonth, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// Today returns the current calendar day in the local zone.
func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses a dd/mm/yy string. Two-digit years map to 2000+yy.
func ParseDate(text string) (Date, error) {
	fields := strings.Split(strings.TrimSpace(text), "/")
	if len(fields) != 3 {
		return Date{}, &FormatError{Input: text, Reason: "expected three fields"}
	}

	var nums [3]int
	for i, field := range fields {
		if len(field) == 0 || len(field) > 2 {
			return Date{}, &FormatError{Input: text, Reason: fmt.Sprintf("field %d must have one or two digits", i+1)}
		}
		if strings.TrimLeft(field, "0123456789") != "" {
			return Date{}, &FormatError{Input: text, Reason: fmt.Sprintf("field %d is not numeric", i+1)}
		}
		n, err := strconv.Atoi(field)
		if err != nil {
			return Date{}, &FormatError{Input: text, Reason: fmt.Sprintf("field %d is not numeric", i+1)}
		}
		nums[i] = n
	}
	if len(fields[2]) != 2 {
		return Date{}, &FormatError{Input: text, Reason: "year must have two digits"}
	}

	dd, mm, yy := nums[0], nums[1], nums[2]
	if mm < 1 || mm > 12 {
		return Date{}, &FormatError{Input: text, Reason: "month out of range"}
	}

	d := NewDate(2000+yy, time.Month(mm), dd)
	if d.t.Day() != dd || int(d.t.Month()) != mm {
		return Date{}, &FormatError{Input: text, Reason: "day out of range"}
	}
	return d, nil
}

// FormatDate renders d as zero-padded dd/mm/yy.
func FormatDate(d Date) string {
	return d.t.Format(DateLayout)
}

// DaysBetween returns the signed number of days from a to b.
func DaysBetween(a, b Date) int {
	return int(b.t.Sub(a.t) / day)
}

// AddDays returns d shifted by n days.
func AddDays(d Date, n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// ISO renders d in the 2006-01-02 storage layout.
func (d Date) ISO() string { return d.t.Format(isoLayout) }

func (d Date) Time() time.Time        { return d.t }
func (d Date) IsZero() bool           { return d.t.IsZero() }
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }
func (d Date) After(other Date) bool  { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool  { return d.t.Equal(other.t) }

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return FormatDate(d)
}

// MarshalText encodes d in the dd/mm/yy wire format.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText decodes the dd/mm/yy wire format. Empty input yields the zero date.
func (d *Date) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
