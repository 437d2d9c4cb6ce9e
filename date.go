package imap

import (
	"fmt"
	"strings"
	"time"
)

// Date and time layouts.
const (
	// Described in RFC 9051 section 9, date-time. The day may be space-padded
	// on the wire.
	DateTimeLayout = "02-Jan-2006 15:04:05 -0700"
	// Described in RFC 9051 section 9, date.
	DateLayout = "2-Jan-2006"
	// Described in RFC 5322 section 3.3.
	MessageDateTimeLayout = "Mon, 02 Jan 2006 15:04:05 -0700"
)

const dateTimeParseLayout = "_2-Jan-2006 15:04:05 -0700"

// Permutations of the layouts defined in RFC 5322, section 3.3.
var messageDateTimeLayouts = [...]string{
	MessageDateTimeLayout, // popular, try it first
	"2 Jan 2006 15:04:05 -0700",
	"2 Jan 2006 15:04:05 MST",
	"2 Jan 2006 15:04:05 -0700 (MST)",
	"2 Jan 2006 15:04 -0700",
	"2 Jan 2006 15:04 MST",
	"2 Jan 2006 15:04 -0700 (MST)",
	"2 Jan 06 15:04:05 -0700",
	"2 Jan 06 15:04:05 MST",
	"2 Jan 06 15:04:05 -0700 (MST)",
	"2 Jan 06 15:04 -0700",
	"2 Jan 06 15:04 MST",
	"2 Jan 06 15:04 -0700 (MST)",
	"02 Jan 2006 15:04:05 -0700",
	"02 Jan 2006 15:04:05 MST",
	"02 Jan 2006 15:04:05 -0700 (MST)",
	"02 Jan 2006 15:04 -0700",
	"02 Jan 2006 15:04 MST",
	"02 Jan 2006 15:04 -0700 (MST)",
	"02 Jan 06 15:04:05 -0700",
	"02 Jan 06 15:04:05 MST",
	"02 Jan 06 15:04:05 -0700 (MST)",
	"02 Jan 06 15:04 -0700",
	"02 Jan 06 15:04 MST",
	"02 Jan 06 15:04 -0700 (MST)",
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	"Mon, 2 Jan 2006 15:04:05 -0700 (MST)",
	"Mon, 2 Jan 2006 15:04 -0700",
	"Mon, 2 Jan 2006 15:04 MST",
	"Mon, 2 Jan 2006 15:04 -0700 (MST)",
	"Mon, 2 Jan 06 15:04:05 -0700",
	"Mon, 2 Jan 06 15:04:05 MST",
	"Mon, 2 Jan 06 15:04:05 -0700 (MST)",
	"Mon, 2 Jan 06 15:04 -0700",
	"Mon, 2 Jan 06 15:04 MST",
	"Mon, 2 Jan 06 15:04 -0700 (MST)",
	"Mon, 02 Jan 2006 15:04:05 MST",
	"Mon, 02 Jan 2006 15:04:05 -0700 (MST)",
	"Mon, 02 Jan 2006 15:04 -0700",
	"Mon, 02 Jan 2006 15:04 MST",
	"Mon, 02 Jan 2006 15:04 -0700 (MST)",
	"Mon, 02 Jan 06 15:04:05 -0700",
	"Mon, 02 Jan 06 15:04:05 MST",
	"Mon, 02 Jan 06 15:04:05 -0700 (MST)",
	"Mon, 02 Jan 06 15:04 -0700",
	"Mon, 02 Jan 06 15:04 MST",
	"Mon, 02 Jan 06 15:04 -0700 (MST)",
}

// Try parsing the date based on the layouts defined in RFC 5322, section 3.3.
// Inspired by https://github.com/golang/go/blob/master/src/net/mail/message.go
func ParseMessageDateTime(maybeDate string) (time.Time, error) {
	maybeDate = strings.TrimSpace(maybeDate)
	for _, layout := range messageDateTimeLayouts {
		parsed, err := time.Parse(layout, maybeDate)
		if err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("imap: date %q could not be parsed", maybeDate)
}

// ParseDateTime parses a date-time value, without the surrounding quotes.
//
// The returned time is in UTC if the zone offset is zero, in an unnamed fixed
// zone otherwise.
func ParseDateTime(s string) (time.Time, error) {
	t, err := time.Parse(dateTimeParseLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("imap: invalid date-time %q", s)
	}
	_, offset := t.Zone()
	loc := time.UTC
	if offset != 0 {
		loc = time.FixedZone("", offset)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc), nil
}

// ParseDate parses a date value, as used by SEARCH. The returned time is
// midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("imap: invalid date %q", s)
	}
	return t, nil
}

func validateDateTime(t time.Time) error {
	if t.IsZero() {
		return fmt.Errorf("imap: missing date-time")
	}
	if y := t.Year(); y < 1 || y > 9999 {
		return fmt.Errorf("imap: date-time year %v out of range", y)
	}
	if t.Nanosecond() != 0 {
		return fmt.Errorf("imap: date-time has sub-second precision")
	}
	name, offset := t.Zone()
	if offset%60 != 0 || offset <= -100*3600 || offset >= 100*3600 {
		return fmt.Errorf("imap: date-time zone offset %v cannot be represented", offset)
	}
	if offset == 0 && t.Location() != time.UTC {
		return fmt.Errorf("imap: date-time with a zero offset must be in UTC")
	}
	if offset != 0 && (name != "" || t.Location().String() != "") {
		return fmt.Errorf("imap: date-time must use an unnamed fixed zone")
	}
	return nil
}

func validateDate(t time.Time) error {
	if t.IsZero() {
		return fmt.Errorf("imap: missing date")
	}
	if y := t.Year(); y < 1 || y > 9999 {
		return fmt.Errorf("imap: date year %v out of range", y)
	}
	if t.Location() != time.UTC || !t.Equal(t.Truncate(24*time.Hour)) {
		return fmt.Errorf("imap: date must be midnight UTC")
	}
	return nil
}
