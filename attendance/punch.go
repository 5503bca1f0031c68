package attendance

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Punch is an optional clock time. The zero value is a missing punch.
type Punch struct {
	offset time.Duration
	valid  bool
}

// ParseError reports a punch value that is neither a 12-hour clock time nor
// a missing-value marker.
type ParseError struct {
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse punch time %q: %v", e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

var errNotClockTime = errors.New("expected 12-hour time with AM/PM marker")

var punchLayouts = []string{
	"3:04 PM",
	"3:04PM",
	"3:04:05 PM",
	"3:04:05PM",
}

var missingMarkers = map[string]bool{
	"":     true,
	"-":    true,
	"--":   true,
	"NAN":  true,
	"NAT":  true,
	"NONE": true,
	"NULL": true,
}

// At returns a present punch at the given 24-hour clock time.
func At(hour, minute int) Punch {
	return Punch{
		offset: time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute,
		valid:  true,
	}
}

// ParsePunch converts raw sheet text into a Punch. Missing-value markers
// yield the zero Punch and no error.
func ParsePunch(raw string) (Punch, error) {
	value := strings.ToUpper(strings.TrimSpace(raw))
	if missingMarkers[value] {
		return Punch{}, nil
	}

	for _, layout := range punchLayouts {
		parsed, err := time.Parse(layout, value)
		if err != nil {
			continue
		}
		offset := time.Duration(parsed.Hour())*time.Hour +
			time.Duration(parsed.Minute())*time.Minute +
			time.Duration(parsed.Second())*time.Second
		return Punch{offset: offset, valid: true}, nil
	}

	return Punch{}, &ParseError{Value: raw, Err: errNotClockTime}
}

func (p Punch) Valid() bool {
	return p.valid
}

func (p Punch) Hour() int {
	return int(p.offset / time.Hour)
}

// SinceMidnight returns the punch as an offset from 00:00.
func (p Punch) SinceMidnight() time.Duration {
	return p.offset
}

func (p Punch) String() string {
	if !p.valid {
		return "-"
	}
	return time.Date(0, 1, 1, 0, 0, 0, 0, time.UTC).Add(p.offset).Format("03:04 PM")
}
