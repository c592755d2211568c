package schemazoid

import (
	"fmt"
	"strings"
	"time"
)

// isoLayout renders a timestamp the way Python's isoformat does: fractional
// seconds only when present, and a numeric offset even for UTC ("+00:00"
// rather than "Z").
const isoLayout = "2006-01-02T15:04:05.999999999-07:00"

// timestampLayouts are the accepted shapes of an extended ISO-8601 timestamp
// when no explicit parse format is configured. Inputs without an offset are
// interpreted as UTC.
var timestampLayouts = []string{
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"20060102T150405.999999999Z07:00",
	"20060102T150405Z0700",
	"20060102T150405",
	"20060102150405",
	"2006-01-02",
	"20060102",
}

// clockLayouts are the accepted shapes of a bare time-of-day string. They are
// tried before timestampLayouts so a compact string like "093331" reads as a
// clock rather than a date.
var clockLayouts = []string{
	"15:04:05.999999999",
	"15:04:05",
	"15:04",
	"150405",
}

func parseTimestamp(input string) (time.Time, error) {
	trimmed := strings.TrimSpace(input)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, nil
		}
	}
	return time.Time{}, conversionErr("parse timestamp %q", input)
}

// Date is a calendar date with no time of day and no offset.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the date component of t.
func DateOf(t time.Time) Date {
	year, month, day := t.Date()
	return Date{Year: year, Month: month, Day: day}
}

// In returns the midnight instant of d in the given location.
func (d Date) In(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// String renders d in ISO-8601 form, e.g. "2010-12-28".
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// TimeOfDay is a clock reading with no date and no offset.
type TimeOfDay struct {
	Hour       int
	Minute     int
	Second     int
	Nanosecond int
}

// TimeOf returns the time-of-day component of t.
func TimeOf(t time.Time) TimeOfDay {
	return TimeOfDay{
		Hour:       t.Hour(),
		Minute:     t.Minute(),
		Second:     t.Second(),
		Nanosecond: t.Nanosecond(),
	}
}

// On places the clock reading on the given date in the given location.
func (c TimeOfDay) On(d Date, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, c.Hour, c.Minute, c.Second, c.Nanosecond, loc)
}

// String renders c in ISO-8601 form, e.g. "09:33:31".
func (c TimeOfDay) String() string {
	base := fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Minute, c.Second)
	if c.Nanosecond == 0 {
		return base
	}
	frac := strings.TrimRight(fmt.Sprintf("%09d", c.Nanosecond), "0")
	return base + "." + frac
}

// DateTimeField holds a time.Time.
//
// Format is the parse layout for text input (reference-time form, as in the
// time package); when empty, input is parsed as an extended ISO-8601
// timestamp supporting a bare Z suffix, explicit +HH:MM/-HH:MM offsets and
// the compact no-separator form. SerialFormat is the render layout; when
// empty, values serialize as ISO-8601 preserving any attached offset.
type DateTimeField struct {
	Format       string
	SerialFormat string
}

var _ Field = DateTimeField{}

func (f DateTimeField) ToNative(value any) (any, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case time.Time:
		return v, nil
	case string:
		if f.Format != "" {
			t, err := time.Parse(f.Format, v)
			if err != nil {
				return nil, conversionErr("parse timestamp %q against layout %q", v, f.Format)
			}
			return t, nil
		}
		return parseTimestamp(v)
	default:
		return nil, conversionErr("timestamp from %T", value)
	}
}

func (f DateTimeField) ToSerial(value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	t, ok := value.(time.Time)
	if !ok {
		return nil, conversionErr("serialize timestamp from %T", value)
	}
	if f.SerialFormat != "" {
		return t.Format(f.SerialFormat), nil
	}
	return t.Format(isoLayout), nil
}

// DateField holds a [Date]. Text input follows the DateTimeField format
// rules; only the date component is kept.
type DateField struct {
	Format       string
	SerialFormat string
}

var _ Field = DateField{}

func (f DateField) ToNative(value any) (any, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case Date:
		return v, nil
	case time.Time:
		return DateOf(v), nil
	}

	t, err := DateTimeField{Format: f.Format}.ToNative(value)
	if err != nil {
		return nil, err
	}
	return DateOf(t.(time.Time)), nil
}

func (f DateField) ToSerial(value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	d, ok := value.(Date)
	if !ok {
		return nil, conversionErr("serialize date from %T", value)
	}
	if f.SerialFormat != "" {
		return d.In(time.UTC).Format(f.SerialFormat), nil
	}
	return d.String(), nil
}

// TimeField holds a [TimeOfDay]. A full timestamp input yields its time
// component; a bare time-of-day string is matched against clock layouts
// before the timestamp layouts, so compact numeric strings read as clocks
// rather than dates.
type TimeField struct {
	Format       string
	SerialFormat string
}

var _ Field = TimeField{}

func (f TimeField) ToNative(value any) (any, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case TimeOfDay:
		return v, nil
	case time.Time:
		return TimeOf(v), nil
	case string:
		if f.Format != "" {
			t, err := time.Parse(f.Format, v)
			if err != nil {
				return nil, conversionErr("parse time %q against layout %q", v, f.Format)
			}
			return TimeOf(t), nil
		}
		trimmed := strings.TrimSpace(v)
		for _, layout := range clockLayouts {
			if t, err := time.Parse(layout, trimmed); err == nil {
				return TimeOf(t), nil
			}
		}
		t, err := parseTimestamp(v)
		if err != nil {
			return nil, err
		}
		return TimeOf(t), nil
	default:
		return nil, conversionErr("time from %T", value)
	}
}

func (f TimeField) ToSerial(value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	c, ok := value.(TimeOfDay)
	if !ok {
		return nil, conversionErr("serialize time from %T", value)
	}
	if f.SerialFormat != "" {
		return c.On(Date{Year: 1, Month: time.January, Day: 1}, time.UTC).Format(f.SerialFormat), nil
	}
	return c.String(), nil
}
