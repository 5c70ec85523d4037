// Package dates keeps every routine date anchored to a single timezone,
// so "today" means the same calendar day for the server, the database and the UI.
package dates

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
	_ "time/tzdata" // zone must resolve even on hosts without a tz database
)

const (
	DefaultTimezone = "America/Argentina/Buenos_Aires"

	// InputLayout is the layout used by date inputs and the ?fecha= query param.
	InputLayout = "2006-01-02"
)

var ErrInvalidDate = errors.New("invalid date")

var (
	weekdays = [...]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"}
	months   = [...]string{
		"enero", "febrero", "marzo", "abril", "mayo", "junio",
		"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
	}
	monthsShort = [...]string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sept", "oct", "nov", "dic"}
)

// accepted string layouts, date-only first
var layouts = []string{
	InputLayout,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// Zone converts and formats dates in one fixed location.
type Zone struct {
	loc *time.Location
	now func() time.Time
}

func NewZone(name string) (*Zone, error) {
	if name == "" {
		name = DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load location [%s]: %w", name, err)
	}
	return &Zone{
		loc: loc,
		now: time.Now,
	}, nil
}

// WithClock returns a copy of the zone using now as its clock.
func (z *Zone) WithClock(now func() time.Time) *Zone {
	return &Zone{
		loc: z.loc,
		now: now,
	}
}

func (z *Zone) Location() *time.Location {
	return z.loc
}

func (z *Zone) Now() time.Time {
	return z.now().In(z.loc)
}

// Today returns the start of the current day in the zone.
func (z *Zone) Today() time.Time {
	return z.StartOfDay(z.Now())
}

// Parse normalizes a string, time.Time or *time.Time into the zone.
// Date-only strings name a calendar day in the zone, never in server local time.
func (z *Zone) Parse(value any) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		if v.IsZero() {
			return time.Time{}, ErrInvalidDate
		}
		return v.In(z.loc), nil
	case *time.Time:
		if v == nil || v.IsZero() {
			return time.Time{}, ErrInvalidDate
		}
		return v.In(z.loc), nil
	case string:
		return z.ParseString(v)
	default:
		return time.Time{}, fmt.Errorf("%w: unsupported type %T", ErrInvalidDate, value)
	}
}

func (z *Zone) ParseString(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidDate
	}

	for _, layout := range layouts {
		var (
			t   time.Time
			err error
		)
		if layout == time.RFC3339 || layout == time.RFC3339Nano {
			t, err = time.Parse(layout, s)
		} else {
			t, err = time.ParseInLocation(layout, s, z.loc)
		}
		if err == nil {
			return t.In(z.loc), nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

func (z *Zone) IsValid(s string) bool {
	_, err := z.ParseString(s)
	return err == nil
}

func (z *Zone) StartOfDay(t time.Time) time.Time {
	t = t.In(z.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, z.loc)
}

// EndOfDay is the last representable instant of the day, at the database's microsecond precision.
func (z *Zone) EndOfDay(t time.Time) time.Time {
	return z.StartOfDay(t).AddDate(0, 0, 1).Add(-time.Microsecond)
}

// DayRange returns the inclusive [start, end] bounds of the day t falls in.
func (z *Zone) DayRange(t time.Time) (time.Time, time.Time) {
	return z.StartOfDay(t), z.EndOfDay(t)
}

func (z *Zone) SameDay(a, b time.Time) bool {
	a, b = a.In(z.loc), b.In(z.loc)
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func (z *Zone) IsToday(t time.Time) bool {
	return z.SameDay(t, z.Now())
}

func (z *Zone) IsYesterday(t time.Time) bool {
	return z.SameDay(t, z.Now().AddDate(0, 0, -1))
}

// Relative describes t relative to today: "Hoy", "Ayer", "hace 3 días", "en 2 días".
func (z *Zone) Relative(t time.Time) string {
	switch {
	case z.IsToday(t):
		return "Hoy"
	case z.IsYesterday(t):
		return "Ayer"
	}

	days := int(math.Round(z.StartOfDay(z.Now()).Sub(z.StartOfDay(t)).Hours() / 24))
	switch {
	case days > 1:
		return fmt.Sprintf("hace %d días", days)
	case days == -1:
		return "mañana"
	default:
		return fmt.Sprintf("en %d días", -days)
	}
}

// FormatDisplay renders "viernes, 15 de marzo de 2024".
func (z *Zone) FormatDisplay(t time.Time) string {
	t = t.In(z.loc)
	return fmt.Sprintf("%s, %d de %s de %d", weekdays[t.Weekday()], t.Day(), months[t.Month()-1], t.Year())
}

// FormatShort renders "15 mar 2024".
func (z *Zone) FormatShort(t time.Time) string {
	t = t.In(z.loc)
	return fmt.Sprintf("%02d %s %d", t.Day(), monthsShort[t.Month()-1], t.Year())
}

func (z *Zone) FormatInput(t time.Time) string {
	return t.In(z.loc).Format(InputLayout)
}

// FormatISO renders the UTC ISO-8601 form used for storage and JSON.
func (z *Zone) FormatISO(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}

func (z *Zone) MonthShort(t time.Time) string {
	return monthsShort[t.In(z.loc).Month()-1]
}

func (z *Zone) TodayForInput() string {
	return z.FormatInput(z.Now())
}
