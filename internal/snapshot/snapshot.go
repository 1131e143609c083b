// Package snapshot computes the time representations served by every front
// end. All fields of a Snapshot describe one instant: the clock is read by
// the caller (or by Take) exactly once and never inside Compute.
package snapshot

import (
	"time"

	"github.com/rizesql/timeserver/internal/clock"
)

const (
	isoLayout = "2006-01-02T15:04:05.000Z07:00"
	utcLayout = "2006-01-02 15:04:05 UTC"
)

// Config selects the locale and the display pattern of the human field. The
// zero value is usable: DefaultLocale and its long pattern.
type Config struct {
	Locale  *Locale
	Pattern string
}

// NewConfig resolves a language selector and keeps pattern if it is valid.
func NewConfig(lang, pattern string) Config {
	return Config{Locale: ResolveLocale(lang)}.WithPattern(pattern)
}

// WithPattern returns a copy of c using p, or c unchanged when p is not a
// valid pattern.
func (c Config) WithPattern(p string) Config {
	if ValidatePattern(p) != nil {
		return c
	}
	c.Pattern = p
	return c
}

func (c Config) locale() *Locale {
	if c.Locale == nil {
		return DefaultLocale()
	}
	return c.Locale
}

func (c Config) pattern() string {
	if c.Pattern == "" {
		return c.locale().longPattern
	}
	return c.Pattern
}

// Brief holds the fields every front end reports. The HTTP envelope route
// answers with a Brief alone.
type Brief struct {
	ISO        string `json:"iso" jsonschema:"instant in ISO 8601 with milliseconds and UTC offset"`
	Unix       int64  `json:"unix" jsonschema:"whole seconds since the Unix epoch"`
	Human      string `json:"human" jsonschema:"instant rendered with the display pattern and locale"`
	UTC        string `json:"utc" jsonschema:"instant in UTC as YYYY-MM-DD HH:mm:ss UTC"`
	Timezone   string `json:"timezone" jsonschema:"UTC offset of the local zone as +HH:mm"`
	DayOfWeek  string `json:"day_of_week" jsonschema:"localized weekday name"`
	DayOfYear  int    `json:"day_of_year" jsonschema:"1-based day within the year"`
	WeekOfYear int    `json:"week_of_year" jsonschema:"1-based week number under the locale's week rule"`
}

// Snapshot is every time-derived field for one instant. The embedded Brief
// is flattened on the wire, so a Snapshot encodes as a single JSON object.
type Snapshot struct {
	Brief
	IsDST      bool `json:"is_dst" jsonschema:"whether the local zone observes daylight saving time"`
	IsLeapYear bool `json:"is_leap_year" jsonschema:"whether the year is a leap year"`
}

// Compute derives every Snapshot field from now. now keeps its location: the
// local fields (iso, human, timezone, ...) are rendered in it.
func Compute(now time.Time, cfg Config) Snapshot {
	loc := cfg.locale()
	week, _ := loc.Week(now)

	return Snapshot{
		Brief: Brief{
			ISO:        now.Format(isoLayout),
			Unix:       now.Unix(),
			Human:      Format(now, cfg.pattern(), loc),
			UTC:        now.UTC().Format(utcLayout),
			Timezone:   now.Format("-07:00"),
			DayOfWeek:  loc.WeekdayName(now.Weekday()),
			DayOfYear:  now.YearDay(),
			WeekOfYear: week,
		},
		IsDST:      now.IsDST(),
		IsLeapYear: IsLeapYear(now.Year()),
	}
}

// Take reads clk once and computes the snapshot for that instant.
func Take(clk clock.Clock, cfg Config) Snapshot {
	return Compute(clk.Now(), cfg)
}
