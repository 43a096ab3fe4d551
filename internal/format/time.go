// Package format renders timestamps and durations for history listings
// according to the display_date and display_time settings.
package format

import (
	"strings"
	"time"
)

// Settings is the read side of a config provider.
type Settings interface {
	Get(key string) (string, bool)
}

// Layout holds the Go time layouts chosen by the user's settings.
type Layout struct {
	Date      string
	DateShort string
	Clock     string
	ClockFull string
}

// DefaultLayout is used when no settings are available.
var DefaultLayout = Layout{
	Date:      "Jan 02",
	DateShort: "Jan 02",
	Clock:     "15:04",
	ClockFull: "15:04:05",
}

// LayoutFrom resolves display_date and display_time into a Layout.
// A nil settings yields DefaultLayout.
func LayoutFrom(s Settings) Layout {
	if s == nil {
		return DefaultLayout
	}
	date, _ := s.Get("display_date")
	clock, _ := s.Get("display_time")
	return Layout{
		Date:      dateLayout(date),
		DateShort: dateLayoutShort(date),
		Clock:     clockLayout(clock, false),
		ClockFull: clockLayout(clock, true),
	}
}

// DateTime formats a time with both date and time.
// Example output: "23/01/2024 15:04" or "01/23/2024 3:04 PM"
func (l Layout) DateTime(t time.Time) string {
	return t.Format(l.Date) + " " + t.Format(l.Clock)
}

// DateTimeShort formats a time with short date and time (no year).
func (l Layout) DateTimeShort(t time.Time) string {
	return t.Format(l.DateShort) + " " + t.Format(l.Clock)
}

// Full formats with full date and time with seconds.
// Example output: "23/01/2024 15:04:05"
func (l Layout) Full(t time.Time) string {
	return t.Format(l.Date) + " " + t.Format(l.ClockFull)
}

func dateLayout(setting string) string {
	switch setting {
	case "":
		return DefaultLayout.Date
	case "mm/dd/yyyy":
		return "01/02/2006"
	case "yyyy-mm-dd":
		return "2006-01-02"
	case "dd/mm/yyyy":
		return "02/01/2006"
	default:
		// custom Go layout such as "Jan 02"
		return setting
	}
}

func dateLayoutShort(setting string) string {
	switch setting {
	case "":
		return DefaultLayout.DateShort
	case "mm/dd/yyyy":
		return "01/02"
	case "yyyy-mm-dd":
		return "01-02"
	case "dd/mm/yyyy":
		return "02/01"
	}

	short := setting
	for _, year := range []string{"2006", "/06", "-06", " 06"} {
		short = strings.ReplaceAll(short, year, "")
	}
	short = strings.Trim(strings.TrimSpace(short), "/-")
	if short == "" {
		return DefaultLayout.DateShort
	}
	return short
}

func clockLayout(setting string, seconds bool) string {
	if setting == "12h" {
		if seconds {
			return "3:04:05 PM"
		}
		return "3:04 PM"
	}
	if seconds {
		return "15:04:05"
	}
	return "15:04"
}
