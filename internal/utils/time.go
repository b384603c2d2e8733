package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/jinzhu/now"
)

const (
	layoutDate     = "2006-01-02"
	layoutDateTime = "2006-01-02 15:04:05"
)

// Clock returns the current time. Services hold one so tests can pin "today".
type Clock func() time.Time

// StartOfDay returns local midnight of the clock's current day.
func (c Clock) StartOfDay() time.Time {
	if c == nil {
		return now.BeginningOfDay()
	}
	return now.With(c().In(time.Local)).BeginningOfDay()
}

// ParseDateTime accepts RFC3339, "YYYY-MM-DD HH:MM:SS", "YYYY-MM-DD HH:MM" and
// "YYYY-MM-DDTHH:MM" in the local timezone.
func ParseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty datetime")
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range []string{layoutDateTime, "2006-01-02 15:04", "2006-01-02T15:04:05", "2006-01-02T15:04"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid datetime %q", s)
}

// FormatDate formats time to YYYY-MM-DD in local timezone.
func FormatDate(t time.Time) string {
	return t.In(time.Local).Format(layoutDate)
}

// FormatDateTime formats time to "YYYY-MM-DD HH:MM" in local timezone.
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.In(time.Local).Format("2006-01-02 15:04")
}
