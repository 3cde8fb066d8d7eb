package datetime

import (
	"strings"
	"time"

	"revamp/internal/domain"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Parse combines date (YYYY-MM-DD) and time (HH:MM) into an instant in loc.
func Parse(dateStr, timeStr string, loc *time.Location) (time.Time, error) {
	day, err := ParseDate(dateStr, loc)
	if err != nil {
		return time.Time{}, err
	}
	tTime, err := time.Parse(TimeLayout, strings.TrimSpace(timeStr))
	if err != nil {
		return time.Time{}, domain.ErrInvalidDateTime
	}
	return time.Date(day.Year(), day.Month(), day.Day(),
		tTime.Hour(), tTime.Minute(), 0, 0, loc), nil
}

// ParseDate returns midnight of the given calendar day in loc.
func ParseDate(dateStr string, loc *time.Location) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return time.Time{}, domain.ErrInvalidDateTime
	}
	d, err := time.ParseInLocation(DateLayout, dateStr, loc)
	if err != nil {
		return time.Time{}, domain.ErrInvalidDateTime
	}
	return d, nil
}

// DayBounds returns [start, end) of the calendar day of t in loc.
func DayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	t = t.In(loc)
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}

func Format(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	return t.In(loc).Format("Mon, 2 Jan 2006 at 3:04 PM")
}
