package group

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Guild schedules are quoted in Brazilian time, a fixed UTC-3 offset.
var BrazilZone = time.FixedZone("UTC-3", -3*60*60)

// ParseSchedule converts user-supplied "DD/MM/YYYY" and "HH:MM" strings into
// an absolute instant in the UTC-3 offset. The pair must form a real calendar
// moment; when requireFuture is set, instants at or before now are rejected.
// All failures are reported as ErrInvalidSchedule.
func ParseSchedule(dateStr, timeStr string, now time.Time, requireFuture bool) (time.Time, error) {
	day, month, year, err := splitDate(dateStr)
	if err != nil {
		return time.Time{}, err
	}
	hour, minute, err := splitTime(timeStr)
	if err != nil {
		return time.Time{}, err
	}

	start := time.Date(year, time.Month(month), day, hour, minute, 0, 0, BrazilZone)
	// time.Date normalizes out-of-range components (e.g. 31/02 rolls into
	// March); a round-trip mismatch means the calendar moment never existed.
	if start.Day() != day || int(start.Month()) != month || start.Year() != year {
		return time.Time{}, fmt.Errorf("%w: %s is not a valid date", ErrInvalidSchedule, dateStr)
	}

	if requireFuture && !start.After(now) {
		return time.Time{}, fmt.Errorf("%w: %s %s is in the past", ErrInvalidSchedule, dateStr, timeStr)
	}
	return start, nil
}

func splitDate(s string) (day, month, year int, err error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("%w: date must be DD/MM/YYYY", ErrInvalidSchedule)
	}
	day, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	year, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil || month < 1 || month > 12 || day < 1 || day > 31 || year < 1 {
		return 0, 0, 0, fmt.Errorf("%w: date must be DD/MM/YYYY", ErrInvalidSchedule)
	}
	return day, month, year, nil
}

func splitTime(s string) (hour, minute int, err error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: time must be HH:MM", ErrInvalidSchedule)
	}
	hour, err1 := strconv.Atoi(parts[0])
	minute, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: time must be HH:MM", ErrInvalidSchedule)
	}
	return hour, minute, nil
}
