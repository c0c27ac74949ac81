package scheduler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/offday/internal/models"
)

// ErrMalformedTime is returned when a clock string cannot be read as an hour and minute pair.
var ErrMalformedTime = errors.New("malformed time")

// ParseClockTime converts a 12-hour clock time such as "8:00AM" or "12:30PM" into
// minutes since midnight. 12AM is midnight and 12PM is noon.
func ParseClockTime(text string) (models.Minutes, error) {
	t := strings.TrimSpace(text)
	if len(t) < 3 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTime, text)
	}

	suffix := strings.ToUpper(t[len(t)-2:])
	if suffix != "AM" && suffix != "PM" {
		return 0, fmt.Errorf("%w: %q is missing an AM/PM suffix", ErrMalformedTime, text)
	}

	hh, mm, ok := strings.Cut(t[:len(t)-2], ":")
	if !ok || !isDigits(hh, 1, 2) || !isDigits(mm, 2, 2) {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTime, text)
	}
	hour, _ := strconv.Atoi(hh)
	minute, _ := strconv.Atoi(mm)
	if hour < 1 || hour > 12 {
		return 0, fmt.Errorf("%w: hour %d out of range in %q", ErrMalformedTime, hour, text)
	}
	if minute > 59 {
		return 0, fmt.Errorf("%w: minute %d out of range in %q", ErrMalformedTime, minute, text)
	}

	if suffix == "PM" && hour != 12 {
		hour += 12
	}
	if suffix == "AM" && hour == 12 {
		hour = 0
	}
	return models.Minutes(hour*60 + minute), nil
}

func isDigits(s string, minLen, maxLen int) bool {
	if len(s) < minLen || len(s) > maxLen {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Overlaps reports whether two half-open intervals share any minute.
// Back-to-back intervals, where one ends exactly when the other starts, do not overlap.
func Overlaps(a, b models.Interval) bool {
	return !(a.End <= b.Start || a.Start >= b.End)
}
