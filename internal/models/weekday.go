package models

import (
	"fmt"
	"strings"
)

// Weekday is a day of the five-day academic week.
type Weekday int

const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
)

// Weekdays lists the academic week in order. Off days are always reported in this order.
var Weekdays = []Weekday{Sunday, Monday, Tuesday, Wednesday, Thursday}

var weekdayNames = [...]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday"}

func (d Weekday) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

// Valid reports whether d belongs to the academic week.
func (d Weekday) Valid() bool {
	return d >= Sunday && d <= Thursday
}

// ParseWeekday parses a full day name, ignoring case and surrounding spaces.
func ParseWeekday(s string) (Weekday, error) {
	name := strings.TrimSpace(s)
	for i, n := range weekdayNames {
		if strings.EqualFold(n, name) {
			return Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("invalid weekday: %q", s)
}

func (d Weekday) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid weekday: %d", int(d))
	}
	return []byte(d.String()), nil
}

func (d *Weekday) UnmarshalText(text []byte) error {
	wd, err := ParseWeekday(string(text))
	if err != nil {
		return err
	}
	*d = wd
	return nil
}
