package models

import "fmt"

// Minutes counts minutes since midnight.
type Minutes int

// Hour returns the hour of day the minute falls in.
func (m Minutes) Hour() int {
	return int(m) / 60
}

// Clock formats m as a 12-hour clock time, e.g. 8:00AM or 12:30PM.
func (m Minutes) Clock() string {
	h := int(m) / 60 % 24
	min := int(m) % 60
	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
	}
	switch {
	case h == 0:
		h = 12
	case h > 12:
		h -= 12
	}
	return fmt.Sprintf("%d:%02d%s", h, min, suffix)
}

// Interval is a half-open range [Start, End) within a single day.
type Interval struct {
	Start Minutes
	End   Minutes
}

// TimeSlot is one weekly meeting of a group.
type TimeSlot struct {
	Day   Weekday `json:"day"`
	Start Minutes `json:"start"`
	End   Minutes `json:"end"`
}

func (s TimeSlot) Interval() Interval {
	return Interval{Start: s.Start, End: s.End}
}

// Valid reports whether the slot falls on an academic weekday and starts before it ends.
func (s TimeSlot) Valid() bool {
	return s.Day.Valid() && s.Start >= 0 && s.Start < s.End
}

// String renders the slot in its normalized input form: "Sunday - 8:00AM / 10:00AM".
func (s TimeSlot) String() string {
	return fmt.Sprintf("%s - %s / %s", s.Day, s.Start.Clock(), s.End.Clock())
}
